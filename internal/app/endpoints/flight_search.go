package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
)

type FlightSearchService interface {
	SearchFlights(ctx context.Context, req dto.SearchCriteria) (dto.SearchFlightResponse, error)
}

type FareRulesService interface {
	ExtractFareRules(ctx context.Context, req dto.FareRulesRequest) (dto.FareRulesResponse, error)
}

type FlightSearchEndpoint struct {
	SearchFlights endpoint.Endpoint
	FareRules     endpoint.Endpoint
}

func MakeFlightSearchEndpoint(search FlightSearchService, fareRules FareRulesService) FlightSearchEndpoint {
	return FlightSearchEndpoint{
		SearchFlights: makeSearchFlightsEndpoint(search),
		FareRules:     makeFareRulesEndpoint(fareRules),
	}
}

func makeSearchFlightsEndpoint(service FlightSearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchCriteria)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.SearchFlights(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("flight search service: %w", err)
		}

		return resp, nil
	}
}

func makeFareRulesEndpoint(service FareRulesService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FareRulesRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.ExtractFareRules(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("fare rules service: %w", err)
		}

		return resp, nil
	}
}
