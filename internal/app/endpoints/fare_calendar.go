package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
)

type FareCalendarService interface {
	BuildFareCalendar(ctx context.Context, req dto.FareCalendarRequest) (dto.FareCalendarResponse, error)
}

type FareCalendarEndpoint struct {
	BuildFareCalendar endpoint.Endpoint
}

func MakeFareCalendarEndpoint(service FareCalendarService) FareCalendarEndpoint {
	return FareCalendarEndpoint{
		BuildFareCalendar: makeBuildFareCalendarEndpoint(service),
	}
}

func makeBuildFareCalendarEndpoint(service FareCalendarService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FareCalendarRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.BuildFareCalendar(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("fare calendar service: %w", err)
		}

		return resp, nil
	}
}
