package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/flight"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/itinerary"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/markup"
	"golang.org/x/sync/errgroup"
)

type FlightSearchService struct {
	GDS        gds.Client
	Rules      markup.Store
	Normalizer *itinerary.Normalizer
}

func NewFlightSearchService(client gds.Client, rules markup.Store,
	normalizer *itinerary.Normalizer) *FlightSearchService {
	return &FlightSearchService{
		GDS:        client,
		Rules:      rules,
		Normalizer: normalizer,
	}
}

// SearchFlights godoc
// @Summary      Search flights
// @Tags         Flights
// @Description  Search priced itineraries with markup applied; a GDS or rule store failure returns success=false
// @Param        request  body      dto.SearchCriteria  true  "Search Criteria"
// @Success      200      {object}  dto.SearchFlightResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/flights/search [post]
func (s *FlightSearchService) SearchFlights(
	ctx context.Context,
	req dto.SearchCriteria,
) (dto.SearchFlightResponse, error) {
	startTime := time.Now()

	query, err := req.ToQuery()
	if err != nil {
		return dto.SearchFlightResponse{}, err
	}

	var (
		rules  []markup.Rule
		result *gds.SearchResult
	)

	// rules are re-read on every search, concurrently with the GDS call
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rules, err = s.Rules.ActiveRules(gctx)
		if err != nil {
			return fmt.Errorf("failed to get markup rules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		result, err = s.GDS.Search(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to search gds: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "flight search failed", slog.Any("error", err))

		return dto.SearchFlightResponse{
			Success:     false,
			Message:     err.Error(),
			Itineraries: []*gds.Itinerary{},
		}, nil
	}

	applied := markup.NewEngine(rules).ApplyAll(result.Itineraries)
	s.Normalizer.NormalizeAll(result.Itineraries)

	itineraries := flight.FilterAndSort(result.Itineraries, req.FilterStops, req.FilterAirlines, req.SortOption)

	return dto.SearchFlightResponse{
		Success: true,
		Metadata: &dto.SearchMetadata{
			TotalResults:  len(itineraries),
			SearchTimeMs:  time.Since(startTime).Milliseconds(),
			MarkupApplied: applied,
		},
		Itineraries: itineraries,
	}, nil
}
