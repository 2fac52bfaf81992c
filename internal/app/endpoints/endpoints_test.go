package endpoints

import (
	"context"
	"errors"
	"testing"

	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearch struct {
	resp dto.SearchFlightResponse
	err  error
	got  dto.SearchCriteria
}

func (s *stubSearch) SearchFlights(_ context.Context, req dto.SearchCriteria) (dto.SearchFlightResponse, error) {
	s.got = req
	return s.resp, s.err
}

type stubRules struct{}

func (stubRules) ExtractFareRules(_ context.Context, _ dto.FareRulesRequest) (dto.FareRulesResponse, error) {
	return dto.FareRulesResponse{Success: true}, nil
}

type stubCalendar struct{ err error }

func (s stubCalendar) BuildFareCalendar(_ context.Context, req dto.FareCalendarRequest) (dto.FareCalendarResponse, error) {
	return dto.FareCalendarResponse{Success: true, FareCalendarResult: dto.FareCalendarResult{Month: req.Month}}, s.err
}

func TestEndpoints(t *testing.T) {
	search := &stubSearch{resp: dto.SearchFlightResponse{Success: true}}
	endpts := MakeEndpoints(search, stubRules{}, stubCalendar{})

	t.Run("search_flights", func(t *testing.T) {
		resp, err := endpts.FlightSearchEndpoint.SearchFlights(context.Background(), &dto.SearchCriteria{Origin: "DAC"})
		require.NoError(t, err)
		assert.Equal(t, dto.SearchFlightResponse{Success: true}, resp)
		assert.Equal(t, "DAC", search.got.Origin)
	})

	t.Run("search_flights_invalid_type", func(t *testing.T) {
		_, err := endpts.FlightSearchEndpoint.SearchFlights(context.Background(), dto.SearchCriteria{})
		assert.EqualError(t, err, "invalid type")
	})

	t.Run("fare_rules", func(t *testing.T) {
		resp, err := endpts.FlightSearchEndpoint.FareRules(context.Background(), &dto.FareRulesRequest{})
		require.NoError(t, err)
		assert.Equal(t, dto.FareRulesResponse{Success: true}, resp)
	})

	t.Run("fare_calendar", func(t *testing.T) {
		resp, err := endpts.FareCalendarEndpoint.BuildFareCalendar(context.Background(),
			&dto.FareCalendarRequest{Month: "2025-07"})
		require.NoError(t, err)
		assert.Equal(t, "2025-07", resp.(dto.FareCalendarResponse).Month)
	})

	t.Run("service_error_wrapped", func(t *testing.T) {
		cause := errors.New("boom")
		endpts := MakeEndpoints(&stubSearch{}, stubRules{}, stubCalendar{err: cause})

		_, err := endpts.FareCalendarEndpoint.BuildFareCalendar(context.Background(), &dto.FareCalendarRequest{})
		assert.ErrorIs(t, err, cause)
		assert.EqualError(t, err, "fare calendar service: boom")
	})
}
