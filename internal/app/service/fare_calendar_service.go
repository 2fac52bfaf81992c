package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/flight"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/ratelimit"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const DefaultCalendarConcurrency = 8

type CalendarCacher interface {
	Get(ctx context.Context, key string) (dto.FareCalendarResult, bool, error)
	Put(ctx context.Context, key string, result dto.FareCalendarResult) error
}

type FareCalendarService struct {
	GDS             gds.Client
	Cache           CalendarCacher
	DefaultCurrency string
	Concurrency     int
}

func NewFareCalendarService(client gds.Client, cache CalendarCacher,
	defaultCurrency string, concurrency int) *FareCalendarService {
	if concurrency <= 0 {
		concurrency = DefaultCalendarConcurrency
	}

	return &FareCalendarService{
		GDS:             client,
		Cache:           cache,
		DefaultCurrency: defaultCurrency,
		Concurrency:     concurrency,
	}
}

// BuildFareCalendar godoc
// @Summary      Fare calendar
// @Tags         Flights
// @Description  Cheapest raw fare per day of a month; a failed day has null amount and currency
// @Param        request  body      dto.FareCalendarRequest  true  "Fare Calendar Request"
// @Success      200      {object}  dto.FareCalendarResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/flights/fare-calendar [post]
func (s *FareCalendarService) BuildFareCalendar(
	ctx context.Context,
	req dto.FareCalendarRequest,
) (dto.FareCalendarResponse, error) {
	first, err := utils.ParseMonth(req.Month)
	if err != nil {
		return dto.FareCalendarResponse{}, fmt.Errorf("%s: %w", err.Error(), ErrInvalidMonth)
	}

	if req.Adults <= 0 {
		req.Adults = 1
	}

	key := flight.CalendarCacheKey(req.Origin, req.Destination, req.Month, req.Cabin, req.Adults)

	cached, hit, err := s.Cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "failed to get fare calendar from cache", slog.Any("error", err))
	}
	if hit {
		return dto.FareCalendarResponse{Success: true, CacheHit: true, FareCalendarResult: cached}, nil
	}

	dates := utils.DatesOfMonth(first)
	entries := make([]dto.FareCalendarEntry, len(dates))
	throttled := make([]bool, len(dates))

	// each date writes its own slot, failures degrade to null entries
	g := new(errgroup.Group)
	g.SetLimit(s.Concurrency)
	for i, date := range dates {
		g.Go(func() error {
			entries[i], throttled[i] = s.cheapestFare(ctx, req, date)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return dto.FareCalendarResponse{}, fmt.Errorf("fare calendar cancelled: %w", err)
	}

	result := dto.FareCalendarResult{
		Origin:      req.Origin,
		Destination: req.Destination,
		Month:       req.Month,
		Entries:     entries,
	}

	// a month degraded by our own throttling is served once, not cached
	if slices.Contains(throttled, true) {
		slog.WarnContext(ctx, "fare calendar not cached, gds calls were rate limited",
			slog.String("key", key))
	} else if err := s.Cache.Put(ctx, key, result); err != nil {
		slog.WarnContext(ctx, "failed to set fare calendar to cache", slog.Any("error", err))
	}

	return dto.FareCalendarResponse{Success: true, FareCalendarResult: result}, nil
}

func (s *FareCalendarService) cheapestFare(
	ctx context.Context,
	req dto.FareCalendarRequest,
	date time.Time,
) (dto.FareCalendarEntry, bool) {
	entry := dto.FareCalendarEntry{Date: date.Format(utils.DateLayout)}

	result, err := s.GDS.Search(ctx, gds.SearchQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: date,
		Adults:        req.Adults,
		Cabin:         req.Cabin,
	})
	if err != nil {
		slog.WarnContext(ctx, "fare calendar date failed",
			slog.String("date", entry.Date),
			slog.Any("error", err))
		return entry, errors.Is(err, ratelimit.ErrRateLimitExceeded)
	}

	var (
		cheapest decimal.Decimal
		currency string
		found    bool
	)
	for _, it := range result.Itineraries {
		total := it.Pricing().TotalFare()
		if total == nil {
			continue
		}

		amount, ok := total.Amount.Decimal()
		if !ok {
			continue
		}

		if !found || amount.LessThan(cheapest) {
			cheapest, currency, found = amount, total.CurrencyCode, true
		}
	}

	if currency == "" {
		currency = s.DefaultCurrency
	}
	entry.Currency = &currency

	if found {
		amount := cheapest.Round(2).InexactFloat64()
		entry.Amount = &amount
	}

	return entry, false
}
