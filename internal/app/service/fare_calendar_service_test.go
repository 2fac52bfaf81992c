//go:build unit

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/flight"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeGDS answers fare searches from a per-date table and records the peak
// number of concurrent calls.
type fakeGDS struct {
	fares map[string][]gds.Money
	fail     map[string]bool
	failWith error
	delay    time.Duration

	calls    atomic.Int32
	inflight atomic.Int32
	adults   atomic.Int32

	mu   sync.Mutex
	peak int32
}

func (f *fakeGDS) Search(ctx context.Context, query gds.SearchQuery) (*gds.SearchResult, error) {
	f.calls.Add(1)
	f.adults.Store(int32(query.Adults))
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)

	f.mu.Lock()
	if n > f.peak {
		f.peak = n
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	date := query.DepartureDate.Format("2006-01-02")
	if f.fail == nil || f.fail[date] {
		if f.failWith != nil {
			return nil, f.failWith
		}
		return nil, gds.ErrUpstream
	}

	result := &gds.SearchResult{}
	for _, fare := range f.fares[date] {
		result.Itineraries = append(result.Itineraries, &gds.Itinerary{
			PricingInfo: gds.OneOrMany[gds.PricingInfo]{{
				ItinTotalFare: &gds.ItinTotalFare{TotalFare: &gds.Money{Amount: fare.Amount, CurrencyCode: fare.CurrencyCode}},
			}},
		})
	}

	return result, nil
}

func (f *fakeGDS) peakConcurrency() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.peak
}

func julyFares() *fakeGDS {
	f := &fakeGDS{
		fares: make(map[string][]gds.Money),
		fail:  map[string]bool{"2025-07-15": true},
		delay: 2 * time.Millisecond,
	}

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 31; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		f.fares[date] = []gds.Money{
			{Amount: gds.NumberFromString("640"), CurrencyCode: "SAR"},
			{Amount: gds.NumberFromString("512.40"), CurrencyCode: "USD"},
			{Amount: gds.NumberFromString("n/a"), CurrencyCode: "EUR"},
		}
	}
	f.fares["2025-07-20"] = nil
	f.fares["2025-07-21"] = []gds.Money{{Amount: gds.NumberFromInt(700)}}

	return f
}

var julyRequest = dto.FareCalendarRequest{
	Origin:      "DAC",
	Destination: "JED",
	Month:       "2025-07",
	Cabin:       "Economy",
	Adults:      1,
}

func TestFareCalendarService_BuildFareCalendar(t *testing.T) {
	fake := julyFares()
	s := NewFareCalendarService(fake, flight.NewMemoryCalendarCache(10*time.Minute), "USD", 8)

	resp, err := s.BuildFareCalendar(context.Background(), julyRequest)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.CacheHit)
	assert.Equal(t, "DAC", resp.Origin)
	assert.Equal(t, "2025-07", resp.Month)
	require.Len(t, resp.Entries, 31)
	assert.EqualValues(t, 31, fake.calls.Load())
	assert.LessOrEqual(t, fake.peakConcurrency(), int32(8))

	for i, entry := range resp.Entries {
		want := time.Date(2025, 7, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		assert.Equal(t, want, entry.Date)
	}

	first := resp.Entries[0]
	require.NotNil(t, first.Amount)
	require.NotNil(t, first.Currency)
	assert.Equal(t, 512.4, *first.Amount)
	assert.Equal(t, "USD", *first.Currency)

	failed := resp.Entries[14]
	assert.Equal(t, "2025-07-15", failed.Date)
	assert.Nil(t, failed.Amount)
	assert.Nil(t, failed.Currency)

	empty := resp.Entries[19]
	assert.Nil(t, empty.Amount)
	require.NotNil(t, empty.Currency)
	assert.Equal(t, "USD", *empty.Currency, "a day without fares falls back to the default currency")

	noCurrency := resp.Entries[20]
	require.NotNil(t, noCurrency.Amount)
	assert.Equal(t, 700.0, *noCurrency.Amount)
	assert.Equal(t, "USD", *noCurrency.Currency)
}

func TestFareCalendarService_AllDatesFail(t *testing.T) {
	fake := &fakeGDS{}
	s := NewFareCalendarService(fake, flight.NewMemoryCalendarCache(10*time.Minute), "USD", 8)

	resp, err := s.BuildFareCalendar(context.Background(), dto.FareCalendarRequest{
		Origin: "DAC", Destination: "JED", Month: "2025-06", Adults: 1,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.Len(t, resp.Entries, 30)
	assert.Equal(t, "2025-06-01", resp.Entries[0].Date)
	assert.Equal(t, "2025-06-30", resp.Entries[29].Date)
	for _, entry := range resp.Entries {
		assert.Nil(t, entry.Amount)
		assert.Nil(t, entry.Currency)
	}
}

func TestFareCalendarService_CacheTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	cache := flight.NewMemoryCalendarCache(10*time.Minute, flight.WithClock(func() time.Time { return now }))

	fake := julyFares()
	fake.delay = 0
	s := NewFareCalendarService(fake, cache, "USD", 8)

	ctx := context.Background()

	first, err := s.BuildFareCalendar(ctx, julyRequest)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.EqualValues(t, 31, fake.calls.Load())

	now = now.Add(9 * time.Minute)
	second, err := s.BuildFareCalendar(ctx, julyRequest)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.EqualValues(t, 31, fake.calls.Load(), "second request within ttl must not reach the gds")
	assert.Equal(t, first.Entries, second.Entries)

	otherCabin := julyRequest
	otherCabin.Cabin = "Business"
	_, err = s.BuildFareCalendar(ctx, otherCabin)
	require.NoError(t, err)
	assert.EqualValues(t, 62, fake.calls.Load(), "a different cabin is a different key")

	now = now.Add(2 * time.Minute)
	third, err := s.BuildFareCalendar(ctx, julyRequest)
	require.NoError(t, err)
	assert.False(t, third.CacheHit)
	assert.EqualValues(t, 93, fake.calls.Load(), "request after ttl must run a new batch round")
}

func TestFareCalendarService_BoundedConcurrency(t *testing.T) {
	concurrencyRequest := func(limit int, wantMax int32) func(t *testing.T) {
		return func(t *testing.T) {
			fake := julyFares()
			fake.delay = 5 * time.Millisecond
			s := NewFareCalendarService(fake, flight.NewMemoryCalendarCache(time.Minute), "USD", limit)

			_, err := s.BuildFareCalendar(context.Background(), julyRequest)
			require.NoError(t, err)

			assert.LessOrEqual(t, fake.peakConcurrency(), wantMax)
			assert.GreaterOrEqual(t, fake.peakConcurrency(), int32(1))
		}
	}

	t.Run("default_limit", concurrencyRequest(0, 8))
	t.Run("limit_8", concurrencyRequest(8, 8))
	t.Run("limit_2", concurrencyRequest(2, 2))
}

func TestFareCalendarService_Errors(t *testing.T) {
	t.Run("invalid_month", func(t *testing.T) {
		cache := NewMockCalendarCacher(t)
		s := NewFareCalendarService(&fakeGDS{}, cache, "USD", 8)

		_, err := s.BuildFareCalendar(context.Background(), dto.FareCalendarRequest{
			Origin: "DAC", Destination: "JED", Month: "2025-13", Adults: 1,
		})
		assert.ErrorIs(t, err, ErrInvalidMonth)
	})

	t.Run("cache_failures_do_not_fail_request", func(t *testing.T) {
		cache := NewMockCalendarCacher(t)
		cache.On("Get", mock.Anything, "fare-calendar:DAC:JED:2025-07:economy:1").
			Return(dto.FareCalendarResult{}, false, errors.New("redis down")).Once()
		cache.On("Put", mock.Anything, "fare-calendar:DAC:JED:2025-07:economy:1", mock.Anything).
			Return(errors.New("redis down")).Once()

		s := NewFareCalendarService(julyFares(), cache, "USD", 8)

		resp, err := s.BuildFareCalendar(context.Background(), julyRequest)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Len(t, resp.Entries, 31)
	})

	t.Run("cancelled_context_is_not_cached", func(t *testing.T) {
		cache := NewMockCalendarCacher(t)
		cache.On("Get", mock.Anything, mock.Anything).Return(dto.FareCalendarResult{}, false, nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := NewFareCalendarService(julyFares(), cache, "USD", 8)

		_, err := s.BuildFareCalendar(ctx, julyRequest)
		assert.ErrorIs(t, err, context.Canceled)
	})
	t.Run("rate_limited_month_is_not_cached", func(t *testing.T) {
		cache := NewMockCalendarCacher(t)
		cache.On("Get", mock.Anything, "fare-calendar:DAC:JED:2025-07:economy:1").
			Return(dto.FareCalendarResult{}, false, nil).Once()

		fake := julyFares()
		fake.fail = map[string]bool{"2025-07-03": true, "2025-07-04": true}
		fake.failWith = fmt.Errorf("gds rate limit: %w", ratelimit.ErrRateLimitExceeded)

		s := NewFareCalendarService(fake, cache, "USD", 8)

		resp, err := s.BuildFareCalendar(context.Background(), julyRequest)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		require.Len(t, resp.Entries, 31)
		assert.Nil(t, resp.Entries[2].Amount)
		assert.Nil(t, resp.Entries[3].Amount)
		require.NotNil(t, resp.Entries[0].Amount)
		assert.Equal(t, 512.4, *resp.Entries[0].Amount)

		cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upstream_failures_are_still_cached", func(t *testing.T) {
		cache := NewMockCalendarCacher(t)
		cache.On("Get", mock.Anything, mock.Anything).Return(dto.FareCalendarResult{}, false, nil).Once()
		cache.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		s := NewFareCalendarService(julyFares(), cache, "USD", 8)

		_, err := s.BuildFareCalendar(context.Background(), julyRequest)
		require.NoError(t, err)
	})
}

func TestFareCalendarService_DefaultAdults(t *testing.T) {
	cache := NewMockCalendarCacher(t)
	cache.On("Get", mock.Anything, "fare-calendar:DAC:JED:2025-07:economy:1").
		Return(dto.FareCalendarResult{}, false, nil).Once()
	cache.On("Put", mock.Anything, "fare-calendar:DAC:JED:2025-07:economy:1", mock.Anything).
		Return(nil).Once()

	fake := julyFares()
	s := NewFareCalendarService(fake, cache, "USD", 8)

	req := julyRequest
	req.Adults = 0

	_, err := s.BuildFareCalendar(context.Background(), req)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fake.adults.Load())
}
