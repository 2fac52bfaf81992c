package dto

import (
	"fmt"
	"net/http"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/exception"
)

type FareCalendarRequest struct {
	Origin      string `json:"origin" validate:"required,iata"`
	Destination string `json:"destination" validate:"required,iata"`
	Month       string `json:"month" validate:"required,datetime=2006-01"`
	Cabin       string `json:"cabin,omitempty"`
	Adults      int    `json:"adults" validate:"omitempty,min=1,max=9"`
}

func (f *FareCalendarRequest) Bind(r *http.Request) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (f *FareCalendarRequest) Validate() error {
	if err := ValidateSingleError(f); err != nil {
		return exception.BadRequest(err.Error())
	}

	if f.Adults == 0 {
		f.Adults = 1
	}

	return nil
}

// FareCalendarEntry is the cheapest fare of one day. Amount and Currency are
// both nil when the GDS call for that day failed; Amount alone is nil when the
// day had no priced itinerary.
type FareCalendarEntry struct {
	Date     string   `json:"date"`
	Amount   *float64 `json:"amount"`
	Currency *string  `json:"currency"`
}

type FareCalendarResult struct {
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	Month       string              `json:"month"`
	Entries     []FareCalendarEntry `json:"entries"`
}

type FareCalendarResponse struct {
	Success  bool `json:"success"`
	CacheHit bool `json:"cache_hit"`
	FareCalendarResult
}
