package dto

import (
	"fmt"
	"net/http"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/exception"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/itinerary"
)

type FareRulesRequest struct {
	PricingInfo *gds.PricingInfo `json:"pricing_info" validate:"required"`
}

func (f *FareRulesRequest) Bind(r *http.Request) error {
	if err := ValidateSingleError(f); err != nil {
		return fmt.Errorf("error validate request: %w", exception.BadRequest(err.Error()))
	}

	return nil
}

type FareRulesResponse struct {
	Success bool                `json:"success"`
	Rules   itinerary.FareRules `json:"rules"`
}
