package service

import (
	"context"

	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/itinerary"
)

type FareRulesService struct{}

func NewFareRulesService() *FareRulesService {
	return &FareRulesService{}
}

// ExtractFareRules returns the rule text embedded in one pricing info block.
// Absent rules come back as nulls.
func (s *FareRulesService) ExtractFareRules(
	_ context.Context,
	req dto.FareRulesRequest,
) (dto.FareRulesResponse, error) {
	if req.PricingInfo == nil {
		return dto.FareRulesResponse{}, ErrPricingInfoRequired
	}

	return dto.FareRulesResponse{
		Success: true,
		Rules:   itinerary.ExtractFareRules(req.PricingInfo),
	}, nil
}
