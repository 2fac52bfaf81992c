package itinerary

import (
	"fmt"
	"strings"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
)

const (
	penaltyRefund   = "refund"
	penaltyExchange = "exchange"
	penaltyNoShow   = "noshow"
)

// FareRules is the cancellation, date change and no-show text of a fare.
// A nil field means the fare carries no such rule.
type FareRules struct {
	Cancellation *string `json:"cancellation"`
	DateChange   *string `json:"date_change"`
	NoShow       *string `json:"no_show"`
}

// ExtractFareRules reads the rule text embedded in a single pricing info
// block. Explicit rule text wins over text rendered from penalty records.
func ExtractFareRules(pricing *gds.PricingInfo) FareRules {
	var rules FareRules
	if pricing == nil {
		return rules
	}

	it := &gds.Itinerary{PricingInfo: gds.OneOrMany[gds.PricingInfo]{*pricing}}

	if s, ok := FirstOf(it, ruleText(func(r *gds.FareRuleText) string { return r.Cancellation }),
		penaltyText(penaltyRefund)); ok {
		rules.Cancellation = &s
	}

	if s, ok := FirstOf(it, ruleText(func(r *gds.FareRuleText) string { return r.DateChange }),
		penaltyText(penaltyExchange)); ok {
		rules.DateChange = &s
	}

	if s, ok := FirstOf(it, ruleText(func(r *gds.FareRuleText) string { return r.NoShow }),
		penaltyText(penaltyNoShow)); ok {
		rules.NoShow = &s
	}

	return rules
}

func ruleText(field func(r *gds.FareRuleText) string) Accessor[string] {
	return func(it *gds.Itinerary) (string, bool) {
		pricing := it.Pricing()
		if pricing == nil || pricing.TPAExtensions == nil || pricing.TPAExtensions.FareRules == nil {
			return "", false
		}
		return nonEmpty(field(pricing.TPAExtensions.FareRules))
	}
}

func penaltyText(kind string) Accessor[string] {
	return func(it *gds.Itinerary) (string, bool) {
		pf := passengerFare(it)
		if pf == nil || pf.PenaltiesInfo == nil {
			return "", false
		}

		var parts []string
		for _, p := range pf.PenaltiesInfo.Penalty {
			if penaltyKind(p) != kind {
				continue
			}
			if s, ok := renderPenalty(p); ok {
				parts = append(parts, s)
			}
		}

		return nonEmpty(strings.Join(parts, "; "))
	}
}

func penaltyKind(p gds.Penalty) string {
	normalize := func(s string) string {
		return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	}

	if normalize(p.Applicability) == penaltyNoShow {
		return penaltyNoShow
	}

	return normalize(p.Type)
}

func renderPenalty(p gds.Penalty) (string, bool) {
	var allowed *bool
	switch penaltyKind(p) {
	case penaltyRefund:
		allowed = p.Refundable
	case penaltyExchange:
		allowed = p.Changeable
	}

	var when string
	switch strings.ToLower(p.Applicability) {
	case "before":
		when = " before departure"
	case "after":
		when = " after departure"
	}

	if allowed != nil && !*allowed {
		return "Not permitted" + when, true
	}

	if amount, ok := p.Amount.Decimal(); ok {
		if amount.IsZero() {
			return "Free of charge" + when, true
		}
		return strings.TrimSpace(fmt.Sprintf("Fee %s %s", amount.StringFixed(2), p.CurrencyCode)) + when, true
	}

	if allowed != nil {
		return "Permitted" + when, true
	}

	return "", false
}
