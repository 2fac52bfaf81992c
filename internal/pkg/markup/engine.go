package markup

import (
	"sort"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/itinerary"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Engine applies the first matching rule by descending priority.
type Engine struct {
	rules []Rule
}

// NewEngine sorts a copy of rules by priority, highest first. Rules of equal
// priority keep their store order.
func NewEngine(rules []Rule) *Engine {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	return &Engine{rules: sorted}
}

// Rules returns the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Select returns the first rule covering carrier.
func (e *Engine) Select(carrier string) (Rule, bool) {
	for _, rule := range e.rules {
		if rule.Matches(carrier) {
			return rule, true
		}
	}

	return Rule{}, false
}

// Apply overwrites the itinerary total fare with the marked-up amount and
// attaches an audit record. It reports whether a markup was applied; an
// itinerary without a matching rule or a readable fare is left untouched.
func (e *Engine) Apply(it *gds.Itinerary) bool {
	// an itinerary without any carrier still matches rules with no airline set
	carrier, _ := itinerary.GoverningCarrier(it)

	rule, ok := e.Select(carrier)
	if !ok {
		return false
	}

	pricing := it.Pricing()
	totalFare := pricing.TotalFare()
	if totalFare == nil {
		return false
	}

	original, ok := totalFare.Amount.Decimal()
	if !ok {
		return false
	}

	added, ok := Compute(rule, original)
	if !ok {
		return false
	}

	totalFare.Amount = gds.NewNumber(original.Add(added).Round(2))
	pricing.Markup = &gds.MarkupAudit{
		Amount: added.Round(2).InexactFloat64(),
		Type:   string(rule.MarkupType),
		RuleID: rule.ID,
	}

	return true
}

// ApplyAll applies markup to every itinerary and returns how many changed.
func (e *Engine) ApplyAll(itineraries []*gds.Itinerary) int {
	applied := 0
	for _, it := range itineraries {
		if e.Apply(it) {
			applied++
		}
	}

	return applied
}

// Compute returns the markup added to fare under rule, false for an unknown
// markup type.
func Compute(rule Rule, fare decimal.Decimal) (decimal.Decimal, bool) {
	value := decimal.NewFromFloat(rule.MarkupValue)

	switch rule.MarkupType {
	case TypePercentage:
		return fare.Mul(value.Div(hundred)), true
	case TypeFlat:
		return value, true
	default:
		return decimal.Zero, false
	}
}
