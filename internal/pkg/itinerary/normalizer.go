package itinerary

import (
	"fmt"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/shopspring/decimal"
)

// Normalizer hoists seats, baggage, cabin and tax data onto the canonical
// fields of the first pricing info block.
type Normalizer struct {
	defaultCurrency string
}

func NewNormalizer(defaultCurrency string) *Normalizer {
	return &Normalizer{defaultCurrency: defaultCurrency}
}

// Normalize enriches it in place. Source fields are never modified, so
// running it twice yields the same canonical values.
func (n *Normalizer) Normalize(it *gds.Itinerary) {
	pricing := it.Pricing()
	if pricing == nil {
		return
	}

	if seats, ok := SeatsRemaining(it); ok {
		pricing.SeatsAvailable = &seats
	}

	if baggage, ok := BaggageAllowance(it); ok {
		pricing.BaggageAllowance = &baggage
	}

	if cabin, ok := CabinCode(it); ok {
		pricing.CabinCode = &cabin
	}

	if tax, ok := TotalTax(it); ok {
		pricing.TotalTax = &gds.Money{
			Amount:       gds.NewNumber(tax),
			CurrencyCode: n.taxCurrency(it),
		}
	}
}

// NormalizeAll normalizes every itinerary in the slice.
func (n *Normalizer) NormalizeAll(itineraries []*gds.Itinerary) {
	for _, it := range itineraries {
		n.Normalize(it)
	}
}

// SeatsRemaining returns the first positive seat count found on the flight
// segments, then on the fare infos.
func SeatsRemaining(it *gds.Itinerary) (int, bool) {
	return FirstOf[int](it, seatsFromSegments, seatsFromFareInfos)
}

func seatsFromSegments(it *gds.Itinerary) (int, bool) {
	for _, leg := range it.Legs() {
		for _, seg := range leg.FlightSegment {
			if n, ok := positiveSeats(seg.SeatsRemaining); ok {
				return n, true
			}
			if seg.TPAExtensions != nil {
				if n, ok := positiveSeats(seg.TPAExtensions.SeatsRemaining); ok {
					return n, true
				}
			}
		}
	}

	return 0, false
}

func seatsFromFareInfos(it *gds.Itinerary) (int, bool) {
	pricing := it.Pricing()
	if pricing == nil {
		return 0, false
	}

	for _, fi := range pricing.FareInfos {
		if fi.TPAExtensions == nil {
			continue
		}
		if n, ok := positiveSeats(fi.TPAExtensions.SeatsRemaining); ok {
			return n, true
		}
	}

	return 0, false
}

func positiveSeats(sr *gds.SeatsRemaining) (int, bool) {
	if sr == nil {
		return 0, false
	}

	n, ok := sr.Number.Int()
	if !ok || n <= 0 {
		return 0, false
	}

	return n, true
}

// BaggageAllowance returns the allowance text. Free-text fields win over the
// structured baggage information block.
func BaggageAllowance(it *gds.Itinerary) (string, bool) {
	return FirstOf(it, baggageAccessors...)
}

var baggageAccessors = []Accessor[string]{
	func(it *gds.Itinerary) (string, bool) {
		pricing := it.Pricing()
		if pricing == nil {
			return "", false
		}
		return baggageText(pricing.BaggageText)
	},
	func(it *gds.Itinerary) (string, bool) {
		fi := firstFareInfo(it)
		if fi == nil {
			return "", false
		}
		return baggageText(fi.BaggageText)
	},
	func(it *gds.Itinerary) (string, bool) {
		fb := firstFareBreakdown(it)
		if fb == nil {
			return "", false
		}
		return baggageText(fb.BaggageText)
	},
	func(it *gds.Itinerary) (string, bool) {
		fi := firstFareInfo(it)
		if fi == nil {
			return "", false
		}
		return baggageInformation(fi.BaggageInformation.First())
	},
	func(it *gds.Itinerary) (string, bool) {
		pricing := it.Pricing()
		if pricing == nil {
			return "", false
		}
		return baggageInformation(pricing.BaggageInformation.First())
	},
}

// check-in text is preferred over cabin text at the same level
func baggageText(b gds.BaggageText) (string, bool) {
	if s, ok := nonEmpty(b.CheckinBaggage); ok {
		return s, true
	}

	return nonEmpty(b.CabinBaggage)
}

func baggageInformation(info *gds.BaggageInformation) (string, bool) {
	if info == nil {
		return "", false
	}

	if s, ok := nonEmpty(info.Description); ok {
		return s, true
	}

	if s, ok := nonEmpty(info.Provision); ok {
		return s, true
	}

	allowance := info.Allowance.First()
	if allowance == nil {
		return "", false
	}

	if pieces, ok := allowance.Pieces.Decimal(); ok && pieces.IsPositive() {
		return fmt.Sprintf("%sPC", pieces.String()), true
	}

	if weight, ok := allowance.Weight.Decimal(); ok && weight.IsPositive() {
		return fmt.Sprintf("%sKG", weight.String()), true
	}

	return "", false
}

// CabinCode returns the cabin extension of the first fare info.
func CabinCode(it *gds.Itinerary) (string, bool) {
	return FirstOf[string](it, func(it *gds.Itinerary) (string, bool) {
		fi := firstFareInfo(it)
		if fi == nil || fi.TPAExtensions == nil || fi.TPAExtensions.Cabin == nil {
			return "", false
		}
		return nonEmpty(fi.TPAExtensions.Cabin.Cabin)
	})
}

// TotalTax returns the explicit total tax of the first fare breakdown, or the
// sum of its tax lines when no total is given.
func TotalTax(it *gds.Itinerary) (decimal.Decimal, bool) {
	return FirstOf[decimal.Decimal](it, explicitTotalTax, summedTaxLines)
}

func explicitTotalTax(it *gds.Itinerary) (decimal.Decimal, bool) {
	taxes := passengerTaxes(it)
	if taxes == nil || taxes.TotalTax == nil {
		return decimal.Zero, false
	}

	return taxes.TotalTax.Amount.Decimal()
}

func summedTaxLines(it *gds.Itinerary) (decimal.Decimal, bool) {
	taxes := passengerTaxes(it)
	if taxes == nil {
		return decimal.Zero, false
	}

	var (
		sum   = decimal.Zero
		found bool
	)
	for _, tax := range taxes.Tax {
		if amount, ok := tax.Amount.Decimal(); ok {
			sum = sum.Add(amount)
			found = true
		}
	}

	return sum, found
}

func (n *Normalizer) taxCurrency(it *gds.Itinerary) string {
	currency, ok := FirstOf(it, taxCurrencyAccessors...)
	if !ok {
		return n.defaultCurrency
	}

	return currency
}

var taxCurrencyAccessors = []Accessor[string]{
	func(it *gds.Itinerary) (string, bool) {
		return moneyCurrency(it.Pricing().TotalFare())
	},
	func(it *gds.Itinerary) (string, bool) {
		pf := passengerFare(it)
		if pf == nil {
			return "", false
		}
		return moneyCurrency(pf.TotalFare)
	},
	func(it *gds.Itinerary) (string, bool) {
		pf := passengerFare(it)
		if pf == nil {
			return "", false
		}
		return moneyCurrency(pf.EquivFare)
	},
}

func moneyCurrency(m *gds.Money) (string, bool) {
	if m == nil {
		return "", false
	}

	return nonEmpty(m.CurrencyCode)
}

func firstFareInfo(it *gds.Itinerary) *gds.FareInfo {
	pricing := it.Pricing()
	if pricing == nil {
		return nil
	}

	return pricing.FareInfos.First()
}

func firstFareBreakdown(it *gds.Itinerary) *gds.FareBreakdown {
	pricing := it.Pricing()
	if pricing == nil {
		return nil
	}

	return pricing.PTCFareBreakdowns.First()
}

func passengerFare(it *gds.Itinerary) *gds.PassengerFare {
	fb := firstFareBreakdown(it)
	if fb == nil {
		return nil
	}

	return fb.PassengerFare
}

func passengerTaxes(it *gds.Itinerary) *gds.Taxes {
	pf := passengerFare(it)
	if pf == nil {
		return nil
	}

	return pf.Taxes
}
