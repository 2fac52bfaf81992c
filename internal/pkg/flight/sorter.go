package flight

import (
	"sort"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/shopspring/decimal"
)

const (
	SortCheapest = "cheapest"
	SortFastest  = "fastest"
)

// SortItineraries orders itineraries in place and returns them. Any option
// other than cheapest or fastest keeps the GDS order. Ties keep their
// relative order.
func SortItineraries(itineraries []*gds.Itinerary, sortOption string) []*gds.Itinerary {
	switch sortOption {
	case SortCheapest:
		sort.SliceStable(itineraries, func(i, j int) bool {
			return TotalFare(itineraries[i]).LessThan(TotalFare(itineraries[j]))
		})
	case SortFastest:
		sort.SliceStable(itineraries, func(i, j int) bool {
			return ElapsedTime(itineraries[i]).LessThan(ElapsedTime(itineraries[j]))
		})
	}

	return itineraries
}

// TotalFare returns the itinerary total fare, zero when absent or unparsable.
func TotalFare(it *gds.Itinerary) decimal.Decimal {
	total := it.Pricing().TotalFare()
	if total == nil {
		return decimal.Zero
	}

	amount, ok := total.Amount.Decimal()
	if !ok {
		return decimal.Zero
	}

	return amount
}

// ElapsedTime sums the elapsed time of every leg; a leg without one counts
// as zero.
func ElapsedTime(it *gds.Itinerary) decimal.Decimal {
	sum := decimal.Zero
	for _, leg := range it.Legs() {
		if minutes, ok := leg.ElapsedTime.Decimal(); ok {
			sum = sum.Add(minutes)
		}
	}

	return sum
}
