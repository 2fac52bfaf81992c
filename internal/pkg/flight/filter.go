package flight

import (
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/itinerary"
)

const (
	StopsDirect = "direct"
	StopsOne    = "one"
	StopsMulti  = "multi"
)

// StopCount is the number of intermediate stops summed over every leg.
func StopCount(it *gds.Itinerary) int {
	stops := 0
	for _, leg := range it.Legs() {
		if n := len(leg.FlightSegment) - 1; n > 0 {
			stops += n
		}
	}

	return stops
}

// FilterItineraries keeps the itineraries matching both the stop filter and
// the airline filter. An unknown stop filter and an airline map without a
// true entry impose no constraint.
func FilterItineraries(itineraries []*gds.Itinerary, stops string, airlines map[string]bool) []*gds.Itinerary {
	selected := selectedAirlines(airlines)

	results := make([]*gds.Itinerary, 0, len(itineraries))
	for _, it := range itineraries {
		if !matchesStops(StopCount(it), stops) {
			continue
		}

		if len(selected) > 0 {
			carrier, _ := itinerary.MarketingCarrier(it)
			if !selected[carrier] {
				continue
			}
		}

		results = append(results, it)
	}

	return results
}

// FilterAndSort applies FilterItineraries and then SortItineraries.
func FilterAndSort(itineraries []*gds.Itinerary, stops string, airlines map[string]bool,
	sortOption string,
) []*gds.Itinerary {
	return SortItineraries(FilterItineraries(itineraries, stops, airlines), sortOption)
}

func matchesStops(count int, filter string) bool {
	switch filter {
	case StopsDirect:
		return count == 0
	case StopsOne:
		return count == 1
	case StopsMulti:
		return count >= 2
	default:
		return true
	}
}

func selectedAirlines(airlines map[string]bool) map[string]bool {
	selected := make(map[string]bool, len(airlines))
	for code, on := range airlines {
		if on {
			selected[code] = true
		}
	}

	return selected
}
