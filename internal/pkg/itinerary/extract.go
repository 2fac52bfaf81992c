// Package itinerary reads logical attributes out of GDS itineraries whose
// nested layout differs between response variants, and writes them back
// onto canonical pricing fields.
package itinerary

import (
	"log/slog"
	"strings"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
)

// Accessor reads one candidate location of an attribute. The boolean is
// false when the location is absent or empty.
type Accessor[T any] func(it *gds.Itinerary) (T, bool)

// FirstOf tries the accessors in order and returns the first value found.
// A panicking accessor counts as not found.
func FirstOf[T any](it *gds.Itinerary, accessors ...Accessor[T]) (T, bool) {
	for _, accessor := range accessors {
		if v, ok := safeCall(it, accessor); ok {
			return v, true
		}
	}

	var zero T
	return zero, false
}

func safeCall[T any](it *gds.Itinerary, accessor Accessor[T]) (v T, ok bool) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.Debug("itinerary accessor failed", slog.Any("panic", rvr))
			var zero T
			v, ok = zero, false
		}
	}()

	return accessor(it)
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// GoverningCarrier returns the carrier used for markup matching: the
// validating carrier when present, else the first segment's marketing carrier.
func GoverningCarrier(it *gds.Itinerary) (string, bool) {
	return FirstOf(it, governingCarrierAccessors...)
}

var governingCarrierAccessors = []Accessor[string]{
	func(it *gds.Itinerary) (string, bool) {
		return validatingCarrierCode(pricingValidatingCarrier(it))
	},
	func(it *gds.Itinerary) (string, bool) {
		if it.TPAExtensions == nil {
			return "", false
		}
		return validatingCarrierCode(it.TPAExtensions.ValidatingCarrier)
	},
	MarketingCarrier,
}

func pricingValidatingCarrier(it *gds.Itinerary) *gds.ValidatingCarrier {
	pricing := it.Pricing()
	if pricing == nil || pricing.TPAExtensions == nil {
		return nil
	}

	return pricing.TPAExtensions.ValidatingCarrier
}

func validatingCarrierCode(vc *gds.ValidatingCarrier) (string, bool) {
	if vc == nil {
		return "", false
	}

	if code, ok := nonEmpty(vc.Code); ok {
		return code, true
	}

	if vc.Default != nil {
		return nonEmpty(vc.Default.Code)
	}

	return "", false
}

// MarketingCarrier returns the marketing carrier of the first segment.
func MarketingCarrier(it *gds.Itinerary) (string, bool) {
	seg := it.FirstSegment()
	if seg == nil {
		return "", false
	}

	return nonEmpty(seg.MarketingAirline.Code)
}
