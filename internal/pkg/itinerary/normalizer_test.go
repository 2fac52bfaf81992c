package itinerary

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeItinerary(t *testing.T, raw string) *gds.Itinerary {
	t.Helper()

	var it gds.Itinerary
	require.NoError(t, json.Unmarshal([]byte(raw), &it))

	return &it
}

type canonical struct {
	Seats    *int
	Baggage  *string
	Cabin    *string
	Tax      string
	Currency string
}

func canonicalOf(it *gds.Itinerary) canonical {
	p := it.Pricing()
	c := canonical{Seats: p.SeatsAvailable, Baggage: p.BaggageAllowance, Cabin: p.CabinCode}
	if p.TotalTax != nil {
		c.Tax = p.TotalTax.Amount.String()
		c.Currency = p.TotalTax.CurrencyCode
	}

	return c
}

func ptr[T any](v T) *T { return &v }

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := NewNormalizer("USD")

	normalizeRequest := func(raw string, want canonical) func(t *testing.T) {
		return func(t *testing.T) {
			it := decodeItinerary(t, raw)
			normalizer.Normalize(it)

			if diff := cmp.Diff(want, canonicalOf(it)); diff != "" {
				t.Fatalf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("segment_seats_and_pricing_text", normalizeRequest(`{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [
			{"FlightSegment": [
				{"MarketingAirline": {"Code": "SV"}, "SeatsRemaining": {"Number": 0}},
				{"MarketingAirline": {"Code": "SV"}, "TPA_Extensions": {"SeatsRemaining": {"Number": "4"}}}
			]}
		]}},
		"AirItineraryPricingInfo": {
			"CheckinBaggage": "2 pieces",
			"CabinBaggage": "7KG",
			"ItinTotalFare": {"TotalFare": {"Amount": 500, "CurrencyCode": "SAR"}},
			"FareInfos": [{"TPA_Extensions": {"SeatsRemaining": {"Number": 9}, "Cabin": {"Cabin": "Y"}}}],
			"PTC_FareBreakdowns": {"PassengerFare": {"Taxes": {"TotalTax": {"Amount": "120.5"}}}}
		}
	}`, canonical{Seats: ptr(4), Baggage: ptr("2 pieces"), Cabin: ptr("Y"), Tax: "120.50", Currency: "SAR"}))

	t.Run("fare_info_fallbacks", normalizeRequest(`{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [
			{"FlightSegment": [{"MarketingAirline": {"Code": "EK"}}]}
		]}},
		"AirItineraryPricingInfo": [{
			"FareInfos": [
				{"CabinBaggage": "1 piece cabin", "TPA_Extensions": {"SeatsRemaining": {"Number": 7}}}
			],
			"PTC_FareBreakdowns": [{
				"PassengerFare": {
					"TotalFare": {"CurrencyCode": "AED"},
					"Taxes": {"Tax": [{"Amount": 10}, {"Amount": "5.25"}, {"Amount": "n/a"}]}
				}
			}]
		}]
	}`, canonical{Seats: ptr(7), Baggage: ptr("1 piece cabin"), Tax: "15.25", Currency: "AED"}))

	t.Run("structured_baggage_pieces", normalizeRequest(`{
		"AirItineraryPricingInfo": {
			"PTC_FareBreakdowns": [{"PassengerFare": {"EquivFare": {"CurrencyCode": "BDT"}, "Taxes": {"Tax": {"Amount": 30}}}}],
			"FareInfos": {"BaggageInformation": [{"Allowance": [{"Pieces": 2}]}]}
		}
	}`, canonical{Baggage: ptr("2PC"), Tax: "30.00", Currency: "BDT"}))

	t.Run("structured_baggage_weight_pricing_level", normalizeRequest(`{
		"AirItineraryPricingInfo": {
			"BaggageInformation": {"Allowance": {"Pieces": 0, "Weight": 30, "Unit": "kg"}},
			"PTC_FareBreakdowns": [{"PassengerFare": {"Taxes": {"Tax": [{"Amount": 12}]}}}]
		}
	}`, canonical{Baggage: ptr("30KG"), Tax: "12.00", Currency: "USD"}))

	t.Run("structured_baggage_description", normalizeRequest(`{
		"AirItineraryPricingInfo": {
			"FareInfos": [{"BaggageInformation": {"Description": "UP TO 23 KG", "Allowance": {"Pieces": 1}}}]
		}
	}`, canonical{Baggage: ptr("UP TO 23 KG")}))

	t.Run("nothing_discoverable", normalizeRequest(`{
		"AirItineraryPricingInfo": {"ItinTotalFare": {"TotalFare": {"Amount": 100}}}
	}`, canonical{}))
}

func TestNormalizer_Idempotent(t *testing.T) {
	it := decodeItinerary(t, `{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [
			{"FlightSegment": [{"MarketingAirline": {"Code": "QR"}, "SeatsRemaining": {"Number": 3}}]}
		]}},
		"AirItineraryPricingInfo": {
			"ItinTotalFare": {"TotalFare": {"Amount": 640, "CurrencyCode": "QAR"}},
			"FareInfos": [{"CheckinBaggage": "30KG", "TPA_Extensions": {"Cabin": {"Cabin": "C"}}}],
			"PTC_FareBreakdowns": [{"PassengerFare": {"Taxes": {"Tax": [{"Amount": 40}, {"Amount": 2}]}}}]
		}
	}`)

	normalizer := NewNormalizer("USD")
	normalizer.Normalize(it)
	once := canonicalOf(it)

	normalizer.Normalize(it)
	twice := canonicalOf(it)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second Normalize() changed canonical fields (-once +twice):\n%s", diff)
	}
	assert.Equal(t, "42.00", twice.Tax)
}

func TestNormalizer_NoPricingInfo(t *testing.T) {
	it := &gds.Itinerary{}
	assert.NotPanics(t, func() { NewNormalizer("USD").Normalize(it) })
	assert.Nil(t, it.Pricing())
}
