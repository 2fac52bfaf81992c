package gds

import "bytes"

// SearchResponse is the envelope returned by the low fare search API.
// Nested fields that arrive in an unexpected shape are dropped one by one,
// the rest of the response still decodes.
type SearchResponse struct {
	LowFareSearchRS LowFareSearchRS `json:"OTA_AirLowFareSearchRS"`
}

type searchResponseFields SearchResponse

func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	return unmarshalLenient(data, (*searchResponseFields)(r))
}

type LowFareSearchRS struct {
	PricedItineraries PricedItineraries `json:"PricedItineraries"`
}

type PricedItineraries struct {
	PricedItinerary OneOrMany[Itinerary] `json:"PricedItinerary"`
}

// SearchResult holds the priced itineraries of one availability query.
type SearchResult struct {
	Itineraries []*Itinerary
}

// Itinerary is one priced flight option. Source fields keep the GDS naming;
// the normalizer writes canonical values onto PricingInfo.
type Itinerary struct {
	SequenceNumber int                    `json:"SequenceNumber"`
	AirItinerary   AirItinerary           `json:"AirItinerary"`
	PricingInfo    OneOrMany[PricingInfo] `json:"AirItineraryPricingInfo"`
	TPAExtensions  *ItineraryExtensions   `json:"TPA_Extensions,omitempty"`
}

type itineraryFields Itinerary

func (it *Itinerary) UnmarshalJSON(data []byte) error {
	return unmarshalLenient(data, (*itineraryFields)(it))
}

// Pricing returns the first pricing info block, nil when there is none.
func (it *Itinerary) Pricing() *PricingInfo {
	if it == nil {
		return nil
	}

	return it.PricingInfo.First()
}

// Legs returns the origin-destination options of the itinerary.
func (it *Itinerary) Legs() []Leg {
	if it == nil {
		return nil
	}

	return it.AirItinerary.OriginDestinationOptions.OriginDestinationOption
}

// FirstSegment returns the first flight segment of the first leg.
func (it *Itinerary) FirstSegment() *Segment {
	legs := it.Legs()
	if len(legs) == 0 || len(legs[0].FlightSegment) == 0 {
		return nil
	}

	return &legs[0].FlightSegment[0]
}

type ItineraryExtensions struct {
	ValidatingCarrier *ValidatingCarrier `json:"ValidatingCarrier,omitempty"`
}

type AirItinerary struct {
	DirectionInd             string                   `json:"DirectionInd,omitempty"`
	OriginDestinationOptions OriginDestinationOptions `json:"OriginDestinationOptions"`
}

type OriginDestinationOptions struct {
	OriginDestinationOption []Leg `json:"OriginDestinationOption"`
}

// Leg is one directional part of the trip.
type Leg struct {
	ElapsedTime   Number    `json:"ElapsedTime,omitzero"`
	FlightSegment []Segment `json:"FlightSegment"`
}

type Segment struct {
	DepartureDateTime string             `json:"DepartureDateTime"`
	ArrivalDateTime   string             `json:"ArrivalDateTime"`
	FlightNumber      string             `json:"FlightNumber"`
	ResBookDesigCode  string             `json:"ResBookDesigCode,omitempty"`
	ElapsedTime       Number             `json:"ElapsedTime,omitzero"`
	DepartureAirport  Location           `json:"DepartureAirport"`
	ArrivalAirport    Location           `json:"ArrivalAirport"`
	MarketingAirline  Airline            `json:"MarketingAirline"`
	OperatingAirline  *Airline           `json:"OperatingAirline,omitempty"`
	SeatsRemaining    *SeatsRemaining    `json:"SeatsRemaining,omitempty"`
	TPAExtensions     *SegmentExtensions `json:"TPA_Extensions,omitempty"`
}

type SegmentExtensions struct {
	SeatsRemaining *SeatsRemaining `json:"SeatsRemaining,omitempty"`
}

type Location struct {
	LocationCode string `json:"LocationCode"`
	TerminalID   string `json:"TerminalID,omitempty"`
}

type Airline struct {
	Code         string `json:"Code"`
	FlightNumber string `json:"FlightNumber,omitempty"`
}

// SeatsRemaining is usually an object, though some carriers send the bare
// count instead.
type SeatsRemaining struct {
	Number   Number `json:"Number,omitzero"`
	BelowMin bool   `json:"BelowMin,omitempty"`
}

type seatsRemainingFields SeatsRemaining

func (s *SeatsRemaining) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		return unmarshalLenient(data, (*seatsRemainingFields)(s))
	}

	*s = SeatsRemaining{}
	return s.Number.UnmarshalJSON(data)
}

// ValidatingCarrier appears either with a direct code or with a default
// carrier block depending on the response version.
type ValidatingCarrier struct {
	Code    string   `json:"Code,omitempty"`
	Default *Airline `json:"Default,omitempty"`
}

// Money is an amount with its currency.
type Money struct {
	Amount       Number `json:"Amount,omitzero"`
	CurrencyCode string `json:"CurrencyCode,omitempty"`
}

type Tax struct {
	TaxCode      string `json:"TaxCode,omitempty"`
	Amount       Number `json:"Amount,omitzero"`
	CurrencyCode string `json:"CurrencyCode,omitempty"`
}

type Taxes struct {
	Tax      OneOrMany[Tax] `json:"Tax,omitempty"`
	TotalTax *Money         `json:"TotalTax,omitempty"`
}

type ItinTotalFare struct {
	BaseFare  *Money `json:"BaseFare,omitempty"`
	EquivFare *Money `json:"EquivFare,omitempty"`
	Taxes     *Taxes `json:"Taxes,omitempty"`
	TotalFare *Money `json:"TotalFare,omitempty"`
}

// BaggageText is the free-text allowance some response variants embed at
// pricing, fare info or fare breakdown level.
type BaggageText struct {
	CheckinBaggage string `json:"CheckinBaggage,omitempty"`
	CabinBaggage   string `json:"CabinBaggage,omitempty"`
}

type BaggageAllowance struct {
	Pieces Number `json:"Pieces,omitzero"`
	Weight Number `json:"Weight,omitzero"`
	Unit   string `json:"Unit,omitempty"`
}

type BaggageInformation struct {
	Description   string                      `json:"Description,omitempty"`
	Provision     string                      `json:"Provision,omitempty"`
	ProvisionType string                      `json:"ProvisionType,omitempty"`
	Allowance     OneOrMany[BaggageAllowance] `json:"Allowance,omitempty"`
}

type Cabin struct {
	Cabin string `json:"Cabin"`
}

type FareInfoExtensions struct {
	SeatsRemaining *SeatsRemaining `json:"SeatsRemaining,omitempty"`
	Cabin          *Cabin          `json:"Cabin,omitempty"`
}

type FareInfo struct {
	BaggageText
	FareReference      string                        `json:"FareReference,omitempty"`
	BaggageInformation OneOrMany[BaggageInformation] `json:"BaggageInformation,omitempty"`
	TPAExtensions      *FareInfoExtensions           `json:"TPA_Extensions,omitempty"`
}

type PassengerTypeQuantity struct {
	Code     string `json:"Code"`
	Quantity Number `json:"Quantity,omitzero"`
}

// Penalty is one refund, exchange or no-show condition of a fare.
type Penalty struct {
	Type          string `json:"Type"`
	Applicability string `json:"Applicability,omitempty"`
	Refundable    *bool  `json:"Refundable,omitempty"`
	Changeable    *bool  `json:"Changeable,omitempty"`
	Amount        Number `json:"Amount,omitzero"`
	CurrencyCode  string `json:"CurrencyCode,omitempty"`
}

type PenaltiesInfo struct {
	Penalty OneOrMany[Penalty] `json:"Penalty,omitempty"`
}

type PassengerFare struct {
	BaseFare      *Money         `json:"BaseFare,omitempty"`
	EquivFare     *Money         `json:"EquivFare,omitempty"`
	Taxes         *Taxes         `json:"Taxes,omitempty"`
	TotalFare     *Money         `json:"TotalFare,omitempty"`
	PenaltiesInfo *PenaltiesInfo `json:"PenaltiesInfo,omitempty"`
}

type FareBreakdown struct {
	BaggageText
	PassengerTypeQuantity PassengerTypeQuantity `json:"PassengerTypeQuantity"`
	FareBasisCodes        []string              `json:"FareBasisCodes,omitempty"`
	PassengerFare         *PassengerFare        `json:"PassengerFare,omitempty"`
}

// FareRuleText carries rule text that some fares embed directly.
type FareRuleText struct {
	Cancellation string `json:"Cancellation,omitempty"`
	DateChange   string `json:"DateChange,omitempty"`
	NoShow       string `json:"NoShow,omitempty"`
}

type PricingExtensions struct {
	ValidatingCarrier *ValidatingCarrier `json:"ValidatingCarrier,omitempty"`
	FareRules         *FareRuleText      `json:"FareRules,omitempty"`
}

// MarkupAudit records the markup applied on top of the GDS fare.
type MarkupAudit struct {
	Amount float64 `json:"Amount"`
	Type   string  `json:"Type"`
	RuleID string  `json:"RuleID"`
}

// PricingInfo is one pricing block of an itinerary.
type PricingInfo struct {
	BaggageText
	PricingSource      string                        `json:"PricingSource,omitempty"`
	ItinTotalFare      *ItinTotalFare                `json:"ItinTotalFare,omitempty"`
	PTCFareBreakdowns  OneOrMany[FareBreakdown]      `json:"PTC_FareBreakdowns,omitempty"`
	FareInfos          OneOrMany[FareInfo]           `json:"FareInfos,omitempty"`
	BaggageInformation OneOrMany[BaggageInformation] `json:"BaggageInformation,omitempty"`
	TPAExtensions      *PricingExtensions            `json:"TPA_Extensions,omitempty"`

	// canonical fields
	Markup           *MarkupAudit `json:"Markup,omitempty"`
	SeatsAvailable   *int         `json:"SeatsAvailable,omitempty"`
	BaggageAllowance *string      `json:"BaggageAllowance,omitempty"`
	CabinCode        *string      `json:"CabinCode,omitempty"`
	TotalTax         *Money       `json:"TotalTax,omitempty"`
}

type pricingInfoFields PricingInfo

func (p *PricingInfo) UnmarshalJSON(data []byte) error {
	return unmarshalLenient(data, (*pricingInfoFields)(p))
}

// TotalFare returns the itinerary-level total fare block, nil when absent.
func (p *PricingInfo) TotalFare() *Money {
	if p == nil || p.ItinTotalFare == nil {
		return nil
	}

	return p.ItinTotalFare.TotalFare
}
