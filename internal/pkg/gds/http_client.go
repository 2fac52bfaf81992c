package gds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	searchPath       = "/v4/offers/shop"
	dateTimeLayout   = "2006-01-02T15:04:05"
	maxErrorBodySize = 1024
)

// Config for the GDS HTTP client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Limiter throttles outgoing GDS calls.
type Limiter interface {
	Allow(ctx context.Context) error
}

type HTTPClient struct {
	baseURL string
	token   string
	hc      *http.Client
	limiter Limiter
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// WithLimiter throttles every search call through l.
func WithLimiter(l Limiter) Option {
	return func(c *HTTPClient) { c.limiter = l }
}

func NewHTTPClient(cfg Config, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		hc:      &http.Client{Timeout: cfg.Timeout},
	}
	for _, o := range opts {
		o(c)
	}

	return c
}

// Search sends one low fare search request. No retry is attempted; timeouts
// come from the underlying http.Client.
func (c *HTTPClient) Search(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Allow(ctx); err != nil {
			return nil, fmt.Errorf("gds rate limit: %w", err)
		}
	}

	body, err := json.Marshal(buildSearchRequest(query))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call gds search API: %w", err)
	}
	defer resp.Body.Close()

	slog.DebugContext(ctx, "gds search API called",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("unexpected status %d: %s: %w", resp.StatusCode,
			strings.TrimSpace(string(msg)), ErrUpstream)
	}

	var response SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	itineraries := response.LowFareSearchRS.PricedItineraries.PricedItinerary
	result := &SearchResult{Itineraries: make([]*Itinerary, len(itineraries))}
	for i := range itineraries {
		result.Itineraries[i] = &itineraries[i]
	}

	return result, nil
}

type searchRequest struct {
	LowFareSearchRQ lowFareSearchRQ `json:"OTA_AirLowFareSearchRQ"`
}

type lowFareSearchRQ struct {
	OriginDestinationInformation []originDestinationInformation `json:"OriginDestinationInformation"`
	TravelPreferences            *travelPreferences             `json:"TravelPreferences,omitempty"`
	TravelerInfoSummary          travelerInfoSummary            `json:"TravelerInfoSummary"`
}

type originDestinationInformation struct {
	RPH                 string   `json:"RPH"`
	DepartureDateTime   string   `json:"DepartureDateTime"`
	OriginLocation      Location `json:"OriginLocation"`
	DestinationLocation Location `json:"DestinationLocation"`
}

type travelPreferences struct {
	CabinPref []cabinPref `json:"CabinPref"`
}

type cabinPref struct {
	Cabin       string `json:"Cabin"`
	PreferLevel string `json:"PreferLevel"`
}

type travelerInfoSummary struct {
	AirTravelerAvail []airTravelerAvail `json:"AirTravelerAvail"`
}

type airTravelerAvail struct {
	PassengerTypeQuantity []passengerQuantity `json:"PassengerTypeQuantity"`
}

type passengerQuantity struct {
	Code     string `json:"Code"`
	Quantity int    `json:"Quantity"`
}

func buildSearchRequest(query SearchQuery) searchRequest {
	legs := query.Legs()
	odi := make([]originDestinationInformation, len(legs))
	for i, leg := range legs {
		odi[i] = originDestinationInformation{
			RPH:                 strconv.Itoa(i + 1),
			DepartureDateTime:   leg.Date.Format(dateTimeLayout),
			OriginLocation:      Location{LocationCode: strings.ToUpper(leg.Origin)},
			DestinationLocation: Location{LocationCode: strings.ToUpper(leg.Destination)},
		}
	}

	adults := query.Adults
	if adults < 1 {
		adults = 1
	}

	passengers := []passengerQuantity{{Code: "ADT", Quantity: adults}}
	if query.Children > 0 {
		passengers = append(passengers, passengerQuantity{Code: "CNN", Quantity: query.Children})
	}
	if query.Infants > 0 {
		passengers = append(passengers, passengerQuantity{Code: "INF", Quantity: query.Infants})
	}

	rq := lowFareSearchRQ{
		OriginDestinationInformation: odi,
		TravelerInfoSummary: travelerInfoSummary{
			AirTravelerAvail: []airTravelerAvail{{PassengerTypeQuantity: passengers}},
		},
	}

	if query.Cabin != "" {
		rq.TravelPreferences = &travelPreferences{
			CabinPref: []cabinPref{{Cabin: CabinCode(query.Cabin), PreferLevel: "Preferred"}},
		}
	}

	return searchRequest{LowFareSearchRQ: rq}
}

// CabinCode maps a cabin class name to its one-letter GDS code. Unknown values
// are passed through upper-cased.
func CabinCode(cabin string) string {
	switch strings.ToLower(strings.ReplaceAll(cabin, " ", "")) {
	case "economy", "y":
		return "Y"
	case "premiumeconomy", "premium", "s":
		return "S"
	case "business", "c":
		return "C"
	case "first", "f":
		return "F"
	default:
		return strings.ToUpper(cabin)
	}
}
