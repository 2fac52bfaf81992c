package gds

import (
	"context"
	"net/http"
	"time"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/exception"
)

var ErrUnauthorized = exception.ApplicationError{
	StatusCode: http.StatusUnauthorized,
	Message:    "gds authentication failed",
}

var ErrUpstream = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "gds internal error or temporary unavailable",
}

// SegmentQuery is one leg of a multi-city request.
type SegmentQuery struct {
	Origin      string
	Destination string
	Date        time.Time
}

// SearchQuery is a flight availability request. When Segments is not empty
// it takes precedence over Origin, Destination and the dates.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Adults        int
	Children      int
	Infants       int
	Cabin         string
	Segments      []SegmentQuery
}

// Legs expands the query into its ordered origin-destination legs.
func (q SearchQuery) Legs() []SegmentQuery {
	if len(q.Segments) > 0 {
		return q.Segments
	}

	legs := []SegmentQuery{{Origin: q.Origin, Destination: q.Destination, Date: q.DepartureDate}}
	if q.ReturnDate != nil {
		legs = append(legs, SegmentQuery{Origin: q.Destination, Destination: q.Origin, Date: *q.ReturnDate})
	}

	return legs
}

// Client queries the GDS for priced itineraries.
type Client interface {
	Search(ctx context.Context, query SearchQuery) (*SearchResult, error)
}
