package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/exception"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
)

const DateLayout = "2006-01-02"

const (
	TripOneWay    = "oneway"
	TripReturn    = "return"
	TripMultiCity = "multicity"
)

type SearchCriteria struct {
	TripType       string            `json:"trip_type" validate:"omitempty,oneof=oneway return multicity"`
	Origin         string            `json:"origin" validate:"omitempty,iata"`
	Destination    string            `json:"destination" validate:"omitempty,iata"`
	DepartureDate  string            `json:"departure_date" validate:"omitempty,datetime=2006-01-02"`
	ReturnDate     string            `json:"return_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Segments       []SegmentCriteria `json:"segments,omitempty" validate:"dive"`
	Travellers     Travellers        `json:"travellers"`
	SortOption     string            `json:"sort_option,omitempty"`
	FilterStops    string            `json:"filter_stops,omitempty"`
	FilterAirlines map[string]bool   `json:"filter_airlines,omitempty"`
}

type SegmentCriteria struct {
	Origin      string `json:"origin" validate:"required,iata"`
	Destination string `json:"destination" validate:"required,iata"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

type Travellers struct {
	Adults     int    `json:"adults" validate:"min=1,max=9"`
	Children   int    `json:"children" validate:"min=0,max=8"`
	Infants    int    `json:"infants" validate:"min=0"`
	CabinClass string `json:"cabin_class,omitempty"`
}

func (s *SearchCriteria) Bind(r *http.Request) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SearchCriteria) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.BadRequest(err.Error())
	}

	if s.Travellers.Infants > s.Travellers.Adults {
		return exception.BadRequest("infants must not exceed adults")
	}

	if s.TripType == TripMultiCity {
		if len(s.Segments) == 0 {
			return exception.BadRequest("segments is required for multicity trip")
		}
		return nil
	}

	switch {
	case s.Origin == "":
		return exception.BadRequest("origin is a required field")
	case s.Destination == "":
		return exception.BadRequest("destination is a required field")
	case s.DepartureDate == "":
		return exception.BadRequest("departure_date is a required field")
	}

	if s.TripType == TripReturn {
		if s.ReturnDate == "" {
			return exception.BadRequest("return_date is required for return trip")
		}
		if s.ReturnDate < s.DepartureDate {
			return exception.BadRequest("return_date must not be before departure_date")
		}
	}

	return nil
}

// ToQuery converts validated criteria into a GDS availability query.
func (s *SearchCriteria) ToQuery() (gds.SearchQuery, error) {
	query := gds.SearchQuery{
		Origin:      s.Origin,
		Destination: s.Destination,
		Adults:      s.Travellers.Adults,
		Children:    s.Travellers.Children,
		Infants:     s.Travellers.Infants,
		Cabin:       s.Travellers.CabinClass,
	}

	if s.TripType == TripMultiCity {
		query.Segments = make([]gds.SegmentQuery, len(s.Segments))
		for i, seg := range s.Segments {
			date, err := time.Parse(DateLayout, seg.Date)
			if err != nil {
				return gds.SearchQuery{}, exception.BadRequest(fmt.Sprintf("invalid segment date %q", seg.Date))
			}
			query.Segments[i] = gds.SegmentQuery{Origin: seg.Origin, Destination: seg.Destination, Date: date}
		}
		return query, nil
	}

	departure, err := time.Parse(DateLayout, s.DepartureDate)
	if err != nil {
		return gds.SearchQuery{}, exception.BadRequest(fmt.Sprintf("invalid departure_date %q", s.DepartureDate))
	}
	query.DepartureDate = departure

	if s.TripType == TripReturn && s.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, s.ReturnDate)
		if err != nil {
			return gds.SearchQuery{}, exception.BadRequest(fmt.Sprintf("invalid return_date %q", s.ReturnDate))
		}
		query.ReturnDate = &ret
	}

	return query, nil
}

type SearchMetadata struct {
	TotalResults  int   `json:"total_results"`
	SearchTimeMs  int64 `json:"search_time_ms"`
	MarkupApplied int   `json:"markup_applied"`
}

// SearchFlightResponse is the response struct for the search flight endpoint.
// Success is false when the GDS or the rule store failed; Message then
// carries the cause.
type SearchFlightResponse struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message,omitempty"`
	Metadata    *SearchMetadata  `json:"metadata,omitempty"`
	Itineraries []*gds.Itinerary `json:"itineraries"`
}
