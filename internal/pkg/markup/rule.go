// Package markup selects the business markup rule that applies to an
// itinerary and adds it on top of the GDS fare.
package markup

import (
	"context"
	"strings"
)

type Type string

const (
	TypePercentage Type = "percentage"
	TypeFlat       Type = "flat"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Rule is a markup rule as maintained by the admin workflow.
//
// Origin is stored with the rule but is not matched against itinerary data;
// only the airline set decides whether a rule applies.
type Rule struct {
	ID          string   `json:"id"`
	Airlines    []string `json:"airlines,omitempty"`
	Origin      string   `json:"origin,omitempty"`
	MarkupType  Type     `json:"markup_type"`
	MarkupValue float64  `json:"markup_value"`
	Priority    int      `json:"priority"`
	Status      Status   `json:"status"`
}

// Matches reports whether the rule is active and covers carrier. An empty
// airline set covers every carrier, including an unknown one.
func (r Rule) Matches(carrier string) bool {
	if r.Status != StatusActive {
		return false
	}

	if len(r.Airlines) == 0 {
		return true
	}

	if carrier == "" {
		return false
	}

	for _, airline := range r.Airlines {
		if strings.EqualFold(strings.TrimSpace(airline), carrier) {
			return true
		}
	}

	return false
}

// Store supplies the active markup rules in store order.
type Store interface {
	ActiveRules(ctx context.Context) ([]Rule, error)
}
