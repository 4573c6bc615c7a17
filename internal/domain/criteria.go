package domain

import (
	"strings"
	"time"
)

// DefaultBudgetMax applies when neither the request nor stored preferences
// name a budget.
const DefaultBudgetMax = 10000.0

type TravelStyle string

const (
	StyleLuxury   TravelStyle = "luxury"
	StyleMidRange TravelStyle = "mid-range"
	StyleBudget   TravelStyle = "budget"
)

// SearchCriteria is the caller-owned input to the recommendation pipeline.
// It is treated as immutable: helpers return copies.
type SearchCriteria struct {
	Destination string      `json:"destination,omitempty" yaml:"destination,omitempty"`
	Origin      string      `json:"origin" yaml:"origin" validate:"required"`
	StartDate   time.Time   `json:"start_date" yaml:"start_date" validate:"required"`
	EndDate     time.Time   `json:"end_date" yaml:"end_date" validate:"required,gtfield=StartDate"`
	BudgetMin   float64     `json:"budget_min" yaml:"budget_min" validate:"gte=0"`
	BudgetMax   float64     `json:"budget_max" yaml:"budget_max" validate:"gt=0,gtefield=BudgetMin"`
	Travelers   int         `json:"travelers" yaml:"travelers" validate:"min=1"`
	Interests   []string    `json:"interests,omitempty" yaml:"interests,omitempty"`
	TravelStyle TravelStyle `json:"travel_style,omitempty" yaml:"travel_style,omitempty" validate:"omitempty,oneof=luxury mid-range budget"`
}

// Nights is the whole number of days between start and end, never below 1.
func (c SearchCriteria) Nights() int {
	return NightsBetween(c.StartDate, c.EndDate)
}

// NightsBetween floors the span to whole days and clamps it to at least one.
func NightsBetween(start, end time.Time) int {
	n := int(end.Sub(start).Hours() / 24)
	if end.Before(start) {
		n = 0
	}
	if n < 1 {
		return 1
	}
	return n
}

// InterestSet returns the lower-cased interests in first-seen order, without
// blanks or duplicates.
func (c SearchCriteria) InterestSet() []string {
	return NormalizeTags(c.Interests)
}

func NormalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// PreferenceOverlay holds a traveler's stored preferences. Applied to a
// SearchCriteria it only fills fields the caller left unset.
type PreferenceOverlay struct {
	BudgetMin   *float64    `json:"budget_min,omitempty" yaml:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax   *float64    `json:"budget_max,omitempty" yaml:"budget_max,omitempty" validate:"omitempty,gt=0"`
	Activities  []string    `json:"activities,omitempty" yaml:"activities,omitempty"`
	TravelStyle TravelStyle `json:"travel_style,omitempty" yaml:"travel_style,omitempty" validate:"omitempty,oneof=luxury mid-range budget"`
}

// WithOverlay merges p into a copy of c. Explicit criteria values always win.
func (c SearchCriteria) WithOverlay(p *PreferenceOverlay) SearchCriteria {
	out := c
	out.Interests = append([]string(nil), c.Interests...)
	if p == nil {
		return out
	}
	if len(out.Interests) == 0 && len(p.Activities) > 0 {
		out.Interests = append([]string(nil), p.Activities...)
	}
	if out.TravelStyle == "" && p.TravelStyle != "" {
		out.TravelStyle = p.TravelStyle
	}
	if out.BudgetMax == 0 && p.BudgetMax != nil {
		out.BudgetMax = *p.BudgetMax
		if out.BudgetMin == 0 && p.BudgetMin != nil {
			out.BudgetMin = *p.BudgetMin
		}
	}
	return out
}
