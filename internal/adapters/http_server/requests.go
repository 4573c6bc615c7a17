package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"smart_travel/internal/domain"
)

const (
	defaultOrigin    = "JFK"
	defaultTravelers = 1
)

// searchRequest is the POST body for both search routes. Omitted origin,
// budget_max and travelers take the service defaults on anonymous searches.
type searchRequest struct {
	Destination string             `json:"destination"`
	Origin      string             `json:"origin"`
	StartDate   flexDate           `json:"start_date"`
	EndDate     flexDate           `json:"end_date"`
	BudgetMin   float64            `json:"budget_min"`
	BudgetMax   *float64           `json:"budget_max"`
	Travelers   *int               `json:"travelers"`
	Interests   []string           `json:"interests"`
	TravelStyle domain.TravelStyle `json:"travel_style"`
}

func (r searchRequest) base() domain.SearchCriteria {
	c := domain.SearchCriteria{
		Destination: r.Destination,
		Origin:      r.Origin,
		StartDate:   r.StartDate.Time,
		EndDate:     r.EndDate.Time,
		BudgetMin:   r.BudgetMin,
		Interests:   r.Interests,
		TravelStyle: r.TravelStyle,
		Travelers:   defaultTravelers,
	}
	if c.Origin == "" {
		c.Origin = defaultOrigin
	}
	if r.Travelers != nil {
		c.Travelers = *r.Travelers
	}
	if r.BudgetMax != nil {
		c.BudgetMax = *r.BudgetMax
	}
	return c
}

func (r searchRequest) criteria() domain.SearchCriteria {
	c := r.base()
	if r.BudgetMax == nil {
		c.BudgetMax = domain.DefaultBudgetMax
	}
	return c
}

// criteriaForUser leaves an omitted budget at zero so stored preferences can
// fill it.
func (r searchRequest) criteriaForUser() domain.SearchCriteria {
	return r.base()
}

// flexDate accepts "2006-01-02" or RFC 3339.
type flexDate struct{ time.Time }

func (d *flexDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	d.Time = t
	return nil
}
