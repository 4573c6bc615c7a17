package domain

import "time"

// Recommendation is one assembled package for a destination.
type Recommendation struct {
	Destination     string     `json:"destination" yaml:"destination"`
	Flights         []Flight   `json:"flights" yaml:"flights"`
	Hotels          []Hotel    `json:"hotels" yaml:"hotels"`
	Activities      []Activity `json:"activities" yaml:"activities"`
	EstimatedTotal  float64    `json:"estimated_total" yaml:"estimated_total"`
	BudgetRemaining float64    `json:"budget_remaining" yaml:"budget_remaining"` // may be negative
	MatchScore      float64    `json:"match_score" yaml:"match_score"`           // 0-100, one decimal
}

// RecommendationSet is the terminal output of the pipeline. ID is assigned
// by the layer that stores it; the pipeline leaves it empty.
type RecommendationSet struct {
	ID              string           `json:"id,omitempty" yaml:"id,omitempty"`
	Criteria        SearchCriteria   `json:"search_params" yaml:"search_params"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at" yaml:"generated_at"`
}

// Destination is a known place the suggestion heuristic can pick from.
type Destination struct {
	Name      string  `json:"name" yaml:"name"` // lower-case key
	Airport   string  `json:"airport" yaml:"airport"`
	Country   string  `json:"country" yaml:"country"`
	BasePrice float64 `json:"base_price" yaml:"base_price"` // reference one-way flight price
	ImageURL  string  `json:"image,omitempty" yaml:"image,omitempty"`
}

type Airport struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
	City string `json:"city" yaml:"city"`
}
