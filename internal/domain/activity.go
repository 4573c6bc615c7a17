package domain

import "time"

type Activity struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"activity_name" yaml:"activity_name"`
	Description   string  `json:"description" yaml:"description"`
	Location      string  `json:"location" yaml:"location"`
	Price         float64 `json:"price" yaml:"price"`
	DurationHours float64 `json:"duration_hours" yaml:"duration_hours"`
	Category      string  `json:"category" yaml:"category"`
	Rating        float64 `json:"rating" yaml:"rating"` // 0-5
	ImageURL      string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// ActivityQuery is the activities contract: Price <= BudgetCeiling, drawn
// from categories matching or related to Interests.
type ActivityQuery struct {
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	Interests     []string
	BudgetCeiling float64
}
