package domain

import "time"

type Hotel struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"hotel_name" yaml:"hotel_name"`
	Address       string   `json:"address" yaml:"address"`
	Rating        float64  `json:"rating" yaml:"rating"` // 0-5
	PricePerNight float64  `json:"price_per_night" yaml:"price_per_night"`
	TotalPrice    float64  `json:"total_price" yaml:"total_price"` // nightly x nights
	Amenities     []string `json:"amenities" yaml:"amenities"`
	RoomType      string   `json:"room_type" yaml:"room_type"`
	ImageURL      string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// HotelQuery is the hotels contract: TotalPrice <= BudgetCeiling for every
// result, tiers narrowed by TravelStyle.
type HotelQuery struct {
	Destination   string
	CheckIn       time.Time
	CheckOut      time.Time
	BudgetCeiling float64
	TravelStyle   TravelStyle
	Guests        int
}
