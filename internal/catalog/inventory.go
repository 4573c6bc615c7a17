package catalog

import "smart_travel/internal/domain"

type Airline struct {
	Name string
	Code string
}

type HotelChain struct {
	Name      string
	BasePrice float64 // nightly
	Rating    float64
}

type ActivityTemplate struct {
	Name          string
	BasePrice     float64
	DurationHours float64
}

var Airlines = []Airline{
	{Name: "Delta Airlines", Code: "DL"},
	{Name: "United Airlines", Code: "UA"},
	{Name: "American Airlines", Code: "AA"},
	{Name: "JetBlue", Code: "B6"},
	{Name: "Southwest", Code: "WN"},
	{Name: "Alaska Airlines", Code: "AS"},
}

// Hotel tiers share names with the travel styles.
var HotelChains = map[domain.TravelStyle][]HotelChain{
	domain.StyleLuxury: {
		{Name: "The Ritz-Carlton", BasePrice: 450, Rating: 4.9},
		{Name: "Four Seasons", BasePrice: 500, Rating: 4.8},
		{Name: "Waldorf Astoria", BasePrice: 420, Rating: 4.7},
		{Name: "St. Regis", BasePrice: 480, Rating: 4.8},
	},
	domain.StyleMidRange: {
		{Name: "Marriott", BasePrice: 180, Rating: 4.3},
		{Name: "Hilton", BasePrice: 170, Rating: 4.2},
		{Name: "Hyatt", BasePrice: 190, Rating: 4.4},
		{Name: "Sheraton", BasePrice: 160, Rating: 4.1},
	},
	domain.StyleBudget: {
		{Name: "Holiday Inn", BasePrice: 100, Rating: 3.8},
		{Name: "Best Western", BasePrice: 90, Rating: 3.7},
		{Name: "La Quinta", BasePrice: 85, Rating: 3.6},
		{Name: "Comfort Inn", BasePrice: 80, Rating: 3.5},
	},
}

// HotelTiers lists which tiers a travel style searches, in generation order.
func HotelTiers(style domain.TravelStyle) []domain.TravelStyle {
	switch style {
	case domain.StyleLuxury:
		return []domain.TravelStyle{domain.StyleLuxury, domain.StyleMidRange}
	case domain.StyleBudget:
		return []domain.TravelStyle{domain.StyleBudget, domain.StyleMidRange}
	default:
		return []domain.TravelStyle{domain.StyleLuxury, domain.StyleMidRange, domain.StyleBudget}
	}
}

var HotelAmenities = []string{
	"Free WiFi", "Pool", "Gym", "Spa", "Restaurant",
	"Room Service", "Airport Shuttle", "Parking", "Bar",
	"Business Center", "Concierge", "Pet Friendly",
}

var RoomTypes = []string{"Standard Room", "Deluxe Room", "Suite", "King Room", "Double Room"}

var HotelLocations = []string{"Downtown", "City Center", "Airport", "Beach", "Old Town", ""}

// ActivityCategories is the fixed generation order of categories.
var ActivityCategories = []string{"adventure", "culture", "relaxation", "food", "nightlife"}

// DefaultActivityCategories is used when no interest maps to a known category.
var DefaultActivityCategories = []string{"culture", "food", "relaxation"}

var Activities = map[string][]ActivityTemplate{
	"adventure": {
		{Name: "Hiking Tour", BasePrice: 75, DurationHours: 4},
		{Name: "Kayaking Adventure", BasePrice: 90, DurationHours: 3},
		{Name: "Zip Line Experience", BasePrice: 120, DurationHours: 2},
		{Name: "Scuba Diving", BasePrice: 150, DurationHours: 4},
		{Name: "Paragliding", BasePrice: 180, DurationHours: 2},
	},
	"culture": {
		{Name: "Museum Tour", BasePrice: 40, DurationHours: 3},
		{Name: "Historical Walking Tour", BasePrice: 35, DurationHours: 2.5},
		{Name: "Art Gallery Visit", BasePrice: 25, DurationHours: 2},
		{Name: "Local Cooking Class", BasePrice: 85, DurationHours: 3},
		{Name: "Traditional Dance Show", BasePrice: 60, DurationHours: 2},
	},
	"relaxation": {
		{Name: "Spa Day Package", BasePrice: 150, DurationHours: 4},
		{Name: "Beach Club Access", BasePrice: 80, DurationHours: 6},
		{Name: "Yoga Retreat", BasePrice: 65, DurationHours: 2},
		{Name: "Sunset Cruise", BasePrice: 95, DurationHours: 3},
		{Name: "Wine Tasting Tour", BasePrice: 110, DurationHours: 3},
	},
	"food": {
		{Name: "Food Walking Tour", BasePrice: 70, DurationHours: 3},
		{Name: "Fine Dining Experience", BasePrice: 200, DurationHours: 2.5},
		{Name: "Street Food Adventure", BasePrice: 45, DurationHours: 2},
		{Name: "Vineyard Tour & Tasting", BasePrice: 130, DurationHours: 4},
		{Name: "Local Market Tour", BasePrice: 55, DurationHours: 2},
	},
	"nightlife": {
		{Name: "Pub Crawl", BasePrice: 50, DurationHours: 4},
		{Name: "Rooftop Bar Experience", BasePrice: 80, DurationHours: 3},
		{Name: "Jazz Club Night", BasePrice: 65, DurationHours: 3},
		{Name: "Casino Night", BasePrice: 100, DurationHours: 4},
	},
}

// related maps interest tags onto the category they pull in.
var related = map[string]string{
	"adventure":     "adventure",
	"food":          "food",
	"culinary":      "food",
	"relaxation":    "relaxation",
	"spa":           "relaxation",
	"culture":       "culture",
	"history":       "culture",
	"nightlife":     "nightlife",
	"entertainment": "nightlife",
}

// CategoriesFor expands lower-cased interests into known activity categories,
// in ActivityCategories order. Falls back to DefaultActivityCategories.
func CategoriesFor(interests []string) []string {
	want := map[string]bool{}
	for _, in := range interests {
		if c, ok := related[in]; ok {
			want[c] = true
		}
		if _, ok := Activities[in]; ok {
			want[in] = true
		}
	}
	var out []string
	for _, c := range ActivityCategories {
		if want[c] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultActivityCategories...)
	}
	return out
}
