// Package catalog holds the static reference data shared by the destination
// suggestion heuristic, the mock inventory and the public listing endpoints.
package catalog

import (
	"strings"

	"smart_travel/internal/domain"
)

// Order matters: suggestion ties keep this order.
var destinations = []domain.Destination{
	{Name: "paris", Airport: "CDG", Country: "France", BasePrice: 600, ImageURL: "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=600&q=80"},
	{Name: "london", Airport: "LHR", Country: "UK", BasePrice: 550, ImageURL: "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?w=600&q=80"},
	{Name: "tokyo", Airport: "NRT", Country: "Japan", BasePrice: 900, ImageURL: "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=600&q=80"},
	{Name: "new york", Airport: "JFK", Country: "USA", BasePrice: 300, ImageURL: "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?w=600&q=80"},
	{Name: "los angeles", Airport: "LAX", Country: "USA", BasePrice: 350, ImageURL: "https://images.unsplash.com/photo-1534190760961-74e8c1c5c3da?w=600&q=80"},
	{Name: "miami", Airport: "MIA", Country: "USA", BasePrice: 280, ImageURL: "https://images.unsplash.com/photo-1535498730771-e735b998cd64?w=600&q=80"},
	{Name: "rome", Airport: "FCO", Country: "Italy", BasePrice: 650, ImageURL: "https://images.unsplash.com/photo-1552832230-c0197dd311b5?w=600&q=80"},
	{Name: "barcelona", Airport: "BCN", Country: "Spain", BasePrice: 580, ImageURL: "https://images.unsplash.com/photo-1583422409516-2895a77efded?w=600&q=80"},
	{Name: "sydney", Airport: "SYD", Country: "Australia", BasePrice: 1200, ImageURL: "https://images.unsplash.com/photo-1506973035872-a4ec16b8e8d9?w=600&q=80"},
	{Name: "dubai", Airport: "DXB", Country: "UAE", BasePrice: 750, ImageURL: "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?w=600&q=80"},
	{Name: "bali", Airport: "DPS", Country: "Indonesia", BasePrice: 850, ImageURL: "https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=600&q=80"},
	{Name: "cancun", Airport: "CUN", Country: "Mexico", BasePrice: 400, ImageURL: "https://images.unsplash.com/photo-1510097467424-192d713fd8b2?w=600&q=80"},
	{Name: "hawaii", Airport: "HNL", Country: "USA", BasePrice: 500, ImageURL: "https://images.unsplash.com/photo-1507876466758-bc54f384809c?w=600&q=80"},
	{Name: "las vegas", Airport: "LAS", Country: "USA", BasePrice: 250, ImageURL: "https://images.unsplash.com/photo-1605833556294-ea5c7a74f57d?w=600&q=80"},
	{Name: "san francisco", Airport: "SFO", Country: "USA", BasePrice: 320, ImageURL: "https://images.unsplash.com/photo-1501594907352-04cda38ebc29?w=600&q=80"},
}

var airports = []domain.Airport{
	{Code: "JFK", Name: "John F. Kennedy International", City: "New York"},
	{Code: "LAX", Name: "Los Angeles International", City: "Los Angeles"},
	{Code: "ORD", Name: "O'Hare International", City: "Chicago"},
	{Code: "ATL", Name: "Hartsfield-Jackson Atlanta International", City: "Atlanta"},
	{Code: "DFW", Name: "Dallas/Fort Worth International", City: "Dallas"},
	{Code: "DEN", Name: "Denver International", City: "Denver"},
	{Code: "SFO", Name: "San Francisco International", City: "San Francisco"},
	{Code: "SEA", Name: "Seattle-Tacoma International", City: "Seattle"},
	{Code: "MIA", Name: "Miami International", City: "Miami"},
	{Code: "BOS", Name: "Boston Logan International", City: "Boston"},
	{Code: "EWR", Name: "Newark Liberty International", City: "Newark"},
	{Code: "IAH", Name: "George Bush Intercontinental", City: "Houston"},
	{Code: "MSP", Name: "Minneapolis-Saint Paul International", City: "Minneapolis"},
	{Code: "DTW", Name: "Detroit Metropolitan", City: "Detroit"},
	{Code: "PHL", Name: "Philadelphia International", City: "Philadelphia"},
}

// Destinations returns a copy of the known destinations in catalog order.
func Destinations() []domain.Destination {
	return append([]domain.Destination(nil), destinations...)
}

// Lookup finds a destination by case-insensitive name.
func Lookup(name string) (domain.Destination, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, d := range destinations {
		if d.Name == key {
			return d, true
		}
	}
	return domain.Destination{}, false
}

func Airports() []domain.Airport {
	return append([]domain.Airport(nil), airports...)
}
