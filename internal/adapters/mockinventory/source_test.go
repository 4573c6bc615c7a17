package mockinventory_test

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"smart_travel/internal/adapters/mockinventory"
	"smart_travel/internal/catalog"
	"smart_travel/internal/domain"
)

var (
	checkIn  = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	checkOut = checkIn.AddDate(0, 0, 4)
)

func flightQuery(dest string, ceiling float64) domain.FlightQuery {
	return domain.FlightQuery{Origin: "jfk", Destination: dest, DepartureDate: checkIn, ReturnDate: checkOut, BudgetCeiling: ceiling, Travelers: 2}
}

func TestFlights_DeterministicPerSeed(t *testing.T) {
	ctx := context.Background()
	a, _ := mockinventory.New(42).SearchFlights(ctx, flightQuery("paris", 1e6))
	b, _ := mockinventory.New(42).SearchFlights(ctx, flightQuery("paris", 1e6))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed gave different flights")
	}
	c, _ := mockinventory.New(43).SearchFlights(ctx, flightQuery("paris", 1e6))
	if reflect.DeepEqual(a, c) {
		t.Fatalf("different seeds gave identical flights")
	}
}

func TestFlights_ShapeAndOrdering(t *testing.T) {
	flights, err := mockinventory.New(1).SearchFlights(context.Background(), flightQuery("Paris", 1e6))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(flights) < 3 || len(flights) > 5 {
		t.Fatalf("want 3-5 flights, got %d", len(flights))
	}
	for i, f := range flights {
		if f.ArrivalAirport != "CDG" || f.DepartureAirport != "JFK" {
			t.Fatalf("airports: %+v", f)
		}
		// 600 base x 2 travelers x [0.8, 1.4]
		if f.Price < 960 || f.Price > 1680 {
			t.Fatalf("price out of range: %v", f.Price)
		}
		if h := f.DepartureTime.Hour(); h < 6 || h > 22 {
			t.Fatalf("departure hour %d", h)
		}
		if f.Stops < 0 || f.Stops > 2 || len(f.ID) != 8 {
			t.Fatalf("bad flight: %+v", f)
		}
		if !f.ArrivalTime.Equal(f.DepartureTime.Add(time.Duration(f.DurationMinutes) * time.Minute)) {
			t.Fatalf("arrival does not match duration: %+v", f)
		}
		if i > 0 && flights[i-1].Price > f.Price {
			t.Fatalf("flights not sorted by price")
		}
	}
}

func TestFlights_CeilingAndUnknownDestination(t *testing.T) {
	src := mockinventory.New(7)
	none, err := src.SearchFlights(context.Background(), flightQuery("paris", 100))
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("want empty non-nil result, got %v %v", none, err)
	}

	flights, _ := src.SearchFlights(context.Background(), flightQuery("reykjavik", 1e6))
	for _, f := range flights {
		if f.ArrivalAirport != "REY" {
			t.Fatalf("unknown destination airport: %q", f.ArrivalAirport)
		}
	}
}

func TestHotels_TiersFollowStyle(t *testing.T) {
	budgetChains := map[string]bool{}
	for _, c := range catalog.HotelChains[domain.StyleBudget] {
		budgetChains[c.Name] = true
	}
	hotels, err := mockinventory.New(1).SearchHotels(context.Background(), domain.HotelQuery{
		Destination: "rome", CheckIn: checkIn, CheckOut: checkOut, BudgetCeiling: 1e6, TravelStyle: domain.StyleLuxury, Guests: 1,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hotels) != 8 {
		t.Fatalf("luxury searches luxury+mid-range chains, got %d hotels", len(hotels))
	}
	for i, h := range hotels {
		for name := range budgetChains {
			if strings.HasPrefix(h.Name, name) {
				t.Fatalf("budget chain in luxury search: %s", h.Name)
			}
		}
		if !strings.Contains(h.Name, "Rome") {
			t.Fatalf("name not localized: %s", h.Name)
		}
		if want := h.PricePerNight * 4; h.TotalPrice < want-0.01 || h.TotalPrice > want+0.01 {
			t.Fatalf("total %v for nightly %v over 4 nights", h.TotalPrice, h.PricePerNight)
		}
		if n := len(h.Amenities); n < 4 || n > 8 {
			t.Fatalf("amenities: %v", h.Amenities)
		}
		seen := map[string]bool{}
		for _, a := range h.Amenities {
			if seen[a] {
				t.Fatalf("duplicate amenity %q", a)
			}
			seen[a] = true
		}
		if i > 0 && hotels[i-1].Rating < h.Rating {
			t.Fatalf("hotels not sorted by rating")
		}
	}
}

func TestHotels_CeilingDropsExpensive(t *testing.T) {
	hotels, _ := mockinventory.New(1).SearchHotels(context.Background(), domain.HotelQuery{
		Destination: "rome", CheckIn: checkIn, CheckOut: checkOut, BudgetCeiling: 600,
	})
	for _, h := range hotels {
		if h.TotalPrice > 600 {
			t.Fatalf("hotel over ceiling: %+v", h)
		}
	}
}

func TestActivities_CategoryExpansion(t *testing.T) {
	src := mockinventory.New(1)
	acts, err := src.SearchActivities(context.Background(), domain.ActivityQuery{
		Destination: "tokyo", StartDate: checkIn, EndDate: checkOut, Interests: []string{"Culinary"}, BudgetCeiling: 1e6,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(acts) != len(catalog.Activities["food"]) {
		t.Fatalf("culinary should pull the food templates, got %d", len(acts))
	}
	for _, a := range acts {
		if a.Category != "food" || !strings.HasSuffix(a.Name, " in Tokyo") {
			t.Fatalf("unexpected activity: %+v", a)
		}
		if a.Rating < 4 || a.Rating > 5 {
			t.Fatalf("rating out of range: %v", a.Rating)
		}
	}

	defaults, _ := src.SearchActivities(context.Background(), domain.ActivityQuery{
		Destination: "tokyo", StartDate: checkIn, EndDate: checkOut, BudgetCeiling: 1e6,
	})
	cats := map[string]bool{}
	for _, a := range defaults {
		cats[a.Category] = true
	}
	if !reflect.DeepEqual(cats, map[string]bool{"culture": true, "food": true, "relaxation": true}) {
		t.Fatalf("default categories: %v", cats)
	}
}

func TestActivities_CeilingAndCancellation(t *testing.T) {
	acts, _ := mockinventory.New(1).SearchActivities(context.Background(), domain.ActivityQuery{
		Destination: "bali", Interests: []string{"adventure"}, BudgetCeiling: 100,
	})
	for _, a := range acts {
		if a.Price > 100 {
			t.Fatalf("activity over ceiling: %+v", a)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := mockinventory.New(1).SearchActivities(ctx, domain.ActivityQuery{Destination: "bali"}); err == nil {
		t.Fatalf("expected context error")
	}
}
