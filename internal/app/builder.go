package app

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"smart_travel/internal/domain"
)

const (
	maxFlights        = 3
	maxHotels         = 3
	maxActivities     = 5
	activitiesInTotal = 3
)

// PackageBuilder assembles the package for one destination. It holds no
// mutable state and may be shared across goroutines.
type PackageBuilder struct {
	src domain.CandidateSource
}

func NewPackageBuilder(src domain.CandidateSource) *PackageBuilder {
	return &PackageBuilder{src: src}
}

// Build returns ok=false when the destination has no flight or no hotel
// within the allocated ceilings. Candidate source errors are returned as is.
func (b *PackageBuilder) Build(ctx context.Context, destination string, c domain.SearchCriteria) (domain.Recommendation, bool, error) {
	alloc := AllocateBudget(c.BudgetMax)

	flights, err := b.src.SearchFlights(ctx, domain.FlightQuery{
		Origin:        c.Origin,
		Destination:   destination,
		DepartureDate: c.StartDate,
		ReturnDate:    c.EndDate,
		BudgetCeiling: alloc.Flight,
		Travelers:     c.Travelers,
	})
	if err != nil {
		return domain.Recommendation{}, false, fmt.Errorf("search flights %q: %w", destination, err)
	}
	flights = withinCeiling(flights, alloc.Flight, func(f domain.Flight) float64 { return f.Price })
	if len(flights) == 0 {
		return domain.Recommendation{}, false, nil
	}

	hotels, err := b.src.SearchHotels(ctx, domain.HotelQuery{
		Destination:   destination,
		CheckIn:       c.StartDate,
		CheckOut:      c.EndDate,
		BudgetCeiling: alloc.Hotel,
		TravelStyle:   c.TravelStyle,
		Guests:        c.Travelers,
	})
	if err != nil {
		return domain.Recommendation{}, false, fmt.Errorf("search hotels %q: %w", destination, err)
	}
	hotels = withinCeiling(hotels, alloc.Hotel, func(h domain.Hotel) float64 { return h.TotalPrice })
	if len(hotels) == 0 {
		return domain.Recommendation{}, false, nil
	}

	interests := c.InterestSet()
	activities, err := b.src.SearchActivities(ctx, domain.ActivityQuery{
		Destination:   destination,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Interests:     interests,
		BudgetCeiling: alloc.Activity,
	})
	if err != nil {
		return domain.Recommendation{}, false, fmt.Errorf("search activities %q: %w", destination, err)
	}
	activities = withinCeiling(activities, alloc.Activity, func(a domain.Activity) float64 { return a.Price })

	bestFlights := topK(scoreAll(flights, func(f domain.Flight) float64 {
		return ScoreFlight(f, alloc.Flight)
	}), maxFlights)
	bestHotels := topK(scoreAll(hotels, func(h domain.Hotel) float64 {
		return ScoreHotel(h, alloc.Hotel, c.TravelStyle)
	}), maxHotels)
	bestActivities := topK(scoreAll(activities, func(a domain.Activity) float64 {
		return ScoreActivity(a, interests)
	}), maxActivities)

	total := cheapestFlight(bestFlights).Price + cheapestHotel(bestHotels).TotalPrice
	for i := 0; i < len(bestActivities) && i < activitiesInTotal; i++ {
		total += bestActivities[i].Price
	}

	return domain.Recommendation{
		Destination:     displayName(destination),
		Flights:         bestFlights,
		Hotels:          bestHotels,
		Activities:      bestActivities,
		EstimatedTotal:  round(total, 2),
		BudgetRemaining: round(c.BudgetMax-total, 2),
		MatchScore:      round(MatchScore(bestFlights, bestHotels, bestActivities, c), 1),
	}, true, nil
}

// withinCeiling drops anything priced over ceiling. Sources already promise
// this; a misbehaving one must not leak candidates into scoring.
func withinCeiling[T any](in []T, ceiling float64, price func(T) float64) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if price(v) <= ceiling {
			out = append(out, v)
		}
	}
	return out
}

// displayName title-cases a destination key ("new york" -> "New York").
// A Caser is stateful, so one is made per call.
func displayName(dest string) string {
	return cases.Title(language.Und).String(dest)
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
