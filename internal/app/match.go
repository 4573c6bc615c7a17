package app

import (
	"math"
	"strings"

	"smart_travel/internal/domain"
)

// MatchScore rates an assembled package 0-100: budget fit of the cheapest
// flight+hotel, interest coverage by the activity shortlist, and the average
// hotel rating.
func MatchScore(flights []domain.Flight, hotels []domain.Hotel, activities []domain.Activity, c domain.SearchCriteria) float64 {
	score := baseScore

	if len(flights) > 0 && len(hotels) > 0 {
		totalMin := cheapestFlight(flights).Price + cheapestHotel(hotels).TotalPrice
		switch {
		case totalMin <= 0.8*c.BudgetMax:
			score += 25
		case totalMin <= c.BudgetMax:
			score += 15
		default:
			score -= 10
		}
	}

	if interests := c.InterestSet(); len(interests) > 0 && len(activities) > 0 {
		categories := make(map[string]struct{}, len(activities))
		for _, a := range activities {
			categories[strings.ToLower(a.Category)] = struct{}{}
		}
		hits := 0
		for _, in := range interests {
			if _, ok := categories[in]; ok {
				hits++
			}
		}
		score += 15 * float64(hits) / float64(len(interests))
	}

	if len(hotels) > 0 {
		var sum float64
		for _, h := range hotels {
			sum += h.Rating
		}
		score += 10 * (sum / float64(len(hotels)) / 5)
	}

	return math.Min(100, math.Max(0, score))
}

func cheapestFlight(fs []domain.Flight) domain.Flight {
	best := fs[0]
	for _, f := range fs[1:] {
		if f.Price < best.Price {
			best = f
		}
	}
	return best
}

func cheapestHotel(hs []domain.Hotel) domain.Hotel {
	best := hs[0]
	for _, h := range hs[1:] {
		if h.TotalPrice < best.TotalPrice {
			best = h
		}
	}
	return best
}
