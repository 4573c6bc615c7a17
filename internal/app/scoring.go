package app

import (
	"math"
	"sort"
	"strings"

	"smart_travel/internal/domain"
)

const baseScore = 50.0

// Scored pairs a candidate with its preference score. Scores are unbounded;
// only their relative order matters.
type Scored[T any] struct {
	Option T
	Score  float64
}

var preferredAmenities = map[string]struct{}{
	"Free WiFi": {},
	"Pool":      {},
	"Gym":       {},
}

// ScoreFlight favors cheap (relative to the flight ceiling), direct flights
// leaving between 08:00 and 18:59.
func ScoreFlight(f domain.Flight, ceiling float64) float64 {
	score := baseScore
	score += 30 * math.Max(0, 1-ratio(f.Price, ceiling))

	switch f.Stops {
	case 0:
		score += 20
	case 1:
		score += 10
	}

	if h := f.DepartureTime.Hour(); h >= 8 && h <= 18 {
		score += 10
	}
	return score
}

// ScoreHotel combines rating, value against the hotel ceiling, travel-style
// fit on the nightly rate, and the preferred amenities.
func ScoreHotel(h domain.Hotel, ceiling float64, style domain.TravelStyle) float64 {
	score := baseScore
	score += 25 * (h.Rating / 5)
	score += 25 * math.Max(0, 1-0.5*ratio(h.TotalPrice, ceiling))

	switch {
	case style == domain.StyleLuxury && h.PricePerNight > 300,
		style == domain.StyleBudget && h.PricePerNight < 120,
		style == domain.StyleMidRange && h.PricePerNight >= 100 && h.PricePerNight <= 250:
		score += 15
	}

	seen := make(map[string]struct{}, len(h.Amenities))
	for _, a := range h.Amenities {
		if _, ok := preferredAmenities[a]; !ok {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		score += 5
	}
	return score
}

// ScoreActivity expects interests already lower-cased (see
// SearchCriteria.InterestSet). An exact category hit is worth 30, a substring
// hit on category or name 15; only the first rule that matches counts.
func ScoreActivity(a domain.Activity, interests []string) float64 {
	score := baseScore
	category := strings.ToLower(a.Category)
	name := strings.ToLower(a.Name)

	switch {
	case containsTag(interests, category):
		score += 30
	case anyInterestIn(interests, category, name):
		score += 15
	}

	score += 20 * (a.Rating / 5)

	// hours of experience per $50 spent, five points per hour, capped
	if a.Price > 0 {
		score += math.Min(15, 5*a.DurationHours/(a.Price/50))
	} else {
		score += 15
	}
	return score
}

func ratio(price, ceiling float64) float64 {
	if ceiling <= 0 {
		return 1
	}
	return price / ceiling
}

func containsTag(tags []string, s string) bool {
	for _, t := range tags {
		if t == s {
			return true
		}
	}
	return false
}

func anyInterestIn(interests []string, fields ...string) bool {
	for _, in := range interests {
		for _, f := range fields {
			if strings.Contains(f, in) {
				return true
			}
		}
	}
	return false
}

func scoreAll[T any](opts []T, score func(T) float64) []Scored[T] {
	out := make([]Scored[T], len(opts))
	for i, o := range opts {
		out[i] = Scored[T]{Option: o, Score: score(o)}
	}
	return out
}

// topK returns the k best options, highest score first. Equal scores keep
// their input order.
func topK[T any](scored []Scored[T], k int) []T {
	sorted := append([]Scored[T](nil), scored...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	out := make([]T, len(sorted))
	for i, s := range sorted {
		out[i] = s.Option
	}
	return out
}
