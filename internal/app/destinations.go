package app

import (
	"math"
	"sort"
	"strings"

	"smart_travel/internal/domain"
)

const (
	suggestionLimit      = 5
	evaluatedSuggestions = 3
)

// SelectDestinations returns the ordered destinations to evaluate: the
// caller's explicit choice, or the top suggestions for the budget.
func SelectDestinations(c domain.SearchCriteria, known []domain.Destination) []string {
	if d := strings.TrimSpace(c.Destination); d != "" {
		return []string{strings.ToLower(d)}
	}
	s := SuggestDestinations(c.BudgetMax, known)
	if len(s) > evaluatedSuggestions {
		s = s[:evaluatedSuggestions]
	}
	return s
}

// SuggestDestinations ranks known destinations whose round trip (2x base
// price) fits the budget by how close the base price is to a quarter of it.
func SuggestDestinations(budget float64, known []domain.Destination) []string {
	type suggestion struct {
		name  string
		score float64
	}
	var ss []suggestion
	for _, d := range known {
		if d.BasePrice*2 <= budget {
			ss = append(ss, suggestion{name: d.Name, score: 100 - math.Abs(d.BasePrice-budget/4)})
		}
	}
	sort.SliceStable(ss, func(i, j int) bool { return ss[i].score > ss[j].score })

	out := make([]string, 0, suggestionLimit)
	for i := 0; i < len(ss) && i < suggestionLimit; i++ {
		out = append(out, ss[i].name)
	}
	return out
}
