package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smart_travel/internal/domain"
)

func TestMatchScore_AllComponents(t *testing.T) {
	flights := []domain.Flight{{Price: 500}, {Price: 400}}
	hotels := []domain.Hotel{{TotalPrice: 600, Rating: 4}, {TotalPrice: 900, Rating: 5}}
	activities := []domain.Activity{{Category: "Culture"}, {Category: "adventure"}}
	c := criteriaFor("paris", 3000, "culture", "Food")

	// 50 + 25 (1000 <= 2400) + 7.5 (1 of 2 interests) + 9 (avg 4.5)
	assert.InDelta(t, 91.5, MatchScore(flights, hotels, activities, c), 1e-9)
}

func TestMatchScore_BudgetFit(t *testing.T) {
	c := criteriaFor("paris", 3000)
	hotels := func(total float64) []domain.Hotel { return []domain.Hotel{{TotalPrice: total}} }

	assert.InDelta(t, 75, MatchScore([]domain.Flight{{Price: 1200}}, hotels(1200), nil, c), 1e-9, "exactly 80%")
	assert.InDelta(t, 65, MatchScore([]domain.Flight{{Price: 1300}}, hotels(1200), nil, c), 1e-9, "within budget")
	assert.InDelta(t, 65, MatchScore([]domain.Flight{{Price: 1800}}, hotels(1200), nil, c), 1e-9, "exactly budget")
	assert.InDelta(t, 40, MatchScore([]domain.Flight{{Price: 2300}}, hotels(1200), nil, c), 1e-9, "over budget")
}

func TestMatchScore_InterestsNeedActivities(t *testing.T) {
	c := criteriaFor("paris", 3000, "culture")
	flights := []domain.Flight{{Price: 100}}
	hotels := []domain.Hotel{{TotalPrice: 100}}
	assert.InDelta(t, 75, MatchScore(flights, hotels, nil, c), 1e-9)
	assert.InDelta(t, 90, MatchScore(flights, hotels, []domain.Activity{{Category: "culture"}}, c), 1e-9)
}

func TestMatchScore_Clamped(t *testing.T) {
	c := criteriaFor("paris", 3000, "culture")
	flights := []domain.Flight{{Price: 100}}
	// out-of-range rating would push past 100
	hotels := []domain.Hotel{{TotalPrice: 100, Rating: 50}}
	got := MatchScore(flights, hotels, []domain.Activity{{Category: "culture"}}, c)
	assert.Equal(t, 100.0, got)

	for _, budget := range []float64{1, 10, 500, 3000} {
		s := MatchScore(flights, []domain.Hotel{{TotalPrice: 5000, Rating: 0}}, nil, criteriaFor("x", budget))
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}
