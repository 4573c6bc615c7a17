package app

const (
	flightShare = 0.35
	hotelShare  = 0.45
	// activities take the remaining 20%
)

// BudgetAllocation holds the per-category price ceilings used to filter
// candidates. They are gates, not caps on the trip cost.
type BudgetAllocation struct {
	Flight   float64
	Hotel    float64
	Activity float64
}

// AllocateBudget splits total into flight/hotel/activity ceilings (35/45/20).
// A non-positive total yields zero ceilings.
func AllocateBudget(total float64) BudgetAllocation {
	if total <= 0 {
		return BudgetAllocation{}
	}
	f := total * flightShare
	h := total * hotelShare
	return BudgetAllocation{Flight: f, Hotel: h, Activity: total - f - h}
}

func (b BudgetAllocation) Total() float64 { return b.Flight + b.Hotel + b.Activity }
