package app

import (
	"context"
	"sync"
	"time"

	"smart_travel/internal/domain"
)

// fakeSource serves canned candidates per destination and records queries.
type fakeSource struct {
	mu         sync.Mutex
	flights    map[string][]domain.Flight
	hotels     map[string][]domain.Hotel
	activities map[string][]domain.Activity
	hotelErr   error
	delay      map[string]time.Duration

	calls        []string
	hotelQueries []domain.HotelQuery
	actQueries   []domain.ActivityQuery
	fltQueries   []domain.FlightQuery
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		flights:    map[string][]domain.Flight{},
		hotels:     map[string][]domain.Hotel{},
		activities: map[string][]domain.Activity{},
		delay:      map[string]time.Duration{},
	}
}

func (f *fakeSource) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSource) SearchFlights(ctx context.Context, q domain.FlightQuery) ([]domain.Flight, error) {
	f.record("flights:" + q.Destination)
	f.mu.Lock()
	f.fltQueries = append(f.fltQueries, q)
	d := f.delay[q.Destination]
	out := append([]domain.Flight(nil), f.flights[q.Destination]...)
	f.mu.Unlock()
	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}

func (f *fakeSource) SearchHotels(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	f.record("hotels:" + q.Destination)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hotelQueries = append(f.hotelQueries, q)
	if f.hotelErr != nil {
		return nil, f.hotelErr
	}
	return append([]domain.Hotel(nil), f.hotels[q.Destination]...), nil
}

func (f *fakeSource) SearchActivities(ctx context.Context, q domain.ActivityQuery) ([]domain.Activity, error) {
	f.record("activities:" + q.Destination)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actQueries = append(f.actQueries, q)
	return append([]domain.Activity(nil), f.activities[q.Destination]...), nil
}

func (f *fakeSource) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

// daytime is a departure inside the convenient window.
func daytime(hour int) time.Time {
	return time.Date(2026, 6, 1, hour, 0, 0, 0, time.UTC)
}

func criteriaFor(dest string, budget float64, interests ...string) domain.SearchCriteria {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.SearchCriteria{
		Destination: dest,
		Origin:      "JFK",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 5),
		BudgetMax:   budget,
		Travelers:   1,
		Interests:   interests,
	}
}
