package inventory_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"smart_travel/internal/adapters/inventory"
	"smart_travel/internal/domain"
)

var day = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestClient_SearchFlights_RetriesThenSuccess(t *testing.T) {
	var hits int32
	var gotQuery, gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(500)
		default:
			gotQuery = r.URL.RawQuery
			gotKey = r.Header.Get("X-API-Key")
			_ = json.NewEncoder(w).Encode(map[string]any{"flights": []map[string]any{{
				"id": "f1", "airline": "JetBlue", "departure_airport": "jfk", "arrival_airport": "cdg",
				"departure_time": "2026-06-01T09:30:00Z", "arrival_time": "2026-06-01T17:00:00Z",
				"price": 640.5, "stops": 1,
			}}})
		}
	}))
	defer ts.Close()

	cl, err := inventory.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	flights, err := cl.SearchFlights(ctx, domain.FlightQuery{
		Origin: "jfk", Destination: "paris", DepartureDate: day, ReturnDate: day.AddDate(0, 0, 5), BudgetCeiling: 1050, Travelers: 2,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
	if len(flights) != 1 {
		t.Fatalf("want 1 flight, got %d", len(flights))
	}
	f := flights[0]
	if f.ArrivalAirport != "CDG" || f.DurationMinutes != 450 || f.Price != 640.5 {
		t.Fatalf("unexpected mapping: %+v", f)
	}
	want := "departure_date=2026-06-01&destination=paris&max_price=1050.00&origin=JFK&return_date=2026-06-06&travelers=2"
	if gotQuery != want {
		t.Fatalf("query\n got %s\nwant %s", gotQuery, want)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header: %q", gotKey)
	}
}

func TestClient_SearchHotels_NotFoundIsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, _ := inventory.New(ts.URL, "", 100)
	hotels, err := cl.SearchHotels(context.Background(), domain.HotelQuery{Destination: "atlantis", CheckIn: day, CheckOut: day.AddDate(0, 0, 2)})
	if err != nil {
		t.Fatalf("404 should mean no inventory, got %v", err)
	}
	if len(hotels) != 0 {
		t.Fatalf("expected no hotels, got %d", len(hotels))
	}
}

func TestClient_SearchHotels_FillsTotalFromNightly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("travel_style") != "budget" {
			t.Errorf("travel_style not forwarded: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"hotels":[{"id":"h1","hotel_name":"Comfort Inn Rome","rating":3.6,"price_per_night":80}]}`))
	}))
	defer ts.Close()

	cl, _ := inventory.New(ts.URL, "", 100)
	hotels, err := cl.SearchHotels(context.Background(), domain.HotelQuery{
		Destination: "rome", CheckIn: day, CheckOut: day.AddDate(0, 0, 3), TravelStyle: domain.StyleBudget, BudgetCeiling: 500,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(hotels) != 1 || hotels[0].TotalPrice != 240 || hotels[0].Name != "Comfort Inn Rome" {
		t.Fatalf("unexpected hotels: %+v", hotels)
	}
}

func TestClient_ExhaustedRetriesAreUnavailable(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cl, _ := inventory.New(ts.URL, "", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := cl.SearchActivities(ctx, domain.ActivityQuery{Destination: "bali", Interests: []string{"spa"}, BudgetCeiling: 300})
	if !errors.Is(err, domain.ErrCandidateSourceUnavailable) {
		t.Fatalf("want ErrCandidateSourceUnavailable, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 4 {
		t.Fatalf("expected 4 attempts, got %d", hits)
	}
}

func TestClient_UnauthorizedIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl, _ := inventory.New(ts.URL, "wrong", 100)
	_, err := cl.SearchFlights(context.Background(), domain.FlightQuery{Destination: "paris", DepartureDate: day})
	if !errors.Is(err, domain.ErrCandidateSourceUnavailable) {
		t.Fatalf("want ErrCandidateSourceUnavailable, got %v", err)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := inventory.New("", "key", 5); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
