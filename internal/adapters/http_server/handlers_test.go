package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	server "smart_travel/internal/adapters/http_server"
	"smart_travel/internal/app"
	"smart_travel/internal/catalog"
	"smart_travel/internal/domain"
)

// ---- fakes ----

type memRepo struct {
	mu    sync.Mutex
	sets  map[string]domain.RecommendationSet
	prefs map[int64]domain.PreferenceOverlay
}

func newMemRepo() *memRepo {
	return &memRepo{sets: map[string]domain.RecommendationSet{}, prefs: map[int64]domain.PreferenceOverlay{}}
}

func (m *memRepo) SaveRecommendationSet(_ context.Context, _ *int64, s domain.RecommendationSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[s.ID] = s
	return nil
}

func (m *memRepo) UpsertPreferences(_ context.Context, id int64, p domain.PreferenceOverlay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[id] = p
	return nil
}

func (m *memRepo) GetRecommendationSet(_ context.Context, id string) (domain.RecommendationSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sets[id]
	if !ok {
		return domain.RecommendationSet{}, domain.ErrNotFound
	}
	return s, nil
}

func (m *memRepo) GetPreferences(_ context.Context, id int64) (domain.PreferenceOverlay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prefs[id]
	if !ok {
		return domain.PreferenceOverlay{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *memRepo) ListRecommendationSets(context.Context, int64, int) ([]domain.RecommendationSet, error) {
	return []domain.RecommendationSet{}, nil
}

// oneEach returns a single affordable candidate of each kind, or err.
type oneEach struct{ err error }

func (o oneEach) SearchFlights(_ context.Context, q domain.FlightQuery) ([]domain.Flight, error) {
	if o.err != nil {
		return nil, o.err
	}
	return []domain.Flight{{ID: "f1", Price: 300, DepartureTime: q.DepartureDate.Add(10 * time.Hour)}}, nil
}

func (o oneEach) SearchHotels(_ context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	return []domain.Hotel{{ID: "h1", TotalPrice: 500, PricePerNight: 100, Rating: 4}}, nil
}

func (o oneEach) SearchActivities(_ context.Context, q domain.ActivityQuery) ([]domain.Activity, error) {
	return []domain.Activity{{ID: "a1", Category: "culture", Price: 40, Rating: 4.5, DurationHours: 2}}, nil
}

func newTestServer(t *testing.T, src domain.CandidateSource, opts server.Options) (*httptest.Server, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	engine := app.NewRecommender(src, catalog.Destinations())
	svc := app.NewSearchService(engine, repo, nil, time.Minute, 5*time.Second)
	s := server.New(opts)
	s.MountHandlers(&server.Handlers{S: svc})
	ts := httptest.NewServer(s.Mux())
	t.Cleanup(ts.Close)
	return ts, repo
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

// ---- tests ----

func TestHealthAndCatalog(t *testing.T) {
	ts, _ := newTestServer(t, oneEach{}, server.Options{})

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("healthz: %v %v", res, err)
	}
	res.Body.Close()

	res, err = http.Get(ts.URL + "/v1/destinations")
	if err != nil {
		t.Fatalf("destinations: %v", err)
	}
	defer res.Body.Close()
	var out struct {
		Destinations []struct {
			Name    string `json:"name"`
			Airport string `json:"airport"`
		} `json:"destinations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Destinations) != 15 || out.Destinations[0].Name != "Paris" || out.Destinations[3].Name != "New York" {
		t.Fatalf("unexpected destinations: %+v", out.Destinations)
	}
	if res.Header.Get("ETag") == "" {
		t.Fatalf("expected an ETag on catalog responses")
	}
}

func TestSearch_AppliesDefaults(t *testing.T) {
	ts, repo := newTestServer(t, oneEach{}, server.Options{})

	res := postJSON(t, ts.URL+"/v1/search", `{"destination":"Rome","start_date":"2026-06-01","end_date":"2026-06-05"}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", res.StatusCode)
	}
	var set domain.RecommendationSet
	if err := json.NewDecoder(res.Body).Decode(&set); err != nil {
		t.Fatalf("decode: %v", err)
	}
	c := set.Criteria
	if c.Origin != "JFK" || c.BudgetMax != 10000 || c.Travelers != 1 {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if len(set.Recommendations) != 1 || set.Recommendations[0].Destination != "Rome" {
		t.Fatalf("unexpected recommendations: %+v", set.Recommendations)
	}
	if _, ok := repo.sets[set.ID]; !ok {
		t.Fatalf("set not stored")
	}
}

func TestSearch_InvalidCriteriaIsProblem(t *testing.T) {
	ts, _ := newTestServer(t, oneEach{}, server.Options{})

	res := postJSON(t, ts.URL+"/v1/search", `{"start_date":"2026-06-05","end_date":"2026-06-01","travel_style":"backpacker"}`)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type: %s", ct)
	}
	var p struct {
		Status int `json:"status"`
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	fields := map[string]bool{}
	for _, e := range p.Errors {
		fields[e.Field] = true
	}
	if p.Status != 400 || !fields["end_date"] || !fields["travel_style"] {
		t.Fatalf("unexpected problem: %+v", p)
	}
}

func TestSearch_BadBody(t *testing.T) {
	ts, _ := newTestServer(t, oneEach{}, server.Options{})
	if res := postJSON(t, ts.URL+"/v1/search", `{"start_date":"June 1st"}`); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad date status: %d", res.StatusCode)
	}
	if res := postJSON(t, ts.URL+"/v1/search", `{`); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad json status: %d", res.StatusCode)
	}
}

func TestSearch_SourceUnavailableIs503(t *testing.T) {
	ts, _ := newTestServer(t, oneEach{err: domain.ErrCandidateSourceUnavailable}, server.Options{})
	res := postJSON(t, ts.URL+"/v1/search", `{"destination":"paris","start_date":"2026-06-01","end_date":"2026-06-05"}`)
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status: %d", res.StatusCode)
	}
}

func TestGetRecommendationSet_ETag(t *testing.T) {
	ts, _ := newTestServer(t, oneEach{}, server.Options{})

	res := postJSON(t, ts.URL+"/v1/search", `{"destination":"paris","start_date":"2026-06-01","end_date":"2026-06-05","budget_max":3000}`)
	var set domain.RecommendationSet
	_ = json.NewDecoder(res.Body).Decode(&set)

	get, err := http.Get(ts.URL + "/v1/recommendations/" + set.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	get.Body.Close()
	etag := get.Header.Get("ETag")
	if get.StatusCode != http.StatusOK || !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("status=%d etag=%q", get.StatusCode, etag)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/recommendations/"+set.ID, nil)
	req.Header.Set("If-None-Match", etag)
	cond, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional get: %v", err)
	}
	cond.Body.Close()
	if cond.StatusCode != http.StatusNotModified {
		t.Fatalf("want 304, got %d", cond.StatusCode)
	}

	missing, _ := http.Get(ts.URL + "/v1/recommendations/nope")
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", missing.StatusCode)
	}
}

func TestPreferences_PutGetAndPersonalizedSearch(t *testing.T) {
	ts, _ := newTestServer(t, oneEach{}, server.Options{})

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/users/9/preferences",
		strings.NewReader(`{"budget_max":2000,"activities":["Food"],"travel_style":"budget"}`))
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	var saved domain.PreferenceOverlay
	_ = json.NewDecoder(res.Body).Decode(&saved)
	res.Body.Close()
	if res.StatusCode != http.StatusOK || len(saved.Activities) != 1 || saved.Activities[0] != "food" {
		t.Fatalf("put: status=%d saved=%+v", res.StatusCode, saved)
	}

	res = postJSON(t, ts.URL+"/v1/users/9/search", `{"destination":"paris","start_date":"2026-06-01","end_date":"2026-06-05"}`)
	var set domain.RecommendationSet
	_ = json.NewDecoder(res.Body).Decode(&set)
	if set.Criteria.BudgetMax != 2000 || set.Criteria.TravelStyle != domain.StyleBudget {
		t.Fatalf("preferences not merged: %+v", set.Criteria)
	}

	// unknown user falls back to the default budget
	res = postJSON(t, ts.URL+"/v1/users/10/search", `{"destination":"paris","start_date":"2026-06-01","end_date":"2026-06-05"}`)
	set = domain.RecommendationSet{}
	_ = json.NewDecoder(res.Body).Decode(&set)
	if res.StatusCode != http.StatusOK || set.Criteria.BudgetMax != 10000 {
		t.Fatalf("status=%d criteria=%+v", res.StatusCode, set.Criteria)
	}

	bad, _ := http.Get(ts.URL + "/v1/users/abc/preferences")
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for bad user id, got %d", bad.StatusCode)
	}
}

func TestSearch_RateLimited(t *testing.T) {
	ts, _ := newTestServer(t, oneEach{}, server.Options{SearchRatePerMinute: 2})
	body := `{"destination":"paris","start_date":"2026-06-01","end_date":"2026-06-05"}`

	for i := 0; i < 2; i++ {
		if res := postJSON(t, ts.URL+"/v1/search", body); res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: %d", i, res.StatusCode)
		}
	}
	if res := postJSON(t, ts.URL+"/v1/search", body); res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("want 429, got %d", res.StatusCode)
	}

	// catalog routes are not limited
	res, _ := http.Get(ts.URL + "/v1/airports")
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("airports: %d", res.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t, oneEach{}, server.Options{CORSOrigins: []string{"https://app.example.com"}})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/v1/search", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	res.Body.Close()
	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("allow origin: %q", got)
	}
}
