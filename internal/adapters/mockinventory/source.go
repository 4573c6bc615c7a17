// Package mockinventory generates synthetic flights, hotels and activities.
// Output is a pure function of the seed and the query, so repeated searches
// (and tests) see the same candidates.
package mockinventory

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"smart_travel/internal/catalog"
	"smart_travel/internal/domain"
)

const unknownBasePrice = 500.0

var departureMinutes = []int{0, 15, 30, 45}

type Source struct {
	seed uint64
}

func New(seed uint64) *Source { return &Source{seed: seed} }

// stream is a query-scoped generator. The ChaCha8 state backs both the
// numeric draws and the candidate ids.
type stream struct {
	*rand.Rand
	cc *rand.ChaCha8
}

func (s *Source) stream(kind string, parts ...any) stream {
	key := fmt.Sprint(append([]any{s.seed, kind}, parts...)...)
	cc := rand.NewChaCha8(sha256.Sum256([]byte(key)))
	return stream{Rand: rand.New(cc), cc: cc}
}

func (st stream) id() string {
	u, err := uuid.NewRandomFromReader(st.cc)
	if err != nil {
		// ChaCha8 reads never fail
		panic(err)
	}
	return u.String()[:8]
}

func (st stream) uniform(lo, hi float64) float64 { return lo + st.Float64()*(hi-lo) }

// between returns an int in [lo, hi].
func (st stream) between(lo, hi int) int { return lo + st.IntN(hi-lo+1) }

func (s *Source) SearchFlights(ctx context.Context, q domain.FlightQuery) ([]domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest := strings.ToLower(strings.TrimSpace(q.Destination))
	airport, base := strings.ToUpper(prefix(dest, 3)), unknownBasePrice
	if d, ok := catalog.Lookup(dest); ok {
		airport, base = d.Airport, d.BasePrice
	}
	travelers := max(q.Travelers, 1)

	st := s.stream("flights", dest, strings.ToUpper(q.Origin), q.DepartureDate.Format(time.DateOnly), travelers)
	n := st.between(3, 5)
	out := make([]domain.Flight, 0, n)
	for range n {
		airline := catalog.Airlines[st.IntN(len(catalog.Airlines))]
		price := round(base*st.uniform(0.8, 1.4)*float64(travelers), 2)
		if price > q.BudgetCeiling {
			continue
		}
		y, m, d := q.DepartureDate.Date()
		dep := time.Date(y, m, d, st.between(6, 22), departureMinutes[st.IntN(len(departureMinutes))], 0, 0, q.DepartureDate.Location())
		duration := st.between(120, 840)
		stops := 0
		if st.Float64() <= 0.4 {
			stops = st.between(1, 2)
		}
		out = append(out, domain.Flight{
			ID:               st.id(),
			Airline:          airline.Name,
			FlightNumber:     fmt.Sprintf("%s%d", airline.Code, st.between(100, 9999)),
			DepartureAirport: strings.ToUpper(q.Origin),
			ArrivalAirport:   airport,
			DepartureTime:    dep,
			ArrivalTime:      dep.Add(time.Duration(duration) * time.Minute),
			DurationMinutes:  duration,
			Price:            price,
			Stops:            stops,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (s *Source) SearchHotels(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest := strings.ToLower(strings.TrimSpace(q.Destination))
	title := cases.Title(language.Und).String(dest)
	nights := domain.NightsBetween(q.CheckIn, q.CheckOut)

	st := s.stream("hotels", dest, q.CheckIn.Format(time.DateOnly), nights, q.TravelStyle)
	var out []domain.Hotel
	for _, tier := range catalog.HotelTiers(q.TravelStyle) {
		for _, chain := range catalog.HotelChains[tier] {
			nightly := round(chain.BasePrice*st.uniform(0.85, 1.25), 2)
			total := round(nightly*float64(nights), 2)
			if total > q.BudgetCeiling {
				continue
			}
			location := catalog.HotelLocations[st.IntN(len(catalog.HotelLocations))]
			out = append(out, domain.Hotel{
				ID:            st.id(),
				Name:          strings.TrimSpace(chain.Name + " " + title + " " + location),
				Address:       "123 Main Street, " + title,
				Rating:        round(chain.Rating+st.uniform(-0.2, 0.2), 1),
				PricePerNight: nightly,
				TotalPrice:    total,
				Amenities:     st.amenities(),
				RoomType:      catalog.RoomTypes[st.IntN(len(catalog.RoomTypes))],
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if out == nil {
		out = []domain.Hotel{}
	}
	return out, nil
}

// amenities samples 4-8 distinct entries.
func (st stream) amenities() []string {
	k := st.between(4, 8)
	perm := st.Perm(len(catalog.HotelAmenities))
	out := make([]string, k)
	for i := range k {
		out[i] = catalog.HotelAmenities[perm[i]]
	}
	return out
}

func (s *Source) SearchActivities(ctx context.Context, q domain.ActivityQuery) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest := strings.ToLower(strings.TrimSpace(q.Destination))
	title := cases.Title(language.Und).String(dest)
	categories := catalog.CategoriesFor(domain.NormalizeTags(q.Interests))

	st := s.stream("activities", dest, q.StartDate.Format(time.DateOnly), strings.Join(categories, ","))
	var out []domain.Activity
	for _, category := range categories {
		for _, tpl := range catalog.Activities[category] {
			price := round(tpl.BasePrice*st.uniform(0.9, 1.3), 2)
			if price > q.BudgetCeiling {
				continue
			}
			out = append(out, domain.Activity{
				ID:   st.id(),
				Name: tpl.Name + " in " + title,
				Description: fmt.Sprintf("Experience an amazing %s during your visit to %s. Perfect for travelers interested in %s.",
					strings.ToLower(tpl.Name), title, category),
				Location:      title + " City Center",
				Price:         price,
				DurationHours: tpl.DurationHours,
				Category:      category,
				Rating:        round(st.uniform(4, 5), 1),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if out == nil {
		out = []domain.Activity{}
	}
	return out, nil
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
