package app

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"smart_travel/internal/domain"
)

const maxRecommendations = 5

// Recommender runs the recommendation pipeline. It holds no mutable state;
// one value can serve concurrent requests.
type Recommender struct {
	builder *PackageBuilder
	known   []domain.Destination
	workers int
	now     func() time.Time
}

type Option func(*Recommender)

// WithWorkers bounds how many destinations are evaluated at once.
func WithWorkers(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithClock overrides the GeneratedAt source.
func WithClock(now func() time.Time) Option {
	return func(r *Recommender) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRecommender(src domain.CandidateSource, known []domain.Destination, opts ...Option) *Recommender {
	r := &Recommender{
		builder: NewPackageBuilder(src),
		known:   append([]domain.Destination(nil), known...),
		workers: runtime.GOMAXPROCS(0),
		now:     time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Recommend evaluates each selected destination in parallel and returns the
// best packages. Destinations without a flight or hotel are skipped; the
// first candidate source error aborts the run.
func (r *Recommender) Recommend(ctx context.Context, c domain.SearchCriteria) (domain.RecommendationSet, error) {
	c = c.WithOverlay(nil) // detach from caller-owned slices
	dests := SelectDestinations(c, r.known)
	logger := zerolog.Ctx(ctx)

	// indexed by evaluation order so ranking ties stay deterministic
	results := make([]*domain.Recommendation, len(dests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, dest := range dests {
		g.Go(func() error {
			rec, ok, err := r.builder.Build(gctx, dest, c)
			if err != nil {
				return err
			}
			if !ok {
				logger.Debug().Str("destination", dest).Msg("no flight or hotel within budget, skipping")
				return nil
			}
			results[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.RecommendationSet{}, err
	}

	return domain.RecommendationSet{
		Criteria:        c,
		Recommendations: Rank(results),
		GeneratedAt:     r.now().UTC(),
	}, nil
}

// Rank drops skipped (nil) entries, orders by match score descending keeping
// evaluation order on ties, and keeps the first five.
func Rank(evaluated []*domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(evaluated))
	for _, r := range evaluated {
		if r != nil {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}
