package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"smart_travel/internal/adapters/observability"
	"smart_travel/internal/domain"
	"smart_travel/internal/validation"
)

// SearchService is the boundary around the pipeline: it validates criteria,
// merges stored preferences, and persists and caches what the pipeline returns.
type SearchService struct {
	engine   *Recommender
	repo     domain.TravelRepository
	cache    domain.Cache
	cacheTTL time.Duration
	timeout  time.Duration
	newID    func() string
}

func NewSearchService(e *Recommender, r domain.TravelRepository, c domain.Cache, ttl, timeout time.Duration) *SearchService {
	return &SearchService{engine: e, repo: r, cache: c, cacheTTL: ttl, timeout: timeout, newID: uuid.NewString}
}

const (
	defaultHistory = 10
	maxHistory     = 50
)

func setKey(id string) string        { return "recset:" + id }
func prefsKey(userID int64) string   { return fmt.Sprintf("prefs:%d", userID) }
func (s *SearchService) ttlSec() int { return int(s.cacheTTL.Seconds()) }

// Search runs an anonymous search.
func (s *SearchService) Search(ctx context.Context, c domain.SearchCriteria) (domain.RecommendationSet, error) {
	return s.search(ctx, nil, c)
}

// SearchForUser fills unset criteria from the user's stored preferences
// before searching. A user without preferences searches as given; a budget
// still unset after the merge takes domain.DefaultBudgetMax.
func (s *SearchService) SearchForUser(ctx context.Context, userID int64, c domain.SearchCriteria) (domain.RecommendationSet, error) {
	p, err := s.GetPreferences(ctx, userID)
	switch {
	case err == nil:
		c = c.WithOverlay(&p)
	case errors.Is(err, domain.ErrNotFound):
	default:
		return domain.RecommendationSet{}, fmt.Errorf("load preferences for %d: %w", userID, err)
	}
	if c.BudgetMax == 0 {
		c.BudgetMax = domain.DefaultBudgetMax
	}
	return s.search(ctx, &userID, c)
}

func (s *SearchService) search(ctx context.Context, userID *int64, c domain.SearchCriteria) (domain.RecommendationSet, error) {
	if err := validation.ValidateStruct(&c); err != nil {
		return domain.RecommendationSet{}, err
	}

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	set, err := s.engine.Recommend(runCtx, c)
	if err != nil {
		observability.ObserveSearch("error", 0, time.Since(start))
		return domain.RecommendationSet{}, err
	}
	outcome := "ok"
	if len(set.Recommendations) == 0 {
		outcome = "empty"
	}
	observability.ObserveSearch(outcome, len(set.Recommendations), time.Since(start))

	set.ID = s.newID()

	// storing is best effort: the caller still gets its recommendations
	if err := s.repo.SaveRecommendationSet(ctx, userID, set); err != nil {
		log.Warn().Err(err).Str("id", set.ID).Msg("persist recommendation set failed")
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, setKey(set.ID), set, s.ttlSec())
	}

	log.Info().
		Str("id", set.ID).
		Int("recommendations", len(set.Recommendations)).
		Dur("duration", time.Since(start)).
		Msg("search completed")
	return set, nil
}

func (s *SearchService) GetRecommendationSet(ctx context.Context, id string) (domain.RecommendationSet, error) {
	var set domain.RecommendationSet
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, setKey(id), &set); ok {
			return set, nil
		}
	}
	set, err := s.repo.GetRecommendationSet(ctx, id)
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, setKey(id), set, s.ttlSec())
	}
	return set, nil
}

func (s *SearchService) GetPreferences(ctx context.Context, userID int64) (domain.PreferenceOverlay, error) {
	var p domain.PreferenceOverlay
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, prefsKey(userID), &p); ok {
			return p, nil
		}
	}
	p, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return domain.PreferenceOverlay{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, prefsKey(userID), p, s.ttlSec())
	}
	return p, nil
}

// History returns the user's most recent sets, newest first. limit is
// clamped to [1, 50] and defaults to 10.
func (s *SearchService) History(ctx context.Context, userID int64, limit int) ([]domain.RecommendationSet, error) {
	if limit <= 0 {
		limit = defaultHistory
	}
	limit = min(limit, maxHistory)
	return s.repo.ListRecommendationSets(ctx, userID, limit)
}

// SavePreferences stores the overlay and evicts the cached copy so the next
// personalized search sees it.
func (s *SearchService) SavePreferences(ctx context.Context, userID int64, p domain.PreferenceOverlay) error {
	if err := validation.ValidateStruct(&p); err != nil {
		return err
	}
	p.Activities = domain.NormalizeTags(p.Activities)
	if err := s.repo.UpsertPreferences(ctx, userID, p); err != nil {
		return fmt.Errorf("upsert preferences for %d: %w", userID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, prefsKey(userID))
	}
	return nil
}
