package domain

import "context"

// CandidateSource supplies inventory for a destination priced within the
// query ceiling. It must be safe for concurrent use across destinations.
type CandidateSource interface {
	SearchFlights(ctx context.Context, q FlightQuery) ([]Flight, error)
	SearchHotels(ctx context.Context, q HotelQuery) ([]Hotel, error)
	SearchActivities(ctx context.Context, q ActivityQuery) ([]Activity, error)
}

type TravelRepository interface {
	// Write paths
	SaveRecommendationSet(ctx context.Context, userID *int64, set RecommendationSet) error
	UpsertPreferences(ctx context.Context, userID int64, p PreferenceOverlay) error

	// Read paths
	GetRecommendationSet(ctx context.Context, id string) (RecommendationSet, error)
	GetPreferences(ctx context.Context, userID int64) (PreferenceOverlay, error)
	ListRecommendationSets(ctx context.Context, userID int64, limit int) ([]RecommendationSet, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
