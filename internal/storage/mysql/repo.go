package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"smart_travel/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertPreferences(ctx context.Context, userID int64, p domain.PreferenceOverlay) error {
	acts := p.Activities
	if acts == nil {
		acts = []string{}
	}
	actsJSON, err := json.Marshal(acts)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertPreferencesSQL,
		userID,
		valF64(p.BudgetMin),
		valF64(p.BudgetMax),
		string(actsJSON),
		valStr(string(p.TravelStyle)),
	)
	return err
}

func (r *Repo) GetPreferences(ctx context.Context, userID int64) (domain.PreferenceOverlay, error) {
	var (
		lo, hi   sql.NullFloat64
		actsJSON []byte
		style    sql.NullString
	)
	err := r.db.QueryRowContext(ctx, getPreferencesSQL, userID).Scan(&lo, &hi, &actsJSON, &style)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PreferenceOverlay{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.PreferenceOverlay{}, err
	}

	var p domain.PreferenceOverlay
	if lo.Valid {
		p.BudgetMin = &lo.Float64
	}
	if hi.Valid {
		p.BudgetMax = &hi.Float64
	}
	if len(actsJSON) > 0 {
		if err := json.Unmarshal(actsJSON, &p.Activities); err != nil {
			return domain.PreferenceOverlay{}, fmt.Errorf("decode activities for user %d: %w", userID, err)
		}
	}
	if style.Valid {
		p.TravelStyle = domain.TravelStyle(style.String)
	}
	return p, nil
}

func (r *Repo) SaveRecommendationSet(ctx context.Context, userID *int64, set domain.RecommendationSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return err
	}
	var top *float64
	if len(set.Recommendations) > 0 {
		top = &set.Recommendations[0].MatchScore
	}
	_, err = r.db.ExecContext(ctx, insertRecommendationSetSQL,
		set.ID,
		valInt64(userID),
		valStr(set.Criteria.Destination),
		set.Criteria.BudgetMax,
		len(set.Recommendations),
		valF64(top),
		string(payload),
		set.GeneratedAt.UTC(),
	)
	return err
}

func (r *Repo) GetRecommendationSet(ctx context.Context, id string) (domain.RecommendationSet, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, getRecommendationSetSQL, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RecommendationSet{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	return decodeSet(payload)
}

// ListRecommendationSets returns the user's most recent sets, newest first.
func (r *Repo) ListRecommendationSets(ctx context.Context, userID int64, limit int) ([]domain.RecommendationSet, error) {
	rows, err := r.db.QueryContext(ctx, listRecommendationSetsSQL, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RecommendationSet{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		set, err := decodeSet(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, rows.Err()
}

func decodeSet(payload []byte) (domain.RecommendationSet, error) {
	var set domain.RecommendationSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("decode recommendation set: %w", err)
	}
	if set.Recommendations == nil {
		set.Recommendations = []domain.Recommendation{}
	}
	return set, nil
}
