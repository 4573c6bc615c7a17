package mysql

const upsertPreferencesSQL = `
INSERT INTO user_preferences
  (user_id, budget_min, budget_max, activities, travel_style)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  budget_min   = VALUES(budget_min),
  budget_max   = VALUES(budget_max),
  activities   = VALUES(activities),
  travel_style = VALUES(travel_style),
  updated_at   = CURRENT_TIMESTAMP
`

const getPreferencesSQL = `
SELECT budget_min, budget_max, activities, travel_style
FROM user_preferences
WHERE user_id = ?
`

// The summary columns are denormalized from payload for listing and ops
// queries; payload is the source of truth.
const insertRecommendationSetSQL = `
INSERT INTO recommendation_sets
  (id, user_id, destination, budget_max, result_count, top_score, payload, generated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const getRecommendationSetSQL = `
SELECT payload
FROM recommendation_sets
WHERE id = ?
`

const listRecommendationSetsSQL = `
SELECT payload
FROM recommendation_sets
WHERE user_id = ?
ORDER BY generated_at DESC, id
LIMIT ?
`
