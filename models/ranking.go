package models

// RankingEntry is one row of the computed leaderboard. Derived on every read,
// never persisted. TotalXP is the integer source of truth for ordering;
// DisplayXP is a cosmetic abbreviation layered on top and is never parsed back.
type RankingEntry struct {
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	TotalXP        int64   `json:"total_xp"`
	TotalCoins     int64   `json:"total_coins"`
	CompletedCount int64   `json:"completed_count"`
	Rank           int     `json:"rank"` // 1-based, dense
	DisplayXP      string  `json:"display_xp"`
}

// UserProgressSummary is a single user's slice of the same aggregation.
// Rank is 0 when the user has no completions yet.
type UserProgressSummary struct {
	UserID         string `json:"user_id"`
	TotalXP        int64  `json:"total_xp"`
	TotalCoins     int64  `json:"total_coins"`
	CompletedCount int64  `json:"completed_count"`
	Rank           int    `json:"rank"`
	DisplayXP      string `json:"display_xp"`
	DisplayCoins   string `json:"display_coins"`
}
