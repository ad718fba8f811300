package models

import (
	"time"
)

// ProfileMirror is a local read-only copy of a portal profile, kept fresh by
// the profile sync worker. The leaderboard joins against this table for display
// names; a missing row means the account was deleted and its completions are
// excluded from aggregation.
type ProfileMirror struct {
	ID             string  `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string  `gorm:"uniqueIndex;not null" json:"external_user_id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	AvatarURL      *string `json:"avatar_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
