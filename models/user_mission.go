package models

import (
	"time"
)

// Completion statuses. The ledger only ever writes "completed"; "pending" exists
// for forward compatibility with multi-step missions.
const (
	CompletionStatusPending   = "pending"
	CompletionStatusCompleted = "completed"
)

// UserMission is one immutable ledger row: user X completed mission Y.
//
// DayKey is the UTC calendar day ("2006-01-02") for daily missions and the
// empty string for one_time missions, so the unique index collapses to
// (user, mission) for one_time and to (user, mission, day) for daily.
// Rows are append-only; the application never updates or deletes them.
type UserMission struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string `gorm:"not null;uniqueIndex:idx_user_mission_day" json:"user_id"` // external user id from the gateway
	MissionID string `gorm:"not null;uniqueIndex:idx_user_mission_day" json:"mission_id"`
	DayKey    string `gorm:"type:varchar(10);not null;default:'';uniqueIndex:idx_user_mission_day" json:"day_key"`

	Status      string    `gorm:"type:varchar(16);not null;default:'completed'" json:"status"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`
}
