package models

import (
	"time"

	"gorm.io/gorm"
)

// Mission recurrence types
const (
	MissionTypeDaily   = "daily"
	MissionTypeOneTime = "one_time"
)

// Mission statuses (publish lifecycle, admin-controlled)
const (
	MissionStatusDraft     = "draft"
	MissionStatusScheduled = "scheduled"
	MissionStatusPublished = "published"
)

// Mission is an admin-defined task a community member can complete for XP/coin rewards.
type Mission struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"index" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	XPReward   int64  `gorm:"not null;default:0" json:"xp_reward"`
	CoinReward int64  `gorm:"not null;default:0" json:"coin_reward"`
	Type       string `gorm:"type:varchar(16);not null;default:'one_time'" json:"type"` // daily | one_time

	ActionLink string `gorm:"type:text" json:"action_link,omitempty"` // deep link into the portal (e.g., /pets)
	IconURL    string `gorm:"type:text" json:"icon_url,omitempty"`    // R2 public URL

	Status    string     `gorm:"type:varchar(16);not null;default:'published'" json:"status"`
	PublishAt *time.Time `json:"publish_at,omitempty"`

	Timestamps
}

// MissionWithStatus annotates a catalog mission with one user's completion state.
// Derived view, never persisted.
type MissionWithStatus struct {
	Mission
	Completed bool `json:"completed"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
