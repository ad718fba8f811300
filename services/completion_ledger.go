package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pet-community-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionLedgerService records mission completions, exactly once per
// (user, mission) for one_time missions and once per UTC calendar day for
// daily ones. The unique index on user_missions is the sole arbiter of
// duplicates; the service never pre-checks and never retries.
type CompletionLedgerService struct {
	DB *gorm.DB
}

func NewCompletionLedgerService(db *gorm.DB) *CompletionLedgerService {
	return &CompletionLedgerService{DB: db}
}

// completionDayKey scopes the uniqueness constraint. One_time missions use the
// empty string so the index collapses to (user, mission); daily missions key
// on the UTC calendar day and become completable again at midnight UTC.
func completionDayKey(missionType string, at time.Time) string {
	if missionType == models.MissionTypeDaily {
		return at.UTC().Format("2006-01-02")
	}
	return ""
}

// RecordCompletion appends one completed row for (userID, missionID).
//
// A duplicate-key rejection from the store means the pair already completed:
// it is absorbed as a successful no-op, never surfaced to the caller. Two
// near-simultaneous attempts both reach the store and the unique index picks
// the winner. Any other storage failure wraps ErrPersistence.
func (s *CompletionLedgerService) RecordCompletion(userID, missionID string) error {
	if userID == "" {
		return &ValidationError{Field: "user_id", Reason: "must not be empty"}
	}

	var mission models.Mission
	if err := s.DB.First(&mission, "id = ?", missionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("mission %s: %w", missionID, ErrNotFound)
		}
		return persistErr("load mission", err)
	}
	if mission.Status != models.MissionStatusPublished {
		return fmt.Errorf("mission %s not published: %w", missionID, ErrNotFound)
	}

	now := time.Now()
	row := models.UserMission{
		ID:          uuid.NewString(),
		UserID:      userID,
		MissionID:   missionID,
		DayKey:      completionDayKey(mission.Type, now),
		Status:      models.CompletionStatusCompleted,
		CompletedAt: now,
	}

	if err := s.DB.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Already completed — idempotent success.
			log.Printf("🏅 Completion already recorded: user=%s mission=%s", userID, missionID)
			return nil
		}
		return persistErr("record completion", err)
	}

	log.Printf("🏅 Mission completed: user=%s mission=%s (+%d XP, +%d coins)",
		userID, missionID, mission.XPReward, mission.CoinReward)
	return nil
}

// ListForUser returns every completion row for a user, unordered.
func (s *CompletionLedgerService) ListForUser(userID string) ([]models.UserMission, error) {
	var rows []models.UserMission
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, persistErr("list completions", err)
	}
	return rows, nil
}
