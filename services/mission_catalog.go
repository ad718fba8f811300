package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-community-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type MissionCatalogService struct {
	DB *gorm.DB
}

func NewMissionCatalogService(db *gorm.DB) *MissionCatalogService {
	return &MissionCatalogService{DB: db}
}

// MissionInput carries the editable attributes of a mission for create/update.
type MissionInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	XPReward    int64      `json:"xp_reward"`
	CoinReward  int64      `json:"coin_reward"`
	Type        string     `json:"type"`
	ActionLink  string     `json:"action_link"`
	IconURL     string     `json:"icon_url"`
	Status      string     `json:"status"`
	PublishAt   *time.Time `json:"publish_at"`
}

func validateMissionInput(in *MissionInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if in.XPReward < 0 {
		return &ValidationError{Field: "xp_reward", Reason: "must be >= 0"}
	}
	if in.CoinReward < 0 {
		return &ValidationError{Field: "coin_reward", Reason: "must be >= 0"}
	}
	switch in.Type {
	case models.MissionTypeDaily, models.MissionTypeOneTime:
	default:
		return &ValidationError{Field: "type", Reason: "must be daily or one_time"}
	}
	switch in.Status {
	case "":
		in.Status = models.MissionStatusPublished
	case models.MissionStatusDraft, models.MissionStatusPublished:
	case models.MissionStatusScheduled:
		if in.PublishAt == nil {
			return &ValidationError{Field: "publish_at", Reason: "required for scheduled missions"}
		}
	default:
		return &ValidationError{Field: "status", Reason: "must be draft, scheduled or published"}
	}
	return nil
}

// List returns every mission, newest first. Empty result is not an error.
func (s *MissionCatalogService) List() ([]models.Mission, error) {
	var missions []models.Mission
	if err := s.DB.Order("created_at DESC").Find(&missions).Error; err != nil {
		return nil, persistErr("list missions", err)
	}
	return missions, nil
}

// ListPublished returns the catalog slice end users see.
func (s *MissionCatalogService) ListPublished() ([]models.Mission, error) {
	var missions []models.Mission
	if err := s.DB.Where("status = ?", models.MissionStatusPublished).
		Order("created_at DESC").
		Find(&missions).Error; err != nil {
		return nil, persistErr("list published missions", err)
	}
	return missions, nil
}

func (s *MissionCatalogService) Get(id string) (*models.Mission, error) {
	var mission models.Mission
	if err := s.DB.First(&mission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mission %s: %w", id, ErrNotFound)
		}
		return nil, persistErr("get mission", err)
	}
	return &mission, nil
}

// Create stores a new mission. Only callers carrying the admin role may mutate
// the catalog; the capability travels with the call instead of any ambient
// session state.
func (s *MissionCatalogService) Create(actor Actor, in MissionInput) (*models.Mission, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("create mission: %w", ErrForbidden)
	}
	if err := validateMissionInput(&in); err != nil {
		return nil, err
	}

	mission := &models.Mission{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        slug.Make(in.Title),
		Description: in.Description,
		XPReward:    in.XPReward,
		CoinReward:  in.CoinReward,
		Type:        in.Type,
		ActionLink:  in.ActionLink,
		IconURL:     in.IconURL,
		Status:      in.Status,
		PublishAt:   in.PublishAt,
	}
	if err := s.DB.Create(mission).Error; err != nil {
		return nil, persistErr("create mission", err)
	}
	return mission, nil
}

// Update replaces all editable attributes of an existing mission.
func (s *MissionCatalogService) Update(actor Actor, id string, in MissionInput) (*models.Mission, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("update mission: %w", ErrForbidden)
	}
	if err := validateMissionInput(&in); err != nil {
		return nil, err
	}

	mission, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	mission.Title = in.Title
	mission.Slug = slug.Make(in.Title)
	mission.Description = in.Description
	mission.XPReward = in.XPReward
	mission.CoinReward = in.CoinReward
	mission.Type = in.Type
	mission.ActionLink = in.ActionLink
	mission.IconURL = in.IconURL
	mission.Status = in.Status
	mission.PublishAt = in.PublishAt

	if err := s.DB.Save(mission).Error; err != nil {
		return nil, persistErr("update mission", err)
	}
	return mission, nil
}

// Delete soft-deletes a mission. Repeat deletion is a no-op-with-success, and
// historical user_missions rows are never touched.
func (s *MissionCatalogService) Delete(actor Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("delete mission: %w", ErrForbidden)
	}
	if err := s.DB.Delete(&models.Mission{}, "id = ?", id).Error; err != nil {
		return persistErr("delete mission", err)
	}
	return nil
}

// MissionsWithStatus merges the published catalog with one user's slice of the
// completion ledger. Anonymous callers (empty userID) get every mission
// uncompleted without touching the ledger. Daily missions count as completed
// only for the current UTC day.
func (s *MissionCatalogService) MissionsWithStatus(userID string) ([]models.MissionWithStatus, error) {
	missions, err := s.ListPublished()
	if err != nil {
		return nil, err
	}

	completed := map[string]bool{}
	if userID != "" {
		var rows []models.UserMission
		if err := s.DB.Where("user_id = ? AND status = ?", userID, models.CompletionStatusCompleted).
			Find(&rows).Error; err != nil {
			return nil, persistErr("list user completions", err)
		}
		for _, r := range rows {
			completed[r.MissionID+"|"+r.DayKey] = true
		}
	}

	now := time.Now()
	out := make([]models.MissionWithStatus, len(missions))
	for i, m := range missions {
		out[i] = models.MissionWithStatus{
			Mission:   m,
			Completed: completed[m.ID+"|"+completionDayKey(m.Type, now)],
		}
	}
	return out, nil
}
