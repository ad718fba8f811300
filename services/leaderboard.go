package services

import (
	"sort"

	"pet-community-system/models"

	"gorm.io/gorm"
)

// LeaderboardService derives the community ranking from the raw completion
// ledger joined against the mission catalog and the profile mirror. Nothing is
// cached or persisted; every read recomputes from scratch.
type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// ComputeLeaderboard builds the full ordered ranking.
//
// The three fetches are all-or-nothing: any storage failure aborts the whole
// computation rather than mixing partial reads into the totals. Completions
// whose mission was deleted or whose user no longer resolves to a profile are
// skipped. Ordering is total XP descending with user id as tie-break, so the
// result is reproducible; ranks are dense and 1-based. Truncation ("top N")
// is the caller's concern.
func (s *LeaderboardService) ComputeLeaderboard() ([]models.RankingEntry, error) {
	var completions []models.UserMission
	if err := s.DB.Where("status = ?", models.CompletionStatusCompleted).
		Find(&completions).Error; err != nil {
		return nil, persistErr("fetch completions", err)
	}

	var missions []models.Mission
	if err := s.DB.Find(&missions).Error; err != nil {
		return nil, persistErr("fetch missions", err)
	}
	missionByID := make(map[string]models.Mission, len(missions))
	for _, m := range missions {
		missionByID[m.ID] = m
	}

	var profiles []models.ProfileMirror
	if err := s.DB.Find(&profiles).Error; err != nil {
		return nil, persistErr("fetch profiles", err)
	}
	profileByID := make(map[string]models.ProfileMirror, len(profiles))
	for _, p := range profiles {
		profileByID[p.ExternalUserID] = p
	}

	totals := map[string]*models.RankingEntry{}
	var order []string
	for _, c := range completions {
		mission, ok := missionByID[c.MissionID]
		if !ok {
			continue // mission deleted from the catalog; ledger row stays, score does not
		}
		profile, ok := profileByID[c.UserID]
		if !ok {
			continue // account deleted; excluded from all totals
		}

		entry, ok := totals[c.UserID]
		if !ok {
			entry = &models.RankingEntry{
				UserID:    c.UserID,
				Username:  profile.Username,
				AvatarURL: profile.AvatarURL,
			}
			totals[c.UserID] = entry
			order = append(order, c.UserID)
		}
		entry.TotalXP += mission.XPReward
		entry.TotalCoins += mission.CoinReward
		entry.CompletedCount++
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := totals[order[i]], totals[order[j]]
		if a.TotalXP != b.TotalXP {
			return a.TotalXP > b.TotalXP
		}
		return a.UserID < b.UserID
	})

	entries := make([]models.RankingEntry, 0, len(order))
	for i, userID := range order {
		entry := *totals[userID]
		entry.Rank = i + 1
		entry.DisplayXP = FormatCompact(entry.TotalXP)
		entries = append(entries, entry)
	}
	return entries, nil
}

// UserProgress returns one user's slice of the aggregation: totals, completed
// count and current leaderboard position. Rank 0 means not ranked yet.
func (s *LeaderboardService) UserProgress(userID string) (*models.UserProgressSummary, error) {
	entries, err := s.ComputeLeaderboard()
	if err != nil {
		return nil, err
	}

	summary := &models.UserProgressSummary{UserID: userID}
	for _, e := range entries {
		if e.UserID == userID {
			summary.TotalXP = e.TotalXP
			summary.TotalCoins = e.TotalCoins
			summary.CompletedCount = e.CompletedCount
			summary.Rank = e.Rank
			break
		}
	}
	summary.DisplayXP = FormatCompact(summary.TotalXP)
	summary.DisplayCoins = FormatGrouped(summary.TotalCoins)
	return summary, nil
}
