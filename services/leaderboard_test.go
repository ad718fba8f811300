package services

import (
	"testing"

	"pet-community-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLeaderboard(t *testing.T) {
	db := newTestDB(t)
	catalog := NewMissionCatalogService(db)
	ledger := NewCompletionLedgerService(db)
	leaderboard := NewLeaderboardService(db)

	missionA := seedMission(t, catalog, "A", 50, 5, models.MissionTypeOneTime)
	missionB := seedMission(t, catalog, "B", 20, 2, models.MissionTypeOneTime)

	seedProfile(t, db, "u1", "alice")
	seedProfile(t, db, "u2", "bruno")

	require.NoError(t, ledger.RecordCompletion("u1", missionA.ID))
	require.NoError(t, ledger.RecordCompletion("u1", missionB.ID))
	require.NoError(t, ledger.RecordCompletion("u2", missionA.ID))

	entries, err := leaderboard.ComputeLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, int64(70), entries[0].TotalXP)
	assert.Equal(t, int64(7), entries[0].TotalCoins)
	assert.Equal(t, int64(2), entries[0].CompletedCount)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, "u2", entries[1].UserID)
	assert.Equal(t, int64(50), entries[1].TotalXP)
	assert.Equal(t, int64(1), entries[1].CompletedCount)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestLeaderboardRankMonotonicity(t *testing.T) {
	db := newTestDB(t)
	catalog := NewMissionCatalogService(db)
	ledger := NewCompletionLedgerService(db)
	leaderboard := NewLeaderboardService(db)

	missions := []*models.Mission{
		seedMission(t, catalog, "M1", 10, 0, models.MissionTypeOneTime),
		seedMission(t, catalog, "M2", 30, 0, models.MissionTypeOneTime),
		seedMission(t, catalog, "M3", 70, 0, models.MissionTypeOneTime),
	}
	users := []string{"u1", "u2", "u3", "u4"}
	for _, u := range users {
		seedProfile(t, db, u, u)
	}

	require.NoError(t, ledger.RecordCompletion("u1", missions[0].ID))
	require.NoError(t, ledger.RecordCompletion("u2", missions[1].ID))
	require.NoError(t, ledger.RecordCompletion("u3", missions[2].ID))
	require.NoError(t, ledger.RecordCompletion("u4", missions[0].ID))
	require.NoError(t, ledger.RecordCompletion("u4", missions[1].ID))

	entries, err := leaderboard.ComputeLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank, "ranks are dense, 1-based, no gaps")
		if i > 0 {
			assert.GreaterOrEqual(t, entries[i-1].TotalXP, e.TotalXP)
		}
	}
}

func TestLeaderboardTieBreakIsStable(t *testing.T) {
	db := newTestDB(t)
	catalog := NewMissionCatalogService(db)
	ledger := NewCompletionLedgerService(db)
	leaderboard := NewLeaderboardService(db)

	mission := seedMission(t, catalog, "Shared", 40, 0, models.MissionTypeOneTime)
	seedProfile(t, db, "u-b", "berta")
	seedProfile(t, db, "u-a", "ana")

	require.NoError(t, ledger.RecordCompletion("u-b", mission.ID))
	require.NoError(t, ledger.RecordCompletion("u-a", mission.ID))

	// Ties break by user id so repeated computations agree.
	for i := 0; i < 3; i++ {
		entries, err := leaderboard.ComputeLeaderboard()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "u-a", entries[0].UserID)
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, "u-b", entries[1].UserID)
		assert.Equal(t, 2, entries[1].Rank)
	}
}

func TestLeaderboardOrphanTolerance(t *testing.T) {
	db := newTestDB(t)
	catalog := NewMissionCatalogService(db)
	ledger := NewCompletionLedgerService(db)
	leaderboard := NewLeaderboardService(db)

	mission := seedMission(t, catalog, "A", 50, 0, models.MissionTypeOneTime)

	seedProfile(t, db, "kept", "kept")
	require.NoError(t, ledger.RecordCompletion("kept", mission.ID))

	// "ghost" completed the mission but the account is gone — no mirror row.
	require.NoError(t, ledger.RecordCompletion("ghost", mission.ID))

	entries, err := leaderboard.ComputeLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].UserID)
	assert.Equal(t, int64(50), entries[0].TotalXP)
}

func TestLeaderboardSkipsDeletedMissions(t *testing.T) {
	db := newTestDB(t)
	catalog := NewMissionCatalogService(db)
	ledger := NewCompletionLedgerService(db)
	leaderboard := NewLeaderboardService(db)

	kept := seedMission(t, catalog, "Kept", 20, 0, models.MissionTypeOneTime)
	doomed := seedMission(t, catalog, "Doomed", 80, 0, models.MissionTypeOneTime)

	seedProfile(t, db, "u1", "alice")
	require.NoError(t, ledger.RecordCompletion("u1", kept.ID))
	require.NoError(t, ledger.RecordCompletion("u1", doomed.ID))

	require.NoError(t, catalog.Delete(adminActor, doomed.ID))

	entries, err := leaderboard.ComputeLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(20), entries[0].TotalXP)
	assert.Equal(t, int64(1), entries[0].CompletedCount)
}

func TestLeaderboardEmpty(t *testing.T) {
	leaderboard := NewLeaderboardService(newTestDB(t))

	entries, err := leaderboard.ComputeLeaderboard()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUserProgress(t *testing.T) {
	db := newTestDB(t)
	catalog := NewMissionCatalogService(db)
	ledger := NewCompletionLedgerService(db)
	leaderboard := NewLeaderboardService(db)

	missionA := seedMission(t, catalog, "A", 1500, 2500, models.MissionTypeOneTime)
	missionB := seedMission(t, catalog, "B", 100, 10, models.MissionTypeOneTime)

	seedProfile(t, db, "u1", "alice")
	seedProfile(t, db, "u2", "bruno")
	require.NoError(t, ledger.RecordCompletion("u1", missionA.ID))
	require.NoError(t, ledger.RecordCompletion("u2", missionB.ID))

	summary, err := leaderboard.UserProgress("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), summary.TotalXP)
	assert.Equal(t, int64(2500), summary.TotalCoins)
	assert.Equal(t, int64(1), summary.CompletedCount)
	assert.Equal(t, 1, summary.Rank)
	assert.Equal(t, "1.5k", summary.DisplayXP)
	assert.Equal(t, "2,500", summary.DisplayCoins)

	summary, err = leaderboard.UserProgress("u2")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Rank)

	// Unranked users come back with zero totals, not an error.
	summary, err = leaderboard.UserProgress("nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Rank)
	assert.Equal(t, int64(0), summary.TotalXP)
	assert.Equal(t, "0", summary.DisplayXP)
}
