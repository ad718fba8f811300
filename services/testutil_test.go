package services

import (
	"testing"

	"pet-community-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var adminActor = Actor{UserID: "admin-1", Roles: []string{"admin"}}
var memberActor = Actor{UserID: "member-1", Roles: []string{"member"}}

// newTestDB opens an in-memory database with the same schema and error
// translation the service runs with in production, so duplicate-key inserts
// surface as gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Mission{},
		&models.UserMission{},
		&models.ProfileMirror{},
	))
	return db
}

func seedMission(t *testing.T, catalog *MissionCatalogService, title string, xp, coins int64, missionType string) *models.Mission {
	t.Helper()
	mission, err := catalog.Create(adminActor, MissionInput{
		Title:       title,
		Description: "test mission",
		XPReward:    xp,
		CoinReward:  coins,
		Type:        missionType,
	})
	require.NoError(t, err)
	return mission
}

func seedProfile(t *testing.T, db *gorm.DB, userID, username string) {
	t.Helper()
	require.NoError(t, db.Create(&models.ProfileMirror{
		ID:             uuid.NewString(),
		ExternalUserID: userID,
		Username:       username,
	}).Error)
}
