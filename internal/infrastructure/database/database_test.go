package database_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/config"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/infrastructure/database"
	"github.com/sangkips/cueclub-api/internal/infrastructure/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func openSession(tableID uuid.UUID) *entity.Session {
	return &entity.Session{
		TableID: tableID,
		Status:  enum.SessionStatusOpen,
		StartAt: time.Now().UTC(),
	}
}

func TestAutoMigrate_OneOpenSessionPerTable(t *testing.T) {
	db := dbtest.New(t)
	tableID := uuid.New()

	require.NoError(t, db.Create(openSession(tableID)).Error)
	assert.Error(t, db.Create(openSession(tableID)).Error)

	// Closed sessions do not hold the lock.
	closed := openSession(tableID)
	closed.Status = enum.SessionStatusClosed
	assert.NoError(t, db.Create(closed).Error)

	assert.NoError(t, db.Create(openSession(uuid.New())).Error)
}

func TestAutoMigrate_IsRepeatable(t *testing.T) {
	db := dbtest.New(t)
	assert.NoError(t, database.AutoMigrate(db, zap.NewNop()))
}

func TestSeedDefaultData(t *testing.T) {
	db := dbtest.New(t)
	cfg := &config.Config{
		Venue:   config.VenueConfig{Name: "Test Club", Timezone: "Asia/Ho_Chi_Minh", Currency: "VND"},
		Billing: config.BillingConfig{RoundingStep: 12, RoundingMode: "sideways", GraceMinutes: -3},
		Printer: config.PrinterConfig{CharWidth: 32},
		Admin:   config.AdminConfig{Name: "Boss", Email: "boss@club.test", Password: "secret"},
	}

	require.NoError(t, database.SeedDefaultData(db, cfg, zap.NewNop()))
	require.NoError(t, database.SeedDefaultData(db, cfg, zap.NewNop()))

	var settings []entity.VenueSettings
	require.NoError(t, db.Find(&settings).Error)
	require.Len(t, settings, 1)
	assert.Equal(t, "Test Club", settings[0].Name)
	assert.Equal(t, 10, settings[0].RoundingStep)
	assert.Equal(t, enum.RoundingModeCeil, settings[0].RoundingMode)
	assert.Equal(t, 0, settings[0].GraceMinutes)
	assert.Equal(t, entity.Paper58mm, settings[0].PaperSize)

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, enum.StaffRoleAdmin, users[0].Role)
	assert.True(t, users[0].Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("secret")))
}
