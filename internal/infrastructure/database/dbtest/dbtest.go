// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/sangkips/cueclub-api/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns a fresh migrated database that is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	log := zap.NewNop()
	db, err := database.NewSQLiteDB(":memory:", false, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
