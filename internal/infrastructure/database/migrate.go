package database

import (
	"fmt"

	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openSessionIndex is the occupancy lock: at most one open session per
// table. Both PostgreSQL and SQLite support partial indexes.
const openSessionIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_open_table ON sessions (table_id) WHERE status = 'open'`

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		// Staff
		&entity.User{},

		// Catalog
		&entity.TableType{},
		&entity.Table{},
		&entity.Category{},
		&entity.Product{},
		&entity.Promotion{},

		// Sessions and billing
		&entity.Session{},
		&entity.SessionItem{},
		&entity.Bill{},
		&entity.BillLine{},
		&entity.BillDiscount{},

		// System
		&entity.VenueSettings{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.Exec(openSessionIndex).Error; err != nil {
		return fmt.Errorf("failed to create open session index: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}
