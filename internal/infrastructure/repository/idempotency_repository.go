package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) scoped(ctx context.Context, key string, staffID uuid.UUID) *gorm.DB {
	return dbFrom(ctx, r.db).Where("key = ? AND staff_id = ?", key, staffID)
}

func (r *idempotencyRepository) FindLive(ctx context.Context, key string, staffID uuid.UUID, now time.Time) (*entity.IdempotencyKey, error) {
	var stored entity.IdempotencyKey
	err := r.scoped(ctx, key, staffID).Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if stored.IsExpired(now) {
		err := r.scoped(ctx, key, staffID).
			Where("expires_at < ?", now.UTC()).
			Delete(&entity.IdempotencyKey{}).Error
		return nil, err
	}
	return &stored, nil
}

func (r *idempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	ikey.ExpiresAt = ikey.ExpiresAt.UTC()
	return translate(dbFrom(ctx, r.db).Create(ikey).Error)
}

func (r *idempotencyRepository) Purge(ctx context.Context, now time.Time) (int64, error) {
	result := dbFrom(ctx, r.db).
		Where("expires_at < ?", now.UTC()).
		Delete(&entity.IdempotencyKey{})
	return result.RowsAffected, result.Error
}
