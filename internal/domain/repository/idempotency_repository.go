package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses per staff member
type IdempotencyRepository interface {
	// FindLive returns the unexpired response stored under key, or nil. An
	// expired row for the key is removed so the key can be used again.
	FindLive(ctx context.Context, key string, staffID uuid.UUID, now time.Time) (*entity.IdempotencyKey, error)
	// Save stores a response. ErrDuplicateKey means a concurrent request
	// with the same key was stored first.
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Purge removes every key that expired before now and reports how many
	Purge(ctx context.Context, now time.Time) (int64, error)
}
