package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/pkg/pagination"
)

// SessionFilterParams contains filtering parameters for session queries
type SessionFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.SessionStatus
	TableID    *uuid.UUID
}

// SessionClose carries the fields written when a session leaves the open
// state.
type SessionClose struct {
	Status          enum.SessionStatus
	EndAt           time.Time
	DurationMinutes *int
	StaffEndID      *uuid.UUID
	VoidReason      string
}

// SessionRepository defines the interface for session data operations
type SessionRepository interface {
	// Create inserts an open session. A second open session for the same
	// table fails with ErrDuplicateKey.
	Create(ctx context.Context, session *entity.Session) error
	// GetByID loads the session with its items in position order.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	GetOpenByTable(ctx context.Context, tableID uuid.UUID) (*entity.Session, error)
	List(ctx context.Context, params *SessionFilterParams) ([]entity.Session, int64, error)
	// Close moves an open session to a terminal state. It reports false when
	// the session was no longer open.
	Close(ctx context.Context, id uuid.UUID, change SessionClose) (bool, error)
	// MoveTable points an open session at another table and replaces its note.
	MoveTable(ctx context.Context, id uuid.UUID, tableID uuid.UUID, note string) (bool, error)

	AddItem(ctx context.Context, item *entity.SessionItem) error
	UpdateItemQty(ctx context.Context, itemID uuid.UUID, qty int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}
