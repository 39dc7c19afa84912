package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/pkg/pagination"
)

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Paid       *bool
	TableID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// BillRepository defines the interface for bill data operations. Bills are
// written once; only payment state and the note can change afterwards.
type BillRepository interface {
	// Create inserts the bill with its lines and discounts. A taken code or
	// a second bill for the same session fails with ErrDuplicateKey.
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	SetPayment(ctx context.Context, id uuid.UUID, paid bool, method enum.PaymentMethod, paidAt *time.Time) error
	SetNote(ctx context.Context, id uuid.UUID, note string) error
}
