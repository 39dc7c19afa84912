package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
)

// TableTypeRepository defines the interface for table type data operations
type TableTypeRepository interface {
	Create(ctx context.Context, tableType *entity.TableType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TableType, error)
	Update(ctx context.Context, tableType *entity.TableType) error
	List(ctx context.Context) ([]entity.TableType, error)
}

// TableFilterParams contains filtering parameters for table queries
type TableFilterParams struct {
	TableTypeID *uuid.UUID
	Status      *enum.TableStatus
	ActiveOnly  bool
}

// TableRepository defines the interface for table data operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	// GetByID loads the table together with its table type.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	Update(ctx context.Context, table *entity.Table) error
	List(ctx context.Context, params *TableFilterParams) ([]entity.Table, error)
	// SetStatus moves the table to status only if it is currently in from.
	// It reports whether a row changed.
	SetStatus(ctx context.Context, id uuid.UUID, from, to enum.TableStatus) (bool, error)
	// ForceStatus sets the status unconditionally.
	ForceStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) error
}
