package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/pkg/pagination"
)

// PromotionFilterParams contains filtering parameters for promotion queries
type PromotionFilterParams struct {
	Pagination *pagination.PaginationParams
	Scope      *enum.PromotionScope
	Active     *bool
	Search     string
}

// PromotionRepository defines the interface for promotion data operations
type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error)
	GetByCode(ctx context.Context, code string) (*entity.Promotion, error)
	Update(ctx context.Context, promotion *entity.Promotion) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, params *PromotionFilterParams) ([]entity.Promotion, int64, error)
	// ListActive returns every active promotion ordered by apply order then
	// creation time.
	ListActive(ctx context.Context) ([]entity.Promotion, error)
}
