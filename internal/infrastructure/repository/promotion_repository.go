package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/pagination"
	"gorm.io/gorm"
)

type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *gorm.DB) domainRepo.PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	return translate(dbFrom(ctx, r.db).Create(promotion).Error)
}

func (r *promotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	var promotion entity.Promotion
	err := dbFrom(ctx, r.db).First(&promotion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promotion, err
}

func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	var promotion entity.Promotion
	err := dbFrom(ctx, r.db).First(&promotion, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promotion, err
}

func (r *promotionRepository) Update(ctx context.Context, promotion *entity.Promotion) error {
	return translate(dbFrom(ctx, r.db).Save(promotion).Error)
}

func (r *promotionRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return dbFrom(ctx, r.db).Model(&entity.Promotion{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *promotionRepository) List(ctx context.Context, params *domainRepo.PromotionFilterParams) ([]entity.Promotion, int64, error) {
	var promotions []entity.Promotion
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Promotion{})
	if params.Scope != nil {
		query = query.Where("scope = ?", *params.Scope)
	}
	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}
	err := query.Scopes(Paginate(params.Pagination)).
		Order("apply_order ASC").
		Order("created_at ASC").
		Find(&promotions).Error

	return promotions, total, err
}

func (r *promotionRepository) ListActive(ctx context.Context) ([]entity.Promotion, error) {
	var promotions []entity.Promotion
	err := dbFrom(ctx, r.db).
		Where("active = ?", true).
		Order("apply_order ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&promotions).Error
	return promotions, err
}
