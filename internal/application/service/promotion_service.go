package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/sangkips/cueclub-api/pkg/pagination"
	"github.com/sangkips/cueclub-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PromotionService handles promotion management
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// PromotionInput represents the create and update promotion input. Rule is
// the scope-specific payload.
type PromotionInput struct {
	Name           string
	Code           string
	Description    *string
	Scope          enum.PromotionScope
	Rule           json.RawMessage
	Active         *bool
	ApplyOrder     int
	Stackable      bool
	ValidFrom      *time.Time
	ValidTo        *time.Time
	DaysOfWeek     billing.Weekdays
	TimeWindows    []billing.Window
	DiscountType   enum.DiscountType
	DiscountValue  decimal.Decimal
	DiscountTarget enum.DiscountTarget
	MaxDiscount    *int64
}

// apply validates the input and writes it onto p.
func (in *PromotionInput) apply(p *entity.Promotion) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.NewFieldError("name", "is required")
	}
	if !in.Scope.IsValid() {
		return apperror.NewFieldError("scope", "must be time, product or bill")
	}
	rule, err := entity.DecodeRule(in.Scope, in.Rule)
	if err != nil {
		return apperror.NewFieldError("rule", err.Error())
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Code = nil
	if code := utils.NormalizeCode(in.Code); code != "" {
		p.Code = &code
	}
	p.Description = optionalText(in.Description)
	p.Active = boolOr(in.Active, true)
	p.ApplyOrder = in.ApplyOrder
	p.Stackable = in.Stackable
	p.ValidFrom = utcPtr(in.ValidFrom)
	p.ValidTo = utcPtr(in.ValidTo)
	p.DaysOfWeek = datatypes.NewJSONType(in.DaysOfWeek)
	p.TimeWindows = datatypes.NewJSONType(in.TimeWindows)
	p.DiscountType = in.DiscountType
	p.DiscountValue = in.DiscountValue
	p.DiscountTarget = in.DiscountTarget
	p.MaxDiscount = in.MaxDiscount
	if err := p.SetRule(rule); err != nil {
		return err
	}

	engine, err := p.ToBilling()
	if err != nil {
		return apperror.NewFieldError("rule", err.Error())
	}
	if err := billing.ValidatePromotion(engine); err != nil {
		var verr *billing.ValidationError
		if errors.As(err, &verr) {
			return apperror.NewFieldError(verr.Field, verr.Reason)
		}
		return apperror.NewBadRequestError(err.Error())
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// checkCode rejects a code already used by another promotion
func (s *PromotionService) checkCode(ctx context.Context, code *string, self uuid.UUID) error {
	if code == nil {
		return nil
	}
	existing, err := s.promotionRepo.GetByCode(ctx, *code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("Promotion code already exists")
	}
	return nil
}

// CreatePromotion creates a new promotion
func (s *PromotionService) CreatePromotion(ctx context.Context, input *PromotionInput) (*entity.Promotion, error) {
	promotion := &entity.Promotion{}
	if err := input.apply(promotion); err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, promotion.Code, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Promotion code already exists")
		}
		return nil, err
	}
	return promotion, nil
}

// UpdatePromotion replaces a promotion definition
func (s *PromotionService) UpdatePromotion(ctx context.Context, id uuid.UUID, input *PromotionInput) (*entity.Promotion, error) {
	promotion, err := s.GetPromotion(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.apply(promotion); err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, promotion.Code, promotion.ID); err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Promotion code already exists")
		}
		return nil, err
	}
	return promotion, nil
}

// SetPromotionActive switches a promotion on or off
func (s *PromotionService) SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Promotion, error) {
	if _, err := s.GetPromotion(ctx, id); err != nil {
		return nil, err
	}
	if err := s.promotionRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return s.GetPromotion(ctx, id)
}

// GetPromotion retrieves a promotion by ID
func (s *PromotionService) GetPromotion(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}
	return promotion, nil
}

// ListPromotions lists promotions with filtering
func (s *PromotionService) ListPromotions(ctx context.Context, params *repository.PromotionFilterParams) (*pagination.PaginatedResult[entity.Promotion], error) {
	if params.Scope != nil && !params.Scope.IsValid() {
		return nil, apperror.NewFieldError("scope", "must be time, product or bill")
	}

	promotions, total, err := s.promotionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(promotions, pag), nil
}
