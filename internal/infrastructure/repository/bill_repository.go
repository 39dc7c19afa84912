package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/pagination"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// Create inserts the bill and, through the associations, its lines and
// discounts in the same statement batch.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return translate(dbFrom(ctx, r.db).Create(bill).Error)
}

func (r *billRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Discounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.withDetails(dbFrom(ctx, r.db)).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.withDetails(dbFrom(ctx, r.db)).First(&bill, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Bill{})
	if params.Paid != nil {
		query = query.Where("paid = ?", *params.Paid)
	}
	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}
	if params.StartDate != nil {
		query = query.Where("end_at >= ?", params.StartDate.UTC())
	}
	if params.EndDate != nil {
		query = query.Where("end_at <= ?", params.EndDate.UTC())
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(table_name) LIKE ?", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}
	err := r.withDetails(query.Scopes(Paginate(params.Pagination))).
		Order("end_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) SetPayment(ctx context.Context, id uuid.UUID, paid bool, method enum.PaymentMethod, paidAt *time.Time) error {
	var at interface{}
	if paidAt != nil {
		at = paidAt.UTC()
	}
	return dbFrom(ctx, r.db).Model(&entity.Bill{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"paid":           paid,
			"payment_method": method,
			"paid_at":        at,
		}).Error
}

func (r *billRepository) SetNote(ctx context.Context, id uuid.UUID, note string) error {
	return dbFrom(ctx, r.db).Model(&entity.Bill{}).
		Where("id = ?", id).
		Update("note", note).Error
}
