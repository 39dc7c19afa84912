package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

// Create relies on idx_sessions_open_table to reject a second open session
// for the same table.
func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(session).Error
	return translate(err)
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	err := dbFrom(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) GetOpenByTable(ctx context.Context, tableID uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	err := dbFrom(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("table_id = ? AND status = ?", tableID, enum.SessionStatusOpen).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) List(ctx context.Context, params *domainRepo.SessionFilterParams) ([]entity.Session, int64, error) {
	var sessions []entity.Session
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Session{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}
	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("start_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}

// Close only touches rows that are still open, so two concurrent closes
// cannot both succeed.
func (r *sessionRepository) Close(ctx context.Context, id uuid.UUID, change domainRepo.SessionClose) (bool, error) {
	updates := map[string]interface{}{
		"status":           change.Status,
		"end_at":           change.EndAt.UTC(),
		"duration_minutes": change.DurationMinutes,
		"staff_end_id":     change.StaffEndID,
	}
	if change.VoidReason != "" {
		updates["void_reason"] = change.VoidReason
	}

	result := dbFrom(ctx, r.db).Model(&entity.Session{}).
		Where("id = ? AND status = ?", id, enum.SessionStatusOpen).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *sessionRepository) MoveTable(ctx context.Context, id uuid.UUID, tableID uuid.UUID, note string) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Session{}).
		Where("id = ? AND status = ?", id, enum.SessionStatusOpen).
		Updates(map[string]interface{}{
			"table_id": tableID,
			"note":     note,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *sessionRepository) AddItem(ctx context.Context, item *entity.SessionItem) error {
	return dbFrom(ctx, r.db).Create(item).Error
}

func (r *sessionRepository) UpdateItemQty(ctx context.Context, itemID uuid.UUID, qty int) error {
	return dbFrom(ctx, r.db).Model(&entity.SessionItem{}).
		Where("id = ?", itemID).
		Update("qty", qty).Error
}

func (r *sessionRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.SessionItem{}, "id = ?", itemID).Error
}
