package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type tableTypeRepository struct {
	db *gorm.DB
}

// NewTableTypeRepository creates a new table type repository
func NewTableTypeRepository(db *gorm.DB) domainRepo.TableTypeRepository {
	return &tableTypeRepository{db: db}
}

func (r *tableTypeRepository) Create(ctx context.Context, tableType *entity.TableType) error {
	return translate(dbFrom(ctx, r.db).Create(tableType).Error)
}

func (r *tableTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TableType, error) {
	var tableType entity.TableType
	err := dbFrom(ctx, r.db).First(&tableType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tableType, err
}

func (r *tableTypeRepository) Update(ctx context.Context, tableType *entity.TableType) error {
	return translate(dbFrom(ctx, r.db).Save(tableType).Error)
}

func (r *tableTypeRepository) List(ctx context.Context) ([]entity.TableType, error) {
	var types []entity.TableType
	err := dbFrom(ctx, r.db).Order("name ASC").Find(&types).Error
	return types, err
}

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.Table) error {
	return translate(dbFrom(ctx, r.db).Omit("TableType").Create(table).Error)
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	err := dbFrom(ctx, r.db).
		Preload("TableType").
		First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) Update(ctx context.Context, table *entity.Table) error {
	return translate(dbFrom(ctx, r.db).Omit("TableType").Save(table).Error)
}

func (r *tableRepository) List(ctx context.Context, params *domainRepo.TableFilterParams) ([]entity.Table, error) {
	var tables []entity.Table

	query := dbFrom(ctx, r.db).Model(&entity.Table{})
	if params != nil {
		if params.TableTypeID != nil {
			query = query.Where("table_type_id = ?", *params.TableTypeID)
		}
		if params.Status != nil {
			query = query.Where("status = ?", *params.Status)
		}
		if params.ActiveOnly {
			query = query.Where("active = ?", true)
		}
	}

	err := query.Preload("TableType").
		Order("order_index ASC").
		Order("name ASC").
		Find(&tables).Error
	return tables, err
}

// SetStatus is a compare-and-set:
// UPDATE tables SET status = to WHERE id = ? AND status = from
func (r *tableRepository) SetStatus(ctx context.Context, id uuid.UUID, from, to enum.TableStatus) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Table{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *tableRepository) ForceStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.Table{}).
		Where("id = ?", id).
		Update("status", status).Error
}
