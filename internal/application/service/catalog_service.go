package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/sangkips/cueclub-api/pkg/pagination"
	"gorm.io/datatypes"
)

// CatalogService manages table types, tables, categories and products
type CatalogService struct {
	tableTypeRepo repository.TableTypeRepository
	tableRepo     repository.TableRepository
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	tableTypeRepo repository.TableTypeRepository,
	tableRepo repository.TableRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *CatalogService {
	return &CatalogService{
		tableTypeRepo: tableTypeRepo,
		tableRepo:     tableRepo,
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// TableTypeInput represents the table type input
type TableTypeInput struct {
	Name        string
	Description *string
	BaseRate    int64
	Schedule    []billing.RateWindow
	Active      *bool
}

func (in *TableTypeInput) validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if in.BaseRate < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "base_rate", Message: "must not be negative"})
	}
	if err := billing.ValidateSchedule(in.Schedule); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "rate_schedule", Message: err.Error()})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateTableType creates a new table type with its rate schedule
func (s *CatalogService) CreateTableType(ctx context.Context, input *TableTypeInput) (*entity.TableType, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	tableType := &entity.TableType{
		Name:        strings.TrimSpace(input.Name),
		Description: optionalText(input.Description),
		BaseRate:    input.BaseRate,
		Schedule:    datatypes.NewJSONType(input.Schedule),
		Active:      boolOr(input.Active, true),
	}
	if err := s.tableTypeRepo.Create(ctx, tableType); err != nil {
		return nil, err
	}
	return tableType, nil
}

// UpdateTableType replaces a table type. Open sessions keep the rate they
// were opened with.
func (s *CatalogService) UpdateTableType(ctx context.Context, id uuid.UUID, input *TableTypeInput) (*entity.TableType, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	tableType, err := s.GetTableType(ctx, id)
	if err != nil {
		return nil, err
	}

	tableType.Name = strings.TrimSpace(input.Name)
	tableType.Description = optionalText(input.Description)
	tableType.BaseRate = input.BaseRate
	tableType.Schedule = datatypes.NewJSONType(input.Schedule)
	tableType.Active = boolOr(input.Active, tableType.Active)

	if err := s.tableTypeRepo.Update(ctx, tableType); err != nil {
		return nil, err
	}
	return tableType, nil
}

// GetTableType retrieves a table type by ID
func (s *CatalogService) GetTableType(ctx context.Context, id uuid.UUID) (*entity.TableType, error) {
	tableType, err := s.tableTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tableType == nil {
		return nil, apperror.NewNotFoundError("Table type")
	}
	return tableType, nil
}

// ListTableTypes lists every table type
func (s *CatalogService) ListTableTypes(ctx context.Context) ([]entity.TableType, error) {
	return s.tableTypeRepo.List(ctx)
}

// TableInput represents the table input
type TableInput struct {
	TableTypeID  uuid.UUID
	Name         string
	RateOverride *int64
	OrderIndex   int
	Active       *bool
}

func (in *TableInput) validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if in.TableTypeID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "table_type_id", Message: "is required"})
	}
	if in.RateOverride != nil && *in.RateOverride < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "rate_override", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateTable creates a new table
func (s *CatalogService) CreateTable(ctx context.Context, input *TableInput) (*entity.Table, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetTableType(ctx, input.TableTypeID); err != nil {
		return nil, err
	}

	table := &entity.Table{
		TableTypeID:  input.TableTypeID,
		Name:         strings.TrimSpace(input.Name),
		RateOverride: input.RateOverride,
		Status:       enum.TableStatusAvailable,
		OrderIndex:   input.OrderIndex,
		Active:       boolOr(input.Active, true),
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return s.tableRepo.GetByID(ctx, table.ID)
}

// UpdateTable updates a table. The display status is left to the session
// lifecycle.
func (s *CatalogService) UpdateTable(ctx context.Context, id uuid.UUID, input *TableInput) (*entity.Table, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	table, err := s.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if table.TableTypeID != input.TableTypeID {
		if _, err := s.GetTableType(ctx, input.TableTypeID); err != nil {
			return nil, err
		}
	}

	table.TableTypeID = input.TableTypeID
	table.Name = strings.TrimSpace(input.Name)
	table.RateOverride = input.RateOverride
	table.OrderIndex = input.OrderIndex
	table.Active = boolOr(input.Active, table.Active)

	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return s.tableRepo.GetByID(ctx, table.ID)
}

// GetTable retrieves a table with its type
func (s *CatalogService) GetTable(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

// ListTables lists tables in display order
func (s *CatalogService) ListTables(ctx context.Context, params *repository.TableFilterParams) ([]entity.Table, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, apperror.NewFieldError("status", "unknown table status")
	}
	return s.tableRepo.List(ctx, params)
}

// CategoryInput represents the category input
type CategoryInput struct {
	Name        string
	Description *string
	Active      *bool
}

// CreateCategory creates a new category
func (s *CatalogService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}

	category := &entity.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: optionalText(input.Description),
		Active:      boolOr(input.Active, true),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists every category
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// ProductInput represents the product input
type ProductInput struct {
	CategoryID *uuid.UUID
	Name       string
	SKU        *string
	Price      int64
	Unit       string
	Active     *bool
}

func (in *ProductInput) validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if in.Price < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func (s *CatalogService) checkCategory(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return nil
}

// CreateProduct creates a new product
func (s *CatalogService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		CategoryID: input.CategoryID,
		Name:       strings.TrimSpace(input.Name),
		SKU:        optionalText(input.SKU),
		Price:      input.Price,
		Unit:       strings.TrimSpace(input.Unit),
		Active:     boolOr(input.Active, true),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Product SKU already exists")
		}
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// UpdateProduct updates a product. Items already on a session keep the
// price they were added with.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Category = nil
	product.Name = strings.TrimSpace(input.Name)
	product.SKU = optionalText(input.SKU)
	product.Price = input.Price
	product.Unit = strings.TrimSpace(input.Unit)
	product.Active = boolOr(input.Active, product.Active)

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Product SKU already exists")
		}
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}
