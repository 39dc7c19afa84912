package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cueclub-api/internal/application/service"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cueclub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cueclub-api/pkg/pagination"
)

// CatalogHandler handles table types, tables, categories and products
type CatalogHandler struct {
	catalogService *service.CatalogService
	sessionService *service.SessionService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, sessionService *service.SessionService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, sessionService: sessionService}
}

func tableTypeInput(req *request.TableTypeRequest) *service.TableTypeInput {
	return &service.TableTypeInput{
		Name:        req.Name,
		Description: req.Description,
		BaseRate:    req.BaseRate,
		Schedule:    req.RateSchedule,
		Active:      req.Active,
	}
}

// ListTableTypes lists table types
func (h *CatalogHandler) ListTableTypes(c *gin.Context) {
	types, err := h.catalogService.ListTableTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table types retrieved successfully", types)
}

// CreateTableType creates a table type
func (h *CatalogHandler) CreateTableType(c *gin.Context) {
	var req request.TableTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	tt, err := h.catalogService.CreateTableType(c.Request.Context(), tableTypeInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Table type created successfully", tt)
}

// UpdateTableType updates a table type
func (h *CatalogHandler) UpdateTableType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.TableTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	tt, err := h.catalogService.UpdateTableType(c.Request.Context(), id, tableTypeInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table type updated successfully", tt)
}

func tableInput(req *request.TableRequest) *service.TableInput {
	return &service.TableInput{
		TableTypeID:  req.TableTypeID,
		Name:         req.Name,
		RateOverride: req.RateOverride,
		OrderIndex:   req.OrderIndex,
		Active:       req.Active,
	}
}

// ListTables lists tables with their display status
func (h *CatalogHandler) ListTables(c *gin.Context) {
	var filter request.TableFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.TableFilterParams{
		TableTypeID: optionalUUID(filter.TableTypeID),
		ActiveOnly:  filter.ActiveOnly,
	}
	if filter.Status != "" {
		status := enum.TableStatus(filter.Status)
		params.Status = &status
	}

	tables, err := h.catalogService.ListTables(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tables retrieved successfully", tables)
}

// GetTable retrieves a table
func (h *CatalogHandler) GetTable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	table, err := h.catalogService.GetTable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table retrieved successfully", table)
}

// CreateTable creates a table
func (h *CatalogHandler) CreateTable(c *gin.Context) {
	var req request.TableRequest
	if !bindJSON(c, &req) {
		return
	}

	table, err := h.catalogService.CreateTable(c.Request.Context(), tableInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Table created successfully", table)
}

// UpdateTable updates a table
func (h *CatalogHandler) UpdateTable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.TableRequest
	if !bindJSON(c, &req) {
		return
	}

	table, err := h.catalogService.UpdateTable(c.Request.Context(), id, tableInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table updated successfully", table)
}

// GetTableSession returns the open session of a table
func (h *CatalogHandler) GetTableSession(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetOpenSessionByTable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", session)
}

// ListCategories lists product categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// CreateCategory creates a product category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req request.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

func productInput(req *request.ProductRequest) *service.ProductInput {
	return &service.ProductInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		Unit:       req.Unit,
		Active:     req.Active,
	}
}

// ListProducts lists products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter request.ProductFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		CategoryID: optionalUUID(filter.CategoryID),
		ActiveOnly: filter.ActiveOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// GetProduct retrieves a product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// CreateProduct creates a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// UpdateProduct updates a product. Open sessions keep the price they
// captured.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}
