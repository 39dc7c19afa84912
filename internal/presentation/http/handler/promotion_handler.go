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

// PromotionHandler handles promotion HTTP requests
type PromotionHandler struct {
	promotionService *service.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

func promotionInput(req *request.PromotionRequest) *service.PromotionInput {
	return &service.PromotionInput{
		Name:           req.Name,
		Code:           req.Code,
		Description:    req.Description,
		Scope:          enum.PromotionScope(req.Scope),
		Rule:           req.Rule,
		Active:         req.Active,
		ApplyOrder:     req.ApplyOrder,
		Stackable:      req.Stackable,
		ValidFrom:      req.ValidFrom,
		ValidTo:        req.ValidTo,
		DaysOfWeek:     req.DaysOfWeek,
		TimeWindows:    req.TimeWindows,
		DiscountType:   enum.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		DiscountTarget: enum.DiscountTarget(req.DiscountTarget),
		MaxDiscount:    req.MaxDiscount,
	}
}

// List lists promotions
func (h *PromotionHandler) List(c *gin.Context) {
	var filter request.PromotionFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.PromotionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Active: filter.Active,
		Search: filter.Search,
	}
	if filter.Scope != "" {
		scope := enum.PromotionScope(filter.Scope)
		params.Scope = &scope
	}

	result, err := h.promotionService.ListPromotions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Promotions retrieved successfully", result)
}

// Get retrieves a promotion
func (h *PromotionHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	promotion, err := h.promotionService.GetPromotion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion retrieved successfully", promotion)
}

// Create creates a promotion
func (h *PromotionHandler) Create(c *gin.Context) {
	var req request.PromotionRequest
	if !bindJSON(c, &req) {
		return
	}

	promotion, err := h.promotionService.CreatePromotion(c.Request.Context(), promotionInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Promotion created successfully", promotion)
}

// Update replaces a promotion definition
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.PromotionRequest
	if !bindJSON(c, &req) {
		return
	}

	promotion, err := h.promotionService.UpdatePromotion(c.Request.Context(), id, promotionInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion updated successfully", promotion)
}

// SetActive switches a promotion on or off
func (h *PromotionHandler) SetActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	promotion, err := h.promotionService.SetPromotionActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion updated successfully", promotion)
}
