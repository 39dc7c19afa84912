package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cueclub-api/internal/application/service"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cueclub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/sangkips/cueclub-api/pkg/pagination"
)

// SessionHandler handles table session HTTP requests
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Open checks a table in
// @Summary Open session
// @Tags sessions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.OpenSessionRequest true "Check-in"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /sessions [post]
func (h *SessionHandler) Open(c *gin.Context) {
	var req request.OpenSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), &service.OpenSessionInput{
		TableID: req.TableID,
		StaffID: GetStaffID(c),
		StartAt: req.StartAt,
		Note:    req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened successfully", session)
}

// List lists sessions
func (h *SessionHandler) List(c *gin.Context) {
	var filter request.SessionFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.SessionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		TableID: optionalUUID(filter.TableID),
	}
	if filter.Status != "" {
		status := enum.SessionStatus(filter.Status)
		if !status.IsValid() {
			response.Error(c, apperror.NewFieldError("status", "must be open, closed or void"))
			return
		}
		params.Status = &status
	}

	result, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sessions retrieved successfully", result)
}

// Get retrieves a session with its items
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", session)
}

// AddItem adds a product to an open session
func (h *SessionHandler) AddItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionService.AddItem(c.Request.Context(), id, &service.AddItemInput{
		ProductID: req.ProductID,
		Qty:       req.Qty,
		Note:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added successfully", session)
}

// UpdateItem sets the quantity of a session item
func (h *SessionHandler) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var req request.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionService.UpdateItemQty(c.Request.Context(), id, itemID, *req.Qty)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", session)
}

// RemoveItem removes an item from a session
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	session, err := h.sessionService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", session)
}

// Preview projects the bill of an open session without closing it
func (h *SessionHandler) Preview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	endAt, ok := queryTime(c, "end_at")
	if !ok {
		return
	}

	preview, err := h.sessionService.PreviewClose(c.Request.Context(), id, endAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preview calculated successfully", preview)
}

// Checkout closes a session and issues its bill
// @Summary Checkout session
// @Tags sessions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.CheckoutRequest false "Checkout options"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /sessions/{id}/checkout [post]
func (h *SessionHandler) Checkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.CheckoutRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	discounts := make([]service.ManualDiscount, 0, len(req.Discounts))
	for _, d := range req.Discounts {
		discounts = append(discounts, service.ManualDiscount{
			Name:      d.Name,
			Type:      enum.DiscountType(d.Type),
			Value:     d.Value,
			Target:    enum.DiscountTarget(d.Target),
			MaxAmount: d.MaxAmount,
		})
	}

	result, err := h.sessionService.Checkout(c.Request.Context(), id, &service.CheckoutInput{
		EndAt:         req.EndAt,
		Discounts:     discounts,
		Surcharge:     req.Surcharge,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Paid:          req.Paid,
		Code:          req.Code,
		Note:          req.Note,
		StaffID:       GetStaffID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session checked out successfully", result)
}

// Void closes a session without a bill
func (h *SessionHandler) Void(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.VoidSessionRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionService.VoidSession(c.Request.Context(), id, &service.VoidSessionInput{
		Reason:  req.Reason,
		StaffID: GetStaffID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session voided successfully", session)
}

// Transfer moves a session to another table
func (h *SessionHandler) Transfer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.TransferSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionService.TransferSession(c.Request.Context(), id, &service.TransferSessionInput{
		ToTableID: req.ToTableID,
		Note:      req.Note,
		StaffID:   GetStaffID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session transferred successfully", session)
}
