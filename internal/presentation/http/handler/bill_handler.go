package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cueclub-api/internal/application/service"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cueclub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/sangkips/cueclub-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// BillHandler handles bill HTTP requests
type BillHandler struct {
	billService     *service.BillService
	settingsService *service.SettingsService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, settingsService *service.SettingsService) *BillHandler {
	return &BillHandler{billService: billService, settingsService: settingsService}
}

// List lists bills. Date filters are venue-local calendar days.
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Paid:    filter.Paid,
		TableID: optionalUUID(filter.TableID),
		Search:  filter.Search,
	}

	if filter.StartDate != "" || filter.EndDate != "" {
		settings, err := h.settingsService.GetSettings(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		loc := settings.Location()
		if filter.StartDate != "" {
			start, err := time.ParseInLocation(dateLayout, filter.StartDate, loc)
			if err != nil {
				response.Error(c, apperror.NewFieldError("start_date", "must be YYYY-MM-DD"))
				return
			}
			params.StartDate = &start
		}
		if filter.EndDate != "" {
			day, err := time.ParseInLocation(dateLayout, filter.EndDate, loc)
			if err != nil {
				response.Error(c, apperror.NewFieldError("end_date", "must be YYYY-MM-DD"))
				return
			}
			end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
			params.EndDate = &end
		}
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get retrieves a bill with its lines and discounts
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// GetBySession retrieves the bill of a session
func (h *BillHandler) GetBySession(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.GetBillBySession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Pay records the payment state of a bill
func (h *BillHandler) Pay(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.PayBillRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := h.billService.PayBill(c.Request.Context(), id, &service.PayBillInput{
		Paid:          *req.Paid,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		PaidAt:        req.PaidAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill payment updated successfully", bill)
}

// SetNote replaces the note of a bill
func (h *BillHandler) SetNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.BillNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := h.billService.SetBillNote(c.Request.Context(), id, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill note updated successfully", bill)
}
