package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/sangkips/cueclub-api/pkg/pagination"
)

// BillService handles bill-related operations. Bills are created by
// checkout; this service only reads them and patches payment and note.
type BillService struct {
	billRepo repository.BillRepository
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository) *BillService {
	return &BillService{
		billRepo: billRepo,
	}
}

// GetBill retrieves a bill with its lines and discounts
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// GetBillBySession retrieves the bill of a closed session
func (s *BillService) GetBillBySession(ctx context.Context, sessionID uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with filtering
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, apperror.NewFieldError("end_date", "must not be before start_date")
	}

	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// PayBillInput represents a payment update
type PayBillInput struct {
	Paid          bool
	PaymentMethod enum.PaymentMethod
	PaidAt        *time.Time
}

// PayBill records the payment state of a bill. Marking a bill unpaid clears
// its payment time.
func (s *BillService) PayBill(ctx context.Context, id uuid.UUID, input *PayBillInput) (*entity.Bill, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	method := input.PaymentMethod
	if method == "" {
		method = bill.PaymentMethod
	}
	if method == "" {
		method = enum.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, apperror.NewFieldError("payment_method", "must be cash, card, transfer or other")
	}

	var paidAt *time.Time
	if input.Paid {
		at := time.Now().UTC()
		if input.PaidAt != nil {
			at = input.PaidAt.UTC()
		}
		paidAt = &at
	}

	if err := s.billRepo.SetPayment(ctx, bill.ID, input.Paid, method, paidAt); err != nil {
		return nil, err
	}

	return s.GetBill(ctx, id)
}

// SetBillNote replaces the note of a bill
func (s *BillService) SetBillNote(ctx context.Context, id uuid.UUID, note string) (*entity.Bill, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.SetNote(ctx, bill.ID, strings.TrimSpace(note)); err != nil {
		return nil, err
	}

	return s.GetBill(ctx, id)
}
