package service

import (
	"context"
	"errors"
	"fmt"
	"math"
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
	"go.uber.org/zap"
)

// billCodeAttempts bounds how many generated codes checkout tries before
// giving up.
const billCodeAttempts = 5

// SessionService runs the table session lifecycle: check-in, items, preview,
// checkout, void and transfer.
type SessionService struct {
	tx            repository.Transactor
	sessionRepo   repository.SessionRepository
	tableRepo     repository.TableRepository
	productRepo   repository.ProductRepository
	promotionRepo repository.PromotionRepository
	billRepo      repository.BillRepository
	settings      *SettingsService
	logger        *zap.Logger
	now           func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(
	tx repository.Transactor,
	sessionRepo repository.SessionRepository,
	tableRepo repository.TableRepository,
	productRepo repository.ProductRepository,
	promotionRepo repository.PromotionRepository,
	billRepo repository.BillRepository,
	settings *SettingsService,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		tx:            tx,
		sessionRepo:   sessionRepo,
		tableRepo:     tableRepo,
		productRepo:   productRepo,
		promotionRepo: promotionRepo,
		billRepo:      billRepo,
		settings:      settings,
		logger:        logger.Named("session"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// OpenSessionInput represents the check-in input
type OpenSessionInput struct {
	TableID uuid.UUID
	StaffID *uuid.UUID
	StartAt *time.Time
	Note    string
}

// OpenSession checks a table in. The rate in effect at the start instant and
// the current rounding policy are frozen into the session.
func (s *SessionService) OpenSession(ctx context.Context, input *OpenSessionInput) (*entity.Session, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	start := s.now()
	if input.StartAt != nil {
		start = input.StartAt.UTC()
	}

	var session *entity.Session
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		table, err := s.tableRepo.GetByID(ctx, input.TableID)
		if err != nil {
			return err
		}
		if table == nil {
			return apperror.NewNotFoundError("Table")
		}
		if !table.Active {
			return apperror.NewConflictError("Table is not active")
		}

		existing, err := s.sessionRepo.GetOpenByTable(ctx, table.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Table already has an open session")
		}

		rate := billing.ResolveRate(table.Rates(), start.In(settings.Location()))
		session = &entity.Session{
			TableID: table.ID,
			Status:  enum.SessionStatusOpen,
			Snapshot: entity.TableSnapshot{
				TableTypeID: table.TableTypeID,
				TableName:   table.Name,
				RatePerHour: rate.PerHour,
				RateSource:  rate.Source,
			},
			Rounding:     entity.NewPolicySnapshot(settings.RoundingPolicy()),
			StartAt:      start,
			StaffStartID: input.StaffID,
			Note:         strings.TrimSpace(input.Note),
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return apperror.NewConflictError("Table already has an open session")
			}
			return err
		}

		return s.tableRepo.ForceStatus(ctx, table.ID, enum.TableStatusOccupied)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session opened",
		zap.String("session_id", session.ID.String()),
		zap.String("table_id", session.TableID.String()),
		zap.Int64("rate_per_hour", session.Snapshot.RatePerHour),
		zap.String("rate_source", session.Snapshot.RateSource.String()),
	)

	session.Items = []entity.SessionItem{}
	return session, nil
}

// GetSession retrieves a session with its items
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// GetOpenSessionByTable returns the open session of a table
func (s *SessionService) GetOpenSessionByTable(ctx context.Context, tableID uuid.UUID) (*entity.Session, error) {
	session, err := s.sessionRepo.GetOpenByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Open session")
	}
	return session, nil
}

// ListSessions lists sessions with filtering
func (s *SessionService) ListSessions(ctx context.Context, params *repository.SessionFilterParams) (*pagination.PaginatedResult[entity.Session], error) {
	sessions, total, err := s.sessionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}

// openSessionFor loads a session that must still accept item changes
func (s *SessionService) openSessionFor(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, apperror.NewInvalidStateError("Session is not open")
	}
	return session, nil
}

// AddItemInput represents a product added to a session
type AddItemInput struct {
	ProductID uuid.UUID
	Qty       int
	Note      string
}

// AddItem adds a product at its current price. A product already on the
// session has its quantity increased instead.
func (s *SessionService) AddItem(ctx context.Context, sessionID uuid.UUID, input *AddItemInput) (*entity.Session, error) {
	if input.Qty <= 0 {
		return nil, apperror.NewFieldError("qty", "must be greater than zero")
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.openSessionFor(ctx, sessionID)
		if err != nil {
			return err
		}

		product, err := s.productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}
		if !product.Active {
			return apperror.NewInvalidStateError(fmt.Sprintf("Product %s is not active", product.Name))
		}

		if existing := session.FindProductItem(product.ID); existing != nil {
			return s.sessionRepo.UpdateItemQty(ctx, existing.ID, existing.Qty+input.Qty)
		}

		position := 0
		for _, it := range session.Items {
			if it.Position >= position {
				position = it.Position + 1
			}
		}
		productID := product.ID
		return s.sessionRepo.AddItem(ctx, &entity.SessionItem{
			SessionID:  session.ID,
			ProductID:  &productID,
			CategoryID: product.CategoryID,
			Name:       product.Name,
			Price:      product.Price,
			Qty:        input.Qty,
			Note:       strings.TrimSpace(input.Note),
			Position:   position,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetSession(ctx, sessionID)
}

// UpdateItemQty sets an item's quantity. A quantity of zero or less removes
// the item.
func (s *SessionService) UpdateItemQty(ctx context.Context, sessionID, itemID uuid.UUID, qty int) (*entity.Session, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.openSessionFor(ctx, sessionID)
		if err != nil {
			return err
		}
		item := session.FindItem(itemID)
		if item == nil {
			return apperror.NewNotFoundError("Session item")
		}
		if qty <= 0 {
			return s.sessionRepo.DeleteItem(ctx, item.ID)
		}
		return s.sessionRepo.UpdateItemQty(ctx, item.ID, qty)
	})
	if err != nil {
		return nil, err
	}

	return s.GetSession(ctx, sessionID)
}

// RemoveItem deletes an item from an open session
func (s *SessionService) RemoveItem(ctx context.Context, sessionID, itemID uuid.UUID) (*entity.Session, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.openSessionFor(ctx, sessionID)
		if err != nil {
			return err
		}
		item := session.FindItem(itemID)
		if item == nil {
			return apperror.NewNotFoundError("Session item")
		}
		return s.sessionRepo.DeleteItem(ctx, item.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetSession(ctx, sessionID)
}

// ManualDiscount is a discount entered by staff at checkout. It is applied
// after every catalog promotion and draws from the same pools.
type ManualDiscount struct {
	Name      string
	Type      enum.DiscountType
	Value     decimal.Decimal
	Target    enum.DiscountTarget
	MaxAmount *int64
}

func (d ManualDiscount) discount() billing.Discount {
	target := d.Target
	if target == "" {
		target = enum.DiscountTargetBill
	}
	return billing.Discount{Type: d.Type, Value: d.Value, Target: target, MaxAmount: d.MaxAmount}
}

func (d ManualDiscount) promotion() billing.Promotion {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = "Manual discount"
	}
	return billing.Promotion{
		Name:       name,
		Active:     true,
		ApplyOrder: math.MaxInt,
		Stackable:  true,
		Rule:       billing.BillRule{},
		Discount:   d.discount(),
		Manual:     true,
	}
}

// quote is a session priced up to some end instant
type quote struct {
	charges  billing.Charges
	items    []billing.ItemSnapshot
	promos   billing.PromotionResult
	location *time.Location
}

// price meters the session up to end from its own snapshots and evaluates the
// active promotions, followed by any manual discounts.
func (s *SessionService) price(ctx context.Context, session *entity.Session, end time.Time, manual []ManualDiscount) (*quote, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	items := session.ItemSnapshots()
	charges := billing.ComputeCharges(session.StartAt, end, session.Snapshot.RatePerHour, session.Rounding.Policy(), items)

	stored, err := s.promotionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	promotions := make([]billing.Promotion, 0, len(stored)+len(manual))
	for i := range stored {
		p, err := stored[i].ToBilling()
		if err != nil {
			s.logger.Warn("skipping promotion with unreadable rule",
				zap.String("promotion_id", stored[i].ID.String()),
				zap.Error(err),
			)
			continue
		}
		promotions = append(promotions, p)
	}
	for _, m := range manual {
		promotions = append(promotions, m.promotion())
	}

	loc := settings.Location()
	pctx := charges.PromotionContext(end.In(loc), session.Snapshot.TableTypeID, items)
	return &quote{
		charges:  charges,
		items:    items,
		promos:   billing.ApplyPromotions(pctx, promotions),
		location: loc,
	}, nil
}

// SessionPreview is the projected bill of an open session
type SessionPreview struct {
	SessionID       uuid.UUID              `json:"session_id"`
	StartAt         time.Time              `json:"start_at"`
	EndAt           time.Time              `json:"end_at"`
	RawMinutes      int                    `json:"raw_minutes"`
	BillableMinutes int                    `json:"billable_minutes"`
	RatePerHour     int64                  `json:"rate_per_hour"`
	PlayAmount      int64                  `json:"play_amount"`
	ServiceAmount   int64                  `json:"service_amount"`
	SubTotal        int64                  `json:"sub_total"`
	Discounts       []billing.DiscountLine `json:"discounts"`
	DiscountTotal   int64                  `json:"discount_total"`
	Total           int64                  `json:"total"`
}

// PreviewClose prices the session as if it were checked out at endAt (now
// when nil). Nothing is written.
func (s *SessionService) PreviewClose(ctx context.Context, sessionID uuid.UUID, endAt *time.Time) (*SessionPreview, error) {
	session, err := s.openSessionFor(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	end := s.now()
	if endAt != nil {
		end = endAt.UTC()
	}

	q, err := s.price(ctx, session, end, nil)
	if err != nil {
		return nil, err
	}
	asm := billing.Assemble(q.charges, q.items, q.promos.Lines, 0, billing.Payment{})

	return &SessionPreview{
		SessionID:       session.ID,
		StartAt:         session.StartAt,
		EndAt:           end,
		RawMinutes:      q.charges.RawMinutes,
		BillableMinutes: q.charges.BillableMinutes,
		RatePerHour:     q.charges.RatePerHour,
		PlayAmount:      asm.PlayAmount,
		ServiceAmount:   asm.ServiceAmount,
		SubTotal:        asm.SubTotal,
		Discounts:       asm.Discounts,
		DiscountTotal:   asm.DiscountTotal,
		Total:           asm.Total,
	}, nil
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	EndAt         *time.Time
	Discounts     []ManualDiscount
	Surcharge     int64
	PaymentMethod enum.PaymentMethod
	Paid          *bool
	Code          string
	Note          string
	StaffID       *uuid.UUID
}

func (in *CheckoutInput) validate() error {
	var fieldErrors []apperror.FieldError
	if in.Surcharge < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "surcharge", Message: "must not be negative"})
	}
	if in.PaymentMethod != "" && !in.PaymentMethod.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "must be cash, card, transfer or other"})
	}
	for i, d := range in.Discounts {
		if err := billing.ValidateDiscount(d.discount()); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("discounts[%d]", i),
				Message: err.Error(),
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CheckoutResult is the closed session and its bill
type CheckoutResult struct {
	Session *entity.Session `json:"session"`
	Bill    *entity.Bill    `json:"bill"`
}

// Checkout closes the session and writes its bill in one transaction.
func (s *SessionService) Checkout(ctx context.Context, sessionID uuid.UUID, input *CheckoutInput) (*CheckoutResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	end := s.now()
	if input.EndAt != nil {
		end = input.EndAt.UTC()
	}

	payment := billing.Payment{Paid: true, Method: enum.PaymentMethodCash}
	if input.Paid != nil {
		payment.Paid = *input.Paid
	}
	if input.PaymentMethod != "" {
		payment.Method = input.PaymentMethod
	}
	if payment.Paid {
		paidAt := end
		payment.PaidAt = &paidAt
	}

	var bill *entity.Bill
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return apperror.NewConflictError("Session is already closed")
		}

		q, err := s.price(ctx, session, end, input.Discounts)
		if err != nil {
			return err
		}
		asm := billing.Assemble(q.charges, q.items, q.promos.Lines, input.Surcharge, payment)

		tableName := session.Snapshot.TableName
		table, err := s.tableRepo.GetByID(ctx, session.TableID)
		if err != nil {
			return err
		}
		if table != nil {
			tableName = table.Name
		}

		bill = entity.NewBill(session, tableName, end, q.charges.MinuteResult, asm)
		bill.StaffID = input.StaffID
		bill.Note = strings.TrimSpace(input.Note)
		if bill.Note == "" {
			bill.Note = strings.TrimSpace(session.Note)
		}
		if err := s.createBill(ctx, bill, input.Code, end.In(q.location)); err != nil {
			return err
		}

		duration := q.charges.BillableMinutes
		closed, err := s.sessionRepo.Close(ctx, session.ID, repository.SessionClose{
			Status:          enum.SessionStatusClosed,
			EndAt:           end,
			DurationMinutes: &duration,
			StaffEndID:      input.StaffID,
		})
		if err != nil {
			return err
		}
		if !closed {
			return apperror.NewConflictError("Session is already closed")
		}

		return s.tableRepo.ForceStatus(ctx, session.TableID, enum.TableStatusAvailable)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session checked out",
		zap.String("session_id", sessionID.String()),
		zap.String("bill_code", bill.Code),
		zap.Int64("total", bill.Total),
	)

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Session: session, Bill: bill}, nil
}

// createBill stores the bill under the supplied code, or under a generated
// one retried in its own savepoint until it is unique.
func (s *SessionService) createBill(ctx context.Context, bill *entity.Bill, code string, localEnd time.Time) error {
	if code = utils.NormalizeCode(code); code != "" {
		bill.Code = code
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return s.billRepo.Create(ctx, bill)
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				if billed, lookupErr := s.sessionBilled(ctx, bill.SessionID); lookupErr != nil || billed {
					return alreadyBilled(lookupErr)
				}
				return apperror.NewConflictError(fmt.Sprintf("Bill code %s already exists", code))
			}
			return err
		}
		return nil
	}

	for attempt := 1; attempt <= billCodeAttempts; attempt++ {
		bill.Code = utils.GenerateBillCode(localEnd)
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return s.billRepo.Create(ctx, bill)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}
		if billed, lookupErr := s.sessionBilled(ctx, bill.SessionID); lookupErr != nil || billed {
			return alreadyBilled(lookupErr)
		}
		s.logger.Warn("bill code collision", zap.String("code", bill.Code), zap.Int("attempt", attempt))
	}
	return apperror.NewConflictError("Could not allocate a unique bill code")
}

// sessionBilled reports whether another checkout already stored a bill for
// the session.
func (s *SessionService) sessionBilled(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	existing, err := s.billRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func alreadyBilled(err error) error {
	if err != nil {
		return err
	}
	return apperror.NewConflictError("Session is already closed")
}

// VoidSessionInput represents the void input
type VoidSessionInput struct {
	Reason  string
	StaffID *uuid.UUID
}

// VoidSession closes a mistaken check-in without a bill.
func (s *SessionService) VoidSession(ctx context.Context, sessionID uuid.UUID, input *VoidSessionInput) (*entity.Session, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = "void"
	}
	end := s.now()

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return apperror.NewConflictError("Session is already closed")
		}

		closed, err := s.sessionRepo.Close(ctx, session.ID, repository.SessionClose{
			Status:     enum.SessionStatusVoid,
			EndAt:      end,
			StaffEndID: input.StaffID,
			VoidReason: reason,
		})
		if err != nil {
			return err
		}
		if !closed {
			return apperror.NewConflictError("Session is already closed")
		}

		return s.tableRepo.ForceStatus(ctx, session.TableID, enum.TableStatusAvailable)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session voided",
		zap.String("session_id", sessionID.String()),
		zap.String("reason", reason),
	)

	return s.GetSession(ctx, sessionID)
}

// TransferSessionInput represents a table change
type TransferSessionInput struct {
	ToTableID uuid.UUID
	Note      string
	StaffID   *uuid.UUID
}

// TransferSession moves an open session to another free table with the same
// hourly rate. Table statuses are switched first and restored if the session
// cannot be moved.
func (s *SessionService) TransferSession(ctx context.Context, sessionID uuid.UUID, input *TransferSessionInput) (*entity.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, apperror.NewConflictError("Session is already closed")
	}
	if session.TableID == input.ToTableID {
		return session, nil
	}

	from, err := s.tableRepo.GetByID(ctx, session.TableID)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	to, err := s.tableRepo.GetByID(ctx, input.ToTableID)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, apperror.NewNotFoundError("Destination table")
	}
	if !to.Active {
		return nil, apperror.NewConflictError("Destination table is not active")
	}
	if to.Status != enum.TableStatusAvailable {
		return nil, apperror.NewConflictError("Destination table is not available")
	}
	occupant, err := s.sessionRepo.GetOpenByTable(ctx, to.ID)
	if err != nil {
		return nil, err
	}
	if occupant != nil {
		return nil, apperror.NewConflictError("Destination table already has an open session")
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	rate := billing.ResolveRate(to.Rates(), s.now().In(settings.Location()))
	if rate.PerHour != session.Snapshot.RatePerHour {
		return nil, apperror.NewConflictError(fmt.Sprintf(
			"Destination table rate %d differs from the session rate %d",
			rate.PerHour, session.Snapshot.RatePerHour,
		))
	}

	claimed, err := s.tableRepo.SetStatus(ctx, to.ID, enum.TableStatusAvailable, enum.TableStatusOccupied)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperror.NewConflictError("Destination table is not available")
	}
	if err := s.tableRepo.ForceStatus(ctx, from.ID, enum.TableStatusAvailable); err != nil {
		s.restoreTables(ctx, session.ID, from, to)
		return nil, err
	}

	note := appendNote(session.Note, fmt.Sprintf("Transfer: %s -> %s.", from.Name, to.Name), input.Note)
	moved, err := s.sessionRepo.MoveTable(ctx, session.ID, to.ID, note)
	if err != nil || !moved {
		s.restoreTables(ctx, session.ID, from, to)
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, apperror.NewConflictError("Destination table just got a new open session")
		case err != nil:
			return nil, err
		default:
			return nil, apperror.NewConflictError("Session is already closed")
		}
	}

	s.logger.Info("session transferred",
		zap.String("session_id", session.ID.String()),
		zap.String("from_table_id", from.ID.String()),
		zap.String("to_table_id", to.ID.String()),
	)

	return s.GetSession(ctx, sessionID)
}

// restoreTables puts both tables back to their pre-transfer statuses.
func (s *SessionService) restoreTables(ctx context.Context, sessionID uuid.UUID, from, to *entity.Table) {
	s.logger.Warn("transfer rollback",
		zap.String("session_id", sessionID.String()),
		zap.String("from_table_id", from.ID.String()),
		zap.String("to_table_id", to.ID.String()),
	)
	if err := s.tableRepo.ForceStatus(ctx, to.ID, to.Status); err != nil {
		s.logger.Error("failed to restore destination table", zap.String("table_id", to.ID.String()), zap.Error(err))
	}
	if err := s.tableRepo.ForceStatus(ctx, from.ID, from.Status); err != nil {
		s.logger.Error("failed to restore source table", zap.String("table_id", from.ID.String()), zap.Error(err))
	}
}

// appendNote adds a line to a session note
func appendNote(note, line, extra string) string {
	if extra = strings.TrimSpace(extra); extra != "" {
		line += " " + extra
	}
	if note = strings.TrimSpace(note); note == "" {
		return line
	}
	return note + "\n" + line
}
