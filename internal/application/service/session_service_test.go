package service_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/application/service"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var billCodePattern = regexp.MustCompile(`^B20240306-[0-9A-F]{6}$`)

func billPromotion(name string, percent int64) *service.PromotionInput {
	return &service.PromotionInput{
		Name:           name,
		Scope:          enum.PromotionScopeBill,
		Stackable:      true,
		DiscountType:   enum.DiscountTypePercent,
		DiscountValue:  decimal.NewFromInt(percent),
		DiscountTarget: enum.DiscountTargetBill,
	}
}

func TestSessionService_CheckoutEndToEnd(t *testing.T) {
	// GIVEN a 50,000/h table, step 15 ceil with 5 minutes grace, two drinks
	// at 20,000 and a 10% bill promotion
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, f.tableType(t, "Pool", 50000).ID, "T1")
	drink := f.product(t, "Drink", 20000)
	_, err := f.promotions.CreatePromotion(ctx, billPromotion("Ten off", 10))
	require.NoError(t, err)

	session := f.open(t, table.ID, at(10, 0))
	assert.Equal(t, int64(50000), session.Snapshot.RatePerHour)
	assert.Equal(t, enum.RateSourceBase, session.Snapshot.RateSource)
	assert.Equal(t, 15, session.Rounding.Step)
	assert.Equal(t, enum.TableStatusOccupied, f.tableStatus(t, table.ID))

	_, err = f.sessions.AddItem(ctx, session.ID, &service.AddItemInput{ProductID: drink.ID, Qty: 2})
	require.NoError(t, err)

	// WHEN the session is checked out at 10:42
	end := at(10, 42)
	result, err := f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{EndAt: &end})
	require.NoError(t, err)

	// THEN the bill reconciles
	bill := result.Bill
	assert.Equal(t, 42, bill.RawMinutes)
	assert.Equal(t, 45, bill.BillableMinutes)
	assert.Equal(t, int64(37500), bill.PlayAmount)
	assert.Equal(t, int64(40000), bill.ServiceAmount)
	assert.Equal(t, int64(77500), bill.SubTotal)
	assert.Equal(t, int64(7750), bill.DiscountTotal)
	assert.Equal(t, int64(69750), bill.Total)
	assert.True(t, bill.Paid)
	assert.Equal(t, enum.PaymentMethodCash, bill.PaymentMethod)
	assert.Equal(t, "T1", bill.TableName)
	assert.Regexp(t, billCodePattern, bill.Code)
	require.Len(t, bill.Lines, 2)
	assert.Equal(t, enum.BillLineTypePlay, bill.Lines[0].Type)
	assert.Equal(t, enum.BillLineTypeProduct, bill.Lines[1].Type)
	require.Len(t, bill.Discounts, 1)
	assert.Equal(t, int64(7750), bill.Discounts[0].Amount)

	assert.Equal(t, enum.SessionStatusClosed, result.Session.Status)
	require.NotNil(t, result.Session.DurationMinutes)
	assert.Equal(t, 45, *result.Session.DurationMinutes)
	assert.Equal(t, enum.TableStatusAvailable, f.tableStatus(t, table.ID))

	stored, err := f.bills.GetBillBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.Code, stored.Code)
	assert.Len(t, stored.Lines, 2)
	assert.Len(t, stored.Discounts, 1)
}

func TestSessionService_ConcurrentOpenExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, f.tableType(t, "Pool", 50000).ID, "T1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.sessions.OpenSession(context.Background(), &service.OpenSessionInput{TableID: table.ID})
		}(i)
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperror.IsKind(err, apperror.KindConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicts)
}

func TestSessionService_OpenRejectsUnknownAndInactiveTables(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tt := f.tableType(t, "Pool", 50000)
	inactive := false
	table, err := f.catalog.CreateTable(ctx, &service.TableInput{TableTypeID: tt.ID, Name: "Closed", Active: &inactive})
	require.NoError(t, err)

	_, err = f.sessions.OpenSession(ctx, &service.OpenSessionInput{TableID: uuid.New()})
	assertKind(t, err, apperror.KindNotFound)

	_, err = f.sessions.OpenSession(ctx, &service.OpenSessionInput{TableID: table.ID})
	assertKind(t, err, apperror.KindConflict)
}

func TestSessionService_OpenUsesOverrideRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tt := f.tableType(t, "Pool", 50000)
	override := int64(70000)
	table, err := f.catalog.CreateTable(ctx, &service.TableInput{TableTypeID: tt.ID, Name: "VIP", RateOverride: &override})
	require.NoError(t, err)

	session := f.open(t, table.ID, at(10, 0))

	assert.Equal(t, int64(70000), session.Snapshot.RatePerHour)
	assert.Equal(t, enum.RateSourceOverride, session.Snapshot.RateSource)
}

func TestSessionService_Items(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, f.tableType(t, "Pool", 50000).ID, "T1")
	drink := f.product(t, "Drink", 20000)
	session := f.open(t, table.ID, at(10, 0))

	t.Run("adding the same product merges quantities", func(t *testing.T) {
		_, err := f.sessions.AddItem(ctx, session.ID, &service.AddItemInput{ProductID: drink.ID, Qty: 1})
		require.NoError(t, err)
		got, err := f.sessions.AddItem(ctx, session.ID, &service.AddItemInput{ProductID: drink.ID, Qty: 2})
		require.NoError(t, err)

		require.Len(t, got.Items, 1)
		assert.Equal(t, 3, got.Items[0].Qty)
	})

	t.Run("price is frozen when the item is added", func(t *testing.T) {
		_, err := f.catalog.UpdateProduct(ctx, drink.ID, &service.ProductInput{Name: "Drink", Price: 99000})
		require.NoError(t, err)

		got, err := f.sessions.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), got.Items[0].Price)
	})

	t.Run("non positive quantity on add is rejected", func(t *testing.T) {
		_, err := f.sessions.AddItem(ctx, session.ID, &service.AddItemInput{ProductID: drink.ID, Qty: 0})
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("inactive and unknown products", func(t *testing.T) {
		inactive := false
		retired, err := f.catalog.CreateProduct(ctx, &service.ProductInput{Name: "Old", Price: 1000, Active: &inactive})
		require.NoError(t, err)

		_, err = f.sessions.AddItem(ctx, session.ID, &service.AddItemInput{ProductID: retired.ID, Qty: 1})
		assertKind(t, err, apperror.KindInvalidState)

		_, err = f.sessions.AddItem(ctx, session.ID, &service.AddItemInput{ProductID: uuid.New(), Qty: 1})
		assertKind(t, err, apperror.KindNotFound)
	})

	t.Run("updating to zero removes the item", func(t *testing.T) {
		current, err := f.sessions.GetSession(ctx, session.ID)
		require.NoError(t, err)
		itemID := current.Items[0].ID

		got, err := f.sessions.UpdateItemQty(ctx, session.ID, itemID, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Items[0].Qty)

		got, err = f.sessions.UpdateItemQty(ctx, session.ID, itemID, 0)
		require.NoError(t, err)
		assert.Empty(t, got.Items)

		_, err = f.sessions.RemoveItem(ctx, session.ID, itemID)
		assertKind(t, err, apperror.KindNotFound)
	})
}

func TestSessionService_PreviewIsRepeatableAndReadOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, f.tableType(t, "Pool", 50000).ID, "T1")
	drink := f.product(t, "Drink", 20000)
	_, err := f.promotions.CreatePromotion(ctx, billPromotion("Ten off", 10))
	require.NoError(t, err)
	session := f.open(t, table.ID, at(10, 0))
	_, err = f.sessions.AddItem(ctx, session.ID, &service.AddItemInput{ProductID: drink.ID, Qty: 2})
	require.NoError(t, err)

	end := at(10, 42)
	first, err := f.sessions.PreviewClose(ctx, session.ID, &end)
	require.NoError(t, err)
	second, err := f.sessions.PreviewClose(ctx, session.ID, &end)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 45, first.BillableMinutes)
	assert.Equal(t, int64(77500), first.SubTotal)
	assert.Equal(t, int64(7750), first.DiscountTotal)
	assert.Equal(t, int64(69750), first.Total)

	after, err := f.sessions.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SessionStatusOpen, after.Status)
	assert.Nil(t, after.EndAt)
	assert.Len(t, after.Items, 1)
}

func TestSessionService_PreviewWithinGraceIsFree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, f.tableType(t, "Pool", 50000).ID, "T1")
	session := f.open(t, table.ID, at(10, 0))

	end := at(10, 5)
	preview, err := f.sessions.PreviewClose(ctx, session.ID, &end)

	require.NoError(t, err)
	assert.Equal(t, 5, preview.RawMinutes)
	assert.Equal(t, 0, preview.BillableMinutes)
	assert.Equal(t, int64(0), preview.Total)
}

func TestSessionService_TerminalSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, f.tableType(t, "Pool", 50000).ID, "T1")
	other := f.table(t, f.tableType(t, "Pool", 50000).ID, "T2")
	drink := f.product(t, "Drink", 20000)
	session := f.open(t, table.ID, at(10, 0))

	voided, err := f.sessions.VoidSession(ctx, session.ID, &service.VoidSessionInput{})
	require.NoError(t, err)
	assert.Equal(t, enum.SessionStatusVoid, voided.Status)
	assert.Equal(t, "void", voided.VoidReason)
	assert.NotNil(t, voided.EndAt)
	assert.Equal(t, enum.TableStatusAvailable, f.tableStatus(t, table.ID))

	_, err = f.bills.GetBillBySession(ctx, session.ID)
	assertKind(t, err, apperror.KindNotFound)

	_, err = f.sessions.AddItem(ctx, session.ID, &service.AddItemInput{ProductID: drink.ID, Qty: 1})
	assertKind(t, err, apperror.KindInvalidState)

	_, err = f.sessions.PreviewClose(ctx, session.ID, nil)
	assertKind(t, err, apperror.KindInvalidState)

	_, err = f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{})
	assertKind(t, err, apperror.KindConflict)

	_, err = f.sessions.VoidSession(ctx, session.ID, &service.VoidSessionInput{Reason: "again"})
	assertKind(t, err, apperror.KindConflict)

	_, err = f.sessions.TransferSession(ctx, session.ID, &service.TransferSessionInput{ToTableID: other.ID})
	assertKind(t, err, apperror.KindConflict)

	// The table can be checked in again.
	f.open(t, table.ID, at(11, 0))
}

func TestSessionService_CheckoutTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, f.tableType(t, "Pool", 60000).ID, "T1")
	session := f.open(t, table.ID, at(10, 0))
	end := at(11, 0)

	_, err := f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{EndAt: &end})
	require.NoError(t, err)

	_, err = f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{EndAt: &end})
	assertKind(t, err, apperror.KindConflict)
}

func TestSessionService_CheckoutKeepsSessionNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, f.tableType(t, "Pool", 60000).ID, "T1")
	start := at(10, 0)
	session, err := f.sessions.OpenSession(ctx, &service.OpenSessionInput{TableID: table.ID, StartAt: &start, Note: "birthday party"})
	require.NoError(t, err)
	end := at(11, 0)

	result, err := f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{EndAt: &end})
	require.NoError(t, err)
	assert.Equal(t, "birthday party", result.Bill.Note)

	other := f.open(t, table.ID, at(12, 0))
	end = at(13, 0)
	result, err = f.sessions.Checkout(ctx, other.ID, &service.CheckoutInput{EndAt: &end, Note: " paid by card later "})
	require.NoError(t, err)
	assert.Equal(t, "paid by card later", result.Bill.Note)
}

func TestSessionService_CheckoutOfAlreadyBilledSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	sessions := service.NewSessionService(f.tx, f.sessionRepo, f.tableRepo, f.productRepo, f.promoRepo, f.billRepo, f.settings, zap.New(core))
	table := f.table(t, f.tableType(t, "Pool", 60000).ID, "T1")
	session := f.open(t, table.ID, at(10, 0))

	// A competing checkout already stored the bill for this session
	require.NoError(t, f.billRepo.Create(ctx, &entity.Bill{
		Code:          "B20240306-000001",
		SessionID:     session.ID,
		TableID:       table.ID,
		StartAt:       at(10, 0),
		EndAt:         at(11, 0),
		PaymentMethod: enum.PaymentMethodCash,
	}))

	end := at(11, 0)
	for _, code := range []string{"", "vip-2"} {
		_, err := sessions.Checkout(ctx, session.ID, &service.CheckoutInput{EndAt: &end, Code: code})
		assertKind(t, err, apperror.KindConflict)
		assert.Equal(t, "Session is already closed", apperror.GetAppError(err).Message, "code %q", code)
	}

	assert.Zero(t, logs.FilterMessage("bill code collision").Len())
	stored, err := f.sessions.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SessionStatusOpen, stored.Status)
}

func TestSessionService_CheckoutOptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tt := f.tableType(t, "Pool", 60000)

	t.Run("manual discount never exceeds its base", func(t *testing.T) {
		table := f.table(t, tt.ID, "M1")
		session := f.open(t, table.ID, at(10, 0))
		end := at(11, 0)
		unpaid := false

		result, err := f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{
			EndAt: &end,
			Discounts: []service.ManualDiscount{
				{Name: "Regular", Type: enum.DiscountTypeFixedAmount, Value: decimal.NewFromInt(100000), Target: enum.DiscountTargetPlay},
			},
			Surcharge:     5000,
			PaymentMethod: enum.PaymentMethodCard,
			Paid:          &unpaid,
		})
		require.NoError(t, err)

		bill := result.Bill
		assert.Equal(t, int64(60000), bill.SubTotal)
		assert.Equal(t, int64(60000), bill.DiscountTotal)
		assert.Equal(t, int64(5000), bill.Total)
		assert.False(t, bill.Paid)
		assert.Nil(t, bill.PaidAt)
		require.Len(t, bill.Discounts, 1)
		assert.Nil(t, bill.Discounts[0].PromotionID)
		assert.True(t, bill.Discounts[0].Trace.Data().Manual)
	})

	t.Run("supplied code is normalized and must be unique", func(t *testing.T) {
		first := f.open(t, f.table(t, tt.ID, "C1").ID, at(10, 0))
		secondTable := f.table(t, tt.ID, "C2")
		second := f.open(t, secondTable.ID, at(10, 0))
		end := at(10, 30)

		result, err := f.sessions.Checkout(ctx, first.ID, &service.CheckoutInput{EndAt: &end, Code: " vip-1 "})
		require.NoError(t, err)
		assert.Equal(t, "VIP-1", result.Bill.Code)

		_, err = f.sessions.Checkout(ctx, second.ID, &service.CheckoutInput{EndAt: &end, Code: "vip-1"})
		assertKind(t, err, apperror.KindConflict)

		// The failed checkout left nothing behind.
		still, err := f.sessions.GetSession(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.SessionStatusOpen, still.Status)
		assert.Equal(t, enum.TableStatusOccupied, f.tableStatus(t, secondTable.ID))
	})

	t.Run("invalid input is rejected before anything is written", func(t *testing.T) {
		session := f.open(t, f.table(t, tt.ID, "V1").ID, at(10, 0))

		_, err := f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{Surcharge: -1})
		assertKind(t, err, apperror.KindValidation)

		_, err = f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{PaymentMethod: "barter"})
		assertKind(t, err, apperror.KindValidation)

		_, err = f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{
			Discounts: []service.ManualDiscount{{Type: enum.DiscountTypePercent, Value: decimal.NewFromInt(150)}},
		})
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("end before start bills nothing", func(t *testing.T) {
		session := f.open(t, f.table(t, tt.ID, "S1").ID, at(10, 0))
		end := at(9, 50)

		result, err := f.sessions.Checkout(ctx, session.ID, &service.CheckoutInput{EndAt: &end})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Bill.RawMinutes)
		assert.Equal(t, int64(0), result.Bill.Total)
	})
}

func TestSessionService_Transfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pool := f.tableType(t, "Pool", 50000)
	snooker := f.tableType(t, "Snooker", 60000)

	t.Run("moves to a free table with the same rate", func(t *testing.T) {
		from := f.table(t, pool.ID, "P1")
		to := f.table(t, pool.ID, "P2")
		session := f.open(t, from.ID, at(10, 0))

		moved, err := f.sessions.TransferSession(ctx, session.ID, &service.TransferSessionInput{ToTableID: to.ID, Note: "window seat"})
		require.NoError(t, err)

		assert.Equal(t, to.ID, moved.TableID)
		assert.Equal(t, "Transfer: P1 -> P2. window seat", moved.Note)
		assert.Equal(t, "P1", moved.Snapshot.TableName)
		assert.Equal(t, enum.TableStatusAvailable, f.tableStatus(t, from.ID))
		assert.Equal(t, enum.TableStatusOccupied, f.tableStatus(t, to.ID))

		open, err := f.sessions.GetOpenSessionByTable(ctx, to.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, open.ID)
	})

	t.Run("same table is a no-op", func(t *testing.T) {
		table := f.table(t, pool.ID, "P3")
		session := f.open(t, table.ID, at(10, 0))

		got, err := f.sessions.TransferSession(ctx, session.ID, &service.TransferSessionInput{ToTableID: table.ID})
		require.NoError(t, err)
		assert.Equal(t, table.ID, got.TableID)
		assert.Empty(t, got.Note)
	})

	t.Run("rate mismatch leaves both tables unchanged", func(t *testing.T) {
		from := f.table(t, pool.ID, "P4")
		to := f.table(t, snooker.ID, "S1")
		session := f.open(t, from.ID, at(10, 0))

		_, err := f.sessions.TransferSession(ctx, session.ID, &service.TransferSessionInput{ToTableID: to.ID})
		assertKind(t, err, apperror.KindConflict)

		assert.Equal(t, enum.TableStatusOccupied, f.tableStatus(t, from.ID))
		assert.Equal(t, enum.TableStatusAvailable, f.tableStatus(t, to.ID))
	})

	t.Run("occupied destination", func(t *testing.T) {
		from := f.table(t, pool.ID, "P5")
		to := f.table(t, pool.ID, "P6")
		session := f.open(t, from.ID, at(10, 0))
		f.open(t, to.ID, at(10, 0))

		_, err := f.sessions.TransferSession(ctx, session.ID, &service.TransferSessionInput{ToTableID: to.ID})
		assertKind(t, err, apperror.KindConflict)
	})

	t.Run("failed move restores both tables", func(t *testing.T) {
		from := f.table(t, pool.ID, "P7")
		to := f.table(t, pool.ID, "P8")
		session := f.open(t, from.ID, at(10, 0))
		broken := f.sessionService(failingMove{SessionRepository: f.sessionRepo})

		_, err := broken.TransferSession(ctx, session.ID, &service.TransferSessionInput{ToTableID: to.ID})
		require.Error(t, err)

		assert.Equal(t, enum.TableStatusOccupied, f.tableStatus(t, from.ID))
		assert.Equal(t, enum.TableStatusAvailable, f.tableStatus(t, to.ID))
		got, err := f.sessions.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, from.ID, got.TableID)
	})
}

func TestSessionService_ListSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tt := f.tableType(t, "Pool", 50000)
	first := f.open(t, f.table(t, tt.ID, "T1").ID, at(10, 0))
	f.open(t, f.table(t, tt.ID, "T2").ID, at(11, 0))
	_, err := f.sessions.VoidSession(ctx, first.ID, &service.VoidSessionInput{Reason: "test"})
	require.NoError(t, err)

	status := enum.SessionStatusOpen
	page, err := f.sessions.ListSessions(ctx, &domainRepo.SessionFilterParams{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Pagination.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "T2", page.Items[0].Snapshot.TableName)
}

// failingMove is a session repository whose table moves always fail.
type failingMove struct {
	domainRepo.SessionRepository
}

func (failingMove) MoveTable(context.Context, uuid.UUID, uuid.UUID, string) (bool, error) {
	return false, errors.New("write failed")
}
