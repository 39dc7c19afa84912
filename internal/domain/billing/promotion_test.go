package billing_test

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func percent(v int64, target enum.DiscountTarget) billing.Discount {
	return billing.Discount{Type: enum.DiscountTypePercent, Value: decimal.NewFromInt(v), Target: target}
}

func fixed(v int64, target enum.DiscountTarget) billing.Discount {
	return billing.Discount{Type: enum.DiscountTypeFixedAmount, Value: decimal.NewFromInt(v), Target: target}
}

func billPromo(name string, order int, stackable bool, d billing.Discount) billing.Promotion {
	return billing.Promotion{
		ID:         uuid.New(),
		Name:       name,
		Active:     true,
		ApplyOrder: order,
		Stackable:  stackable,
		Rule:       billing.BillRule{},
		Discount:   d,
	}
}

func billContext(subTotal int64) billing.Context {
	return billing.Context{At: at(20, 0), SubTotal: subTotal, PlayAmount: subTotal}
}

func TestApplyPromotions_NonStackableStopsEvaluation(t *testing.T) {
	// GIVEN A(10%), B(5000, non-stackable), C(5%) all eligible on a 100,000 bill
	promos := []billing.Promotion{
		billPromo("C", 3, true, percent(5, enum.DiscountTargetBill)),
		billPromo("A", 1, true, percent(10, enum.DiscountTargetBill)),
		billPromo("B", 2, false, fixed(5000, enum.DiscountTargetBill)),
	}

	// WHEN the engine runs
	res := billing.ApplyPromotions(billContext(100000), promos)

	// THEN only A then B apply
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "A", res.Lines[0].Name)
	assert.Equal(t, int64(10000), res.Lines[0].Amount)
	assert.Equal(t, "B", res.Lines[1].Name)
	assert.Equal(t, int64(5000), res.Lines[1].Amount)
	assert.Equal(t, int64(15000), res.Total)
	assert.Equal(t, int64(85000), res.Remaining.Bill)
}

func TestApplyPromotions_NonStackableWithoutDiscountDoesNotStop(t *testing.T) {
	promos := []billing.Promotion{
		billPromo("zero", 1, false, fixed(0, enum.DiscountTargetBill)),
		billPromo("ten", 2, true, percent(10, enum.DiscountTargetBill)),
	}

	res := billing.ApplyPromotions(billContext(50000), promos)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "ten", res.Lines[0].Name)
}

func TestApplyPromotions_PoolsAreIndependent(t *testing.T) {
	ctx := billing.Context{At: at(20, 0), PlayAmount: 30000, ServiceAmount: 20000, SubTotal: 50000}
	promos := []billing.Promotion{
		billPromo("play all", 1, true, percent(100, enum.DiscountTargetPlay)),
		billPromo("play again", 2, true, fixed(1000, enum.DiscountTargetPlay)),
		billPromo("service half", 3, true, percent(50, enum.DiscountTargetService)),
	}

	res := billing.ApplyPromotions(ctx, promos)

	require.Len(t, res.Lines, 2)
	assert.Equal(t, int64(30000), res.Lines[0].Amount)
	assert.Equal(t, int64(10000), res.Lines[1].Amount)
	assert.Equal(t, billing.Pools{Play: 0, Service: 10000, Bill: 50000}, res.Remaining)
}

func TestApplyPromotions_SkipsInactiveAndOutOfWindow(t *testing.T) {
	inactive := billPromo("inactive", 1, true, percent(10, enum.DiscountTargetBill))
	inactive.Active = false

	happyHour := billPromo("happy hour", 2, true, percent(20, enum.DiscountTargetBill))
	happyHour.Validity = billing.Validity{Windows: []billing.Window{{From: "14:00", To: "17:00"}}}

	expired := billPromo("expired", 3, true, percent(30, enum.DiscountTargetBill))
	yesterday := at(0, 0).AddDate(0, 0, -1)
	expired.Validity = billing.Validity{To: &yesterday}

	res := billing.ApplyPromotions(billContext(100000), []billing.Promotion{inactive, happyHour, expired})

	assert.Empty(t, res.Lines)
	assert.Equal(t, int64(0), res.Total)
}

func TestValidity_ToIsInclusiveThroughEndOfDay(t *testing.T) {
	day := at(0, 0)
	v := billing.Validity{To: &day}

	assert.True(t, v.Contains(at(23, 59)))
	assert.False(t, v.Contains(at(0, 0).AddDate(0, 0, 1)))
}

func TestValidity_FromAndDays(t *testing.T) {
	from := at(12, 0)
	v := billing.Validity{From: &from, Days: billing.Weekdays{3}}

	assert.False(t, v.Contains(at(11, 59)))
	assert.True(t, v.Contains(at(12, 0)))
	assert.False(t, v.Contains(at(12, 0).AddDate(0, 0, 1)))
}

func TestApplyPromotions_TimeRule(t *testing.T) {
	vip := uuid.New()
	promo := billing.Promotion{
		Name: "long play", Active: true, Stackable: true,
		Rule:     billing.TimeRule{TableTypeIDs: []uuid.UUID{vip}, MinMinutes: 60},
		Discount: percent(10, enum.DiscountTargetPlay),
	}

	short := billing.Context{At: at(20, 0), TableTypeID: vip, BillableMinutes: 45, PlayAmount: 37500, SubTotal: 37500}
	assert.Empty(t, billing.ApplyPromotions(short, []billing.Promotion{promo}).Lines)

	otherType := short
	otherType.BillableMinutes = 90
	otherType.TableTypeID = uuid.New()
	assert.Empty(t, billing.ApplyPromotions(otherType, []billing.Promotion{promo}).Lines)

	long := short
	long.BillableMinutes = 90
	res := billing.ApplyPromotions(long, []billing.Promotion{promo})
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(3750), res.Lines[0].Amount)
	assert.Equal(t, enum.PromotionScopeTime, res.Lines[0].Scope)
}

func TestApplyPromotions_ProductRule(t *testing.T) {
	beer, snack, drinks := uuid.New(), uuid.New(), uuid.New()
	items := []billing.ServiceItem{
		{ProductID: beer, CategoryID: drinks, Qty: 2, Amount: 40000},
		{ProductID: snack, CategoryID: uuid.New(), Qty: 1, Amount: 15000},
	}
	ctx := billing.Context{At: at(20, 0), PlayAmount: 37500, Items: items, ServiceAmount: 55000, SubTotal: 92500}

	drinksHalf := billing.Promotion{
		Name: "drinks", Active: true, Stackable: true,
		Rule:     billing.ProductRule{CategoryIDs: []uuid.UUID{drinks}},
		Discount: percent(50, enum.DiscountTargetService),
	}
	res := billing.ApplyPromotions(ctx, []billing.Promotion{drinksHalf})
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(20000), res.Lines[0].Amount)
	assert.Equal(t, int64(40000), res.Lines[0].EligibleBase)
	require.NotNil(t, res.Lines[0].MatchedBase)
	assert.Equal(t, int64(40000), *res.Lines[0].MatchedBase)

	onPlay := drinksHalf
	onPlay.Discount = percent(50, enum.DiscountTargetPlay)
	assert.Empty(t, billing.ApplyPromotions(ctx, []billing.Promotion{onPlay}).Lines)
}

func TestApplyPromotions_ProductBaseCappedByPool(t *testing.T) {
	drinks := uuid.New()
	ctx := billing.Context{
		At:            at(20, 0),
		Items:         []billing.ServiceItem{{ProductID: uuid.New(), CategoryID: drinks, Qty: 1, Amount: 40000}},
		ServiceAmount: 40000,
		SubTotal:      40000,
	}
	first := billPromo("first", 1, true, fixed(30000, enum.DiscountTargetService))
	second := billing.Promotion{
		Name: "second", Active: true, Stackable: true, ApplyOrder: 2,
		Rule:     billing.ProductRule{CategoryIDs: []uuid.UUID{drinks}},
		Discount: percent(100, enum.DiscountTargetService),
	}

	res := billing.ApplyPromotions(ctx, []billing.Promotion{first, second})

	require.Len(t, res.Lines, 2)
	assert.Equal(t, int64(10000), res.Lines[1].EligibleBase)
	assert.Equal(t, int64(10000), res.Lines[1].Amount)
	assert.Equal(t, int64(0), res.Remaining.Service)
}

func TestMatchProductRule_Combo(t *testing.T) {
	beer, peanuts := uuid.New(), uuid.New()
	items := []billing.ServiceItem{
		{ProductID: beer, Qty: 2, Amount: 40000},
		{ProductID: peanuts, Qty: 1, Amount: 10000},
	}

	met := billing.ProductRule{Combo: []billing.ComboRequirement{{ProductID: beer, Qty: 2}, {ProductID: peanuts, Qty: 1}}}
	assert.Equal(t, int64(50000), billing.MatchProductRule(met, items))

	unmet := billing.ProductRule{Combo: []billing.ComboRequirement{{ProductID: beer, Qty: 3}}}
	assert.Equal(t, int64(0), billing.MatchProductRule(unmet, items))

	comboOnBeer := billing.ProductRule{ProductIDs: []uuid.UUID{beer}, Combo: met.Combo}
	assert.Equal(t, int64(40000), billing.MatchProductRule(comboOnBeer, items))
}

func TestApplyPromotions_BillRuleThresholds(t *testing.T) {
	promo := billPromo("big spender", 1, true, percent(10, enum.DiscountTargetBill))
	promo.Rule = billing.BillRule{MinSubtotal: 100000, MinServiceAmount: 20000, MinPlayMinutes: 30}

	ctx := billing.Context{At: at(20, 0), BillableMinutes: 60, PlayAmount: 80000, ServiceAmount: 30000, SubTotal: 110000}
	res := billing.ApplyPromotions(ctx, []billing.Promotion{promo})
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(11000), res.Lines[0].Amount)

	ctx.ServiceAmount = 10000
	assert.Empty(t, billing.ApplyPromotions(ctx, []billing.Promotion{promo}).Lines)
}

func TestApplyPromotions_TiesBrokenByCreation(t *testing.T) {
	older := billPromo("older", 5, false, fixed(1000, enum.DiscountTargetBill))
	older.CreatedAt = at(8, 0)
	newer := billPromo("newer", 5, false, fixed(2000, enum.DiscountTargetBill))
	newer.CreatedAt = at(9, 0)

	res := billing.ApplyPromotions(billContext(10000), []billing.Promotion{newer, older})

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "older", res.Lines[0].Name)
}

func TestApplyPromotions_Idempotent(t *testing.T) {
	promos := []billing.Promotion{
		billPromo("a", 1, true, percent(15, enum.DiscountTargetBill)),
		billPromo("b", 2, true, fixed(3000, enum.DiscountTargetPlay)),
	}
	ctx := billing.Context{At: at(20, 0), PlayAmount: 40000, ServiceAmount: 10000, SubTotal: 50000}

	first := billing.ApplyPromotions(ctx, promos)
	second := billing.ApplyPromotions(ctx, promos)

	assert.Equal(t, first, second)
	assert.Equal(t, "a", promos[0].Name)
}

func TestApplyPromotions_NeverExceedsBase(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	targets := []enum.DiscountTarget{enum.DiscountTargetPlay, enum.DiscountTargetService, enum.DiscountTargetBill}

	for i := 0; i < 500; i++ {
		play := rng.Int63n(200000)
		service := rng.Int63n(200000)
		ctx := billing.Context{At: at(20, 0), PlayAmount: play, ServiceAmount: service, SubTotal: play + service}

		var promos []billing.Promotion
		for j := 0; j < 1+rng.Intn(6); j++ {
			var d billing.Discount
			if rng.Intn(2) == 0 {
				d = percent(rng.Int63n(150)-20, targets[rng.Intn(3)])
			} else {
				d = fixed(rng.Int63n(300000)-1000, targets[rng.Intn(3)])
			}
			if rng.Intn(3) == 0 {
				d.MaxAmount = int64Ptr(rng.Int63n(50000))
			}
			promos = append(promos, billPromo("p", rng.Intn(4), rng.Intn(4) != 0, d))
		}

		res := billing.ApplyPromotions(ctx, promos)
		spent := map[enum.DiscountTarget]int64{}
		for _, line := range res.Lines {
			assert.GreaterOrEqual(t, line.Amount, int64(0))
			assert.LessOrEqual(t, line.Amount, line.EligibleBase)
			spent[line.Target] += line.Amount
		}
		assert.LessOrEqual(t, spent[enum.DiscountTargetPlay], play)
		assert.LessOrEqual(t, spent[enum.DiscountTargetService], service)
		assert.LessOrEqual(t, spent[enum.DiscountTargetBill], play+service)

		items := []billing.ItemSnapshot{{Name: "svc", Price: service, Qty: 1}}
		asm := billing.Assemble(billing.Charges{PlayAmount: play, ServiceAmount: service, SubTotal: play + service}, items, res.Lines, 0, billing.Payment{})
		assert.LessOrEqual(t, asm.DiscountTotal, asm.SubTotal)
		assert.GreaterOrEqual(t, asm.Total, int64(0))
	}
}

func TestDiscountAmount(t *testing.T) {
	capAt := int64(3000)
	tests := []struct {
		name string
		d    billing.Discount
		base int64
		want int64
	}{
		{"percent", percent(10, enum.DiscountTargetBill), 77500, 7750},
		{"percent rounds half up", percent(5, enum.DiscountTargetBill), 10010, 501},
		{"percent clamps over 100", percent(150, enum.DiscountTargetBill), 5000, 5000},
		{"percent capped", billing.Discount{Type: enum.DiscountTypePercent, Value: decimal.NewFromInt(50), MaxAmount: &capAt}, 10000, 3000},
		{"fixed capped by base", fixed(9000, enum.DiscountTargetBill), 5000, 5000},
		{"fixed negative", fixed(-10, enum.DiscountTargetBill), 5000, 0},
		{"fractional fixed rounds", billing.Discount{Type: enum.DiscountTypeFixedAmount, Value: decimal.RequireFromString("999.5")}, 5000, 1000},
		{"zero base", percent(10, enum.DiscountTargetBill), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.DiscountAmount(tt.d, tt.base))
		})
	}
}

func TestValidatePromotion(t *testing.T) {
	ok := billing.Promotion{Rule: billing.ProductRule{}, Discount: percent(10, enum.DiscountTargetService)}
	assert.NoError(t, billing.ValidatePromotion(ok))

	productOnPlay := ok
	productOnPlay.Discount = percent(10, enum.DiscountTargetPlay)
	err := billing.ValidatePromotion(productOnPlay)
	var verr *billing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "discount.target", verr.Field)

	badWindow := billing.Promotion{
		Rule:     billing.TimeRule{},
		Discount: percent(10, enum.DiscountTargetPlay),
		Validity: billing.Validity{Windows: []billing.Window{{From: "25:00", To: "03:00"}}},
	}
	assert.Error(t, billing.ValidatePromotion(badWindow))

	tooMuch := billing.Promotion{Rule: billing.BillRule{}, Discount: percent(120, enum.DiscountTargetBill)}
	assert.Error(t, billing.ValidatePromotion(tooMuch))

	from, to := at(12, 0), at(10, 0)
	backwards := billing.Promotion{Rule: billing.BillRule{}, Discount: percent(10, enum.DiscountTargetBill), Validity: billing.Validity{From: &from, To: &to}}
	assert.Error(t, billing.ValidatePromotion(backwards))

	assert.Error(t, billing.ValidatePromotion(billing.Promotion{Discount: percent(10, enum.DiscountTargetBill)}))
}
