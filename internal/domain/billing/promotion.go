package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Validity gates when a promotion may be evaluated at all. Every field is
// optional. To is inclusive through the end of its local day.
type Validity struct {
	From    *time.Time `json:"valid_from,omitempty"`
	To      *time.Time `json:"valid_to,omitempty"`
	Days    Weekdays   `json:"days_of_week,omitempty"`
	Windows []Window   `json:"time_windows,omitempty"`
}

// Contains reports whether the instant is inside the date range, on an
// allowed weekday and inside one of the intraday windows.
func (v Validity) Contains(at time.Time) bool {
	if v.From != nil && at.Before(*v.From) {
		return false
	}
	if v.To != nil && !at.Before(endOfDay(*v.To, at.Location())) {
		return false
	}
	if !v.Days.Contains(at) {
		return false
	}
	if len(v.Windows) == 0 {
		return true
	}
	for _, w := range v.Windows {
		if w.Contains(at) {
			return true
		}
	}
	return false
}

// endOfDay returns the first instant of the day after t, in loc.
func endOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
}

// Rule is the scope-specific eligibility condition of a promotion. It is one
// of TimeRule, ProductRule or BillRule.
type Rule interface {
	Scope() enum.PromotionScope
}

// TimeRule matches play time, optionally for some table types only.
type TimeRule struct {
	TableTypeIDs []uuid.UUID `json:"table_type_ids,omitempty"`
	MinMinutes   int         `json:"min_minutes,omitempty"`
}

func (TimeRule) Scope() enum.PromotionScope { return enum.PromotionScopeTime }

// ComboRequirement asks for at least Qty units of one product.
type ComboRequirement struct {
	ProductID uuid.UUID `json:"product_id"`
	Qty       int       `json:"qty"`
}

// ProductRule matches service items by product or category. When Combo is
// set every requirement must be met or nothing matches.
type ProductRule struct {
	CategoryIDs []uuid.UUID        `json:"category_ids,omitempty"`
	ProductIDs  []uuid.UUID        `json:"product_ids,omitempty"`
	Combo       []ComboRequirement `json:"combo,omitempty"`
}

func (ProductRule) Scope() enum.PromotionScope { return enum.PromotionScopeProduct }

// BillRule matches on bill level thresholds.
type BillRule struct {
	TableTypeIDs     []uuid.UUID `json:"table_type_ids,omitempty"`
	MinSubtotal      int64       `json:"min_subtotal,omitempty"`
	MinServiceAmount int64       `json:"min_service_amount,omitempty"`
	MinPlayMinutes   int         `json:"min_play_minutes,omitempty"`
}

func (BillRule) Scope() enum.PromotionScope { return enum.PromotionScopeBill }

// Discount describes how much a promotion takes off and from which pool.
type Discount struct {
	Type      enum.DiscountType   `json:"type"`
	Value     decimal.Decimal     `json:"value"`
	Target    enum.DiscountTarget `json:"target"`
	MaxAmount *int64              `json:"max_amount,omitempty"`
}

// Promotion is the engine's view of a promotion.
type Promotion struct {
	ID         uuid.UUID
	Name       string
	Code       string
	Active     bool
	ApplyOrder int
	Stackable  bool
	CreatedAt  time.Time
	Validity   Validity
	Rule       Rule
	Discount   Discount
	// Manual marks an ad-hoc discount entered at checkout.
	Manual bool
}

// ServiceItem is a product charge as seen by the engine.
type ServiceItem struct {
	ProductID  uuid.UUID
	CategoryID uuid.UUID
	Qty        int
	Amount     int64
}

// Context is everything the engine may look at when evaluating promotions.
type Context struct {
	At              time.Time
	TableTypeID     uuid.UUID
	BillableMinutes int
	PlayAmount      int64
	Items           []ServiceItem
	ServiceAmount   int64
	SubTotal        int64
}

// Pools holds the amount still deductible per discount target.
type Pools struct {
	Play    int64 `json:"play_remaining"`
	Service int64 `json:"service_remaining"`
	Bill    int64 `json:"bill_remaining"`
}

func (p *Pools) get(t enum.DiscountTarget) int64 {
	switch t {
	case enum.DiscountTargetPlay:
		return p.Play
	case enum.DiscountTargetService:
		return p.Service
	default:
		return p.Bill
	}
}

func (p *Pools) deduct(t enum.DiscountTarget, amount int64) {
	switch t {
	case enum.DiscountTargetPlay:
		p.Play = maxInt64(0, p.Play-amount)
	case enum.DiscountTargetService:
		p.Service = maxInt64(0, p.Service-amount)
	default:
		p.Bill = maxInt64(0, p.Bill-amount)
	}
}

// DiscountLine is one applied discount, with enough detail to trace it back
// to the promotion and the base it was computed on.
type DiscountLine struct {
	PromotionID  *uuid.UUID          `json:"promotion_id,omitempty"`
	Name         string              `json:"name"`
	Code         string              `json:"code,omitempty"`
	Scope        enum.PromotionScope `json:"scope"`
	Type         enum.DiscountType   `json:"type"`
	Value        decimal.Decimal     `json:"value"`
	Target       enum.DiscountTarget `json:"target"`
	Amount       int64               `json:"amount"`
	EligibleBase int64               `json:"eligible_base"`
	MatchedBase  *int64              `json:"matched_base,omitempty"`
	Manual       bool                `json:"manual,omitempty"`
}

// PromotionResult is the output of one engine run.
type PromotionResult struct {
	Lines     []DiscountLine `json:"discounts"`
	Remaining Pools          `json:"remaining"`
	Total     int64          `json:"discount_total"`
}

// ApplyPromotions evaluates promotions against ctx in ascending ApplyOrder,
// ties broken by CreatedAt then input order. Each target has its own pool and
// a discount never takes more than what is left in its pool. A non-stackable
// promotion that yields a discount ends the run.
func ApplyPromotions(ctx Context, promotions []Promotion) PromotionResult {
	pools := Pools{
		Play:    maxInt64(0, ctx.PlayAmount),
		Service: maxInt64(0, ctx.ServiceAmount),
		Bill:    maxInt64(0, ctx.SubTotal),
	}
	res := PromotionResult{Lines: []DiscountLine{}}

	ordered := make([]Promotion, len(promotions))
	copy(ordered, promotions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ApplyOrder != ordered[j].ApplyOrder {
			return ordered[i].ApplyOrder < ordered[j].ApplyOrder
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	for _, p := range ordered {
		if !p.Active || !p.Validity.Contains(ctx.At) {
			continue
		}
		target := p.Discount.Target
		remaining := pools.get(target)
		if remaining <= 0 {
			continue
		}

		base, matched, ok := eligibleBase(ctx, p, remaining)
		if !ok || base <= 0 {
			continue
		}

		amount := DiscountAmount(p.Discount, base)
		if amount <= 0 {
			continue
		}

		pools.deduct(target, amount)
		line := DiscountLine{
			Name:         p.Name,
			Code:         p.Code,
			Scope:        p.Rule.Scope(),
			Type:         p.Discount.Type,
			Value:        p.Discount.Value,
			Target:       target,
			Amount:       amount,
			EligibleBase: base,
			MatchedBase:  matched,
			Manual:       p.Manual,
		}
		if p.ID != uuid.Nil {
			id := p.ID
			line.PromotionID = &id
		}
		res.Lines = append(res.Lines, line)
		res.Total += amount

		if !p.Stackable {
			break
		}
	}

	res.Remaining = pools
	return res
}

// eligibleBase checks the promotion's rule against ctx and returns the base
// the discount is computed on. matched is set for product rules.
func eligibleBase(ctx Context, p Promotion, remaining int64) (base int64, matched *int64, ok bool) {
	switch rule := p.Rule.(type) {
	case TimeRule:
		if !includesID(rule.TableTypeIDs, ctx.TableTypeID) {
			return 0, nil, false
		}
		if ctx.BillableMinutes < rule.MinMinutes {
			return 0, nil, false
		}
		return remaining, nil, true

	case ProductRule:
		if p.Discount.Target == enum.DiscountTargetPlay {
			return 0, nil, false
		}
		sum := MatchProductRule(rule, ctx.Items)
		return minInt64(remaining, sum), &sum, sum > 0

	case BillRule:
		if !includesID(rule.TableTypeIDs, ctx.TableTypeID) {
			return 0, nil, false
		}
		if ctx.SubTotal < rule.MinSubtotal ||
			ctx.ServiceAmount < rule.MinServiceAmount ||
			ctx.BillableMinutes < rule.MinPlayMinutes {
			return 0, nil, false
		}
		return remaining, nil, true

	default:
		return 0, nil, false
	}
}

// MatchProductRule sums the amounts of items selected by the rule. A combo
// that is not fully satisfied matches nothing.
func MatchProductRule(rule ProductRule, items []ServiceItem) int64 {
	if len(rule.Combo) > 0 {
		qty := make(map[uuid.UUID]int, len(items))
		for _, it := range items {
			qty[it.ProductID] += it.Qty
		}
		for _, req := range rule.Combo {
			need := req.Qty
			if need < 1 {
				need = 1
			}
			if qty[req.ProductID] < need {
				return 0
			}
		}
	}

	var sum int64
	for _, it := range items {
		if len(rule.ProductIDs) > 0 && !includesID(rule.ProductIDs, it.ProductID) {
			continue
		}
		if len(rule.CategoryIDs) > 0 && !includesID(rule.CategoryIDs, it.CategoryID) {
			continue
		}
		sum += maxInt64(0, it.Amount)
	}
	return sum
}

// DiscountAmount computes what a discount takes off base. The result is
// always within [0, base].
func DiscountAmount(d Discount, base int64) int64 {
	if base <= 0 {
		return 0
	}
	var amount int64
	switch d.Type {
	case enum.DiscountTypePercent:
		pct := decimal.Max(decimal.Zero, decimal.Min(d.Value, decimal.NewFromInt(100)))
		amount = decimal.NewFromInt(base).Mul(pct).Div(decimal.NewFromInt(100)).Round(0).IntPart()
	default:
		amount = d.Value.Round(0).IntPart()
	}
	if d.MaxAmount != nil {
		amount = minInt64(amount, maxInt64(0, *d.MaxAmount))
	}
	return maxInt64(0, minInt64(amount, base))
}

// includesID treats an empty filter as matching everything.
func includesID(ids []uuid.UUID, id uuid.UUID) bool {
	if len(ids) == 0 {
		return true
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
