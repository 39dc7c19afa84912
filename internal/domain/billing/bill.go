package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
)

// ChargeLine is a settled bill line. It is either a PlayCharge or a
// ProductCharge.
type ChargeLine interface {
	LineType() enum.BillLineType
	LineAmount() int64
}

// PlayCharge is the time charge of a session.
type PlayCharge struct {
	Minutes     int   `json:"minutes"`
	RatePerHour int64 `json:"rate_per_hour"`
	Amount      int64 `json:"amount"`
}

func (PlayCharge) LineType() enum.BillLineType { return enum.BillLineTypePlay }
func (c PlayCharge) LineAmount() int64         { return c.Amount }

// ProductCharge is one service item at its snapshot price.
type ProductCharge struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Name      string     `json:"name"`
	UnitPrice int64      `json:"unit_price"`
	Qty       int        `json:"qty"`
	Amount    int64      `json:"amount"`
	Note      string     `json:"note,omitempty"`
}

func (ProductCharge) LineType() enum.BillLineType { return enum.BillLineTypeProduct }
func (c ProductCharge) LineAmount() int64         { return c.Amount }

// ItemSnapshot is a session item as frozen when it was added.
type ItemSnapshot struct {
	ProductID  *uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Price      int64
	Qty        int
	Note       string
}

// Amount is price times quantity, never negative.
func (i ItemSnapshot) Amount() int64 {
	if i.Price <= 0 || i.Qty <= 0 {
		return 0
	}
	return i.Price * int64(i.Qty)
}

// Charges are the pre-discount figures of a session at some end instant.
type Charges struct {
	MinuteResult
	RatePerHour   int64 `json:"rate_per_hour"`
	PlayAmount    int64 `json:"play_amount"`
	ServiceAmount int64 `json:"service_amount"`
	SubTotal      int64 `json:"sub_total"`
}

// ComputeCharges meters a session and prices its play time and items.
func ComputeCharges(start, end time.Time, ratePerHour int64, policy RoundingPolicy, items []ItemSnapshot) Charges {
	minutes := ComputeMinutes(start, end, policy)
	c := Charges{
		MinuteResult: minutes,
		RatePerHour:  ratePerHour,
		PlayAmount:   ChargeForMinutes(ratePerHour, minutes.BillableMinutes),
	}
	for _, it := range items {
		c.ServiceAmount += it.Amount()
	}
	c.SubTotal = c.PlayAmount + c.ServiceAmount
	return c
}

// PromotionContext builds the engine input for these charges.
func (c Charges) PromotionContext(at time.Time, tableTypeID uuid.UUID, items []ItemSnapshot) Context {
	ctx := Context{
		At:              at,
		TableTypeID:     tableTypeID,
		BillableMinutes: c.BillableMinutes,
		PlayAmount:      c.PlayAmount,
		ServiceAmount:   c.ServiceAmount,
		SubTotal:        c.SubTotal,
		Items:           make([]ServiceItem, 0, len(items)),
	}
	for _, it := range items {
		si := ServiceItem{CategoryID: it.CategoryID, Qty: it.Qty, Amount: it.Amount()}
		if it.ProductID != nil {
			si.ProductID = *it.ProductID
		}
		ctx.Items = append(ctx.Items, si)
	}
	return ctx
}

// Payment is the settlement state recorded with a bill.
type Payment struct {
	Paid   bool
	Method enum.PaymentMethod
	PaidAt *time.Time
}

// Assembly is a reconciled invoice ready to be persisted.
type Assembly struct {
	Play          PlayCharge
	Products      []ProductCharge
	Discounts     []DiscountLine
	PlayAmount    int64
	ServiceAmount int64
	SubTotal      int64
	DiscountTotal int64
	Surcharge     int64
	Total         int64
	Payment       Payment
}

// Lines returns every charge line, play first.
func (a Assembly) Lines() []ChargeLine {
	lines := make([]ChargeLine, 0, len(a.Products)+1)
	lines = append(lines, a.Play)
	for _, p := range a.Products {
		lines = append(lines, p)
	}
	return lines
}

// Assemble combines charges, items and discounts into an invoice whose totals
// reconcile: discountTotal never exceeds subTotal and total never goes
// below zero. A negative surcharge counts as zero.
func Assemble(c Charges, items []ItemSnapshot, discounts []DiscountLine, surcharge int64, payment Payment) Assembly {
	a := Assembly{
		Play: PlayCharge{
			Minutes:     c.BillableMinutes,
			RatePerHour: c.RatePerHour,
			Amount:      c.PlayAmount,
		},
		Products:  make([]ProductCharge, 0, len(items)),
		Discounts: discounts,
		Surcharge: maxInt64(0, surcharge),
		Payment:   payment,
	}
	if a.Discounts == nil {
		a.Discounts = []DiscountLine{}
	}

	for _, it := range items {
		line := ProductCharge{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Qty:       it.Qty,
			Amount:    it.Amount(),
			Note:      it.Note,
		}
		a.Products = append(a.Products, line)
		a.ServiceAmount += line.Amount
	}
	a.PlayAmount = a.Play.Amount
	a.SubTotal = a.PlayAmount + a.ServiceAmount

	for _, d := range a.Discounts {
		a.DiscountTotal += maxInt64(0, d.Amount)
	}
	a.DiscountTotal = minInt64(a.DiscountTotal, a.SubTotal)

	a.Total = maxInt64(0, a.SubTotal-a.DiscountTotal+a.Surcharge)
	return a
}
