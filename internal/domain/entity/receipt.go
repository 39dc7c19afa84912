package entity

// ReceiptHeader holds the venue header printed at the top of a receipt.
type ReceiptHeader struct {
	VenueName string `json:"venue_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ReceiptLine is one charge on a receipt.
type ReceiptLine struct {
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"` // "45 min x 50,000/h", "2 x 20,000"
	Amount int64  `json:"amount"`
}

// Receipt is a printable view of a bill. It is not stored; it is composed
// from the bill and the venue settings at print time.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	BillCode      string        `json:"bill_code"`
	TableName     string        `json:"table_name"`
	CheckIn       string        `json:"check_in"`
	CheckOut      string        `json:"check_out"`
	Currency      string        `json:"currency"`
	Lines         []ReceiptLine `json:"lines"`
	Discounts     []ReceiptLine `json:"discounts,omitempty"`
	SubTotal      int64         `json:"sub_total"`
	DiscountTotal int64         `json:"discount_total"`
	Surcharge     int64         `json:"surcharge"`
	Total         int64         `json:"total"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Paid          bool          `json:"paid"`
	Footer        string        `json:"footer,omitempty"`
}
