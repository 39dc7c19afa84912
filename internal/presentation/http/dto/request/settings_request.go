package request

// UpdateSettingsRequest represents the venue settings update
type UpdateSettingsRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	Address       string `json:"address"`
	Phone         string `json:"phone" binding:"max=50"`
	Currency      string `json:"currency" binding:"max=10"`
	Timezone      string `json:"timezone" binding:"max=50"`
	ReceiptHeader string `json:"receipt_header"`
	ReceiptFooter string `json:"receipt_footer"`
	RoundingStep  int    `json:"rounding_step"`
	RoundingMode  string `json:"rounding_mode"`
	GraceMinutes  int    `json:"grace_minutes"`
	PaperSize     string `json:"paper_size"`
	PrintCopies   int    `json:"print_copies"`
}
