package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/sangkips/cueclub-api/pkg/printer"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	billRepo    repository.BillRepository
	settings    *SettingsService
	printerType string
	logger      *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	billRepo repository.BillRepository,
	settings *SettingsService,
	printerType string,
	logger *zap.Logger,
) *PrinterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrinterService{
		printer:     p,
		billRepo:    billRepo,
		settings:    settings,
		printerType: printerType,
		logger:      logger.Named("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintBill renders a bill as a receipt and sends it to the printer once
// per configured copy. The receipt is returned even when printing fails so
// the caller can show it on screen.
func (s *PrinterService) PrintBill(ctx context.Context, billID uuid.UUID) (*entity.Receipt, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt := BuildReceipt(bill, settings)
	data := FormatReceipt(receipt, printer.WidthForPaper(settings.PaperSize))
	if err := printer.PrintCopies(s.printer, data, settings.PrintCopies); err != nil {
		s.logger.Error("printer error", zap.String("bill_code", bill.Code), zap.Error(err))
		return receipt, apperror.NewAppError(503, fmt.Sprintf("Failed to print receipt: %v", err))
	}

	s.logger.Info("receipt printed", zap.String("bill_code", bill.Code), zap.Int("copies", settings.PrintCopies))
	return receipt, nil
}

// BuildReceipt composes the printable view of a bill.
func BuildReceipt(bill *entity.Bill, settings *entity.VenueSettings) *entity.Receipt {
	loc := settings.Location()
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			VenueName: settings.Name,
			Address:   settings.Address,
			Phone:     settings.Phone,
			Message:   settings.ReceiptHeader,
		},
		BillCode:      bill.Code,
		TableName:     bill.TableName,
		CheckIn:       bill.StartAt.In(loc).Format("2006-01-02 15:04"),
		CheckOut:      bill.EndAt.In(loc).Format("2006-01-02 15:04"),
		Currency:      settings.Currency,
		SubTotal:      bill.SubTotal,
		DiscountTotal: bill.DiscountTotal,
		Surcharge:     bill.Surcharge,
		Total:         bill.Total,
		Paid:          bill.Paid,
		Footer:        settings.ReceiptFooter,
	}
	if bill.Paid {
		r.PaymentMethod = bill.PaymentMethod.String()
	}

	for _, line := range bill.Lines {
		rl := entity.ReceiptLine{Name: line.Name, Amount: line.Amount}
		switch line.Type {
		case enum.BillLineTypePlay:
			if line.Minutes != nil && line.RatePerHour != nil {
				rl.Detail = fmt.Sprintf("%d min x %s/h", *line.Minutes, formatAmount(*line.RatePerHour))
			}
		default:
			if line.Qty != nil && line.UnitPrice != nil {
				rl.Detail = fmt.Sprintf("%d x %s", *line.Qty, formatAmount(*line.UnitPrice))
			}
		}
		r.Lines = append(r.Lines, rl)
	}

	for _, d := range bill.Discounts {
		name := d.Name
		if d.Type == enum.DiscountTypePercent {
			name = fmt.Sprintf("%s (%s%%)", d.Name, d.Value.String())
		}
		r.Discounts = append(r.Discounts, entity.ReceiptLine{Name: name, Amount: d.Amount})
	}

	return r
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.FontDouble).
		Text(r.Header.VenueName).
		Size(printer.FontNormal).
		Bold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.Message != "" {
		doc.Text(r.Header.Message)
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		Row("Bill:", r.BillCode).
		Row("Table:", r.TableName).
		Row("Check-in:", r.CheckIn).
		Row("Check-out:", r.CheckOut).
		Rule('-')

	// Lines
	for _, line := range r.Lines {
		doc.Row(line.Name, formatAmount(line.Amount))
		if line.Detail != "" {
			doc.Text("  " + line.Detail)
		}
	}

	doc.Rule('-').
		Row("Subtotal:", formatAmount(r.SubTotal))
	for _, d := range r.Discounts {
		doc.Row(d.Name, "-"+formatAmount(d.Amount))
	}
	if r.Surcharge > 0 {
		doc.Row("Surcharge:", formatAmount(r.Surcharge))
	}
	doc.Bold(true).
		Row("TOTAL:", strings.TrimSpace(formatAmount(r.Total)+" "+r.Currency)).
		Bold(false)

	if r.Paid {
		doc.Row("Paid:", r.PaymentMethod)
	} else {
		doc.Row("Status:", "UNPAID")
	}

	doc.Rule('-')

	// Footer
	footer := r.Footer
	if footer == "" {
		footer = "Thank you, see you again!"
	}
	doc.Align(printer.AlignCenter).
		Feed(1).
		Text(footer).
		Align(printer.AlignLeft)

	doc.Feed(3).
		Cut()

	return doc.Bytes()
}

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders minor units with thousands separators: 77500 -> "77,500".
func formatAmount(v int64) string {
	return amountPrinter.Sprintf("%d", v)
}
