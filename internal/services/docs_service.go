package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"tourops/internal/domain"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// DocsService renders payment receipts and per-agent commission statements.
type DocsService struct {
	PaymentRepo  repositories.PaymentRepository
	BookingRepo  repositories.BookingRepository
	CustomerRepo repositories.CustomerRepository
	TripRepo     repositories.TripRepository
	UserRepo     repositories.UserRepository
	ReportsSvc   ReportsService
	RequestID    string
}

// GenerateReceipt builds the PDF for one payment. Returns content and a
// suggested filename.
func (s DocsService) GenerateReceipt(paymentID int64) ([]byte, string, error) {
	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, "", err
	}
	booking, err := s.BookingRepo.GetByID(payment.BookingID)
	if err != nil {
		return nil, "", err
	}
	customer, err := s.CustomerRepo.GetByID(booking.CustomerID)
	if err != nil {
		return nil, "", err
	}
	trip, err := s.TripRepo.GetByID(booking.TripID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("payment_id=%d", paymentID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	name := utils.DisplayName(customer.FirstName, customer.LastName, customer.FirstNameEn, customer.LastNameEn)
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No   : RCP-%d-%d", booking.ID, payment.ID),
		fmt.Sprintf("Date         : %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Customer     : %s", safe(name, "-")),
		fmt.Sprintf("Trip         : %s %s", safe(trip.Code, "-"), safe(trip.Name, "-")),
		fmt.Sprintf("Booking No   : #%d", booking.ID),
		fmt.Sprintf("Installment  : %s", payment.Kind),
		fmt.Sprintf("Amount       : %s", utils.FormatMoney(payment.Amount)),
		fmt.Sprintf("Total Payable: %s", utils.FormatMoney(TotalPayable(booking))),
	}
	for _, ln := range lines {
		pdf.Cell(0, 7, ln)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt confirms one payment installment toward the booking above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d_%d.pdf", booking.ID, payment.ID)
	return buf.Bytes(), filename, nil
}

// GenerateCommissionStatement builds the PDF statement for one agent over
// a date range.
func (s DocsService) GenerateCommissionStatement(agentID int64, f domain.CommissionFilter) ([]byte, string, error) {
	agent, err := s.UserRepo.GetByID(agentID)
	if err != nil {
		return nil, "", err
	}
	details, err := s.ReportsSvc.DetailForAgent(agentID, f)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_statement", fmt.Sprintf("agent_id=%d rows=%d", agentID, len(details)))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Commission Statement", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "COMMISSION STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Agent  : %s", safe(agent.Name, "-")))
	pdf.Ln(7)
	period := "all time"
	if f.DateFrom != "" || f.DateTo != "" {
		period = fmt.Sprintf("%s to %s", safe(f.DateFrom, "…"), safe(f.DateTo, "…"))
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period : %s", period))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(30, 7, "Trip", "1", 0, "", false, 0, "")
	pdf.CellFormat(70, 7, "Customer", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	total := decimal.Zero
	for _, d := range details {
		pdf.CellFormat(30, 7, safe(d.TripCode, "-"), "1", 0, "", false, 0, "")
		pdf.CellFormat(70, 7, safe(d.CustomerName, "-"), "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, dateOnly(d.CreatedAt), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, utils.FormatMoney(d.Amount), "1", 1, "R", false, 0, "")
		total = total.Add(d.Amount)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 7, "Total", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, utils.FormatMoney(total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("COMMISSION_%d_%s.pdf", agentID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
