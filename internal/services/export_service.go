package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"tourops/internal/domain"
	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// ExportService produces CSV extracts for the back office.
type ExportService struct {
	BookingRepo repositories.BookingRepository
	ReportsSvc  ReportsService
	RequestID   string
}

// ExportBookingsCSV writes the filtered booking list as CSV.
func (s ExportService) ExportBookingsCSV(f domain.BookingFilter) ([]byte, string, error) {
	bookings, err := s.BookingRepo.List(f)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "export", "bookings_csv", fmt.Sprintf("rows=%d", len(bookings)))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"booking_id", "trip_id", "customer_id", "payment_status", "total_payable", "discount", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}
	for _, b := range bookings {
		rec := []string{
			strconv.FormatInt(b.ID, 10),
			strconv.FormatInt(b.TripID, 10),
			strconv.FormatInt(b.CustomerID, 10),
			string(b.PaymentStatus),
			utils.FormatMoney(TotalPayable(b)),
			utils.FormatMoney(b.Discount),
			b.CreatedAt,
		}
		if err := w.Write(rec); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("bookings_%s.csv", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// ExportCommissionSummaryCSV writes the per-agent commission summary as CSV.
func (s ExportService) ExportCommissionSummaryCSV(f domain.CommissionFilter) ([]byte, string, error) {
	summaries, err := s.ReportsSvc.SummarizeByAgent(f)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "export", "commission_csv", fmt.Sprintf("rows=%d", len(summaries)))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"agent_id", "agent_name", "total_trips", "total_people", "total_amount"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}
	for _, a := range summaries {
		rec := []string{
			strconv.FormatInt(a.AgentID, 10),
			a.AgentName,
			strconv.Itoa(a.TotalTrips),
			strconv.Itoa(a.TotalPeople),
			utils.FormatMoney(a.TotalAmount),
		}
		if err := w.Write(rec); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("commission_summary_%s.csv", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
