package services

import (
	"fmt"

	"tourops/internal/domain"
	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// LeadService keeps lead status in step with the booking lifecycle. The
// Mark* hooks run after booking writes commit and only log on failure.
type LeadService struct {
	LeadRepo  repositories.LeadRepository
	RequestID string
}

// MarkBooked moves the customer's open leads to booked.
func (s LeadService) MarkBooked(customerID int64) {
	n, err := s.LeadRepo.UpdateOpenStatusByCustomer(customerID, domain.LeadBooked)
	if err != nil {
		utils.LogEvent(s.RequestID, "lead", "mark_booked",
			fmt.Sprintf("customer_id=%d failed: %s", customerID, err.Error()))
		return
	}
	if n > 0 {
		utils.LogEvent(s.RequestID, "lead", "mark_booked",
			fmt.Sprintf("customer_id=%d leads=%d", customerID, n))
	}
}

// MarkLost moves the customer's open leads to lost after a cancellation.
func (s LeadService) MarkLost(customerID int64) {
	n, err := s.LeadRepo.UpdateOpenStatusByCustomer(customerID, domain.LeadLost)
	if err != nil {
		utils.LogEvent(s.RequestID, "lead", "mark_lost",
			fmt.Sprintf("customer_id=%d failed: %s", customerID, err.Error()))
		return
	}
	if n > 0 {
		utils.LogEvent(s.RequestID, "lead", "mark_lost",
			fmt.Sprintf("customer_id=%d leads=%d", customerID, n))
	}
}
