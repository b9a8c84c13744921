package services

import (
	"fmt"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// CommissionService creates the persisted per-booking commission record
// when a booking becomes fully paid. The amount is the responsible agent's
// flat per-booking rate.
type CommissionService struct {
	CommissionRepo repositories.CommissionRepository
	BookingRepo    repositories.BookingRepository
	UserRepo       repositories.UserRepository
	ReportsSvc     *ReportsService
	RequestID      string
}

// GenerateForBooking is idempotent: an existing commission for the booking
// (or a duplicate-key race) short-circuits without error.
func (s CommissionService) GenerateForBooking(bookingID int64) error {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}

	agentID := booking.ResponsibleAgentID()
	if agentID <= 0 {
		utils.LogEvent(s.RequestID, "commission", "generate",
			fmt.Sprintf("booking_id=%d has no responsible agent, skipping", bookingID))
		return nil
	}

	exists, err := s.CommissionRepo.ExistsForBooking(bookingID)
	if err != nil {
		return err
	}
	if exists {
		utils.LogEvent(s.RequestID, "commission", "generate",
			fmt.Sprintf("booking_id=%d already has a commission, skipping", bookingID))
		return nil
	}

	agent, err := s.UserRepo.GetByID(agentID)
	if err != nil {
		return err
	}

	id, err := s.CommissionRepo.Insert(models.Commission{
		AgentID:   agentID,
		BookingID: bookingID,
		Amount:    agent.CommissionRate,
	})
	if err != nil {
		if domain.IsConflict(err) {
			// lost a race with another generator invocation; the row exists
			return nil
		}
		return err
	}

	utils.LogEvent(s.RequestID, "commission", "generate",
		fmt.Sprintf("commission_id=%d booking_id=%d agent_id=%d amount=%s",
			id, bookingID, agentID, utils.FormatMoney(agent.CommissionRate)))

	if s.ReportsSvc != nil {
		s.ReportsSvc.InvalidateCache()
	}
	return nil
}
