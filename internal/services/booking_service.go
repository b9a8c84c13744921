package services

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/shopspring/decimal"
)

// BookingService creates and cancels bookings. Creation writes the booking
// and its deposit payment in one transaction; lead sync happens after
// commit, best effort.
type BookingService struct {
	DB           *sql.DB
	BookingRepo  repositories.BookingRepository
	PaymentRepo  repositories.PaymentRepository
	TripRepo     repositories.TripRepository
	CustomerRepo repositories.CustomerRepository
	LeadSvc      LeadService
	RequestID    string
}

// CreateBookingInput carries the confirm-into-trip request. Extras flags
// pick up the trip's configured surcharge prices.
type CreateBookingInput struct {
	TripID           int64
	CustomerID       int64
	PassportID       *int64
	SingleSupplement bool
	ExtraBed         bool
	ExtraSeat        bool
	ExtraBag         bool
	Discount         decimal.Decimal
	DepositAmount    decimal.Decimal
	SalesUserID      int64
	AgentID          *int64
}

func (s BookingService) CreateBooking(in CreateBookingInput) (models.Booking, error) {
	if in.TripID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "trip_id", Msg: "invalid id"}
	}
	if in.CustomerID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "customer_id", Msg: "invalid id"}
	}
	if in.SalesUserID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "sales_user_id", Msg: "invalid id"}
	}
	if in.Discount.IsNegative() {
		return models.Booking{}, domain.ValidationError{Field: "discount", Msg: "must not be negative"}
	}
	if in.DepositAmount.IsNegative() {
		return models.Booking{}, domain.ValidationError{Field: "deposit_amount", Msg: "must not be negative"}
	}

	trip, err := s.TripRepo.GetByID(in.TripID)
	if err != nil {
		return models.Booking{}, err
	}
	if _, err := s.CustomerRepo.GetByID(in.CustomerID); err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		TripID:                in.TripID,
		CustomerID:            in.CustomerID,
		PassportID:            in.PassportID,
		SingleSupplement:      in.SingleSupplement,
		SingleSupplementPrice: trip.SingleSupplementPrice,
		ExtraBed:              in.ExtraBed,
		ExtraBedPrice:         trip.ExtraBedPrice,
		SeatSurcharge:         decimal.Zero,
		BagSurcharge:          decimal.Zero,
		Discount:              in.Discount,
		PaymentStatus:         domain.StatusDepositPending,
		SalesUserID:           in.SalesUserID,
		AgentID:               in.AgentID,
		TripBasePrice:         trip.BasePrice,
	}
	if in.ExtraSeat {
		booking.SeatSurcharge = trip.SeatPrice
	}
	if in.ExtraBag {
		booking.BagSurcharge = trip.BagPrice
	}
	if in.DepositAmount.IsPositive() {
		booking.PaymentStatus = domain.StatusDepositPaid
	}

	err = intdb.WithTx(context.Background(), s.db(), func(tx *sql.Tx) error {
		id, err := s.BookingRepo.CreateTx(tx, booking)
		if err != nil {
			return err
		}
		booking.ID = id

		if in.DepositAmount.IsPositive() {
			payID, err := s.PaymentRepo.InsertTx(tx, models.Payment{
				BookingID: id,
				Kind:      domain.PaymentFirst,
				Amount:    in.DepositAmount,
			})
			if err != nil {
				return err
			}
			if err := s.BookingRepo.LinkPaymentSlotTx(tx, id, payID, domain.PaymentFirst); err != nil {
				return err
			}
			booking.FirstPaymentID = &payID
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d trip_id=%d customer_id=%d deposit=%s",
			booking.ID, in.TripID, in.CustomerID, utils.FormatMoney(in.DepositAmount)))

	// Lead sync must never fail the booking that triggered it.
	s.leadSvc().MarkBooked(in.CustomerID)

	return booking, nil
}

// CancelBooking flips the status and pushes the customer's open leads to
// lost. No rows are deleted.
func (s BookingService) CancelBooking(id int64) error {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.BookingRepo.Cancel(id); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%d", id))
	s.leadSvc().MarkLost(booking.CustomerID)
	return nil
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) leadSvc() LeadService {
	svc := s.LeadSvc
	if svc.RequestID == "" {
		svc.RequestID = s.RequestID
	}
	return svc
}
