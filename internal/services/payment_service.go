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

// PaymentService is the installment ledger: it records second/third
// payments, recomputes the paid total, moves the booking's payment status
// and, when a booking lands on fully paid, hands off to the commission
// generator after the transaction commits.
type PaymentService struct {
	DB            *sql.DB
	BookingRepo   repositories.BookingRepository
	PaymentRepo   repositories.PaymentRepository
	CommissionSvc CommissionService
	RequestID     string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// RecordPaymentInput is everything a payment write needs. Amount arrives
// pre-parsed; handlers turn query/body strings into decimals.
type RecordPaymentInput struct {
	BookingID int64
	Kind      domain.PaymentKind
	Amount    decimal.Decimal
	ProofFile string
}

// RecordPayment runs the ledger write as one transaction: precondition
// checks, payment insert, slot link, paid-total recompute, status
// transition. Any failure rolls the whole thing back. The commission hook
// runs after commit and its errors are logged, never returned.
func (s PaymentService) RecordPayment(in RecordPaymentInput) (models.Payment, error) {
	if in.BookingID <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	if in.Kind != domain.PaymentSecond && in.Kind != domain.PaymentThird {
		return models.Payment{}, domain.ValidationError{Field: "kind", Msg: "must be second or third"}
	}
	if !in.Amount.IsPositive() {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "must be a positive amount"}
	}

	var (
		payment      models.Payment
		statusBefore domain.PaymentStatus
		statusAfter  domain.PaymentStatus
	)

	err := intdb.WithTx(context.Background(), s.db(), func(tx *sql.Tx) error {
		booking, err := s.BookingRepo.GetForUpdateTx(tx, in.BookingID)
		if err != nil {
			return err
		}
		statusBefore = booking.PaymentStatus

		if err := checkSlotPreconditions(booking, in.Kind); err != nil {
			return err
		}

		payment = models.Payment{
			BookingID: in.BookingID,
			Kind:      in.Kind,
			Amount:    in.Amount,
			ProofFile: in.ProofFile,
		}
		id, err := s.PaymentRepo.InsertTx(tx, payment)
		if err != nil {
			return err
		}
		payment.ID = id

		if err := s.BookingRepo.LinkPaymentSlotTx(tx, in.BookingID, id, in.Kind); err != nil {
			return err
		}

		paid, err := s.BookingRepo.SumLedgerTx(tx, in.BookingID)
		if err != nil {
			return err
		}

		total := TotalPayable(booking)
		if total.IsNegative() {
			utils.LogEvent(s.RequestID, "payment", "record",
				fmt.Sprintf("booking_id=%d has negative total payable %s, check extras/discount", in.BookingID, total))
		}

		statusAfter = NextPaymentStatus(statusBefore, paid, total)
		if statusAfter != statusBefore {
			if err := s.BookingRepo.UpdatePaymentStatusTx(tx, in.BookingID, statusAfter); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Payment{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "record",
		fmt.Sprintf("booking_id=%d kind=%s amount=%s status=%s", in.BookingID, in.Kind, utils.FormatMoney(in.Amount), statusAfter))

	// The payment is already committed; commission failures are logged and
	// never surface to the caller.
	if statusAfter == domain.StatusFullyPaid && statusBefore != domain.StatusFullyPaid {
		if err := s.commissionSvc().GenerateForBooking(in.BookingID); err != nil {
			utils.LogEvent(s.RequestID, "commission", "generate",
				fmt.Sprintf("booking_id=%d failed: %s", in.BookingID, err.Error()))
		}
	}

	return payment, nil
}

func (s PaymentService) commissionSvc() CommissionService {
	svc := s.CommissionSvc
	if svc.RequestID == "" {
		svc.RequestID = s.RequestID
	}
	return svc
}

// checkSlotPreconditions enforces the slot-free and ordering rules before
// anything is written. Slot-occupied and out-of-order get distinct messages.
func checkSlotPreconditions(b models.Booking, kind domain.PaymentKind) error {
	switch kind {
	case domain.PaymentSecond:
		if b.SecondPaymentID != nil {
			return domain.ConflictError{Resource: "booking", Msg: "second payment already recorded"}
		}
	case domain.PaymentThird:
		if b.ThirdPaymentID != nil {
			return domain.ConflictError{Resource: "booking", Msg: "third payment already recorded"}
		}
		if b.SecondPaymentID == nil {
			return domain.ConflictError{Resource: "booking", Msg: "third payment requires a second payment first"}
		}
	}
	return nil
}
