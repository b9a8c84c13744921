package repositories

import (
	"context"
	"testing"

	"tourops/internal/domain"
	"tourops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLinkPaymentSlotTx_WinnerAndLoser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET second_payment_id").
		WithArgs(int64(11), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET second_payment_id").
		WithArgs(int64(12), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := BookingRepository{DB: db}

	if err := repo.LinkPaymentSlotTx(tx, 7, 11, domain.PaymentSecond); err != nil {
		t.Fatalf("first writer must win: %v", err)
	}
	err = repo.LinkPaymentSlotTx(tx, 7, 12, domain.PaymentSecond)
	if !domain.IsConflict(err) {
		t.Fatalf("second writer must get a conflict, got %v", err)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLinkPaymentSlotTx_UnknownKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := BookingRepository{DB: db}
	err = repo.LinkPaymentSlotTx(tx, 7, 11, domain.PaymentKind("fourth"))
	if !domain.IsValidation(err) {
		t.Fatalf("unknown kind must be a validation error, got %v", err)
	}
}

func TestCancel_AlreadyCancelledConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET payment_status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	err = repo.Cancel(7)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for repeated cancel, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_NoFieldsIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := BookingRepository{DB: db}
	if err := repo.Update(7, models.BookingUpdate{}); err != nil {
		t.Fatalf("empty update must be a no-op: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statement should run: %v", err)
	}
}
