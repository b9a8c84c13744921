package services

import (
	"testing"

	"tourops/internal/domain"
	"tourops/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingCols = []string{
	"id", "trip_id", "customer_id", "passport_id",
	"single_supplement", "single_supplement_price",
	"extra_bed", "extra_bed_price",
	"seat_surcharge", "bag_surcharge", "discount",
	"payment_status", "first_payment_id", "second_payment_id", "third_payment_id",
	"sales_user_id", "agent_id", "base_price", "created_at",
}

// bookingRow builds the locked-booking result: base price 1000, a first
// payment already in slot one, no extras.
func bookingRow(status string, second, third any) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).AddRow(
		7, 3, 5, nil,
		false, "0", false, "0",
		"0", "0", "0",
		status, 1, second, third,
		9, nil, "1000.00", "2025-06-01 10:00:00",
	)
}

func newTestPaymentService(t *testing.T) (PaymentService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return PaymentService{
		DB:          db,
		BookingRepo: repositories.BookingRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		CommissionSvc: CommissionService{
			CommissionRepo: repositories.CommissionRepository{DB: db},
			BookingRepo:    repositories.BookingRepository{DB: db},
			UserRepo:       repositories.UserRepository{DB: db},
		},
		RequestID: "test-req",
	}, mock
}

func TestRecordPayment_PartialKeepsDepositPaid(t *testing.T) {
	svc, mock := newTestPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b(.|\n)*FOR UPDATE").
		WillReturnRows(bookingRow("deposit_paid", nil, nil))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("UPDATE bookings SET second_payment_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("COALESCE\\(SUM").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("700.00"))
	mock.ExpectCommit()

	payment, err := svc.RecordPayment(RecordPaymentInput{
		BookingID: 7,
		Kind:      domain.PaymentSecond,
		Amount:    mustDecimal(t, "300.00"),
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if payment.ID != 11 {
		t.Fatalf("payment id not set from insert: got %d", payment.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPayment_SecondSlotOccupiedConflicts(t *testing.T) {
	svc, mock := newTestPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b(.|\n)*FOR UPDATE").
		WillReturnRows(bookingRow("deposit_paid", 22, nil))
	mock.ExpectRollback()

	_, err := svc.RecordPayment(RecordPaymentInput{
		BookingID: 7,
		Kind:      domain.PaymentSecond,
		Amount:    mustDecimal(t, "300.00"),
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPayment_ThirdRequiresSecond(t *testing.T) {
	svc, mock := newTestPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b(.|\n)*FOR UPDATE").
		WillReturnRows(bookingRow("deposit_paid", nil, nil))
	mock.ExpectRollback()

	_, err := svc.RecordPayment(RecordPaymentInput{
		BookingID: 7,
		Kind:      domain.PaymentThird,
		Amount:    mustDecimal(t, "300.00"),
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected ordering conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPayment_FullyPaidGeneratesCommission(t *testing.T) {
	svc, mock := newTestPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b(.|\n)*FOR UPDATE").
		WillReturnRows(bookingRow("deposit_paid", nil, nil))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE bookings SET second_payment_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("COALESCE\\(SUM").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("1000.00"))
	mock.ExpectExec("UPDATE bookings SET payment_status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// commission generation runs after commit against the committed row
	mock.ExpectQuery("FROM bookings b").
		WillReturnRows(bookingRow("fully_paid", 12, nil))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM commissions").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("FROM users").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "username", "email", "phone", "role", "commission_rate", "status",
		}).AddRow(9, "Agent Nine", "agent9", "a9@example.com", "", "agent", "50.00", "active"))
	mock.ExpectExec("INSERT INTO commissions").
		WillReturnResult(sqlmock.NewResult(5, 1))

	_, err := svc.RecordPayment(RecordPaymentInput{
		BookingID: 7,
		Kind:      domain.PaymentSecond,
		Amount:    mustDecimal(t, "600.00"),
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPayment_CommissionFailureDoesNotSurface(t *testing.T) {
	svc, mock := newTestPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b(.|\n)*FOR UPDATE").
		WillReturnRows(bookingRow("deposit_paid", nil, nil))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectExec("UPDATE bookings SET second_payment_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("COALESCE\\(SUM").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("1000.00"))
	mock.ExpectExec("UPDATE bookings SET payment_status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// booking lookup for commission generation comes back empty
	mock.ExpectQuery("FROM bookings b").
		WillReturnRows(sqlmock.NewRows(bookingCols))

	payment, err := svc.RecordPayment(RecordPaymentInput{
		BookingID: 7,
		Kind:      domain.PaymentSecond,
		Amount:    mustDecimal(t, "600.00"),
	})
	if err != nil {
		t.Fatalf("payment must commit even when commission fails: %v", err)
	}
	if payment.ID != 13 {
		t.Fatalf("payment id not set: got %d", payment.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPayment_RejectsBadInput(t *testing.T) {
	svc, _ := newTestPaymentService(t)

	_, err := svc.RecordPayment(RecordPaymentInput{BookingID: 0, Kind: domain.PaymentSecond, Amount: mustDecimal(t, "10")})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for booking id, got %v", err)
	}

	_, err = svc.RecordPayment(RecordPaymentInput{BookingID: 1, Kind: domain.PaymentFirst, Amount: mustDecimal(t, "10")})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for kind, got %v", err)
	}

	_, err = svc.RecordPayment(RecordPaymentInput{BookingID: 1, Kind: domain.PaymentSecond, Amount: mustDecimal(t, "0")})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for amount, got %v", err)
	}
}
