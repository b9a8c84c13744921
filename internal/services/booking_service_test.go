package services

import (
	"testing"

	"tourops/internal/domain"
	"tourops/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return BookingService{
		DB:           db,
		BookingRepo:  repositories.BookingRepository{DB: db},
		PaymentRepo:  repositories.PaymentRepository{DB: db},
		TripRepo:     repositories.TripRepository{DB: db},
		CustomerRepo: repositories.CustomerRepository{DB: db},
		LeadSvc:      LeadService{LeadRepo: repositories.LeadRepository{DB: db}},
		RequestID:    "test-req",
	}, mock
}

func expectTripAndCustomerLookups(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "name", "start_date", "end_date",
			"base_price", "capacity",
			"single_supplement_price", "extra_bed_price",
			"seat_price", "bag_price", "created_at",
		}).AddRow(3, "JP-09", "Autumn Japan", "2025-11-01", "2025-11-09",
			"2500.00", 30, "400.00", "150.00", "120.00", "60.00", "2025-06-01 10:00:00"))
	mock.ExpectQuery("FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "first_name", "last_name", "first_name_en", "last_name_en",
			"phone", "email", "created_at",
		}).AddRow(5, "山田", "太郎", "Taro", "Yamada", "0800", "taro@example.com", "2025-05-01 09:00:00"))
}

func TestCreateBooking_DepositFillsFirstSlot(t *testing.T) {
	svc, mock := newTestBookingService(t)

	expectTripAndCustomerLookups(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("UPDATE bookings SET first_payment_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// lead sync after commit
	mock.ExpectExec("UPDATE leads SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking, err := svc.CreateBooking(CreateBookingInput{
		TripID:        3,
		CustomerID:    5,
		ExtraSeat:     true,
		DepositAmount: mustDecimal(t, "500.00"),
		SalesUserID:   9,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if booking.ID != 7 {
		t.Fatalf("booking id not set: got %d", booking.ID)
	}
	if booking.PaymentStatus != domain.StatusDepositPaid {
		t.Fatalf("deposit must move status to deposit_paid, got %s", booking.PaymentStatus)
	}
	if booking.FirstPaymentID == nil || *booking.FirstPaymentID != 21 {
		t.Fatalf("first payment slot not filled: %#v", booking.FirstPaymentID)
	}
	if !booking.SeatSurcharge.Equal(mustDecimal(t, "120.00")) {
		t.Fatalf("seat surcharge not copied from trip: %s", booking.SeatSurcharge)
	}
	if !booking.BagSurcharge.IsZero() {
		t.Fatalf("bag surcharge must stay zero when not requested: %s", booking.BagSurcharge)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBooking_NoDepositStaysPending(t *testing.T) {
	svc, mock := newTestBookingService(t)

	expectTripAndCustomerLookups(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectCommit()
	mock.ExpectExec("UPDATE leads SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	booking, err := svc.CreateBooking(CreateBookingInput{
		TripID:      3,
		CustomerID:  5,
		SalesUserID: 9,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.PaymentStatus != domain.StatusDepositPending {
		t.Fatalf("no deposit must stay deposit_pending, got %s", booking.PaymentStatus)
	}
	if booking.FirstPaymentID != nil {
		t.Fatalf("no payment expected, got %v", *booking.FirstPaymentID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBooking_RejectsNegativeInputs(t *testing.T) {
	svc, _ := newTestBookingService(t)

	_, err := svc.CreateBooking(CreateBookingInput{
		TripID: 3, CustomerID: 5, SalesUserID: 9,
		Discount: mustDecimal(t, "-10"),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for discount, got %v", err)
	}

	_, err = svc.CreateBooking(CreateBookingInput{
		TripID: 3, CustomerID: 5, SalesUserID: 9,
		DepositAmount: mustDecimal(t, "-1"),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for deposit, got %v", err)
	}
}
