package services

import (
	"testing"

	"tourops/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestCommissionService(t *testing.T) (CommissionService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return CommissionService{
		CommissionRepo: repositories.CommissionRepository{DB: db},
		BookingRepo:    repositories.BookingRepository{DB: db},
		UserRepo:       repositories.UserRepository{DB: db},
		RequestID:      "test-req",
	}, mock
}

func TestGenerateForBooking_SkipsWhenAlreadyGenerated(t *testing.T) {
	svc, mock := newTestCommissionService(t)

	mock.ExpectQuery("FROM bookings b").
		WillReturnRows(bookingRow("fully_paid", 12, nil))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM commissions").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	if err := svc.GenerateForBooking(7); err != nil {
		t.Fatalf("existing commission must be a no-op, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerateForBooking_SkipsWithoutResponsibleAgent(t *testing.T) {
	svc, mock := newTestCommissionService(t)

	row := sqlmock.NewRows(bookingCols).AddRow(
		7, 3, 5, nil,
		false, "0", false, "0",
		"0", "0", "0",
		"fully_paid", 1, 12, nil,
		0, nil, "1000.00", "2025-06-01 10:00:00",
	)
	mock.ExpectQuery("FROM bookings b").WillReturnRows(row)

	if err := svc.GenerateForBooking(7); err != nil {
		t.Fatalf("missing agent must be a logged skip, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerateForBooking_AssistingAgentWinsOverSalesUser(t *testing.T) {
	svc, mock := newTestCommissionService(t)

	row := sqlmock.NewRows(bookingCols).AddRow(
		7, 3, 5, nil,
		false, "0", false, "0",
		"0", "0", "0",
		"fully_paid", 1, 12, nil,
		9, 14, "1000.00", "2025-06-01 10:00:00",
	)
	mock.ExpectQuery("FROM bookings b").WillReturnRows(row)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM commissions").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("FROM users").WithArgs(int64(14)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "username", "email", "phone", "role", "commission_rate", "status",
		}).AddRow(14, "Assisting Agent", "agent14", "a14@example.com", "", "agent", "75.00", "active"))
	mock.ExpectExec("INSERT INTO commissions").WithArgs(int64(14), int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(6, 1))

	if err := svc.GenerateForBooking(7); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
