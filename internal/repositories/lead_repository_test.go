package repositories

import (
	"testing"

	"tourops/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateOpenStatusByCustomer_OnlyOpenLeadsMove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE leads SET status").
		WithArgs("booked", int64(5), "new", "contacted", "quoted").
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := LeadRepository{DB: db}
	n, err := repo.UpdateOpenStatusByCustomer(5, domain.LeadBooked)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 leads moved, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_MissingLeadIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE leads SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := LeadRepository{DB: db}
	err = repo.UpdateStatus(99, domain.LeadContacted)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
