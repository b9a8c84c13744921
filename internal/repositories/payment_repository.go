package repositories

import (
	"database/sql"

	intconfig "tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// InsertTx writes the payment row inside the ledger transaction.
func (r PaymentRepository) InsertTx(tx *sql.Tx, p models.Payment) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO payments (booking_id, kind, amount, proof_file, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		p.BookingID, string(p.Kind), p.Amount, intdb.NullIfEmpty(p.ProofFile),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	var p models.Payment
	err := r.db().QueryRow(`
		SELECT id, booking_id, kind, amount, COALESCE(proof_file, ''), COALESCE(created_at, '')
		FROM payments
		WHERE id = ? LIMIT 1`, id).Scan(
		&p.ID, &p.BookingID, &p.Kind, &p.Amount, &p.ProofFile, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, err
	}
	return p, nil
}

// ListByBooking returns the booking's ledger, oldest first.
func (r PaymentRepository) ListByBooking(bookingID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, kind, amount, COALESCE(proof_file, ''), COALESCE(created_at, '')
		FROM payments
		WHERE booking_id = ?
		ORDER BY id ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Kind, &p.Amount, &p.ProofFile, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
