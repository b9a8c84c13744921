package repositories

import (
	"database/sql"
	"strings"

	intconfig "tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type LeadRepository struct {
	DB *sql.DB
}

func (r LeadRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const leadColumns = `
	id, customer_id, COALESCE(source, ''), status, COALESCE(notes, ''),
	assigned_user_id, COALESCE(created_at, ''), COALESCE(updated_at, '')`

func scanLead(row bookingScanner) (models.Lead, error) {
	var (
		l        models.Lead
		assigned sql.NullInt64
	)
	err := row.Scan(
		&l.ID, &l.CustomerID, &l.Source, &l.Status, &l.Notes,
		&assigned, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return models.Lead{}, err
	}
	l.AssignedUserID = nullID(assigned)
	return l, nil
}

func (r LeadRepository) GetByID(id int64) (models.Lead, error) {
	if id <= 0 {
		return models.Lead{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	l, err := scanLead(r.db().QueryRow(`SELECT`+leadColumns+` FROM leads WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Lead{}, domain.NotFoundError{Resource: "lead"}
		}
		return models.Lead{}, err
	}
	return l, nil
}

func (r LeadRepository) List(status string) ([]models.Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads`
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		query += ` WHERE status = ?`
		args = append(args, s)
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r LeadRepository) Create(l models.Lead) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO leads (customer_id, source, status, notes, assigned_user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		l.CustomerID, l.Source, string(l.Status), l.Notes,
		nullable(l.AssignedUserID),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r LeadRepository) UpdateStatus(id int64, status domain.LeadStatus) error {
	res, err := r.db().Exec(
		`UPDATE leads SET status = ?, updated_at = NOW() WHERE id = ?`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "lead"}
	}
	return nil
}

// UpdateOpenStatusByCustomer moves every still-open lead of the customer to
// the given status. Booked/lost leads are left alone.
func (r LeadRepository) UpdateOpenStatusByCustomer(customerID int64, status domain.LeadStatus) (int64, error) {
	res, err := r.db().Exec(`
		UPDATE leads SET status = ?, updated_at = NOW()
		WHERE customer_id = ? AND status IN (?, ?, ?)`,
		string(status), customerID,
		string(domain.LeadNew), string(domain.LeadContacted), string(domain.LeadQuoted),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r LeadRepository) UpdateNotes(id int64, notes string) error {
	_, err := r.db().Exec(
		`UPDATE leads SET notes = ?, updated_at = NOW() WHERE id = ?`,
		intdb.NullIfEmpty(notes), id,
	)
	return err
}
