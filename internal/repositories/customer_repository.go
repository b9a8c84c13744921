package repositories

import (
	"database/sql"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type CustomerRepository struct {
	DB *sql.DB
}

func (r CustomerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const customerColumns = `
	id,
	COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(first_name_en, ''), COALESCE(last_name_en, ''),
	COALESCE(phone, ''), COALESCE(email, ''),
	COALESCE(created_at, '')`

func scanCustomer(row bookingScanner) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID,
		&c.FirstName, &c.LastName,
		&c.FirstNameEn, &c.LastNameEn,
		&c.Phone, &c.Email,
		&c.CreatedAt,
	)
	return c, err
}

func (r CustomerRepository) GetByID(id int64) (models.Customer, error) {
	if id <= 0 {
		return models.Customer{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	c, err := scanCustomer(r.db().QueryRow(`SELECT`+customerColumns+` FROM customers WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Customer{}, domain.NotFoundError{Resource: "customer"}
		}
		return models.Customer{}, err
	}
	return c, nil
}

// List supports an optional case-insensitive name search over both name pairs.
func (r CustomerRepository) List(nameSearch string) ([]models.Customer, error) {
	query := `SELECT` + customerColumns + ` FROM customers`
	args := []any{}
	if s := strings.TrimSpace(nameSearch); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query += ` WHERE LOWER(CONCAT(first_name, ' ', last_name)) LIKE ?
			OR LOWER(CONCAT(first_name_en, ' ', last_name_en)) LIKE ?`
		args = append(args, like, like)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CustomerRepository) Create(c models.Customer) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO customers
			(first_name, last_name, first_name_en, last_name_en, phone, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`,
		c.FirstName, c.LastName, c.FirstNameEn, c.LastNameEn, c.Phone, c.Email,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CustomerRepository) Update(c models.Customer) error {
	res, err := r.db().Exec(`
		UPDATE customers SET
			first_name = ?, last_name = ?, first_name_en = ?, last_name_en = ?,
			phone = ?, email = ?
		WHERE id = ?`,
		c.FirstName, c.LastName, c.FirstNameEn, c.LastNameEn,
		c.Phone, c.Email, c.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "customer"}
	}
	return nil
}

func (r CustomerRepository) ListPassports(customerID int64) ([]models.Passport, error) {
	rows, err := r.db().Query(`
		SELECT id, customer_id, COALESCE(number, ''), COALESCE(expiry_date, '')
		FROM passports
		WHERE customer_id = ?
		ORDER BY id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passport{}
	for rows.Next() {
		var p models.Passport
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Number, &p.ExpiryDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r CustomerRepository) AddPassport(p models.Passport) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO passports (customer_id, number, expiry_date)
		VALUES (?, ?, ?)`,
		p.CustomerID, p.Number, p.ExpiryDate,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
