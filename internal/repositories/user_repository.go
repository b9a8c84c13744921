package repositories

import (
	"database/sql"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"

	"github.com/shopspring/decimal"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `
	id, COALESCE(name, ''), COALESCE(username, ''), COALESCE(email, ''),
	COALESCE(phone, ''), COALESCE(role, ''), COALESCE(commission_rate, 0),
	COALESCE(status, '')`

func scanUser(row bookingScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Username, &u.Email,
		&u.Phone, &u.Role, &u.CommissionRate, &u.Status,
	)
	return u, err
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	u, err := scanUser(r.db().QueryRow(`SELECT`+userColumns+` FROM users WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, err
	}
	return u, nil
}

// GetCredentials looks a user up by email or username for login and also
// returns the password hash, which never leaves this layer otherwise.
func (r UserRepository) GetCredentials(emailOrUsername string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name, ''), COALESCE(username, ''), COALESCE(email, ''),
		       COALESCE(phone, ''), COALESCE(role, ''), COALESCE(commission_rate, 0),
		       COALESCE(status, ''), password_hash
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1`, emailOrUsername, emailOrUsername).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email,
		&u.Phone, &u.Role, &u.CommissionRate, &u.Status, &hash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, "", domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`SELECT` + userColumns + ` FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, commission_rate, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'active')`,
		u.Name, u.Username, u.Email, u.Phone, passwordHash, u.Role, u.CommissionRate,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) UpdateCommissionRate(id int64, rate decimal.Decimal) error {
	res, err := r.db().Exec(`UPDATE users SET commission_rate = ? WHERE id = ?`, rate, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
