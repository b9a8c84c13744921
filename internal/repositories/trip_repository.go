package repositories

import (
	"database/sql"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `
	id, code, name,
	COALESCE(start_date, ''), COALESCE(end_date, ''),
	COALESCE(base_price, 0), COALESCE(capacity, 0),
	COALESCE(single_supplement_price, 0), COALESCE(extra_bed_price, 0),
	COALESCE(seat_price, 0), COALESCE(bag_price, 0),
	COALESCE(created_at, '')`

func scanTrip(row bookingScanner) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID, &t.Code, &t.Name,
		&t.StartDate, &t.EndDate,
		&t.BasePrice, &t.Capacity,
		&t.SingleSupplementPrice, &t.ExtraBedPrice,
		&t.SeatPrice, &t.BagPrice,
		&t.CreatedAt,
	)
	return t, err
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	t, err := scanTrip(r.db().QueryRow(`SELECT`+tripColumns+` FROM trips WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "trip"}
		}
		return models.Trip{}, err
	}
	return t, nil
}

func (r TripRepository) List() ([]models.Trip, error) {
	rows, err := r.db().Query(`SELECT` + tripColumns + ` FROM trips ORDER BY start_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) Create(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips
			(code, name, start_date, end_date, base_price, capacity,
			 single_supplement_price, extra_bed_price, seat_price, bag_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		t.Code, t.Name, t.StartDate, t.EndDate, t.BasePrice, t.Capacity,
		t.SingleSupplementPrice, t.ExtraBedPrice, t.SeatPrice, t.BagPrice,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) Update(t models.Trip) error {
	res, err := r.db().Exec(`
		UPDATE trips SET
			code = ?, name = ?, start_date = ?, end_date = ?,
			base_price = ?, capacity = ?,
			single_supplement_price = ?, extra_bed_price = ?,
			seat_price = ?, bag_price = ?
		WHERE id = ?`,
		t.Code, t.Name, t.StartDate, t.EndDate,
		t.BasePrice, t.Capacity,
		t.SingleSupplementPrice, t.ExtraBedPrice,
		t.SeatPrice, t.BagPrice,
		t.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}
