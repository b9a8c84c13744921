package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"

	"github.com/shopspring/decimal"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	b.id,
	b.trip_id,
	b.customer_id,
	b.passport_id,
	b.single_supplement,
	COALESCE(b.single_supplement_price, 0),
	b.extra_bed,
	COALESCE(b.extra_bed_price, 0),
	COALESCE(b.seat_surcharge, 0),
	COALESCE(b.bag_surcharge, 0),
	COALESCE(b.discount, 0),
	b.payment_status,
	b.first_payment_id,
	b.second_payment_id,
	b.third_payment_id,
	b.sales_user_id,
	b.agent_id,
	COALESCE(t.base_price, 0),
	COALESCE(b.created_at, '')`

type bookingScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingScanner) (models.Booking, error) {
	var (
		b        models.Booking
		passport sql.NullInt64
		first    sql.NullInt64
		second   sql.NullInt64
		third    sql.NullInt64
		agent    sql.NullInt64
	)
	err := row.Scan(
		&b.ID,
		&b.TripID,
		&b.CustomerID,
		&passport,
		&b.SingleSupplement,
		&b.SingleSupplementPrice,
		&b.ExtraBed,
		&b.ExtraBedPrice,
		&b.SeatSurcharge,
		&b.BagSurcharge,
		&b.Discount,
		&b.PaymentStatus,
		&first,
		&second,
		&third,
		&b.SalesUserID,
		&agent,
		&b.TripBasePrice,
		&b.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.PassportID = nullID(passport)
	b.FirstPaymentID = nullID(first)
	b.SecondPaymentID = nullID(second)
	b.ThirdPaymentID = nullID(third)
	b.AgentID = nullID(agent)
	return b, nil
}

func nullID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	query := `SELECT` + bookingColumns + `
		FROM bookings b
		LEFT JOIN trips t ON t.id = b.trip_id
		WHERE b.id = ? LIMIT 1`
	b, err := scanBooking(r.db().QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// GetForUpdateTx loads a booking inside tx with a row lock so concurrent
// payment submissions serialize on the same booking.
func (r BookingRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings b
		LEFT JOIN trips t ON t.id = b.trip_id
		WHERE b.id = ? LIMIT 1 FOR UPDATE`
	b, err := scanBooking(tx.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepository) List(f domain.BookingFilter) ([]models.Booking, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.TripID > 0 {
		where = append(where, "b.trip_id = ?")
		args = append(args, f.TripID)
	}
	if f.CustomerID > 0 {
		where = append(where, "b.customer_id = ?")
		args = append(args, f.CustomerID)
	}
	if f.PaymentStatus != "" {
		where = append(where, "b.payment_status = ?")
		args = append(args, f.PaymentStatus)
	}

	query := `SELECT` + bookingColumns + `
		FROM bookings b
		LEFT JOIN trips t ON t.id = b.trip_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY b.id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateTx inserts the booking row and returns its id. Pricing fields are
// already resolved by the caller (trip defaults copied in).
func (r BookingRepository) CreateTx(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings
			(trip_id, customer_id, passport_id,
			 single_supplement, single_supplement_price,
			 extra_bed, extra_bed_price,
			 seat_surcharge, bag_surcharge, discount,
			 payment_status, sales_user_id, agent_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		b.TripID,
		b.CustomerID,
		nullable(b.PassportID),
		b.SingleSupplement,
		b.SingleSupplementPrice,
		b.ExtraBed,
		b.ExtraBedPrice,
		b.SeatSurcharge,
		b.BagSurcharge,
		b.Discount,
		string(b.PaymentStatus),
		b.SalesUserID,
		nullable(b.AgentID),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func nullable(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// LinkPaymentSlotTx attaches a payment to its slot only when the slot is
// still empty; RowsAffected distinguishes the losing concurrent writer.
func (r BookingRepository) LinkPaymentSlotTx(tx *sql.Tx, bookingID, paymentID int64, kind domain.PaymentKind) error {
	col, ok := slotColumn(kind)
	if !ok {
		return domain.ValidationError{Field: "kind", Msg: fmt.Sprintf("unknown payment kind %q", kind)}
	}
	res, err := tx.Exec(
		`UPDATE bookings SET `+col+` = ? WHERE id = ? AND `+col+` IS NULL`,
		paymentID, bookingID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ConflictError{Resource: "booking", Msg: fmt.Sprintf("%s payment already recorded", kind)}
	}
	return nil
}

func slotColumn(kind domain.PaymentKind) (string, bool) {
	switch kind {
	case domain.PaymentFirst:
		return "first_payment_id", true
	case domain.PaymentSecond:
		return "second_payment_id", true
	case domain.PaymentThird:
		return "third_payment_id", true
	}
	return "", false
}

// SumLedgerTx recomputes cumulative paid from the populated payment slots.
func (r BookingRepository) SumLedgerTx(tx *sql.Tx, bookingID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(`
		SELECT COALESCE(SUM(p.amount), 0)
		FROM bookings b
		JOIN payments p
			ON p.id IN (b.first_payment_id, b.second_payment_id, b.third_payment_id)
		WHERE b.id = ?`, bookingID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r BookingRepository) UpdatePaymentStatusTx(tx *sql.Tx, bookingID int64, status domain.PaymentStatus) error {
	_, err := tx.Exec(`UPDATE bookings SET payment_status = ? WHERE id = ?`, string(status), bookingID)
	return err
}

// Cancel flips the status; bookings are never deleted.
func (r BookingRepository) Cancel(id int64) error {
	res, err := r.db().Exec(
		`UPDATE bookings SET payment_status = ? WHERE id = ? AND payment_status <> ?`,
		string(domain.StatusCancelled), id, string(domain.StatusCancelled),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ConflictError{Resource: "booking", Msg: "already cancelled or missing"}
	}
	return nil
}

func (r BookingRepository) Update(id int64, u models.BookingUpdate) error {
	sets := []string{}
	args := []any{}
	if u.PassportID != nil {
		sets = append(sets, "passport_id = ?")
		args = append(args, intdb.NullIfZero(*u.PassportID))
	}
	if u.Discount != nil {
		sets = append(sets, "discount = ?")
		args = append(args, *u.Discount)
	}
	if u.AgentID != nil {
		sets = append(sets, "agent_id = ?")
		args = append(args, intdb.NullIfZero(*u.AgentID))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}
