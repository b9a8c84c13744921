package repositories

import (
	"database/sql"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"

	"github.com/shopspring/decimal"
)

type CommissionRepository struct {
	DB *sql.DB
}

func (r CommissionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ExistsForBooking is the idempotency guard for the generator.
func (r CommissionRepository) ExistsForBooking(bookingID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(
		`SELECT COUNT(*) FROM commissions WHERE booking_id = ?`, bookingID,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r CommissionRepository) Insert(c models.Commission) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO commissions (agent_id, booking_id, amount, created_at)
		VALUES (?, ?, ?, NOW())`,
		c.AgentID, c.BookingID, c.Amount,
	)
	if err != nil {
		// the unique key on (agent_id, booking_id) makes a racing duplicate
		// surface here; callers treat it as already-generated
		if strings.Contains(err.Error(), "Duplicate entry") {
			return 0, domain.ConflictError{Resource: "commission", Msg: "already generated for booking"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// CommissionRow is a commission joined with its agent and booking trip,
// the shape the aggregator groups over.
type CommissionRow struct {
	ID        int64
	AgentID   int64
	AgentName string
	BookingID int64
	TripID    int64
	Amount    decimal.Decimal
	CreatedAt string
}

// ListWithBooking fetches commissions matching the filter. Date bounds are
// inclusive on created_at's date part; name search is a case-insensitive
// substring on the agent display name.
func (r CommissionRepository) ListWithBooking(f domain.CommissionFilter) ([]CommissionRow, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.DateFrom != "" {
		where = append(where, "DATE(c.created_at) >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		where = append(where, "DATE(c.created_at) <= ?")
		args = append(args, f.DateTo)
	}
	if s := strings.TrimSpace(f.NameSearch); s != "" {
		where = append(where, "LOWER(u.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}

	query := `
		SELECT c.id, c.agent_id, COALESCE(u.name, ''), c.booking_id,
		       COALESCE(b.trip_id, 0), c.amount, COALESCE(c.created_at, '')
		FROM commissions c
		LEFT JOIN users u ON u.id = c.agent_id
		LEFT JOIN bookings b ON b.id = c.booking_id
		WHERE ` + strings.Join(where, " AND ")

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CommissionRow{}
	for rows.Next() {
		var row CommissionRow
		if err := rows.Scan(&row.ID, &row.AgentID, &row.AgentName, &row.BookingID,
			&row.TripID, &row.Amount, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CommissionDetailRow expands a commission with trip and customer context
// for the per-agent report.
type CommissionDetailRow struct {
	ID              int64
	BookingID       int64
	Amount          decimal.Decimal
	CreatedAt       string
	Trip            models.TripSummary
	CustomerFirst   string
	CustomerLast    string
	CustomerFirstEn string
	CustomerLastEn  string
}

// ListForAgent returns the agent's commissions in range, newest first.
func (r CommissionRepository) ListForAgent(agentID int64, f domain.CommissionFilter) ([]CommissionDetailRow, error) {
	where := []string{"c.agent_id = ?"}
	args := []any{agentID}
	if f.DateFrom != "" {
		where = append(where, "DATE(c.created_at) >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		where = append(where, "DATE(c.created_at) <= ?")
		args = append(args, f.DateTo)
	}

	query := `
		SELECT c.id, c.booking_id, c.amount, COALESCE(c.created_at, ''),
		       COALESCE(t.id, 0), COALESCE(t.code, ''), COALESCE(t.name, ''),
		       COALESCE(t.start_date, ''), COALESCE(t.end_date, ''),
		       COALESCE(cu.first_name, ''), COALESCE(cu.last_name, ''),
		       COALESCE(cu.first_name_en, ''), COALESCE(cu.last_name_en, '')
		FROM commissions c
		LEFT JOIN bookings b ON b.id = c.booking_id
		LEFT JOIN trips t ON t.id = b.trip_id
		LEFT JOIN customers cu ON cu.id = b.customer_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CommissionDetailRow{}
	for rows.Next() {
		var row CommissionDetailRow
		if err := rows.Scan(&row.ID, &row.BookingID, &row.Amount, &row.CreatedAt,
			&row.Trip.ID, &row.Trip.Code, &row.Trip.Name,
			&row.Trip.StartDate, &row.Trip.EndDate,
			&row.CustomerFirst, &row.CustomerLast,
			&row.CustomerFirstEn, &row.CustomerLastEn); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
