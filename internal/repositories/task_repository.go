package repositories

import (
	"database/sql"
	"strings"

	intconfig "tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type TaskRepository struct {
	DB *sql.DB
}

func (r TaskRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const taskColumns = `
	id, COALESCE(title, ''), COALESCE(notes, ''), assignee_id,
	lead_id, booking_id, COALESCE(due_date, ''), status, COALESCE(created_at, '')`

func scanTask(row bookingScanner) (models.Task, error) {
	var (
		t       models.Task
		lead    sql.NullInt64
		booking sql.NullInt64
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Notes, &t.AssigneeID,
		&lead, &booking, &t.DueDate, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}
	t.LeadID = nullID(lead)
	t.BookingID = nullID(booking)
	return t, nil
}

// List filters by assignee and/or status; both optional.
func (r TaskRepository) List(assigneeID int64, status string) ([]models.Task, error) {
	where := []string{"1=1"}
	args := []any{}
	if assigneeID > 0 {
		where = append(where, "assignee_id = ?")
		args = append(args, assigneeID)
	}
	if s := strings.TrimSpace(status); s != "" {
		where = append(where, "status = ?")
		args = append(args, s)
	}

	rows, err := r.db().Query(
		`SELECT`+taskColumns+` FROM tasks WHERE `+strings.Join(where, " AND ")+` ORDER BY due_date ASC, id ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TaskRepository) Create(t models.Task) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO tasks (title, notes, assignee_id, lead_id, booking_id, due_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`,
		t.Title, intdb.NullIfEmpty(t.Notes), t.AssigneeID,
		nullable(t.LeadID), nullable(t.BookingID),
		intdb.NullIfEmpty(t.DueDate), string(t.Status),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TaskRepository) UpdateStatus(id int64, status domain.TaskStatus) error {
	res, err := r.db().Exec(`UPDATE tasks SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "task"}
	}
	return nil
}
