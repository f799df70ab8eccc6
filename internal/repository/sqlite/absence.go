package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newwork/workforce/internal/models"
)

func (r *Repo) CreateAbsence(ctx context.Context, a *models.AbsenceRequest) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("absence request is nil")
	}

	status := a.Status
	if status == "" {
		status = models.AbsencePending
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO absence_requests (user_id, start_date, end_date, reason, status, created) VALUES (?, ?, ?, ?, ?, ?)`,
		a.UserID, a.StartDate, a.EndDate, a.Reason, string(status), now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) GetAbsenceByID(ctx context.Context, id int64) (*models.AbsenceRequest, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, start_date, end_date, reason, status, created FROM absence_requests WHERE id = ?`, id)
	var a models.AbsenceRequest
	var status string
	if err := row.Scan(&a.ID, &a.UserID, &a.StartDate, &a.EndDate, &a.Reason, &status, &a.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	a.Status = models.AbsenceStatus(status)

	return &a, nil
}

func (r *Repo) ListAbsences(ctx context.Context) ([]models.AbsenceRequest, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, start_date, end_date, reason, status, created FROM absence_requests ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AbsenceRequest
	for rows.Next() {
		var a models.AbsenceRequest
		var status string
		if err := rows.Scan(&a.ID, &a.UserID, &a.StartDate, &a.EndDate, &a.Reason, &status, &a.Created); err != nil {
			return nil, err
		}
		a.Status = models.AbsenceStatus(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Advance is the compare-and-set behind absence transitions. The WHERE
// clause re-checks the current status so two concurrent manager actions
// cannot both move the same request; the loser sees zero rows affected.
func (r *Repo) Advance(ctx context.Context, id int64, from, to models.AbsenceStatus) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE absence_requests SET status = ? WHERE id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
