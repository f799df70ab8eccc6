package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newwork/workforce/internal/models"
)

func (r *Repo) CreateFeedback(ctx context.Context, f *models.Feedback) (int64, error) {
	if f == nil {
		return 0, fmt.Errorf("feedback is nil")
	}

	var polished sql.NullString
	if f.PolishedContent != nil {
		polished = sql.NullString{String: *f.PolishedContent, Valid: true}
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO feedback (data_item_id, from_user_id, content, polished_content, created) VALUES (?, ?, ?, ?, ?)`,
		f.DataItemID, f.FromUserID, f.Content, polished, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) ListFeedbackByDataItem(ctx context.Context, dataItemID int64) ([]models.Feedback, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, data_item_id, from_user_id, content, polished_content, created FROM feedback WHERE data_item_id = ? ORDER BY id`, dataItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Feedback
	for rows.Next() {
		var f models.Feedback
		var polished sql.NullString
		if err := rows.Scan(&f.ID, &f.DataItemID, &f.FromUserID, &f.Content, &polished, &f.Created); err != nil {
			return nil, err
		}
		if polished.Valid {
			f.PolishedContent = &polished.String
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
