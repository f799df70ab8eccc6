package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newwork/workforce/internal/models"
)

func (r *Repo) CreateDataItem(ctx context.Context, d *models.DataItem) (int64, error) {
	if d == nil {
		return 0, fmt.Errorf("data item is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO data_items (title, description, owner_id, is_deleted, created, updated) VALUES (?, ?, ?, 0, ?, ?)`,
		d.Title, d.Description, d.OwnerID, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) GetDataItemByID(ctx context.Context, id int64) (*models.DataItem, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, description, owner_id, is_deleted, created, updated FROM data_items WHERE id = ?`, id)
	var d models.DataItem
	var deleted int
	if err := row.Scan(&d.ID, &d.Title, &d.Description, &d.OwnerID, &deleted, &d.Created, &d.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	d.IsDeleted = deleted != 0

	return &d, nil
}

func (r *Repo) ListDataItems(ctx context.Context) ([]models.DataItem, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, description, owner_id, is_deleted, created, updated FROM data_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DataItem
	for rows.Next() {
		var d models.DataItem
		var deleted int
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.OwnerID, &deleted, &d.Created, &d.Updated); err != nil {
			return nil, err
		}
		d.IsDeleted = deleted != 0
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateDataItem(ctx context.Context, d *models.DataItem) error {
	if d == nil {
		return fmt.Errorf("data item is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE data_items SET title = ?, description = ?, updated = ? WHERE id = ?`,
		d.Title, d.Description, now(), d.ID)
	return err
}

// SetDeleted toggles the soft-delete flag. The row stays in place; updated
// advances on every toggle.
func (r *Repo) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	flag := 0
	if deleted {
		flag = 1
	}

	_, err := r.conn.Exec(ctx, `UPDATE data_items SET is_deleted = ?, updated = ? WHERE id = ?`, flag, now(), id)
	return err
}
