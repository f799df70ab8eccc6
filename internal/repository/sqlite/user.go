package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newwork/workforce/internal/models"
)

func (r *Repo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	created := u.Created
	if created == 0 {
		created = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (email, name, role, password_hash, created) VALUES (?, ?, ?, ?, ?)`,
		u.Email, u.Name, string(u.Role), u.PasswordHash, created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, name, role, password_hash, created FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, name, role, password_hash, created FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.PasswordHash, &u.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	u.Role = models.Role(role)

	return &u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, email, name, role, password_hash, created FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &role, &u.PasswordHash, &u.Created); err != nil {
			return nil, err
		}
		u.Role = models.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}
