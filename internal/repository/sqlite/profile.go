package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newwork/workforce/internal/models"
)

func (r *Repo) CreateProfile(ctx context.Context, p *models.EmployeeProfile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO employee_profiles (user_id, position, department, salary, phone, address, hire_date, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Position, p.Department, p.Salary, p.Phone, p.Address, p.HireDate, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

const profileColumns = `id, user_id, position, department, salary, phone, address, hire_date, updated`

func (r *Repo) GetProfileByID(ctx context.Context, id int64) (*models.EmployeeProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM employee_profiles WHERE id = ?`, id)
	return scanProfile(row)
}

func (r *Repo) GetProfileByUserID(ctx context.Context, userID int64) (*models.EmployeeProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM employee_profiles WHERE user_id = ?`, userID)
	return scanProfile(row)
}

func scanProfile(row *sql.Row) (*models.EmployeeProfile, error) {
	var p models.EmployeeProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.Position, &p.Department, &p.Salary, &p.Phone, &p.Address, &p.HireDate, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &p, nil
}

func (r *Repo) ListProfiles(ctx context.Context) ([]models.EmployeeProfile, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+profileColumns+` FROM employee_profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EmployeeProfile
	for rows.Next() {
		var p models.EmployeeProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Position, &p.Department, &p.Salary, &p.Phone, &p.Address, &p.HireDate, &p.Updated); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateProfile(ctx context.Context, p *models.EmployeeProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE employee_profiles SET position = ?, department = ?, salary = ?, phone = ?, address = ?, hire_date = ?, updated = ? WHERE id = ?`,
		p.Position, p.Department, p.Salary, p.Phone, p.Address, p.HireDate, now(), p.ID)
	return err
}
