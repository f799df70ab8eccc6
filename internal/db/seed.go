package db

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed inserts the three demo accounts (one per role) and the two employee
// profiles when the users table is empty. It is a no-op on a populated
// database.
func Seed(ctx context.Context, d *DB) error {
	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	now := time.Now().UTC().UnixMilli()
	users := []struct {
		email, name, role string
	}{
		{"manager@newwork.com", "John Manager", "manager"},
		{"employee@newwork.com", "Jane Employee", "employee"},
		{"coworker@newwork.com", "Casey Coworker", "coworker"},
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		res, err := d.Exec(ctx, `INSERT INTO users (email, name, role, password_hash, created) VALUES (?, ?, ?, ?, ?)`,
			u.email, u.name, u.role, string(hash), now)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("seed user id %s: %w", u.email, err)
		}
		ids = append(ids, id)
	}

	// Profiles for the manager and the employee; coworkers have no profile.
	day := int64(24 * time.Hour / time.Millisecond)
	profiles := []struct {
		userID               int64
		position, department string
		salary               float64
		phone, address       string
		hireDate             int64
	}{
		{ids[0], "Engineering Manager", "Engineering", 120000, "+1-555-0101", "123 Tech St, San Francisco, CA", now - 365*day},
		{ids[1], "Software Engineer", "Engineering", 95000, "+1-555-0102", "456 Dev Ave, San Francisco, CA", now - 180*day},
	}
	for _, p := range profiles {
		if _, err := d.Exec(ctx, `INSERT INTO employee_profiles (user_id, position, department, salary, phone, address, hire_date, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.userID, p.position, p.department, p.salary, p.phone, p.address, p.hireDate, now); err != nil {
			return fmt.Errorf("seed profile for user %d: %w", p.userID, err)
		}
	}

	return nil
}
