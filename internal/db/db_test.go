package db

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
)

var dbSeq atomic.Int64

func setupDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	dsn := fmt.Sprintf("file:db_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	d, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMigrate(t *testing.T) {
	d := setupDB(t)
	ctx := context.Background()

	if err := Migrate(ctx, d); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// All domain tables must exist afterwards.
	for _, table := range []string{"users", "employee_profiles", "absence_requests", "data_items", "feedback"} {
		var name string
		row := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table)
		if err := row.Scan(&name); err != nil {
			t.Fatalf("table %s missing after migrate: %v", table, err)
		}
	}

	// Running again must be a no-op, not an error.
	if err := Migrate(ctx, d); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var applied int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied == 0 {
		t.Fatal("no migrations recorded")
	}
}

func TestSeed(t *testing.T) {
	d := setupDB(t)
	ctx := context.Background()

	if err := Migrate(ctx, d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := Seed(ctx, d); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var users int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&users); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 3 {
		t.Fatalf("got %d seeded users, want 3", users)
	}

	var profiles int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM employee_profiles`).Scan(&profiles); err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if profiles != 2 {
		t.Fatalf("got %d seeded profiles, want 2", profiles)
	}

	var role string
	if err := d.QueryRow(ctx, `SELECT role FROM users WHERE email = ?`, "manager@newwork.com").Scan(&role); err != nil {
		t.Fatalf("lookup manager: %v", err)
	}
	if role != "manager" {
		t.Fatalf("manager role = %q", role)
	}

	// Seeding a populated database must not duplicate accounts.
	if err := Seed(ctx, d); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&users); err != nil {
		t.Fatalf("recount users: %v", err)
	}
	if users != 3 {
		t.Fatalf("second seed duplicated users: %d", users)
	}
}
