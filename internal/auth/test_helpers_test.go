package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the usuarios schema applied.
// The database file is cleaned up when the test completes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	// Use a temp file so WAL mode works (in-memory doesn't support it)
	f, err := os.CreateTemp("", "auth-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationSQL := `
		CREATE TABLE usuarios (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'estudiante'
				CHECK (role IN ('admin', 'estudiante')),
			status TEXT NOT NULL DEFAULT 'activo'
				CHECK (status IN ('activo', 'inactivo', 'suspendido')),
			student_code TEXT,
			full_name TEXT,
			career TEXT NOT NULL DEFAULT 'No especificada',
			location_sharing INTEGER NOT NULL DEFAULT 0
				CHECK (location_sharing IN (0, 1)),
			created_at TEXT NOT NULL
		) STRICT;

		CREATE UNIQUE INDEX idx_usuarios_email ON usuarios(email);
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying usuarios migration: %v", err)
	}

	return db
}

// seedTestUser inserts a test user and returns it.
func seedTestUser(t *testing.T, db *sql.DB, email string, role Role) *User {
	t.Helper()

	hash, err := HashPassword("test-password")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	repo := NewUserRepository(db)
	user := &User{
		Email:        email,
		FullName:     "Test User",
		PasswordHash: hash,
		Role:         role,
		Status:       StatusActive,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}
