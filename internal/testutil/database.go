package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- User table
		CREATE TABLE IF NOT EXISTS user (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			username VARCHAR(15) NOT NULL,
			email VARCHAR(320) NOT NULL UNIQUE,
			password_hash VARCHAR(60) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Ledger transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			symbol VARCHAR(10) NOT NULL,
			shares INTEGER NOT NULL CHECK (shares != 0),
			price TEXT NOT NULL,
			type VARCHAR(4) NOT NULL CHECK (type IN ('buy', 'sell')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES user(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_transaction_user ON "transaction"(user_id, created_at, id);

		-- Cached market quotes
		CREATE TABLE IF NOT EXISTS quote (
			symbol VARCHAR(10) NOT NULL PRIMARY KEY,
			price TEXT NOT NULL,
			currency VARCHAR(3) NOT NULL DEFAULT 'USD',
			updated_at DATETIME NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
