package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Row is a key/value row of the conversationKV table
type Row struct {
	Key   string
	Value string
}

const createConversationKV = `
	CREATE TABLE IF NOT EXISTS conversationKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`

// CreateSQLiteFixture creates a SQLite database at dbPath holding rows in order
func CreateSQLiteFixture(t *testing.T, dbPath string, rows []Row) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(createConversationKV); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	insertSQL := "INSERT INTO conversationKV (key, value) VALUES (?, ?)"
	for _, row := range rows {
		if _, err := db.Exec(insertSQL, row.Key, row.Value); err != nil {
			t.Fatalf("Failed to insert %s: %v", row.Key, err)
		}
	}
}

// CreateFileFixture writes data to path, creating parent directories
func CreateFileFixture(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write fixture file: %v", err)
	}
}
