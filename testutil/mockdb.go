package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the conversationKV table
func CreateInMemoryDB(t *testing.T, rows []Row) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// Each pooled connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(createConversationKV); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	for _, row := range rows {
		if _, err := db.Exec("INSERT INTO conversationKV (key, value) VALUES (?, ?)", row.Key, row.Value); err != nil {
			t.Fatalf("Failed to insert %s: %v", row.Key, err)
		}
	}
	return db
}
