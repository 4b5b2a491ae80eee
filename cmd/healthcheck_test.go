package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/convo-search/internal"
	"github.com/iksnae/convo-search/testutil"
)

func TestHealthcheckCommand(t *testing.T) {
	healthy := newTestArchive(t, archiveSessions()...)
	empty := newTestArchive(t)

	dbPath := filepath.Join(testutil.CreateTempDir(t), "archive.db")
	testutil.CreateSQLiteFixture(t, dbPath, []testutil.Row{
		{Key: internal.SessionKeyPrefix + "db-1", Value: string(testutil.JSONMarshal(t, internal.CreateTestSession("db-1")))},
	})

	notArchive := filepath.Join(testutil.CreateTempDir(t), "notes.txt")
	testutil.CreateFileFixture(t, notArchive, []byte("hello"))

	tests := []struct {
		name    string
		archive string
		want    []string
		wantErr bool
	}{
		{name: "file archive", archive: healthy, want: []string{"Found file archive", "Found 3 session(s)", "Health check passed!"}},
		{name: "sqlite archive", archive: dbPath, want: []string{"Found SQLite archive", "Found 1 session(s)"}},
		{name: "empty archive", archive: empty, want: []string{"No sessions found"}},
		{name: "missing archive", archive: filepath.Join(healthy, "missing"), wantErr: true},
		{name: "unsupported file", archive: notArchive, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "healthcheck", "--details", "--archive", tt.archive)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}
