package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/iksnae/convo-search/internal"
)

func TestShowCommand(t *testing.T) {
	archive := newTestArchive(t, archiveSessions()...)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr error
	}{
		{
			name: "raw markdown",
			args: []string{"show", "dharma-1", "--raw"},
			want: []string{"# Dharma talk", "**You:**", "What is dharma?", "**Assistant:**"},
		},
		{
			name:    "message limit",
			args:    []string{"show", "dharma-1", "--raw", "--limit", "1"},
			want:    []string{"What is dharma?", "1 more message(s) not shown"},
			notWant: []string{"right conduct"},
		},
		{
			name: "query highlight",
			args: []string{"show", "karma-1", "--raw", "--query", "DHARMA"},
			want: []string{"performed as `dharma`"},
		},
		{
			name:    "unknown session",
			args:    []string{"show", "missing", "--raw"},
			wantErr: internal.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, append(tt.args, "--archive", archive)...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.notWant {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q", unwanted)
				}
			}
		})
	}
}

func TestShowCommand_RequiresID(t *testing.T) {
	if _, err := executeCommand(t, "show"); err == nil {
		t.Error("show without an id should fail")
	}
}

func TestShowCommand_Rendered(t *testing.T) {
	archive := newTestArchive(t, archiveSessions()...)
	out, err := executeCommand(t, "show", "dharma-1", "--archive", archive)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Dharma talk") {
		t.Errorf("rendered output missing title:\n%s", out)
	}
}
