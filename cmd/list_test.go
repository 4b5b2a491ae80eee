package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestListCommand(t *testing.T) {
	archive := newTestArchive(t, archiveSessions()...)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr bool
	}{
		{name: "all sessions", args: []string{"list"}, want: []string{"Found 3 conversation(s)", "Dharma talk", "Karma yoga", "Gita study", "karma, yoga"}},
		{name: "language filter", args: []string{"list", "--language", "hi"}, want: []string{"Found 1 conversation(s)", "Gita study"}, notWant: []string{"Dharma talk"}},
		{name: "invalid language", args: []string{"list", "--language", "fr"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, append(tt.args, "--archive", archive)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
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

func TestDisplaySessions_Empty(t *testing.T) {
	var buf bytes.Buffer
	displaySessions(&buf, nil, time.Now())
	if !strings.Contains(buf.String(), "No conversations found") {
		t.Errorf("displaySessions() = %q", buf.String())
	}
}

func TestFormatUpdated(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "zero", t: time.Time{}, want: "-"},
		{name: "today", t: now.Add(-2 * time.Hour), want: "Today 10:00"},
		{name: "this week", t: now.Add(-3 * 24 * time.Hour), want: "Wed 12:00"},
		{name: "this year", t: now.Add(-60 * 24 * time.Hour), want: "Apr 16 12:00"},
		{name: "older", t: now.AddDate(-2, 0, 0), want: "2022-06-15"},
		{name: "future", t: now.AddDate(0, 0, 1), want: "2024-06-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatUpdated(tt.t, now); got != tt.want {
				t.Errorf("formatUpdated() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "a longer title", max: 8, want: "a lon..."},
		{in: "धर्मक्षेत्रे कुरुक्षेत्रे", max: 6, want: "धर्..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

