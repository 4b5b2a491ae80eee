package internal

import (
	"testing"
	"time"
)

func TestWithinDateRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	yesterdayLate := time.Date(2024, 3, 14, 23, 59, 0, 0, time.Local)

	tests := []struct {
		name      string
		updatedAt time.Time
		dateRange DateRange
		want      bool
	}{
		{name: "all accepts anything", updatedAt: now.AddDate(-10, 0, 0), dateRange: DateRangeAll, want: true},
		{name: "empty range accepts anything", updatedAt: now.AddDate(-10, 0, 0), dateRange: "", want: true},
		{name: "today same date", updatedAt: time.Date(2024, 3, 15, 0, 1, 0, 0, time.Local), dateRange: DateRangeToday, want: true},
		{name: "today excludes yesterday 23:59 within 24h", updatedAt: yesterdayLate, dateRange: DateRangeToday, want: false},
		{name: "week includes 7 days exactly", updatedAt: now.Add(-7 * 24 * time.Hour), dateRange: DateRangeWeek, want: true},
		{name: "week excludes 8 days", updatedAt: now.Add(-8 * 24 * time.Hour), dateRange: DateRangeWeek, want: false},
		{name: "week includes yesterday", updatedAt: yesterdayLate, dateRange: DateRangeWeek, want: true},
		{name: "month includes 30 days", updatedAt: now.Add(-30 * 24 * time.Hour), dateRange: DateRangeMonth, want: true},
		{name: "month excludes 31 days", updatedAt: now.Add(-31 * 24 * time.Hour), dateRange: DateRangeMonth, want: false},
		{name: "year includes 365 days", updatedAt: now.Add(-365 * 24 * time.Hour), dateRange: DateRangeYear, want: true},
		{name: "year excludes 366 days", updatedAt: now.Add(-366 * 24 * time.Hour), dateRange: DateRangeYear, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinDateRange(tt.updatedAt, tt.dateRange, now); got != tt.want {
				t.Errorf("WithinDateRange(%v, %q) = %v, want %v", tt.updatedAt, tt.dateRange, got, tt.want)
			}
		})
	}
}

func TestFilterSessions_MinMessages(t *testing.T) {
	four := CreateTestSessionWithCount("four", 4)
	five := CreateTestSessionWithCount("five", 5)
	filters := DefaultFilters()
	filters.MinMessages = 5

	got := FilterSessions([]*ConversationSession{four, five}, filters, time.Now())
	if len(got) != 1 || got[0].ID != "five" {
		t.Errorf("FilterSessions() = %v, want only session 'five'", got)
	}
}

func TestFilterSessions_Language(t *testing.T) {
	en := CreateTestSession("en")
	hi := CreateTestSession("hi")
	hi.Language = LanguageHindi
	sessions := []*ConversationSession{en, hi, nil}

	tests := []struct {
		name     string
		language Language
		want     []string
	}{
		{name: "all", language: LanguageAll, want: []string{"en", "hi"}},
		{name: "english", language: LanguageEnglish, want: []string{"en"}},
		{name: "hindi", language: LanguageHindi, want: []string{"hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := DefaultFilters()
			filters.Language = tt.language
			got := FilterSessions(sessions, filters, time.Now())
			if len(got) != len(tt.want) {
				t.Fatalf("FilterSessions() returned %d sessions, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("FilterSessions()[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterSessions_TodayUsesCalendarDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 30, 0, 0, time.Local)
	late := CreateTestSession("late-yesterday")
	late.UpdatedAt = time.Date(2024, 3, 14, 23, 59, 0, 0, time.Local)
	early := CreateTestSession("early-today")
	early.UpdatedAt = time.Date(2024, 3, 15, 0, 1, 0, 0, time.Local)

	filters := DefaultFilters()
	filters.DateRange = DateRangeToday

	got := FilterSessions([]*ConversationSession{late, early}, filters, now)
	if len(got) != 1 || got[0].ID != "early-today" {
		t.Errorf("FilterSessions(today) = %v, want only 'early-today'", got)
	}
}
