package internal

import "time"

const day = 24 * time.Hour

// rollingWindows are fixed durations, not calendar-aligned periods.
// "today" is absent: it compares calendar dates instead.
var rollingWindows = map[DateRange]time.Duration{
	DateRangeWeek:  7 * day,
	DateRangeMonth: 30 * day,
	DateRangeYear:  365 * day,
}

// FilterSessions returns the sessions that satisfy every hard predicate in
// filters. Order is preserved and unmatched sessions are dropped silently.
func FilterSessions(sessions []*ConversationSession, filters SearchFilters, now time.Time) []*ConversationSession {
	filtered := make([]*ConversationSession, 0, len(sessions))
	for _, session := range sessions {
		if session == nil {
			continue
		}
		if MatchesFilters(session, filters, now) {
			filtered = append(filtered, session)
		}
	}
	return filtered
}

// MatchesFilters reports whether a single session passes language, size and date predicates
func MatchesFilters(session *ConversationSession, filters SearchFilters, now time.Time) bool {
	if filters.Language != "" && filters.Language != LanguageAll && session.Language != filters.Language {
		return false
	}
	if session.Metadata.MessageCount < filters.MinMessages {
		return false
	}
	return WithinDateRange(session.UpdatedAt, filters.DateRange, now)
}

// WithinDateRange reports whether updatedAt falls inside the range ending at now.
// DateRangeToday compares local calendar dates; the other ranges are rolling windows.
func WithinDateRange(updatedAt time.Time, dateRange DateRange, now time.Time) bool {
	switch dateRange {
	case "", DateRangeAll:
		return true
	case DateRangeToday:
		return sameLocalDate(updatedAt, now)
	}

	window, ok := rollingWindows[dateRange]
	if !ok {
		LogWarn("Unknown date range %q, not filtering by date", dateRange)
		return true
	}
	return now.Sub(updatedAt) <= window
}

func sameLocalDate(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
