package internal

import (
	"fmt"
	"strings"
)

// Language is the conversation language filter
type Language string

const (
	LanguageAll     Language = "all"
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// DateRange selects how recently a session must have been updated
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
	DateRangeYear  DateRange = "year"
)

// SearchFilters is the user's search intent for a single invocation.
// Treat it as a value; the pipeline never mutates it.
type SearchFilters struct {
	Query       string    `json:"query" yaml:"query"`
	Language    Language  `json:"language" yaml:"language"`
	DateRange   DateRange `json:"dateRange" yaml:"date_range"`
	Topics      []string  `json:"topics,omitempty" yaml:"topics,omitempty"`
	MinMessages int       `json:"minMessages" yaml:"min_messages"`
}

// DefaultFilters returns filters that match every session
func DefaultFilters() SearchFilters {
	return SearchFilters{
		Language:  LanguageAll,
		DateRange: DateRangeAll,
	}
}

// NormalizedQuery returns the trimmed, lower-cased query
func (f SearchFilters) NormalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(f.Query))
}

// HasActiveFilters reports whether any structured filter differs from its default
func (f SearchFilters) HasActiveFilters() bool {
	if f.Language != "" && f.Language != LanguageAll {
		return true
	}
	if f.DateRange != "" && f.DateRange != DateRangeAll {
		return true
	}
	return len(f.ActiveTopics()) > 0 || f.MinMessages > 0
}

// ActiveTopics returns the trimmed, lower-cased, non-empty topic constraints
func (f SearchFilters) ActiveTopics() []string {
	var topics []string
	for _, topic := range f.Topics {
		topic = strings.ToLower(strings.TrimSpace(topic))
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	return topics
}

// WithQuery returns a copy of f with a different query
func (f SearchFilters) WithQuery(query string) SearchFilters {
	f.Query = query
	f.Topics = append([]string(nil), f.Topics...)
	return f
}

// ParseLanguage parses a language filter value
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "", LanguageAll:
		return LanguageAll, nil
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageHindi:
		return LanguageHindi, nil
	default:
		return "", fmt.Errorf("unsupported language: %s (supported: all, en, hi)", s)
	}
}

// ParseDateRange parses a date range filter value
func ParseDateRange(s string) (DateRange, error) {
	switch DateRange(strings.ToLower(strings.TrimSpace(s))) {
	case "", DateRangeAll:
		return DateRangeAll, nil
	case DateRangeToday:
		return DateRangeToday, nil
	case DateRangeWeek:
		return DateRangeWeek, nil
	case DateRangeMonth:
		return DateRangeMonth, nil
	case DateRangeYear:
		return DateRangeYear, nil
	default:
		return "", fmt.Errorf("unsupported date range: %s (supported: all, today, week, month, year)", s)
	}
}
