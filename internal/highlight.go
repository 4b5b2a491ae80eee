package internal

import (
	"regexp"
	"strings"
)

// Span is a byte range of a highlighted string
type Span struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Match bool `json:"match"`
}

// Len returns the span length in bytes
func (s Span) Len() int {
	return s.End - s.Start
}

// HighlightedText is a string plus the spans that cover it
type HighlightedText struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans"`
}

// Matched reports whether any span is a match
func (h HighlightedText) Matched() bool {
	for _, span := range h.Spans {
		if span.Match {
			return true
		}
	}
	return false
}

// literalMatcher finds a query literally and case-insensitively. The scorer
// and the highlighter share it, so a scored match always has a span.
type literalMatcher struct {
	re *regexp.Regexp
}

func newLiteralMatcher(query string) literalMatcher {
	if query == "" {
		return literalMatcher{}
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		LogWarn("Failed to compile match pattern for %q: %v", query, err)
		return literalMatcher{}
	}
	return literalMatcher{re: re}
}

// MatchString reports whether s contains the query
func (m literalMatcher) MatchString(s string) bool {
	return m.re != nil && m.re.MatchString(s)
}

// Highlight splits text into spans covering it entirely, marking every
// case-insensitive, non-overlapping, left-to-right occurrence of query.
// The query is matched literally.
func Highlight(text, query string) []Span {
	m := newLiteralMatcher(query)
	if m.re == nil {
		return []Span{{Start: 0, End: len(text)}}
	}

	var spans []Span
	pos := 0
	for _, loc := range m.re.FindAllStringIndex(text, -1) {
		if loc[0] > pos {
			spans = append(spans, Span{Start: pos, End: loc[0]})
		}
		spans = append(spans, Span{Start: loc[0], End: loc[1], Match: true})
		pos = loc[1]
	}
	if pos < len(text) || len(spans) == 0 {
		spans = append(spans, Span{Start: pos, End: len(text)})
	}
	return spans
}

// HighlightText wraps Highlight into a HighlightedText
func HighlightText(text, query string) HighlightedText {
	return HighlightedText{Text: text, Spans: Highlight(text, strings.TrimSpace(query))}
}

// Render rebuilds the text, passing each matched fragment through mark
func (h HighlightedText) Render(mark func(string) string) string {
	var b strings.Builder
	for _, span := range h.Spans {
		fragment := h.Text[span.Start:span.End]
		if span.Match {
			fragment = mark(fragment)
		}
		b.WriteString(fragment)
	}
	return b.String()
}
