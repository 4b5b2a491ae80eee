package internal

import (
	"strings"
	"testing"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Span
	}{
		{
			name:  "empty query yields one non-match span",
			text:  "Understanding Dharma",
			query: "",
			want:  []Span{{Start: 0, End: 20}},
		},
		{
			name:  "case-insensitive match in the middle",
			text:  "Understanding Dharma today",
			query: "dharma",
			want: []Span{
				{Start: 0, End: 14},
				{Start: 14, End: 20, Match: true},
				{Start: 20, End: 26},
			},
		},
		{
			name:  "multiple matches",
			text:  "om OM om",
			query: "om",
			want: []Span{
				{Start: 0, End: 2, Match: true},
				{Start: 2, End: 3},
				{Start: 3, End: 5, Match: true},
				{Start: 5, End: 6},
				{Start: 6, End: 8, Match: true},
			},
		},
		{
			name:  "overlapping candidates are not double counted",
			text:  "aaaa",
			query: "aa",
			want: []Span{
				{Start: 0, End: 2, Match: true},
				{Start: 2, End: 4, Match: true},
			},
		},
		{
			name:  "literal dot does not match any character",
			text:  "aXb",
			query: "a.b",
			want:  []Span{{Start: 0, End: 3}},
		},
		{
			name:  "literal dot matches itself",
			text:  "see a.b here",
			query: "a.b",
			want: []Span{
				{Start: 0, End: 4},
				{Start: 4, End: 7, Match: true},
				{Start: 7, End: 12},
			},
		},
		{
			name:  "pattern metacharacters are escaped",
			text:  "what (is) [this]?",
			query: "(is) [this]?",
			want: []Span{
				{Start: 0, End: 5},
				{Start: 5, End: 17, Match: true},
			},
		},
		{
			name:  "empty text",
			text:  "",
			query: "x",
			want:  []Span{{Start: 0, End: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Highlight(%q, %q) = %v, want %v", tt.text, tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Highlight(%q, %q)[%d] = %v, want %v", tt.text, tt.query, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHighlight_SpansCoverText(t *testing.T) {
	texts := []string{"Bhagavad Gita on Karma", "karma karma", "no match at all", "कर्म karma"}
	for _, text := range texts {
		spans := Highlight(text, "karma")
		pos := 0
		for _, span := range spans {
			if span.Start != pos {
				t.Errorf("Highlight(%q) has a gap or overlap at %d", text, span.Start)
			}
			pos = span.End
		}
		if pos != len(text) {
			t.Errorf("Highlight(%q) covers %d bytes, want %d", text, pos, len(text))
		}
	}
}

func TestHighlightedText_Render(t *testing.T) {
	h := HighlightText("Understanding Dharma", " dharma ")
	got := h.Render(func(s string) string { return "[" + s + "]" })
	if got != "Understanding [Dharma]" {
		t.Errorf("Render() = %q, want %q", got, "Understanding [Dharma]")
	}
	if !h.Matched() {
		t.Error("Matched() = false, want true")
	}

	plain := HighlightText("Understanding Dharma", "")
	if plain.Matched() {
		t.Error("Matched() = true for empty query")
	}
	if out := plain.Render(strings.ToUpper); out != "Understanding Dharma" {
		t.Errorf("Render() with no matches = %q", out)
	}
}
