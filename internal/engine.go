package internal

import (
	"context"
	"fmt"
	"time"
)

// SearchResult is a ranked session. It is derived per search and never persisted.
type SearchResult struct {
	Session          *ConversationSession `json:"session"`
	MatchedMessages  []Message            `json:"matchedMessages,omitempty"`
	RelevanceScore   float64              `json:"relevanceScore"`
	TitleMatched     bool                 `json:"titleMatched"`
	HighlightedTitle HighlightedText      `json:"highlightedTitle"`
}

// SessionScorer scores one filtered session
type SessionScorer interface {
	Score(session *ConversationSession, filters SearchFilters) Score
}

// Engine runs one search pass: filter, score, rank and highlight
type Engine struct {
	store  ConversationStore
	scorer SessionScorer
	now    func() time.Time
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithClock overrides the clock used for date filters and recency
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithScorer replaces the relevance scorer
func WithScorer(scorer SessionScorer) EngineOption {
	return func(e *Engine) {
		e.scorer = scorer
	}
}

// NewEngine creates a search engine over store
func NewEngine(store ConversationStore, opts ...EngineOption) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scorer == nil {
		e.scorer = NewScorer(e.now)
	}
	return e
}

// Store returns the store the engine searches
func (e *Engine) Store() ConversationStore {
	return e.store
}

// Search returns the ordered results for filters. Store failures and
// per-session scoring failures are logged and degrade to fewer results;
// the only error returned is ctx.Err() when the search was superseded.
func (e *Engine) Search(ctx context.Context, filters SearchFilters) ([]SearchResult, error) {
	sessions := e.loadSessions()
	now := e.now()

	eligible := FilterSessions(sessions, filters, now)
	results := make([]SearchResult, 0, len(eligible))
	query := filters.NormalizedQuery()

	for _, session := range eligible {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		score, err := e.scoreSession(session, filters)
		if err != nil {
			LogWarn("Excluding session from results: %v", err)
			continue
		}
		if !score.Included {
			continue
		}

		results = append(results, SearchResult{
			Session:          session,
			MatchedMessages:  score.MatchedMessages,
			RelevanceScore:   score.RelevanceScore,
			TitleMatched:     score.TitleMatched,
			HighlightedTitle: HighlightText(session.Title, query),
		})
	}

	LogDebug("Search %q matched %d of %d session(s)", query, len(results), len(sessions))
	return RankResults(results), nil
}

func (e *Engine) loadSessions() []*ConversationSession {
	if e.store == nil {
		LogWarn("No conversation store configured, searching an empty archive")
		return nil
	}
	sessions, err := e.store.Sessions()
	if err != nil {
		LogError("Failed to load sessions, searching an empty archive: %v", err)
		return nil
	}
	return sessions
}

// scoreSession scores one session, converting invalid records and panics into a ScoringError
func (e *Engine) scoreSession(session *ConversationSession, filters SearchFilters) (score Score, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ScoringError{SessionID: session.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ValidateSession(session); err != nil {
		return Score{}, &ScoringError{SessionID: session.ID, Err: err}
	}
	return e.scorer.Score(session, filters), nil
}
