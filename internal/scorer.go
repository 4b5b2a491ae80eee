package internal

import "time"

// Scoring weights
const (
	TitleMatchWeight       = 3.0
	UserMessageWeight      = 1.0
	AssistantMessageWeight = 2.0
	SanskritMatchWeight    = 1.5
	CitationMatchWeight    = 2.0
	RecencyBonus           = 0.5
	DepthBonus             = 0.3

	RecencyWindow     = 7 * day
	DepthMessageCount = 10
	neutralScore      = 1.0
)

// Score is the outcome of scoring one session against one query
type Score struct {
	RelevanceScore  float64
	MatchedMessages []Message
	TitleMatched    bool
	Included        bool
}

// Scorer computes relevance scores for sessions
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a Scorer. A nil clock defaults to time.Now.
func NewScorer(now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{now: now}
}

// Score scores a session that has already passed the filter pipeline.
// Score.Included is false when the session must be dropped from the results.
func (s *Scorer) Score(session *ConversationSession, filters SearchFilters) Score {
	query := filters.NormalizedQuery()

	if query == "" && !filters.HasActiveFilters() {
		return Score{RelevanceScore: neutralScore, Included: true}
	}

	var result Score
	score := 0.0

	if query != "" {
		matcher := newLiteralMatcher(query)
		if matcher.MatchString(session.Title) {
			score += TitleMatchWeight
			result.TitleMatched = true
		}

		for _, msg := range session.Messages {
			matched := false
			if matcher.MatchString(msg.Text) {
				score += messageWeight(msg.Sender)
				matched = true
			}
			if msg.SanskritText != "" && matcher.MatchString(msg.SanskritText) {
				score += SanskritMatchWeight
				matched = true
			}
			for _, citation := range msg.Citations {
				if matcher.MatchString(citation.Source) || matcher.MatchString(citation.Reference) {
					score += CitationMatchWeight
				}
			}
			if matched {
				result.MatchedMessages = append(result.MatchedMessages, msg)
			}
		}
	}

	if topics := filters.ActiveTopics(); len(topics) > 0 {
		topicMatches := countTopicMatches(session.Metadata.Topics, topics)
		if topicMatches == 0 {
			return Score{}
		}
		score += float64(topicMatches)
	}

	if s.now().Sub(session.UpdatedAt) < RecencyWindow {
		score += RecencyBonus
	}
	if session.Metadata.MessageCount > DepthMessageCount {
		score += DepthBonus
	}

	if score <= 0 && query != "" {
		return Score{}
	}
	if score <= 0 {
		score = neutralScore
	}

	result.RelevanceScore = score
	result.Included = true
	return result
}

func messageWeight(sender Sender) float64 {
	if sender == SenderAssistant {
		return AssistantMessageWeight
	}
	return UserMessageWeight
}

// countTopicMatches counts session topics containing any of the wanted topics
func countTopicMatches(sessionTopics, wanted []string) int {
	matchers := make([]literalMatcher, 0, len(wanted))
	for _, w := range wanted {
		matchers = append(matchers, newLiteralMatcher(w))
	}

	count := 0
	for _, topic := range sessionTopics {
		for _, m := range matchers {
			if m.MatchString(topic) {
				count++
				break
			}
		}
	}
	return count
}
