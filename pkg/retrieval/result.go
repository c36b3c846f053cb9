package retrieval

import "ai-voice-assistant-be/internal/entity"

// Result kinds. Retrieval never fails with an error; every anomaly resolves
// to one of these variants.
const (
	KindNoData       = "NO_DATA"       // knowledge base not loaded
	KindDirectAnswer = "DIRECT_ANSWER" // deterministic formatted answer, no model needed
	KindMatches      = "MATCHES"       // ranked categories for grounding context
	KindNoMatch      = "NO_MATCH"      // nothing intersects the query
)

// Match is a ranked retrieval result. Score is derived per query and is
// informational only: ordering always preserves category input order.
type Match struct {
	Category entity.Category
	Score    float64
}

// Result is the outcome of one retrieval pass.
type Result struct {
	Kind    string
	Answer  string // set for KindDirectAnswer
	Matches []Match
}
