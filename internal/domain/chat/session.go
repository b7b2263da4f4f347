package chat

import "strings"

// DefaultSimilarityThreshold is the token-overlap ratio below which a new
// message is treated as the start of a new conversation.
const DefaultSimilarityThreshold = 0.3

// SessionResolver decides whether an incoming message continues a tracked
// conversation or starts a new one. It is a cheap local heuristic, not a
// semantic judgment; false positives and negatives are acceptable.
type SessionResolver struct {
	threshold float64
}

// NewSessionResolver builds a resolver with the given similarity threshold.
// A non-positive threshold falls back to the default.
func NewSessionResolver(threshold float64) *SessionResolver {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &SessionResolver{threshold: threshold}
}

// Resolve returns the conversation identifier to continue with, or "" when a
// new conversation should be started. trackedID is the previously tracked
// conversation identifier (may be empty), prevMessage the immediately
// preceding user message, newMessage the incoming one. An empty new message
// always starts a new conversation so the similarity ratio never divides by
// zero.
func (r *SessionResolver) Resolve(trackedID, prevMessage, newMessage string) string {
	if trackedID == "" || strings.TrimSpace(prevMessage) == "" {
		return ""
	}
	if strings.TrimSpace(newMessage) == "" {
		return ""
	}
	if TokenSimilarity(prevMessage, newMessage) < r.threshold {
		return ""
	}
	return trackedID
}

// TokenSimilarity computes the Jaccard overlap between the case-insensitive
// whitespace-delimited token sets of two messages: shared tokens over the
// union of both sets. Returns 0 when either set is empty.
func TokenSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared++
		}
	}

	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
