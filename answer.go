package sitekb

import "strings"

// Fixed user-facing answers for degraded outcomes. These are results, not
// errors: the answering pipeline reports them instead of failing.
const (
	MsgEmptyQuestion = "Please provide a valid question."
	MsgNoResults     = "I couldn't find any relevant information in the knowledge base."
)

// Failure reasons reported on Answer.Err.
const (
	FailureEmptyQuestion = "empty question"
	FailureNoResults     = "no relevant chunks found"
)

// RetrievalResult is one ranked chunk retrieved for a query. Similarity is
// 1 - Distance when the distance is defined, else 0.
type RetrievalResult struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	SourceURL  string   `json:"sourceUrl"`
	Title      string   `json:"title"`
	Distance   *float64 `json:"distance"`
	Similarity float64  `json:"similarity"`
}

// RetrievedChunk is a retrieval result formatted for answer responses.
type RetrievedChunk struct {
	Rank       int     `json:"rank"`
	Similarity float64 `json:"similarity"`
	SourceURL  string  `json:"sourceUrl"`
	Title      string  `json:"title"`
	Text       string  `json:"text"`
}

// Answer is the outcome of one answering request. Degraded reports that
// generation failed and Answer holds the raw concatenated context instead of
// a generated response, so callers can tell the two apart without inspecting
// errors. Err is set for the degraded no-input and no-results outcomes.
type Answer struct {
	Question  string           `json:"question"`
	Answer    string           `json:"answer"`
	Sources   []string         `json:"sources"`
	Retrieved []RetrievedChunk `json:"retrievedChunks"`
	NumChunks int              `json:"numChunks"`
	Degraded  bool             `json:"degraded,omitempty"`
	Err       string           `json:"error,omitempty"`
}

// JoinChunks concatenates chunk texts with blank-line separators. This is
// the literal answer when generation is disabled or unavailable.
func JoinChunks(texts []string) string {
	return strings.Join(texts, "\n\n")
}
