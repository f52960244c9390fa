package rag

// Citation points a `[Source N]` marker in the assembled context back to the
// retrieved chunk it came from. Index is 1-based and matches the marker.
type Citation struct {
	Index   int     `json:"index"`
	Title   string  `json:"title"`
	DocType string  `json:"doc_type"`
	Court   string  `json:"court,omitempty"`
	Score   float64 `json:"score"`
}

// Response is the structured answer to a single RAG query. It is always
// returned, even on the degraded path, so retrieval value is never lost when
// generation fails.
type Response struct {
	Query      string     `json:"query"`
	UseCase    UseCase    `json:"use_case"`
	Answer     string     `json:"answer"`
	Context    string     `json:"context"`
	Citations  []Citation `json:"citations"`
	NumResults int        `json:"num_results"`
	State      State      `json:"state"`
	Metadata   Metadata   `json:"metadata"`
}

// Metadata carries per-query diagnostics.
type Metadata struct {
	VectorWeight     float64 `json:"vector_weight"`
	MaxContextTokens int     `json:"max_context_tokens"`
	DegradedReason   string  `json:"degraded_reason,omitempty"`
}
