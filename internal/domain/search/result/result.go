// Package result holds the transient search hit constructed per query.
package result

// Result is a single search hit with a similarity score in [0,1].
type Result struct {
	id      string
	score   float64
	content string
	fields  map[string]string
}

// New creates a search result.
func New(id string, score float64, content string, fields map[string]string) Result {
	return Result{id: id, score: score, content: content, fields: fields}
}

// ID returns the indexed chunk identifier.
func (r *Result) ID() string { return r.id }

// Score returns the relevance score in [0,1].
func (r *Result) Score() float64 { return r.score }

// Content returns the chunk text.
func (r *Result) Content() string { return r.content }

// Fields returns the flattened chunk metadata.
func (r *Result) Fields() map[string]string { return r.fields }

// Field returns a single metadata field ("" when absent).
func (r *Result) Field(name string) string {
	return r.fields[name]
}

// WithScore returns a copy with the score replaced. Used by the hybrid merge
// when combining vector and keyword contributions.
func (r Result) WithScore(score float64) Result {
	r.score = score
	return r
}
