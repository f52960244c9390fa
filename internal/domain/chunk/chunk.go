// Package chunk holds the retrieval unit produced by the document chunker.
// Chunks are transient: they exist between chunking and indexing and are
// persisted only as vector index entries.
package chunk

import "strings"

// Chunk is a contiguous span of a document's content plus chunk-level metadata.
type Chunk struct {
	text         string
	sectionName  string
	keyReasoning bool
	index        int
	wordCount    int
}

// New creates a chunk. The word count is derived from the text.
func New(text, sectionName string, keyReasoning bool, index int) Chunk {
	return Chunk{
		text:         text,
		sectionName:  sectionName,
		keyReasoning: keyReasoning,
		index:        index,
		wordCount:    len(strings.Fields(text)),
	}
}

// Text returns the chunk content.
func (c Chunk) Text() string { return c.text }

// SectionName returns the structural zone or paragraph label this chunk came from.
func (c Chunk) SectionName() string { return c.sectionName }

// KeyReasoning reports whether the chunk carries holding/ratio language.
func (c Chunk) KeyReasoning() bool { return c.keyReasoning }

// Index returns the running chunk ordinal within the document.
func (c Chunk) Index() int { return c.index }

// WordCount returns the number of words in the chunk.
func (c Chunk) WordCount() int { return c.wordCount }

// WithIndex returns a copy with the ordinal replaced. Used when zone chunks
// from independent strategies are renumbered into one document-wide sequence.
func (c Chunk) WithIndex(i int) Chunk {
	c.index = i
	return c
}
