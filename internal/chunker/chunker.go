// Package chunker splits normalized documents into retrieval units. The
// strategy is keyed by document type: FIRs and chargesheets segment into
// structural zones, court rulings split by paragraph with key-reasoning
// detection, everything else uses the overlapping word window.
package chunker

import (
	"strconv"
	"strings"

	"github.com/satark-ai/satark/internal/domain/chunk"
	"github.com/satark-ai/satark/internal/domain/document"
)

// Config holds chunking parameters.
type Config struct {
	// ChunkSize is the window size in words for non-reasoning content.
	ChunkSize int
	// Overlap is the shared word region between adjacent window chunks.
	Overlap int
	// MaxChunkSize is the larger window for key-reasoning paragraphs.
	MaxChunkSize int
	// MinDocWords is the minimum document length; shorter yields zero chunks.
	MinDocWords int
	// MinTailWords is the minimum size of a trailing partial window.
	// Shorter tails are dropped to avoid near-empty chunks.
	MinTailWords int
}

// DefaultConfig returns the chunking parameters used in production.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    500,
		Overlap:      100,
		MaxChunkSize: 1000,
		MinDocWords:  document.MinContentWords,
	}
}

// applyDefaults fills zero fields.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.ChunkSize <= 0 {
		c.ChunkSize = d.ChunkSize
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		c.Overlap = d.Overlap
	}
	if c.MaxChunkSize < c.ChunkSize {
		c.MaxChunkSize = c.ChunkSize * 2
	}
	if c.MinDocWords <= 0 {
		c.MinDocWords = d.MinDocWords
	}
	if c.MinTailWords <= 0 {
		c.MinTailWords = c.ChunkSize / 2
	}
}

// Chunker splits documents by type-specific strategy.
type Chunker struct {
	cfg Config
}

// New creates a chunker.
func New(cfg Config) *Chunker {
	cfg.applyDefaults()
	return &Chunker{cfg: cfg}
}

// Chunk splits a document into an ordered list of chunks. Documents below
// the minimum word threshold yield zero chunks; callers must reject such
// documents upstream rather than index an empty set.
func (c *Chunker) Chunk(doc document.Document) []chunk.Chunk {
	content := doc.Content()
	if len(strings.Fields(content)) < c.cfg.MinDocWords {
		return nil
	}

	var chunks []chunk.Chunk
	switch doc.DocType() {
	case document.TypeFIR:
		chunks = c.chunkZones(content, firZones)
	case document.TypeChargesheet:
		chunks = c.chunkZones(content, chargesheetZones)
	case document.TypeCourtRuling:
		chunks = c.chunkRuling(content)
	default:
		chunks = c.window(content, "", false, c.cfg.ChunkSize)
	}

	// Structural strategies fall back to generic windowing when nothing matched.
	if len(chunks) == 0 {
		chunks = c.window(content, "", false, c.cfg.ChunkSize)
	}

	return renumber(chunks)
}

// window splits text into word windows of at most maxSize words, sliding the
// start back by the configured overlap so adjacent chunks share a
// deterministic word region. A trailing partial window below MinTailWords is
// dropped unless it is the only window.
func (c *Chunker) window(text, sectionName string, keyReasoning bool, maxSize int) []chunk.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []chunk.Chunk
	start := 0
	for start < len(words) {
		end := start + maxSize
		if end > len(words) {
			end = len(words)
		}

		partial := end-start < maxSize
		if partial && len(chunks) > 0 && end-start < c.cfg.MinTailWords {
			break
		}

		chunks = append(chunks, chunk.New(
			strings.Join(words[start:end], " "), sectionName, keyReasoning, len(chunks),
		))

		if end >= len(words) {
			break
		}
		start = end - c.cfg.Overlap
	}

	return chunks
}

// rulingKeywords mark paragraphs carrying holding/ratio language. Such
// paragraphs get the larger window so the reasoning stays contiguous.
var rulingKeywords = []string{
	"held that", "we hold", "in our opinion", "we are of the view",
	"considering the", "it is established", "the evidence shows",
	"accordingly", "therefore", "thus we conclude",
}

// chunkRuling splits a court ruling on blank lines and tags key-reasoning
// paragraphs.
func (c *Chunker) chunkRuling(text string) []chunk.Chunk {
	var chunks []chunk.Chunk

	for i, para := range splitParagraphs(text) {
		reasoning := isKeyReasoning(para)
		maxSize := c.cfg.ChunkSize
		name := "para_" + strconv.Itoa(i)
		if reasoning {
			maxSize = c.cfg.MaxChunkSize
			name = "reasoning"
		}
		chunks = append(chunks, c.window(para, name, reasoning, maxSize)...)
	}

	return chunks
}

func isKeyReasoning(para string) bool {
	lower := strings.ToLower(para)
	for _, kw := range rulingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func splitParagraphs(text string) []string {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// renumber rewrites chunk ordinals into one document-wide sequence. Zone and
// paragraph strategies chunk each segment independently, so local indices
// restart per segment.
func renumber(chunks []chunk.Chunk) []chunk.Chunk {
	for i := range chunks {
		chunks[i] = chunks[i].WithIndex(i)
	}
	return chunks
}
