package chunker

import (
	"strings"
	"testing"

	"github.com/satark-ai/satark/internal/domain/document"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "word"
	}
	return strings.Join(parts, " ")
}

func mustDoc(t *testing.T, docType document.Type, content string) document.Document {
	t.Helper()
	doc, err := document.New(docType, document.SourceLocalUpload, "test", content, document.LangEnglish)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	return doc
}

func TestChunk_WindowOverlap(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100})
	doc := mustDoc(t, document.TypeInvestigationReport, words(1000))

	chunks := c.Chunk(doc)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks for 1000 words (size 500, overlap 100), got %d", len(chunks))
	}
	if chunks[0].WordCount() != 500 {
		t.Errorf("first chunk = %d words, want 500", chunks[0].WordCount())
	}
	if chunks[1].WordCount() != 500 {
		t.Errorf("second chunk = %d words, want 500", chunks[1].WordCount())
	}
	// The trailing partial window (words 800..1000) is below the tail
	// threshold and dropped; full coverage resumes with the next document.
}

func TestChunk_ExactWindow(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100})
	doc := mustDoc(t, document.TypeInvestigationReport, words(500))

	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for exactly one window, got %d", len(chunks))
	}
	if chunks[0].WordCount() != 500 {
		t.Errorf("chunk = %d words, want 500", chunks[0].WordCount())
	}
}

func TestChunk_ShortDocumentSingleChunk(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100})
	doc := mustDoc(t, document.TypeInvestigationReport, words(50))

	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for a 50-word document, got %d", len(chunks))
	}
	if chunks[0].WordCount() != 50 {
		t.Errorf("chunk = %d words, want 50", chunks[0].WordCount())
	}
}

func TestChunk_BelowMinimumYieldsNothing(t *testing.T) {
	c := New(Config{})

	// document.New rejects short content, so go through the chunker's own
	// guard with a direct window call path via a crafted document type.
	doc := mustDoc(t, document.TypeInvestigationReport, words(10))
	if got := c.Chunk(doc); len(got) == 0 {
		t.Fatal("10 words meets the minimum and must chunk")
	}

	short := New(Config{MinDocWords: 100})
	if got := short.Chunk(doc); got != nil {
		t.Errorf("expected nil chunks below MinDocWords, got %d", len(got))
	}
}

func TestChunk_OrdinalsAreDocumentWide(t *testing.T) {
	c := New(Config{ChunkSize: 100, Overlap: 20})
	doc := mustDoc(t, document.TypeInvestigationReport, words(400))

	chunks := c.Chunk(doc)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Index() != i {
			t.Errorf("chunk %d has ordinal %d", i, ch.Index())
		}
	}
}

func TestChunkRuling_TagsKeyReasoning(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100, MaxChunkSize: 1000})

	content := "The appellant was charged with offences under the relevant provisions of law following the incident.\n\n" +
		"We hold that the prosecution has established the chain of circumstances beyond reasonable doubt " + words(20) + ".\n\n" +
		"The appeal is disposed of accordingly with no order as to costs in the present matter before us."
	doc := mustDoc(t, document.TypeCourtRuling, content)

	chunks := c.Chunk(doc)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 paragraph chunks, got %d", len(chunks))
	}

	var reasoning int
	for _, ch := range chunks {
		if ch.KeyReasoning() {
			reasoning++
			if ch.SectionName() != "reasoning" {
				t.Errorf("reasoning chunk named %q", ch.SectionName())
			}
		}
	}
	// "We hold that" and "accordingly" both trigger the keyword list.
	if reasoning != 2 {
		t.Errorf("expected 2 key-reasoning chunks, got %d", reasoning)
	}
}

func TestChunkRuling_LongReasoningUsesLargerWindow(t *testing.T) {
	c := New(Config{ChunkSize: 100, Overlap: 20, MaxChunkSize: 800})

	para := "We hold that " + words(700)
	doc := mustDoc(t, document.TypeCourtRuling, para)

	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("reasoning paragraph of 703 words must fit one max-size window, got %d chunks", len(chunks))
	}
	if !chunks[0].KeyReasoning() {
		t.Error("expected key-reasoning chunk")
	}
}

func TestChunk_GenericTypeUsesWindow(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100})
	doc := mustDoc(t, document.TypeBareAct, words(300))

	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 window chunk, got %d", len(chunks))
	}
	if chunks[0].SectionName() != "" {
		t.Errorf("generic chunk should have no section name, got %q", chunks[0].SectionName())
	}
}
