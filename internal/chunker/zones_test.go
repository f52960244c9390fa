package chunker

import (
	"regexp"
	"strings"
	"testing"

	"github.com/satark-ai/satark/internal/domain/document"
)

const sampleFIR = `First Information Report filed by the complainant Shri Ramesh Patel resident of Naranpura recorded at the station today.
The complainant states that his shop was broken into during the night and goods were taken away by unknown persons.
Incident took place between 2300 and 0200 hours near the market crossing according to the statement given.
Accused persons are unknown at this stage and further inquiry is being conducted by the investigating officer.
Evidence collected includes the broken lock one chappal and fingerprints lifted from the counter by the FSL team.
Action taken the case has been registered and investigation entrusted to PSI Chavda for necessary action.`

func zoneNames(t *testing.T, c *Chunker, doc document.Document) map[string]bool {
	t.Helper()
	names := make(map[string]bool)
	for _, ch := range c.Chunk(doc) {
		names[ch.SectionName()] = true
	}
	return names
}

func TestChunkZones_FIR(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100})
	doc := mustDoc(t, document.TypeFIR, sampleFIR)

	names := zoneNames(t, c, doc)
	for _, want := range []string{"complainant", "incident", "evidence", "accused"} {
		if !names[want] {
			t.Errorf("missing FIR zone %q, got %v", want, names)
		}
	}
}

func TestChunkZones_Chargesheet(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100})

	content := `Chargesheet in the matter of State versus the person charged below submitted before the honourable court.
Accused details name Suresh age 32 resident of Vatva charged under the relevant penal provisions of the code.
Witness statements were recorded from four persons present at the scene during the occurrence of the incident.
Evidence relied upon includes the forensic report the recovered weapon and the call detail records obtained.
Investigation chronology the inquiry began on the date of registration and concluded within sixty days thereafter.
Conclusion the material collected discloses a prima facie case against the accused for trial before the court.`
	doc := mustDoc(t, document.TypeChargesheet, content)

	names := zoneNames(t, c, doc)
	for _, want := range []string{"accused_details", "evidence", "witnesses", "investigation"} {
		if !names[want] {
			t.Errorf("missing chargesheet zone %q, got %v", want, names)
		}
	}
}

func TestChunkZones_FallbackToWindow(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100})

	// No zone keywords at all: the FIR strategy matches nothing and the
	// chunker falls back to generic windowing instead of dropping the doc.
	content := strings.Repeat("ordinary narrative text without any structural markers here ", 10)
	doc := mustDoc(t, document.TypeFIR, content)

	chunks := c.Chunk(doc)
	if len(chunks) == 0 {
		t.Fatal("expected fallback window chunks, got none")
	}
	if chunks[0].SectionName() != "" {
		t.Errorf("fallback chunk should be unnamed, got %q", chunks[0].SectionName())
	}
}

func TestMatchZone_BoundaryCutsSpan(t *testing.T) {
	text := "complainant section begins here with details\naccused part starts after the newline boundary"
	span, ok := matchZone(text, firZones[0])
	if !ok {
		t.Fatal("expected complainant zone match")
	}
	if strings.Contains(span, "accused part") {
		t.Errorf("span crossed its boundary: %q", span)
	}
}

func TestChunkZones_DedupsIdenticalSpans(t *testing.T) {
	c := New(Config{ChunkSize: 500, Overlap: 100})

	// Two zone patterns anchoring on the same word produce identical spans;
	// the span must be indexed once under the first zone's name.
	zones := []zonePattern{
		{
			name:     "first",
			start:    regexp.MustCompile(`(?i)accused`),
			boundary: regexp.MustCompile(`(?i)\nsignature`),
		},
		{
			name:     "second",
			start:    regexp.MustCompile(`(?i)accused`),
			boundary: regexp.MustCompile(`(?i)\nsignature`),
		},
	}

	text := "accused details recorded for the person in custody at the station house today by the officer"
	chunks := c.chunkZones(text, zones)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for identical spans, got %d", len(chunks))
	}
	if chunks[0].SectionName() != "first" {
		t.Errorf("dedup kept zone %q, want %q", chunks[0].SectionName(), "first")
	}
}
