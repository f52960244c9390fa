package chunker

import (
	"regexp"
	"strings"

	"github.com/satark-ai/satark/internal/domain/chunk"
)

// zonePattern locates one structural zone in a document: the zone starts at
// the first match of start and runs until the first boundary match after it
// (or end of text). The boundary patterns are heuristic; they can both
// double-match and miss on unusual phrasings, which is why each zone set
// lives behind its own table and falls back to generic windowing.
type zonePattern struct {
	name     string
	start    *regexp.Regexp
	boundary *regexp.Regexp
}

// firZones segments a First Information Report.
var firZones = []zonePattern{
	{
		name:     "complainant",
		start:    regexp.MustCompile(`(?i)complainant|informant|first information`),
		boundary: regexp.MustCompile(`(?i)\n(?:accused|incident|offence|section)`),
	},
	{
		name:     "incident",
		start:    regexp.MustCompile(`(?i)incident|occurrence|offence committed`),
		boundary: regexp.MustCompile(`(?i)\n(?:accused|evidence|action taken)`),
	},
	{
		name:     "evidence",
		start:    regexp.MustCompile(`(?i)evidence|property|exhibit|seized`),
		boundary: regexp.MustCompile(`(?i)\n(?:action|recommendation|signature)`),
	},
	{
		name:     "accused",
		start:    regexp.MustCompile(`(?i)accused|suspect`),
		boundary: regexp.MustCompile(`(?i)\n(?:evidence|action|signature)`),
	},
}

// chargesheetZones segments a chargesheet.
var chargesheetZones = []zonePattern{
	{
		name:     "accused_details",
		start:    regexp.MustCompile(`(?i)accused|person charged`),
		boundary: regexp.MustCompile(`(?i)\n(?:witness|evidence|investigation)`),
	},
	{
		name:     "evidence",
		start:    regexp.MustCompile(`(?i)evidence|exhibit|forensic|report`),
		boundary: regexp.MustCompile(`(?i)\n(?:witness|chronology|recommendation)`),
	},
	{
		name:     "witnesses",
		start:    regexp.MustCompile(`(?i)witness|deposition|statement`),
		boundary: regexp.MustCompile(`(?i)\n(?:evidence|chronology|conclusion)`),
	},
	{
		name:     "investigation",
		start:    regexp.MustCompile(`(?i)investigation|chronology|inquiry`),
		boundary: regexp.MustCompile(`(?i)\n(?:conclusion|recommendation|prayer)`),
	},
}

// matchZone returns the text span of a zone, or ok=false when the zone's
// start pattern does not occur.
func matchZone(text string, z zonePattern) (span string, ok bool) {
	loc := z.start.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	rest := text[loc[0]:]
	if b := z.boundary.FindStringIndex(rest); b != nil && b[0] > 0 {
		return rest[:b[0]], true
	}
	return rest, true
}

// chunkZones runs each zone pattern against the document and window-chunks
// every matched span independently. Identical spans matched by two zone
// patterns are indexed once.
func (c *Chunker) chunkZones(text string, zones []zonePattern) []chunk.Chunk {
	var chunks []chunk.Chunk
	used := make(map[string]bool)

	for _, z := range zones {
		span, ok := matchZone(text, z)
		if !ok {
			continue
		}
		span = strings.TrimSpace(span)
		if span == "" || used[span] {
			continue
		}
		used[span] = true
		chunks = append(chunks, c.window(span, z.name, false, c.cfg.ChunkSize)...)
	}

	return chunks
}
