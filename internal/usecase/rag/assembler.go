package rag

import (
	"fmt"
	"strconv"
	"strings"

	domrag "github.com/satark-ai/satark/internal/domain/rag"
	"github.com/satark-ai/satark/internal/domain/search/result"
)

// tokensPerWord is the rough token estimate used for context budgeting.
const tokensPerWord = 1.3

const chunkSeparator = "\n\n---\n\n"

// assembleContext joins retrieved chunks into one prompt context, each tagged
// with a 1-based [Source N: title] marker. Chunks are taken greedily in rank
// order; assembly stops at the first chunk that would push the token estimate
// over budget, so the result is always a rank-order prefix. The returned
// citations describe exactly the chunks that made it in.
func assembleContext(results []result.Result, maxTokens int) (string, []domrag.Citation) {
	var parts []string
	var citations []domrag.Citation
	tokenCount := 0

	for i, r := range results {
		title := r.Field("title")
		if title == "" {
			title = "Unknown"
		}

		chunk := fmt.Sprintf("[Source %d: %s]\n%s", i+1, title, r.Content())

		chunkTokens := int(float64(len(strings.Fields(chunk))) * tokensPerWord)
		if tokenCount+chunkTokens > maxTokens {
			break
		}

		parts = append(parts, chunk)
		tokenCount += chunkTokens

		citations = append(citations, domrag.Citation{
			Index:   i + 1,
			Title:   title,
			DocType: r.Field("doc_type"),
			Court:   r.Field("court"),
			Score:   roundScore(r.Score()),
		})
	}

	return strings.Join(parts, chunkSeparator), citations
}

// roundScore trims scores to 4 decimal places for stable response payloads.
func roundScore(s float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(s, 'f', 4, 64), 64)
	if err != nil {
		return s
	}
	return v
}
