package rag

import (
	"strings"

	domrag "github.com/satark-ai/satark/internal/domain/rag"
)

// Prompt templates per use case. {context} and {query} are substituted at
// query time.
const (
	sopPrompt = `You are an AI assistant for Gujarat Police officers. Based on the following case documents from similar past cases, suggest investigation steps.

REFERENCE CASES:
{context}

CURRENT FIR DETAILS:
{query}

Provide your response as:

1. CRITICAL STEPS (must do within 24 hours):
   - Step 1: [Action] - Cite [Source]
   - Step 2: [Action] - Cite [Source]

2. IMPORTANT STEPS (within 1 week):
   - Step 1: [Action] - Cite [Source]
   - Step 2: [Action] - Cite [Source]

3. RECOMMENDED STEPS:
   - Step 1: [Action] - Cite [Source]
   - Step 2: [Action] - Cite [Source]

For each step, cite which reference case informed this recommendation.
Always mention relevant IPC/BNS sections.
Respond in English. Be specific and actionable.
`

	chargesheetPrompt = `You are an AI legal assistant reviewing a chargesheet for Gujarat Police. Compare the draft against successful chargesheets from similar cases.

REFERENCE SUCCESSFUL CHARGESHEETS:
{context}

DRAFT CHARGESHEET TO REVIEW:
{query}

Provide:

1. COMPLETENESS SCORE: X/100
   Brief justification for the score.

2. MISSING ELEMENTS (critical gaps):
   - Element 1: [Description] - See [Source]
   - Element 2: [Description] - See [Source]

3. WEAK POINTS (areas needing strengthening):
   - Point 1: [Description] - Strengthen by [Suggestion] - See [Source]
   - Point 2: [Description] - Strengthen by [Suggestion] - See [Source]

4. STRENGTHS (well-done elements):
   - Strength 1: [Description]
   - Strength 2: [Description]

5. RECOMMENDATIONS:
   - Recommendation 1: [Specific action]
   - Recommendation 2: [Specific action]

Cite specific sections and reference cases. Be precise about what's missing.
Focus on legal completeness, evidence quality, and procedural compliance.
`

	generalPrompt = `You are a legal knowledge assistant for Gujarat Police. Answer the following question using ONLY the provided source documents. Always cite your sources.

SOURCE DOCUMENTS:
{context}

QUESTION: {query}

ANSWER (cite sources for every claim):

[Provide a clear, accurate answer based on the source documents. For every fact or claim, cite the source using [Source N] format. If the sources don't contain enough information to answer the question, explicitly state that.]

SOURCES USED:
- [List the sources that were actually used in your answer]
`
)

// BuildPrompt renders the use-case template with the assembled context and
// the raw query. The use case is assumed validated upstream; anything
// unrecognized falls back to the general template.
func BuildPrompt(useCase domrag.UseCase, context, query string) string {
	var tmpl string
	switch useCase {
	case domrag.UseCaseSOP:
		tmpl = sopPrompt
	case domrag.UseCaseChargesheet:
		tmpl = chargesheetPrompt
	default:
		tmpl = generalPrompt
	}
	tmpl = strings.ReplaceAll(tmpl, "{context}", context)
	return strings.ReplaceAll(tmpl, "{query}", query)
}
