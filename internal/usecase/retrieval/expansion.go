package retrieval

import "strings"

// expansion maps a trigger term to the legal synonyms and statute references
// appended when the term appears in a query. Kept as an ordered slice so
// expansion output is deterministic.
type expansion struct {
	term  string
	terms string
}

var expansions = []expansion{
	{"murder", "murder Section 302 IPC Section 103 BNS homicide killing"},
	{"theft", "theft Section 379 IPC Section 303 BNS stealing larceny"},
	{"bail", "bail anticipatory bail regular bail Section 437 CrPC"},
	{"chargesheet", "chargesheet Section 173 CrPC prosecution complaint"},
	{"fir", "FIR First Information Report Section 154 CrPC"},
	{"302", "Section 302 IPC Section 103 BNS murder"},
	{"304", "Section 304 IPC culpable homicide"},
	{"376", "Section 376 IPC Section 63 BNS rape sexual assault"},
}

// ExpandQuery appends legal synonyms for every trigger term found in the
// query (case-insensitive). The original query text always stays first so
// exact-phrase relevance is preserved.
func ExpandQuery(query string) string {
	lower := strings.ToLower(query)
	expanded := query
	for _, e := range expansions {
		if strings.Contains(lower, e.term) {
			expanded += " " + e.terms
		}
	}
	return expanded
}
