// Package statute normalizes legal-code section references and converts
// section numbers between the old criminal codes (IPC, CrPC, IEA) and their
// 2023 successors (BNS, BNSS, BSA).
package statute

import "strings"

// Code is a legal code system, closed set.
type Code string

// Supported code systems. Each old code pairs with its successor.
const (
	IPC  Code = "IPC"
	BNS  Code = "BNS"
	CrPC Code = "CrPC"
	BNSS Code = "BNSS"
	IEA  Code = "IEA"
	BSA  Code = "BSA"
)

// counterparts pairs each code with the system it converts to.
var counterparts = map[Code]Code{
	IPC:  BNS,
	BNS:  IPC,
	CrPC: BNSS,
	BNSS: CrPC,
	IEA:  BSA,
	BSA:  IEA,
}

// ParseCode resolves a normalized code name into the closed set.
func ParseCode(s string) (Code, bool) {
	c := Code(s)
	_, ok := counterparts[c]
	return c, ok
}

// spellings maps cleaned (dotless, spaceless, uppercase) code-name variants
// to their canonical form. Names outside this table pass through cleaned.
var spellings = map[string]string{
	"IPC":                           "IPC",
	"INDIANPENALCODE":               "IPC",
	"INDPENALCODE":                  "IPC",
	"BNS":                           "BNS",
	"BHARATIYANYAYASANHITA":         "BNS",
	"CRPC":                          "CrPC",
	"CODEOFCRIMINALPROCEDURE":       "CrPC",
	"BNSS":                          "BNSS",
	"BHARATIYANAGARIKSURAKSHASANHITA": "BNSS",
	"IEA":                           "IEA",
	"INDIANEVIDENCEACT":             "IEA",
	"BSA":                           "BSA",
	"BHARATIYASAKSHYAADHINIYAM":     "BSA",
	"NDPS":                          "NDPS",
	"POCSO":                         "POCSO",
}

// NormalizeCodeName canonicalizes code-name spelling variants:
// "I.P.C.", "Indian Penal Code" and "IndianPenalCode" all become "IPC".
func NormalizeCodeName(raw string) string {
	cleaned := strings.ToUpper(strings.NewReplacer(".", "", " ", "").Replace(strings.TrimSpace(raw)))
	if canonical, ok := spellings[cleaned]; ok {
		return canonical
	}
	return cleaned
}
