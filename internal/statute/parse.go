package statute

import (
	"regexp"
	"strings"
)

// Reference is a section citation found in free text. Code is the normalized
// name, which may fall outside the convertible set (e.g. NDPS, POCSO); in
// that case Equivalent is nil and the reference passes through untouched.
type Reference struct {
	Section       string      `json:"section"`
	Code          string      `json:"code"`
	FullReference string      `json:"full_reference"`
	Equivalent    *Conversion `json:"equivalent,omitempty"`
}

// section token: digits, optional letter suffix, optional sub-clause.
const secToken = `(\d+[A-Za-z]?(?:\(\d+\))*)`

// Code alternations. Longer spellings first so BNSS is not eaten as BNS.
const (
	dottedCodes = `BNSS|B\.N\.S\.S\.?|BNS|B\.N\.S\.?|IPC|I\.P\.C\.?|CrPC|Cr\.P\.C\.?|IEA|BSA|NDPS|POCSO`
	plainCodes  = `BNSS|BNS|IPC|CrPC|IEA|BSA|NDPS|POCSO`
)

// referencePatterns are tried in fixed priority order: specific phrase shapes
// first, the bare "number CODE" shape last, so a year or unrelated number
// next to a code word does not shadow an explicit citation. Group order
// varies per shape; the digit group is always the section number.
var referencePatterns = []*regexp.Regexp{
	// "Section 302 of the IPC" / "Section 302 IPC"
	regexp.MustCompile(`(?i)section\s+` + secToken + `\s+(?:of\s+)?(?:the\s+)?(` + dottedCodes + `)`),
	// "IPC Section 302" / "IPC Sec. 302"
	regexp.MustCompile(`(?i)(` + dottedCodes + `)\s*s(?:ection|ec\.?)\s*` + secToken),
	// "s. 302 IPC" / "s.302 IPC"
	regexp.MustCompile(`(?i)\bs\.?\s*` + secToken + `\s+(` + plainCodes + `)`),
	// "u/s 302 IPC"
	regexp.MustCompile(`(?i)\bu/s\.?\s*` + secToken + `\s+(?:of\s+)?(?:the\s+)?(` + plainCodes + `)`),
	// "302 IPC"
	regexp.MustCompile(`(?i)\b` + secToken + `\s+(` + plainCodes + `)`),
}

// ParseReferences scans free text for section citations, normalizes code-name
// spellings, deduplicates by (code, section) within the call, and resolves
// the cross-code equivalent for every convertible reference.
func (n *Normalizer) ParseReferences(text string) []Reference {
	var refs []Reference
	seen := make(map[string]bool)

	for _, pattern := range referencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			section, codeName := splitGroups(match[1], match[2])
			if section == "" {
				continue
			}
			section = strings.ToUpper(section)
			codeName = NormalizeCodeName(codeName)

			key := codeName + ":" + section
			if seen[key] {
				continue
			}
			seen[key] = true

			ref := Reference{
				Section:       section,
				Code:          codeName,
				FullReference: strings.TrimSpace(match[0]),
			}
			if code, ok := ParseCode(codeName); ok {
				if conv, err := n.Convert(section, code); err == nil {
					ref.Equivalent = &conv
				}
			}
			refs = append(refs, ref)
		}
	}

	return refs
}

// CitedSections returns the distinct "CODE section" labels for every
// reference in the text, followed by their cross-code equivalents. Used to
// populate the sections_cited metadata on indexed chunks.
func (n *Normalizer) CitedSections(text string) []string {
	var cited []string
	seen := make(map[string]bool)

	add := func(label string) {
		if !seen[label] {
			seen[label] = true
			cited = append(cited, label)
		}
	}

	for _, ref := range n.ParseReferences(text) {
		add(ref.Code + " " + ref.Section)
		if ref.Equivalent != nil && !ref.Equivalent.Decriminalized {
			add(string(ref.Equivalent.Code) + " " + ref.Equivalent.Section)
		}
	}

	return cited
}

// splitGroups decides which captured group is the section number: whichever
// starts with a digit, regardless of the pattern's group order.
func splitGroups(g1, g2 string) (section, code string) {
	if g1 != "" && g1[0] >= '0' && g1[0] <= '9' {
		return g1, g2
	}
	return g2, g1
}
