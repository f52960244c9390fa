package statute

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/satark-ai/satark/internal/domain"
)

// DecriminalizedValue is the one literal mapping value that is never a real
// section number: the old provision has no successor.
const DecriminalizedValue = "None"

// mapping table file names, fixed contract with the configs directory.
var tableFiles = map[Code]string{
	IPC:  "ipc_to_bns.json",
	CrPC: "crpc_to_bnss.json",
	IEA:  "iea_to_bsa.json",
}

// Conversion is the result of translating a section between paired codes.
// Section is empty and Decriminalized true when the provision has no successor.
type Conversion struct {
	Code           Code   `json:"code"`
	Section        string `json:"section,omitempty"`
	Decriminalized bool   `json:"decriminalized,omitempty"`
}

// Normalizer converts section numbers between paired code systems using
// static mapping tables. Tables are loaded once and immutable thereafter,
// safe for concurrent reads.
type Normalizer struct {
	tables map[Code]map[string]string
}

// LoadTables reads the three forward mapping tables from dir and derives the
// reverse tables by inversion, excluding decriminalized entries (a
// decriminalized section has no valid reverse reference). A missing or
// unparsable table is a startup failure.
func LoadTables(dir string) (*Normalizer, error) {
	n := &Normalizer{tables: make(map[Code]map[string]string, 6)}

	for from, filename := range tableFiles {
		path := filepath.Join(dir, filename)
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read mapping table %s: %w", path, err)
		}

		forward := make(map[string]string)
		if err := json.Unmarshal(data, &forward); err != nil {
			return nil, fmt.Errorf("parse mapping table %s: %w", path, err)
		}

		reverse := make(map[string]string, len(forward))
		for old, successor := range forward {
			if successor == "" || successor == DecriminalizedValue {
				continue
			}
			reverse[successor] = old
		}

		n.tables[from] = forward
		n.tables[counterparts[from]] = reverse
	}

	return n, nil
}

// NewNormalizer builds a normalizer from in-memory forward tables, keyed by
// old code. Used by tests and embedded-default setups.
func NewNormalizer(forward map[Code]map[string]string) *Normalizer {
	n := &Normalizer{tables: make(map[Code]map[string]string, 6)}
	for from, table := range forward {
		reverse := make(map[string]string, len(table))
		for old, successor := range table {
			if successor == "" || successor == DecriminalizedValue {
				continue
			}
			reverse[successor] = old
		}
		n.tables[from] = table
		n.tables[counterparts[from]] = reverse
	}
	return n
}

// TableSize returns the number of entries loaded for a code direction.
func (n *Normalizer) TableSize(from Code) int {
	return len(n.tables[from])
}

// Table returns the loaded mapping for a code direction. The returned map
// must be treated as read-only.
func (n *Normalizer) Table(from Code) map[string]string {
	return n.tables[from]
}

// Convert translates a section number to its equivalent in the paired code
// system. Sub-clause suffixes like "115(2)" are opaque strings, not parsed.
// A section absent from the table yields domain.ErrMappingNotFound, an
// unsupported code yields domain.ErrUnknownCode; neither ever panics.
func (n *Normalizer) Convert(section string, from Code) (Conversion, error) {
	to, ok := counterparts[from]
	if !ok {
		return Conversion{}, fmt.Errorf("%q: %w", from, domain.ErrUnknownCode)
	}

	successor, ok := n.tables[from][section]
	if !ok {
		return Conversion{}, fmt.Errorf("%s section %s: %w", from, section, domain.ErrMappingNotFound)
	}

	if successor == DecriminalizedValue {
		return Conversion{Code: to, Decriminalized: true}, nil
	}
	return Conversion{Code: to, Section: successor}, nil
}
