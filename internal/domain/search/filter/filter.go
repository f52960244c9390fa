// Package filter holds the closed set of metadata filters accepted by search.
// Free-form filter maps from clients are validated here at the boundary;
// unknown keys are rejected rather than passed through.
package filter

import (
	"fmt"
	"time"

	"github.com/satark-ai/satark/internal/domain"
	"github.com/satark-ai/satark/internal/domain/document"
)

// DateLayout is the wire format for date filter values.
const DateLayout = "2006-01-02"

// Known filter keys.
const (
	KeyDocumentType = "document_type"
	KeyCourt        = "court"
	KeyDistrict     = "district"
	KeyLanguage     = "language"
	KeyDateFrom     = "date_from"
	KeyDateTo       = "date_to"
)

// Filters is a validated conjunction of metadata predicates.
type Filters struct {
	docType  string
	court    string
	district string
	language string
	dateFrom *time.Time
	dateTo   *time.Time
}

// Parse validates a raw filter map from the transport boundary.
// Exact-match keys take the value verbatim; date keys expect YYYY-MM-DD.
func Parse(raw map[string]string) (Filters, error) {
	var f Filters
	for key, val := range raw {
		if val == "" {
			continue
		}
		switch key {
		case KeyDocumentType:
			t, err := document.ParseType(val)
			if err != nil {
				return Filters{}, err
			}
			f.docType = string(t)
		case KeyCourt:
			f.court = val
		case KeyDistrict:
			f.district = val
		case KeyLanguage:
			lang, err := document.ParseLanguage(val)
			if err != nil {
				return Filters{}, err
			}
			f.language = string(lang)
		case KeyDateFrom:
			t, err := time.Parse(DateLayout, val)
			if err != nil {
				return Filters{}, fmt.Errorf("date_from %q: %w", val, err)
			}
			f.dateFrom = &t
		case KeyDateTo:
			t, err := time.Parse(DateLayout, val)
			if err != nil {
				return Filters{}, fmt.Errorf("date_to %q: %w", val, err)
			}
			f.dateTo = &t
		default:
			return Filters{}, fmt.Errorf("%q: %w", key, domain.ErrUnknownFilterField)
		}
	}
	return f, nil
}

// DocType returns the document type predicate ("" when unset).
func (f Filters) DocType() string { return f.docType }

// Court returns the court predicate ("" when unset).
func (f Filters) Court() string { return f.court }

// District returns the district predicate ("" when unset).
func (f Filters) District() string { return f.district }

// Language returns the language predicate ("" when unset).
func (f Filters) Language() string { return f.language }

// DateFrom returns the inclusive lower publication-date bound (nil when unset).
func (f Filters) DateFrom() *time.Time { return f.dateFrom }

// DateTo returns the inclusive upper publication-date bound (nil when unset).
func (f Filters) DateTo() *time.Time { return f.dateTo }

// IsEmpty reports whether no predicate is set.
func (f Filters) IsEmpty() bool {
	return f.docType == "" && f.court == "" && f.district == "" &&
		f.language == "" && f.dateFrom == nil && f.dateTo == nil
}

// EpochDays converts a timestamp into days since the Unix epoch, the numeric
// representation of publication dates in the index.
func EpochDays(t time.Time) float64 {
	return float64(t.Unix() / 86400)
}
