package document

import (
	"fmt"

	"github.com/satark-ai/satark/internal/domain"
)

// Type is the document category, closed set.
type Type string

// Document type constants.
const (
	TypeCourtRuling         Type = "court_ruling"
	TypeFIR                 Type = "fir"
	TypeChargesheet         Type = "chargesheet"
	TypePanchnama           Type = "panchnama"
	TypeInvestigationReport Type = "investigation_report"
	TypeBareAct             Type = "bare_act"
	TypeCrimeStatistics     Type = "crime_statistics"
	TypeLegalCommentary     Type = "legal_commentary"
)

var validTypes = map[Type]bool{
	TypeCourtRuling:         true,
	TypeFIR:                 true,
	TypeChargesheet:         true,
	TypePanchnama:           true,
	TypeInvestigationReport: true,
	TypeBareAct:             true,
	TypeCrimeStatistics:     true,
	TypeLegalCommentary:     true,
}

// ParseType validates a raw document type string at the boundary.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !validTypes[t] {
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnknownDocumentType)
	}
	return t, nil
}

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool { return validTypes[t] }

// Source is the provenance tag of a scraped document, closed set.
type Source string

// Source name constants.
const (
	SourceECourts      Source = "ecourts"
	SourceIndianKanoon Source = "indian_kanoon"
	SourceGujaratHC    Source = "gujarat_hc"
	SourceSupremeCourt Source = "supreme_court"
	SourceIndiaCode    Source = "india_code"
	SourceNCRB         Source = "ncrb"
	SourceNJDG         Source = "njdg"
	SourceLocalUpload  Source = "local_upload"
)

var validSources = map[Source]bool{
	SourceECourts:      true,
	SourceIndianKanoon: true,
	SourceGujaratHC:    true,
	SourceSupremeCourt: true,
	SourceIndiaCode:    true,
	SourceNCRB:         true,
	SourceNJDG:         true,
	SourceLocalUpload:  true,
}

// ParseSource validates a raw source string at the boundary.
func ParseSource(s string) (Source, error) {
	src := Source(s)
	if !validSources[src] {
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnknownSource)
	}
	return src, nil
}

// Language is the document language tag, closed set.
type Language string

// Language constants.
const (
	LangEnglish  Language = "en"
	LangHindi    Language = "hi"
	LangGujarati Language = "gu"
)

// ParseLanguage validates a raw language tag at the boundary.
// An empty tag defaults to English, matching scraper output.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LangEnglish, LangHindi, LangGujarati:
		return Language(s), nil
	case "":
		return LangEnglish, nil
	default:
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnknownLanguage)
	}
}
