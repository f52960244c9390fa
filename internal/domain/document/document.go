// Package document holds the source-document aggregate consumed read-only by
// the retrieval core. Documents are produced upstream by scrapers and OCR.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/satark-ai/satark/internal/domain"
)

// MinContentWords is the minimum word count for a document to be indexable.
// Anything shorter is rejected as malformed before chunking.
const MinContentWords = 10

// Document is a unit of source text plus provenance metadata (immutable value object).
type Document struct {
	id            string
	docType       Type
	source        Source
	title         string
	content       string
	language      Language
	caseNumber    string
	court         string
	district      string
	datePublished time.Time
	sectionsCited []string
}

// New validates and creates a Document. The identifier is derived from the
// content hash, so re-processing identical content yields the same id.
func New(
	docType Type, source Source, title, content string, language Language,
) (Document, error) {
	if !docType.IsValid() {
		return Document{}, fmt.Errorf("%q: %w", docType, domain.ErrUnknownDocumentType)
	}
	if !validSources[source] {
		return Document{}, fmt.Errorf("%q: %w", source, domain.ErrUnknownSource)
	}
	words := len(strings.Fields(content))
	if words < MinContentWords {
		return Document{}, fmt.Errorf(
			"content has %d words, need at least %d: %w",
			words, MinContentWords, domain.ErrMalformedDocument,
		)
	}
	if language == "" {
		language = LangEnglish
	}

	return Document{
		id:       ContentHash(content),
		docType:  docType,
		source:   source,
		title:    title,
		content:  content,
		language: language,
	}, nil
}

// ContentHash returns the stable sha256 identifier of raw content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// WithCaseDetails attaches optional structured court metadata.
func (d Document) WithCaseDetails(caseNumber, court, district string, datePublished time.Time) Document {
	d.caseNumber = caseNumber
	d.court = court
	d.district = district
	d.datePublished = datePublished
	return d
}

// WithSectionsCited attaches normalized statute references extracted from content.
func (d Document) WithSectionsCited(sections []string) Document {
	d.sectionsCited = sections
	return d
}

// ID returns the content-derived identifier.
func (d Document) ID() string { return d.id }

// DocType returns the document category.
func (d Document) DocType() Type { return d.docType }

// Source returns the provenance tag.
func (d Document) Source() Source { return d.source }

// Title returns the document title.
func (d Document) Title() string { return d.title }

// Content returns the raw cleaned content.
func (d Document) Content() string { return d.content }

// Language returns the language tag.
func (d Document) Language() Language { return d.language }

// CaseNumber returns the court case number, if any.
func (d Document) CaseNumber() string { return d.caseNumber }

// Court returns the court name, if any.
func (d Document) Court() string { return d.court }

// District returns the district, if any.
func (d Document) District() string { return d.district }

// DatePublished returns the publication date (zero value when unknown).
func (d Document) DatePublished() time.Time { return d.datePublished }

// SectionsCited returns normalized statute references cited in the content.
func (d Document) SectionsCited() []string { return d.sectionsCited }
