package redis

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/satark-ai/satark/internal/db"
	"github.com/satark-ai/satark/internal/domain/search/filter"
)

func mustFilters(t *testing.T, raw map[string]string) filter.Filters {
	t.Helper()
	f, err := filter.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestBuildFilter_Empty(t *testing.T) {
	if got := buildFilter(filter.Filters{}); got != "" {
		t.Errorf("empty filters must build an empty string, got %q", got)
	}
}

func TestBuildFilter_TagFields(t *testing.T) {
	f := mustFilters(t, map[string]string{
		"document_type": "court_ruling",
		"language":      "gu",
	})

	got := buildFilter(f)
	if !strings.Contains(got, "@doc_type:{court_ruling}") {
		t.Errorf("missing doc_type tag: %q", got)
	}
	if !strings.Contains(got, "@language:{gu}") {
		t.Errorf("missing language tag: %q", got)
	}
}

func TestBuildFilter_TagEscaping(t *testing.T) {
	f := mustFilters(t, map[string]string{"court": "Gujarat High Court"})

	got := buildFilter(f)
	if !strings.Contains(got, `@court:{Gujarat\ High\ Court}`) {
		t.Errorf("spaces in tag values must be escaped: %q", got)
	}
}

func TestBuildFilter_DateRange(t *testing.T) {
	f := mustFilters(t, map[string]string{
		"date_from": "2024-01-01",
		"date_to":   "2024-12-31",
	})

	got := buildFilter(f)
	if !strings.Contains(got, "@date:[19723 20088]") {
		t.Errorf("date range = %q, want epoch days [19723 20088]", got)
	}
}

func TestBuildFilter_OpenEndedDates(t *testing.T) {
	from := mustFilters(t, map[string]string{"date_from": "2024-01-01"})
	if got := buildFilter(from); !strings.Contains(got, "@date:[19723 +inf]") {
		t.Errorf("open upper bound = %q", got)
	}

	to := mustFilters(t, map[string]string{"date_to": "2024-01-01"})
	if got := buildFilter(to); !strings.Contains(got, "@date:[-inf 19723]") {
		t.Errorf("open lower bound = %q", got)
	}
}

func TestBuildKNNArgs_LimitCoversK(t *testing.T) {
	args := buildKNNArgs(&db.KNNQuery{
		IndexName: "satark:all_documents:idx",
		Vector:    []float32{0.1, 0.2},
		K:         20,
	})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "[KNN 20 @__vector $BLOB]") {
		t.Errorf("missing KNN clause: %q", joined)
	}
	// Redis pages FT.SEARCH at 10 results unless LIMIT widens the page.
	if !strings.Contains(joined, "LIMIT 0 20") {
		t.Errorf("LIMIT must match K so results above the default page survive: %q", joined)
	}
	if !strings.Contains(joined, "DIALECT 2") {
		t.Errorf("missing DIALECT 2: %q", joined)
	}
}

func TestBuildKNNArgs_FilterWrapsQuery(t *testing.T) {
	f := mustFilters(t, map[string]string{"language": "hi"})
	args := buildKNNArgs(&db.KNNQuery{
		IndexName: "satark:all_documents:idx",
		Vector:    []float32{0.1},
		K:         5,
		Filters:   f,
	})

	if !strings.Contains(args[1], "(@language:{hi})=>[KNN 5 @__vector $BLOB]") {
		t.Errorf("query = %q, filter must pre-restrict the KNN candidates", args[1])
	}
}

func TestEscapeQuery(t *testing.T) {
	got := escapeQuery(`murder (302) @station`)
	if strings.Contains(got, "(") && !strings.Contains(got, `\(`) {
		t.Errorf("parens must be escaped: %q", got)
	}
	if !strings.Contains(got, `\@`) {
		t.Errorf("@ must be escaped: %q", got)
	}
	// Plain words pass through.
	if !strings.HasPrefix(got, "murder ") {
		t.Errorf("plain terms must survive: %q", got)
	}
}

func TestVectorToBytes(t *testing.T) {
	got := vectorToBytes([]float32{1.5, -2.0})
	if len(got) != 8 {
		t.Fatalf("blob = %d bytes, want 8", len(got))
	}

	first := math.Float32frombits(binary.LittleEndian.Uint32([]byte(got)[:4]))
	second := math.Float32frombits(binary.LittleEndian.Uint32([]byte(got)[4:]))
	if first != 1.5 || second != -2.0 {
		t.Errorf("decoded %v, %v", first, second)
	}
}

func TestEpochDaysRoundTrip(t *testing.T) {
	// The filter builder and the indexed date field must agree on the
	// epoch-day representation.
	day := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	if got := filter.EpochDays(day); got != 20088 {
		t.Errorf("2024-12-31 = %v epoch days, want 20088", got)
	}
}
