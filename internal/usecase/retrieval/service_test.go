package retrieval

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/satark-ai/satark/internal/domain"
	"github.com/satark-ai/satark/internal/domain/search/filter"
	"github.com/satark-ai/satark/internal/domain/search/result"
)

type mockVector struct {
	results []result.Result
	err     error
	gotK    int
	gotQ    []float32
}

func (m *mockVector) SearchKNN(
	_ context.Context, _ string, vector []float32, _ filter.Filters, topK int,
) ([]result.Result, error) {
	m.gotK = topK
	m.gotQ = vector
	return m.results, m.err
}

type mockKeyword struct {
	results  []result.Result
	err      error
	gotQuery string
}

func (m *mockKeyword) SearchKeyword(
	_ context.Context, _ string, query string, _ filter.Filters, _ int,
) ([]result.Result, error) {
	m.gotQuery = query
	return m.results, m.err
}

type mockEmbedder struct {
	err     error
	gotText string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.gotText = text
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}, TotalTokens: 3}, nil
}

func res(id string, score float64) result.Result {
	return result.New(id, score, "content of "+id, nil)
}

func newService(t *testing.T, v *mockVector, k *mockKeyword, e *mockEmbedder, weight float64) *Service {
	t.Helper()
	s, err := New(v, k, e, weight, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNew_RejectsBadWeight(t *testing.T) {
	for _, w := range []float64{-0.1, 1.1} {
		if _, err := New(&mockVector{}, &mockKeyword{}, &mockEmbedder{}, w, zap.NewNop()); err == nil {
			t.Errorf("weight %v must be rejected", w)
		}
	}
}

func TestSearch_WeightedMerge(t *testing.T) {
	v := &mockVector{results: []result.Result{res("a", 0.8), res("b", 0.5)}}
	k := &mockKeyword{results: []result.Result{res("a", 0.6), res("c", 0.9)}}
	s := newService(t, v, k, &mockEmbedder{}, 0.7)

	got, err := s.Search(context.Background(), "all_documents", "query", filter.Filters{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 merged results, got %d", len(got))
	}

	want := map[string]float64{
		"a": 0.8*0.7 + 0.6*0.3, // both arms: 0.74
		"b": 0.5 * 0.7,         // vector only: 0.35
		"c": 0.9 * 0.3,         // keyword only: 0.27
	}
	for i := range got {
		if w, ok := want[got[i].ID()]; !ok || math.Abs(got[i].Score()-w) > 1e-9 {
			t.Errorf("result %s score = %v, want %v", got[i].ID(), got[i].Score(), w)
		}
	}
	// Descending combined score.
	if got[0].ID() != "a" || got[1].ID() != "b" || got[2].ID() != "c" {
		t.Errorf("order = %s %s %s, want a b c", got[0].ID(), got[1].ID(), got[2].ID())
	}
}

func TestSearch_VectorArmGetsExpandedQueryAtDoubleK(t *testing.T) {
	v := &mockVector{}
	k := &mockKeyword{}
	e := &mockEmbedder{}
	s := newService(t, v, k, e, 0.7)

	if _, err := s.Search(context.Background(), "all_documents", "murder weapon", filter.Filters{}, 5); err != nil {
		t.Fatal(err)
	}

	if v.gotK != 10 {
		t.Errorf("vector arm k = %d, want topK*2 = 10", v.gotK)
	}
	if !strings.Contains(e.gotText, "Section 302 IPC") {
		t.Errorf("vector arm must embed the expanded query, got %q", e.gotText)
	}
	if k.gotQuery != "murder weapon" {
		t.Errorf("keyword arm must search the raw query, got %q", k.gotQuery)
	}
}

func TestSearch_Truncation(t *testing.T) {
	v := &mockVector{results: []result.Result{
		res("a", 0.9), res("b", 0.8), res("c", 0.7), res("d", 0.6),
	}}
	s := newService(t, v, &mockKeyword{}, &mockEmbedder{}, 1.0)

	got, err := s.Search(context.Background(), "all_documents", "q", filter.Filters{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected topK=2 results, got %d", len(got))
	}
	if got[0].ID() != "a" || got[1].ID() != "b" {
		t.Errorf("truncation must keep the highest scores, got %s %s", got[0].ID(), got[1].ID())
	}
}

func TestSearch_EmbedErrorFailsQuery(t *testing.T) {
	e := &mockEmbedder{err: errors.New("provider down")}
	s := newService(t, &mockVector{}, &mockKeyword{}, e, 0.7)

	if _, err := s.Search(context.Background(), "all_documents", "q", filter.Filters{}, 5); err == nil {
		t.Error("embedding failure must fail the query")
	}
}

func TestSearch_VectorArmDegrades(t *testing.T) {
	v := &mockVector{err: errors.New("index gone")}
	k := &mockKeyword{results: []result.Result{res("a", 0.9)}}
	s := newService(t, v, k, &mockEmbedder{}, 0.7)

	got, err := s.Search(context.Background(), "all_documents", "q", filter.Filters{}, 5)
	if err != nil {
		t.Fatalf("vector arm failure must degrade, not fail: %v", err)
	}
	if len(got) != 1 || math.Abs(got[0].Score()-0.27) > 1e-9 {
		t.Errorf("expected keyword-only result scored 0.9*0.3, got %+v", got)
	}
}

func TestSearch_KeywordArmDegrades(t *testing.T) {
	v := &mockVector{results: []result.Result{res("a", 0.8)}}
	k := &mockKeyword{err: domain.ErrKeywordSearchNotSupported}
	s := newService(t, v, k, &mockEmbedder{}, 0.7)

	got, err := s.Search(context.Background(), "all_documents", "q", filter.Filters{}, 5)
	if err != nil {
		t.Fatalf("keyword arm failure must degrade, not fail: %v", err)
	}
	if len(got) != 1 || math.Abs(got[0].Score()-0.56) > 1e-9 {
		t.Errorf("expected vector-only result scored 0.8*0.7, got %+v", got)
	}
}

func TestSearch_RejectsNonPositiveTopK(t *testing.T) {
	s := newService(t, &mockVector{}, &mockKeyword{}, &mockEmbedder{}, 0.7)
	if _, err := s.Search(context.Background(), "all_documents", "q", filter.Filters{}, 0); err == nil {
		t.Error("topK=0 must be rejected")
	}
}

func TestMerge_FallbackIDDedupsByContentPrefix(t *testing.T) {
	content := strings.Repeat("x", 80)
	v := &mockVector{results: []result.Result{result.New("", 0.8, content, nil)}}
	k := &mockKeyword{results: []result.Result{result.New("", 0.6, content, nil)}}
	s := newService(t, v, k, &mockEmbedder{}, 0.5)

	got, err := s.Search(context.Background(), "all_documents", "q", filter.Filters{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("identical content without ids must merge to one result, got %d", len(got))
	}
	if math.Abs(got[0].Score()-0.7) > 1e-9 {
		t.Errorf("merged score = %v, want 0.7", got[0].Score())
	}
}
