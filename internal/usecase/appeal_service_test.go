package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/promorank/backend/internal/domain"
)

// stubEmbedder returns canned vectors keyed by raw input text
type stubEmbedder struct {
	mu           sync.Mutex
	vectors      map[string][]float64
	defaultVec   []float64
	failQueries  bool
	queryCalls   int
	passageCalls int
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCalls++
	if s.failQueries {
		return nil, errors.New("embedding server unavailable")
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return s.defaultVec, nil
}

func (s *stubEmbedder) EmbedPassage(ctx context.Context, text string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passageCalls++
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return s.defaultVec, nil
}

func TestNewAppealScorer(t *testing.T) {
	t.Run("embeds all six anchors once", func(t *testing.T) {
		embedder := &stubEmbedder{defaultVec: []float64{1, 0, 0}}
		scorer, err := NewAppealScorer(context.Background(), embedder)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if scorer == nil {
			t.Fatal("expected scorer, got nil")
		}
		if embedder.queryCalls != 6 {
			t.Errorf("queryCalls = %d, want 6", embedder.queryCalls)
		}
	})

	t.Run("fails hard when the provider is unavailable", func(t *testing.T) {
		embedder := &stubEmbedder{failQueries: true}
		_, err := NewAppealScorer(context.Background(), embedder)
		if err == nil {
			t.Fatal("expected error when anchor embedding fails")
		}
	})
}

func TestAxisScore(t *testing.T) {
	// Unit vectors at known angles make the cosine values exact:
	// cos(v, x-axis) = v[0] for any unit vector v.
	xAxis := []float64{1, 0}
	yAxis := []float64{0, 1}

	t.Run("floor-only clamp on negative separation", func(t *testing.T) {
		// embedding aligned with the negative anchor: diff = 0 - 1 = -1,
		// raw score -100 + 5 floors at 0
		got := axisScore(yAxis, axisAnchors{positive: xAxis, negative: yAxis})
		if got != 0 {
			t.Errorf("axisScore = %v, want 0", got)
		}
	})

	t.Run("moderate negative difference floors at zero", func(t *testing.T) {
		// cos to positive = 0, cos to negative = 0.1: raw -10, -10 + 5 floors at 0
		embedding := []float64{0, 1}
		anchors := axisAnchors{
			positive: xAxis,
			negative: []float64{math.Sqrt(1 - 0.01), 0.1},
		}
		got := axisScore(embedding, anchors)
		if got != 0 {
			t.Errorf("axisScore = %v, want 0 (floored)", got)
		}
	})

	t.Run("no upper clamp", func(t *testing.T) {
		// embedding equals positive anchor, orthogonal to negative:
		// diff = 1 - 0 = +1, raw 100 + 5 = 105 and stays there
		got := axisScore(xAxis, axisAnchors{positive: xAxis, negative: yAxis})
		if math.Abs(got-105) > 1e-9 {
			t.Errorf("axisScore = %v, want 105 (no ceiling)", got)
		}
	})

	t.Run("known positive separation", func(t *testing.T) {
		// cos to positive = 0.5, cos to negative = 0: raw 50 + 5 = 55
		anchors := axisAnchors{
			positive: []float64{0.5, math.Sqrt(0.75)},
			negative: yAxis,
		}
		got := axisScore(xAxis, anchors)
		if math.Abs(got-55) > 1e-9 {
			t.Errorf("axisScore = %v, want 55", got)
		}
	})
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{"identical vectors", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal vectors", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite vectors", []float64{1, 0}, []float64{-1, 0}, -1},
		{"scale invariant", []float64{2, 0}, []float64{5, 0}, 1},
		{"mismatched lengths", []float64{1, 0}, []float64{1, 0, 0}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0},
		{"empty vectors", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppealScorer_Score(t *testing.T) {
	t.Run("all axes computed from one embedding", func(t *testing.T) {
		embedder := &stubEmbedder{defaultVec: []float64{1, 0, 0}}
		scorer, err := NewAppealScorer(context.Background(), embedder)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		score := scorer.Score([]float64{1, 0, 0})

		// Every anchor is the same vector here, so every axis collapses to
		// the offset: diff = 0, raw = 5
		for axis, got := range map[string]float64{
			"visual":  score.Visual,
			"novelty": score.Novelty,
			"hype":    score.Hype,
		} {
			if math.Abs(got-5) > 1e-9 {
				t.Errorf("%s = %v, want 5", axis, got)
			}
		}
	})

	t.Run("axes never go negative", func(t *testing.T) {
		embedder := &stubEmbedder{
			defaultVec: []float64{1, 0},
			vectors: map[string][]float64{
				visualNegAnchor:  {0, 1},
				noveltyNegAnchor: {0, 1},
				hypeNegAnchor:    {0, 1},
			},
		}
		scorer, err := NewAppealScorer(context.Background(), embedder)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Embedding aligned with every negative anchor
		score := scorer.Score([]float64{0, 1})
		if score.Visual < 0 || score.Novelty < 0 || score.Hype < 0 {
			t.Errorf("axis scores must be floored at 0, got %+v", score)
		}
	})

	t.Run("Mean averages the three axes", func(t *testing.T) {
		score := domain.AppealScore{Visual: 10, Novelty: 20, Hype: 30}
		if got := score.Mean(); got != 20 {
			t.Errorf("Mean() = %v, want 20", got)
		}
	})
}
