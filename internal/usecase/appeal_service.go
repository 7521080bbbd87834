package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/promorank/backend/internal/domain"
)

// Axis scoring constants
const (
	axisScale  = 100.0 // similarity difference is in [-2, 2]; scale to a 0-100-ish range
	axisOffset = 5.0   // small constant bonus applied before flooring
)

// Anchor phrases describing the positive/negative pole of each appeal axis.
// Embedded once at startup with the query prefix and never mutated.
const (
	visualPosAnchor = "bright colorful saturated neon eye-catching design visually striking"
	visualNegAnchor = "dull gray faded plain standard ordinary boring matte"

	noveltyPosAnchor = "new arrival fresh release latest model modern innovation trend"
	noveltyNegAnchor = "old antique outdated retro vintage last century history"

	hypePosAnchor = "bestseller sales hit top popular customer favorite highly rated"
	hypeNegAnchor = "average unknown niche basic spare part unremarkable"
)

// axisAnchors holds the precomputed pole embeddings for one appeal axis
type axisAnchors struct {
	positive []float64
	negative []float64
}

// AppealScorer scores product passages against fixed anchor embeddings.
// The six reference vectors are read-only after construction, so concurrent
// scoring needs no locking.
type AppealScorer struct {
	visual  axisAnchors
	novelty axisAnchors
	hype    axisAnchors
}

// NewAppealScorer embeds the six anchor phrases and returns a ready scorer.
// An error here means the embedding provider is unavailable; no product can
// be scored without the reference vectors, so callers should treat it as fatal.
func NewAppealScorer(ctx context.Context, provider domain.EmbeddingProvider) (*AppealScorer, error) {
	scorer := &AppealScorer{}

	anchors := []struct {
		phrase string
		dest   *[]float64
	}{
		{visualPosAnchor, &scorer.visual.positive},
		{visualNegAnchor, &scorer.visual.negative},
		{noveltyPosAnchor, &scorer.novelty.positive},
		{noveltyNegAnchor, &scorer.novelty.negative},
		{hypePosAnchor, &scorer.hype.positive},
		{hypeNegAnchor, &scorer.hype.negative},
	}

	for _, anchor := range anchors {
		vec, err := provider.EmbedQuery(ctx, anchor.phrase)
		if err != nil {
			return nil, fmt.Errorf("failed to embed anchor phrase %q: %w", anchor.phrase, err)
		}
		*anchor.dest = vec
	}

	return scorer, nil
}

// Score computes the three axis scores from a single passage embedding.
// All axes reuse the same vector; embedding cost must scale with catalog
// size, not catalog size times three.
func (s *AppealScorer) Score(embedding []float64) domain.AppealScore {
	return domain.AppealScore{
		Visual:  axisScore(embedding, s.visual),
		Novelty: axisScore(embedding, s.novelty),
		Hype:    axisScore(embedding, s.hype),
	}
}

// axisScore computes the anchored similarity score for one axis.
// The offset is added before flooring and there is no upper clamp; the
// composite weights were tuned assuming unbounded upside, so keep it asymmetric.
func axisScore(embedding []float64, anchors axisAnchors) float64 {
	diff := cosineSimilarity(embedding, anchors.positive) - cosineSimilarity(embedding, anchors.negative)
	return math.Max(0, diff*axisScale+axisOffset)
}

// cosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
