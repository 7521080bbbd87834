package usecase

import (
	"math"

	"github.com/promorank/backend/internal/domain"
)

// Composite score weights. These are fixed design constants tuned together
// with the unclamped appeal axes; changing any of them changes the ranking.
const (
	meanAppealWeight = 1.5
	marginWeight     = 0.4
	trendFactor      = 2.5
)

// MarginPercent computes profit margin as a percentage of price.
// A price of zero yields zero regardless of cost; a product sold below cost
// yields a negative margin that still participates in scoring.
func MarginPercent(price, marketCost float64) float64 {
	if price <= 0 {
		return 0
	}
	return (price - marketCost) / price * 100
}

// TrendScore converts a raw demand count into its score contribution
func TrendScore(demandTotal int64) float64 {
	return math.Log1p(float64(demandTotal)) * trendFactor
}

// FinalScore combines the three signals into the single ranking scalar
func FinalScore(appeal domain.AppealScore, marginPercent, trendScore float64) float64 {
	return appeal.Mean()*meanAppealWeight + marginPercent*marginWeight + trendScore
}
