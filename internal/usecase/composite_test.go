package usecase

import (
	"math"
	"testing"

	"github.com/promorank/backend/internal/domain"
)

func TestMarginPercent(t *testing.T) {
	tests := []struct {
		name       string
		price      float64
		marketCost float64
		want       float64
	}{
		{"typical margin", 100, 60, 40},
		{"half margin", 1000, 500, 50},
		{"zero price ignores cost", 0, 500, 0},
		{"negative price treated as zero", -10, 5, 0},
		{"sold below cost yields negative margin", 100, 150, -50},
		{"free acquisition", 100, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarginPercent(tt.price, tt.marketCost)
			if got != tt.want {
				t.Errorf("MarginPercent(%v, %v) = %v, want %v", tt.price, tt.marketCost, got, tt.want)
			}
		})
	}
}

func TestTrendScore(t *testing.T) {
	t.Run("zero demand contributes nothing", func(t *testing.T) {
		if got := TrendScore(0); got != 0 {
			t.Errorf("TrendScore(0) = %v, want 0", got)
		}
	})

	t.Run("uses log1p semantics", func(t *testing.T) {
		got := TrendScore(10)
		want := math.Log1p(10) * 2.5
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("TrendScore(10) = %v, want %v", got, want)
		}
	})

	t.Run("grows sublinearly", func(t *testing.T) {
		if TrendScore(1000) >= 10*TrendScore(10) {
			t.Error("TrendScore should grow logarithmically, not linearly")
		}
	})
}

func TestFinalScore(t *testing.T) {
	t.Run("reproduces the fixed weights", func(t *testing.T) {
		appeal := domain.AppealScore{Visual: 30, Novelty: 60, Hype: 90}
		// mean appeal = 60
		got := FinalScore(appeal, 40, 5)
		want := 60*1.5 + 40*0.4 + 5
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("FinalScore = %v, want %v", got, want)
		}
	})

	t.Run("negative margin penalizes the score", func(t *testing.T) {
		appeal := domain.AppealScore{Visual: 10, Novelty: 10, Hype: 10}
		positive := FinalScore(appeal, 20, 0)
		negative := FinalScore(appeal, -20, 0)
		if negative >= positive {
			t.Errorf("negative margin score %v should be below positive margin score %v", negative, positive)
		}
	})

	t.Run("zero everything yields zero", func(t *testing.T) {
		if got := FinalScore(domain.AppealScore{}, 0, 0); got != 0 {
			t.Errorf("FinalScore of all zeros = %v, want 0", got)
		}
	})
}
