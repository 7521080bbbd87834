package domain

// ProductRecord represents a single catalog entry submitted for ranking
type ProductRecord struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	MarketCost  float64 `json:"market_cost"`
}

// DemandResult holds the aggregated keyword-demand signal for one product.
// Degraded is set when the demand source failed and the count was zeroed.
type DemandResult struct {
	TotalCount int64 `json:"total_count"`
	Degraded   bool  `json:"degraded,omitempty"`
}

// AppealScore holds the three semantic appeal sub-scores.
// Each axis is floored at 0 but has no upper bound.
type AppealScore struct {
	Visual  float64 `json:"visual"`
	Novelty float64 `json:"novelty"`
	Hype    float64 `json:"hype"`
}

// Mean returns the average of the three axis scores
func (a AppealScore) Mean() float64 {
	return (a.Visual + a.Novelty + a.Hype) / 3
}

// ScoredProduct is the sole output unit of the ranking pipeline
type ScoredProduct struct {
	ProductRecord
	Demand        DemandResult `json:"demand"`
	Appeal        AppealScore  `json:"appeal"`
	MarginPercent float64      `json:"margin_percent"`
	TrendScore    float64      `json:"trend_score"`
	FinalScore    float64      `json:"final_score"`
}

// RankRequest is the payload accepted by the rank endpoint
type RankRequest struct {
	Products []ProductRecord `json:"products" binding:"required"`
	TopK     int             `json:"top_k,omitempty"`
}

// RankResponse wraps the ranked output handed to downstream campaign tooling.
// Downstream expects at least name, description, price and margin per item.
type RankResponse struct {
	Count    int             `json:"count"`
	Top      []ScoredProduct `json:"top"`
	Products []ScoredProduct `json:"products"`
}
