package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinPortfolioAssets = 1
	MaxPortfolioAssets = 50

	// allocation sums and dollar totals are compared within this
	// tolerance (percentage points and currency units respectively)
	ConsistencyTolerance = 0.01
)

type Portfolio struct {
	PortfolioID   uuid.UUID        `json:"portfolioID"`
	UserAccountID uuid.UUID        `json:"userAccountID"`
	Name          string           `json:"name"`
	Description   *string          `json:"description,omitempty"`
	Currency      string           `json:"currency"`
	TotalValue    decimal.Decimal  `json:"totalValue"`
	Assets        []PortfolioAsset `json:"assets"`
	RiskProfile   *RiskProfile     `json:"riskProfile,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (p Portfolio) HeldSymbols() []string {
	symbols := []string{}
	for _, a := range p.Assets {
		symbols = append(symbols, a.Symbol)
	}
	return symbols
}

// SumDollarAmounts is exact, no float conversion
func SumDollarAmounts(assets []PortfolioAsset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.DollarAmount)
	}
	return total
}

func SumAllocations(assets []PortfolioAsset) float64 {
	total := 0.0
	for _, a := range assets {
		total += a.AllocationPercentage
	}
	return total
}
