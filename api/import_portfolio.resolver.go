package api

import (
	"net/http"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/portfoliofile"
	l3_service "portfolioanalyzer/internal/service/l3"
	"strings"

	"github.com/gin-gonic/gin"
)

type importPortfolioResponse struct {
	Assets      []domain.PortfolioAsset `json:"assets"`
	Currency    string                  `json:"currency"`
	TotalValue  string                  `json:"totalValue"`
	Findings    domain.Findings         `json:"findings"`
	RiskProfile *domain.RiskProfile     `json:"riskProfile,omitempty"`
}

// importPortfolio parses a csv body into candidate assets and validates
// them. Nothing is saved; the client submits the result to POST /portfolios.
func (m ApiHandler) importPortfolio(c *gin.Context) {
	parsed, err := portfoliofile.ParseAssetsCSV(c.Request.Body)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	if currency := c.Query("currency"); currency != "" {
		parsed.Currency = strings.ToUpper(currency)
	}

	result := m.PortfolioService.Validate(c.Request.Context(), l3_service.PortfolioInput{
		Currency:   parsed.Currency,
		TotalValue: parsed.TotalValue,
		Assets:     parsed.Assets,
	})
	findings := parsed.MergeFindings(result.Findings)
	riskProfile := result.RiskProfile
	if findings.HasBlocking() {
		riskProfile = nil
	}

	returnData(c, 200, importPortfolioResponse{
		Assets:      parsed.Assets,
		Currency:    parsed.Currency,
		TotalValue:  parsed.TotalValue.StringFixed(2),
		Findings:    findings,
		RiskProfile: riskProfile,
	})
}
