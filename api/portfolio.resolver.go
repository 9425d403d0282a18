package api

import (
	"fmt"
	"net/http"
	"portfolioanalyzer/internal/domain"
	l3_service "portfolioanalyzer/internal/service/l3"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type portfolioRequest struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	Currency    string                  `json:"currency"`
	TotalValue  decimal.Decimal         `json:"totalValue"`
	Assets      []domain.PortfolioAsset `json:"assets"`
}

func (r portfolioRequest) toInput() l3_service.PortfolioInput {
	assets := r.Assets
	if assets == nil {
		assets = []domain.PortfolioAsset{}
	}
	return l3_service.PortfolioInput{
		Name:        r.Name,
		Description: r.Description,
		Currency:    r.Currency,
		TotalValue:  r.TotalValue,
		Assets:      assets,
	}
}

func bindPortfolioRequest(c *gin.Context) (*portfolioRequest, bool) {
	var requestBody portfolioRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request body: %w", err), c, http.StatusBadRequest)
		return nil, false
	}
	return &requestBody, true
}

// validatePortfolio never writes; it always answers 200 with the findings
func (m ApiHandler) validatePortfolio(c *gin.Context) {
	requestBody, ok := bindPortfolioRequest(c)
	if !ok {
		return
	}

	result := m.PortfolioService.Validate(c.Request.Context(), requestBody.toInput())
	returnData(c, 200, result)
}

func (m ApiHandler) createPortfolio(c *gin.Context) {
	userAccountID, err := userAccountIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}
	requestBody, ok := bindPortfolioRequest(c)
	if !ok {
		return
	}
	if requestBody.Name == "" {
		returnErrorJsonCode(fmt.Errorf("name is required"), c, http.StatusBadRequest)
		return
	}

	result, err := m.PortfolioService.Create(c.Request.Context(), userAccountID, requestBody.toInput())
	if err != nil {
		returnServiceError(err, c)
		return
	}

	returnData(c, http.StatusCreated, result)
}

func (m ApiHandler) updatePortfolio(c *gin.Context) {
	userAccountID, err := userAccountIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}
	portfolioID, ok := portfolioIDFromPath(c)
	if !ok {
		return
	}
	requestBody, ok := bindPortfolioRequest(c)
	if !ok {
		return
	}

	result, err := m.PortfolioService.Update(c.Request.Context(), userAccountID, portfolioID, requestBody.toInput())
	if err != nil {
		returnServiceError(err, c)
		return
	}

	returnData(c, 200, result)
}

func (m ApiHandler) getPortfolio(c *gin.Context) {
	userAccountID, err := userAccountIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}
	portfolioID, ok := portfolioIDFromPath(c)
	if !ok {
		return
	}

	portfolio, err := m.PortfolioService.Get(c.Request.Context(), userAccountID, portfolioID)
	if err != nil {
		returnServiceError(err, c)
		return
	}

	returnData(c, 200, portfolio)
}

func (m ApiHandler) listPortfolios(c *gin.Context) {
	userAccountID, err := userAccountIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}

	portfolios, err := m.PortfolioService.List(c.Request.Context(), userAccountID)
	if err != nil {
		returnServiceError(err, c)
		return
	}

	returnData(c, 200, portfolios)
}

func (m ApiHandler) deletePortfolio(c *gin.Context) {
	userAccountID, err := userAccountIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}
	portfolioID, ok := portfolioIDFromPath(c)
	if !ok {
		return
	}

	if err := m.PortfolioService.Delete(c.Request.Context(), userAccountID, portfolioID); err != nil {
		returnServiceError(err, c)
		return
	}

	c.Status(http.StatusNoContent)
}
