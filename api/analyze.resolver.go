package api

import (
	"fmt"
	"net/http"
	"portfolioanalyzer/internal/domain"
	"strconv"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	ScenarioID domain.ScenarioID `json:"scenarioID"`
}

func (m ApiHandler) analyzePortfolio(c *gin.Context) {
	userAccountID, err := userAccountIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}
	portfolioID, ok := portfolioIDFromPath(c)
	if !ok {
		return
	}

	var requestBody analyzeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if requestBody.ScenarioID == "" {
		returnErrorJsonCode(fmt.Errorf("scenarioID is required"), c, http.StatusBadRequest)
		return
	}

	result, err := m.PortfolioService.Analyze(c.Request.Context(), userAccountID, portfolioID, requestBody.ScenarioID)
	if err != nil {
		returnServiceError(err, c)
		return
	}

	returnData(c, 200, result)
}

func (m ApiHandler) analyzeAllScenarios(c *gin.Context) {
	userAccountID, err := userAccountIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}
	portfolioID, ok := portfolioIDFromPath(c)
	if !ok {
		return
	}

	results, err := m.PortfolioService.AnalyzeAll(c.Request.Context(), userAccountID, portfolioID)
	if err != nil {
		returnServiceError(err, c)
		return
	}

	returnData(c, 200, results)
}

func (m ApiHandler) listAnalyses(c *gin.Context) {
	userAccountID, err := userAccountIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusUnauthorized)
		return
	}
	portfolioID, ok := portfolioIDFromPath(c)
	if !ok {
		return
	}

	var limit int64
	if s := c.Query("limit"); s != "" {
		limit, err = strconv.ParseInt(s, 10, 64)
		if err != nil || limit < 0 {
			returnErrorJsonCode(fmt.Errorf("invalid limit %q", s), c, http.StatusBadRequest)
			return
		}
	}

	results, err := m.PortfolioService.ListAnalyses(c.Request.Context(), userAccountID, portfolioID, limit)
	if err != nil {
		returnServiceError(err, c)
		return
	}

	returnData(c, 200, results)
}
