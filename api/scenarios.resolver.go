package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) listScenarios(c *gin.Context) {
	returnData(c, 200, m.ScenarioImpactService.Scenarios())
}
