package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"portfolioanalyzer/internal/db/models/postgres/public/model"
	"portfolioanalyzer/internal/logger"
	"portfolioanalyzer/internal/metrics"
	"portfolioanalyzer/internal/repository"
	l2_service "portfolioanalyzer/internal/service/l2"
	l3_service "portfolioanalyzer/internal/service/l3"
	"portfolioanalyzer/internal/util"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ApiHandler struct {
	Db                    *sql.DB
	ApiRequestRepository  repository.ApiRequestRepository
	PortfolioService      l3_service.PortfolioService
	ScenarioImpactService l2_service.ScenarioImpactService
	JwtDecodeToken        string
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(metricsMiddleware)
	router.Use(requestLoggerMiddleware)
	if m.ApiRequestRepository != nil {
		router.Use(m.logRequestMiddlware)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "portfolio analyzer"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/scenarios", m.listScenarios)
	router.POST("/portfolios/validate", m.validatePortfolio)
	router.POST("/portfolios/import", m.importPortfolio)

	authed := router.Group("/", m.authMiddleware)
	authed.POST("/portfolios", m.createPortfolio)
	authed.GET("/portfolios", m.listPortfolios)
	authed.GET("/portfolios/:id", m.getPortfolio)
	authed.PUT("/portfolios/:id", m.updatePortfolio)
	authed.DELETE("/portfolios/:id", m.deletePortfolio)
	authed.POST("/portfolios/:id/analyze", m.analyzePortfolio)
	authed.POST("/portfolios/:id/analyze-all", m.analyzeAllScenarios)
	authed.GET("/portfolios/:id/analyses", m.listAnalyses)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorw("request failed", "status", code, "error", err.Error())
	} else {
		log.Infow("request rejected", "status", code, "error", err.Error())
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// returnServiceError maps service errors onto status codes
func returnServiceError(err error, c *gin.Context) {
	validationErr := l3_service.ValidationError{}
	switch {
	case errors.As(err, &validationErr):
		logger.FromContext(c.Request.Context()).Infow("validation failed", "findings", len(validationErr.Findings))
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":    err.Error(),
			"findings": validationErr.Findings,
		})
	case errors.Is(err, l3_service.ErrPortfolioNotFound), errors.Is(err, l2_service.ErrUnknownScenario):
		returnErrorJsonCode(err, c, http.StatusNotFound)
	default:
		returnErrorJson(err, c)
	}
}

func returnData(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"data": data})
}

func userAccountIDFromContext(c *gin.Context) (uuid.UUID, error) {
	ginUserAccountID, ok := c.Get("userAccountID")
	if !ok {
		return uuid.Nil, fmt.Errorf("must be logged in")
	}
	userAccountIDStr, ok := ginUserAccountID.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("misformatted user account id")
	}

	userAccountID, err := uuid.Parse(userAccountIDStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse user account id: %w", err)
	}
	return userAccountID, nil
}

// portfolioIDFromPath reports its own 400 and returns false on failure
func portfolioIDFromPath(c *gin.Context) (uuid.UUID, bool) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid portfolio id %q", c.Param("id")), c, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return portfolioID, true
}

func metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.HttpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	metrics.HttpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
}

// requestLoggerMiddleware puts a request-scoped logger into the request context
func requestLoggerMiddleware(c *gin.Context) {
	requestID := uuid.New()
	log := logger.FromContext(c.Request.Context()).With(
		"requestID", requestID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
	c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), log))
	c.Header("X-Request-ID", requestID.String())

	start := time.Now()
	c.Next()

	log.Infow("request complete", "status", c.Writer.Status(), "elapsed", time.Since(start))
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddlware(ctx *gin.Context) {
	log := logger.FromContext(ctx.Request.Context())
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		log.Warnw("failed to get raw data", "error", err)
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	start := time.Now().UTC()
	req, err := m.ApiRequestRepository.Add(nil, model.APIRequest{
		IPAddress:   util.StringPointer(ctx.ClientIP()),
		Method:      ctx.Request.Method,
		Route:       ctx.Request.URL.Path,
		RequestBody: util.StringPointer(string(body)),
		StartTs:     start,
	})
	if err != nil {
		log.Warnw("failed to record api request", "error", err)
	}

	ctx.Next()

	if req != nil {
		// only known once auth has run
		if userAccountID, err := userAccountIDFromContext(ctx); err == nil {
			req.UserAccountID = &userAccountID
		}
		req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = int32Ptr(int32(ctx.Writer.Status()))
		req.ResponseBody = util.StringPointer(w.body.String())

		err = m.ApiRequestRepository.Complete(nil, *req)
		if err != nil {
			log.Warnw("failed to update api request", "error", err)
		}
	}
}
