package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"portfolioanalyzer/internal/catalog"
	"portfolioanalyzer/internal/db/models/postgres/public/model"
	"portfolioanalyzer/internal/domain"
	mock_repository "portfolioanalyzer/internal/repository/mocks"
	l1_service "portfolioanalyzer/internal/service/l1"
	l2_service "portfolioanalyzer/internal/service/l2"
	l3_service "portfolioanalyzer/internal/service/l3"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testJwtSecret = "test-secret"

type apiMocks struct {
	transactor                 *mock_repository.MockTransactor
	portfolioRepository        *mock_repository.MockPortfolioRepository
	portfolioAssetRepository   *mock_repository.MockPortfolioAssetRepository
	scenarioAnalysisRepository *mock_repository.MockScenarioAnalysisRepository
	apiRequestRepository       *mock_repository.MockApiRequestRepository
}

func newTestRouter(t *testing.T, withRequestLog bool) (*gin.Engine, apiMocks) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	mocks := apiMocks{
		transactor:                 mock_repository.NewMockTransactor(ctrl),
		portfolioRepository:        mock_repository.NewMockPortfolioRepository(ctrl),
		portfolioAssetRepository:   mock_repository.NewMockPortfolioAssetRepository(ctrl),
		scenarioAnalysisRepository: mock_repository.NewMockScenarioAnalysisRepository(ctrl),
		apiRequestRepository:       mock_repository.NewMockApiRequestRepository(ctrl),
	}

	store, err := catalog.NewStore(catalog.Default())
	require.NoError(t, err)
	riskScorer := l1_service.NewRiskScorer()
	scenarioImpactService := l2_service.NewScenarioImpactService(store, riskScorer)

	handler := ApiHandler{
		PortfolioService: l3_service.NewPortfolioService(
			mocks.transactor,
			mocks.portfolioRepository,
			mocks.portfolioAssetRepository,
			mocks.scenarioAnalysisRepository,
			l1_service.NewAllocationValidator(),
			riskScorer,
			scenarioImpactService,
		),
		ScenarioImpactService: scenarioImpactService,
		JwtDecodeToken:        testJwtSecret,
	}
	if withRequestLog {
		handler.ApiRequestRepository = mocks.apiRequestRepository
	}

	return handler.InitializeRouterEngine(), mocks
}

func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	})
	s, err := token.SignedString([]byte(testJwtSecret))
	require.NoError(t, err)
	return s
}

func doRequest(router *gin.Engine, method string, path string, body string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const vtiBndBody = `{
	"name": "core",
	"currency": "USD",
	"totalValue": "100000",
	"assets": [
		{"symbol": "VTI", "name": "Vanguard Total Stock Market", "assetType": "etf", "assetCategory": "us_large_cap", "allocationPercentage": 60, "dollarAmount": "60000", "riskRating": 5},
		{"symbol": "BND", "name": "Vanguard Total Bond Market", "assetType": "etf", "assetCategory": "government_bonds", "allocationPercentage": 40, "dollarAmount": "40000", "riskRating": 2}
	]
}`

type dataResponse[T any] struct {
	Data T `json:"data"`
}

func TestApi_Public(t *testing.T) {
	router, _ := newTestRouter(t, false)

	t.Run("scenarios", func(t *testing.T) {
		w := doRequest(router, "GET", "/scenarios", "", "")
		require.Equal(t, 200, w.Code)

		response := dataResponse[[]domain.Scenario]{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 4)
		require.Equal(t, domain.ScenarioID_Recession, response.Data[0].ID)
	})

	t.Run("validate returns findings without writing", func(t *testing.T) {
		body := strings.Replace(vtiBndBody, `"allocationPercentage": 40`, `"allocationPercentage": 39`, 1)
		w := doRequest(router, "POST", "/portfolios/validate", body, "")
		require.Equal(t, 200, w.Code)

		response := dataResponse[l3_service.ValidatePortfolioResult]{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.True(t, response.Data.Findings.HasBlocking())
		require.Len(t, response.Data.Findings.OfKind(domain.FindingKind_InvalidAllocationSum), 1)
		require.Nil(t, response.Data.RiskProfile)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		w := doRequest(router, "POST", "/portfolios/validate", "{", "")
		require.Equal(t, 400, w.Code)
	})

	t.Run("csv import", func(t *testing.T) {
		csv := "symbol,name,asset_type,asset_category,allocation_percentage,dollar_amount,risk_rating\n" +
			"VTI,Vanguard Total Stock Market,etf,us_large_cap,60,60000,5\n" +
			"BND,Vanguard Total Bond Market,etf,government_bonds,40,40000,2\n"
		w := doRequest(router, "POST", "/portfolios/import", csv, "")
		require.Equal(t, 200, w.Code)

		response := dataResponse[importPortfolioResponse]{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data.Assets, 2)
		require.Equal(t, "100000.00", response.Data.TotalValue)
		require.Empty(t, response.Data.Findings)
		require.NotNil(t, response.Data.RiskProfile)
	})

	t.Run("csv import with a bad cell still reports every problem", func(t *testing.T) {
		csv := "symbol,name,asset_type,asset_category,allocation_percentage,dollar_amount,risk_rating\n" +
			"VTI,Vanguard Total Stock Market,etf,us_large_cap,50,50000,abc\n" +
			"BND,Vanguard Total Bond Market,etf,government_bonds,20,20000,2\n" +
			"bnd,Vanguard Total Bond Market,etf,government_bonds,20,20000,2\n"
		w := doRequest(router, "POST", "/portfolios/import", csv, "")
		require.Equal(t, 200, w.Code)

		response := dataResponse[importPortfolioResponse]{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		findings := response.Data.Findings

		badCell := findings.OfKind(domain.FindingKind_OutOfRangeField)
		require.Len(t, badCell, 1)
		require.Equal(t, "riskRating", *badCell[0].Field)
		require.Equal(t, 0, *badCell[0].AssetIndex)

		duplicates := findings.OfKind(domain.FindingKind_DuplicateSymbol)
		require.Len(t, duplicates, 1)
		require.Equal(t, 2, *duplicates[0].AssetIndex)
		require.Len(t, findings.OfKind(domain.FindingKind_InvalidAllocationSum), 1)
		require.Nil(t, response.Data.RiskProfile)
	})

	t.Run("metrics", func(t *testing.T) {
		w := doRequest(router, "GET", "/metrics", "", "")
		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), "portfolio_api_http_requests_total")
	})
}

func TestApi_Auth(t *testing.T) {
	router, _ := newTestRouter(t, false)

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(router, "GET", "/portfolios", "", "")
		require.Equal(t, 401, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signedToken(t, uuid.NewString(), time.Now().Add(-time.Hour))
		w := doRequest(router, "GET", "/portfolios", "", token)
		require.Equal(t, 401, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": uuid.NewString(),
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("other"))
		require.NoError(t, err)

		w := doRequest(router, "GET", "/portfolios", "", token)
		require.Equal(t, 401, w.Code)
	})
}

func TestApi_Portfolios(t *testing.T) {
	userAccountID := uuid.New()
	portfolioID := uuid.New()

	t.Run("create", func(t *testing.T) {
		router, mocks := newTestRouter(t, false)
		token := signedToken(t, userAccountID.String(), time.Now().Add(time.Hour))

		mocks.transactor.EXPECT().
			WithTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(tx *sql.Tx) error) error {
				return fn(nil)
			})
		mocks.portfolioRepository.EXPECT().
			Add(nil, gomock.Any()).
			DoAndReturn(func(tx *sql.Tx, p model.Portfolio) (*model.Portfolio, error) {
				require.Equal(t, userAccountID, p.UserAccountID)
				p.PortfolioID = portfolioID
				return &p, nil
			})
		mocks.portfolioAssetRepository.EXPECT().
			ReplaceAll(nil, portfolioID, gomock.Any()).
			DoAndReturn(func(tx *sql.Tx, id uuid.UUID, assets []model.PortfolioAsset) ([]model.PortfolioAsset, error) {
				return assets, nil
			})

		w := doRequest(router, "POST", "/portfolios", vtiBndBody, token)
		require.Equal(t, 201, w.Code, w.Body.String())

		response := dataResponse[l3_service.SavePortfolioResult]{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, portfolioID, response.Data.Portfolio.PortfolioID)
		require.Len(t, response.Data.Portfolio.Assets, 2)
	})

	t.Run("create with blocking findings is a 422", func(t *testing.T) {
		router, _ := newTestRouter(t, false)
		token := signedToken(t, userAccountID.String(), time.Now().Add(time.Hour))
		body := strings.Replace(vtiBndBody, `"symbol": "BND"`, `"symbol": "VTI"`, 1)

		w := doRequest(router, "POST", "/portfolios", body, token)
		require.Equal(t, 422, w.Code)

		response := struct {
			Error    string          `json:"error"`
			Findings domain.Findings `json:"findings"`
		}{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Findings.OfKind(domain.FindingKind_DuplicateSymbol), 1)
	})

	t.Run("unknown portfolio is a 404", func(t *testing.T) {
		router, mocks := newTestRouter(t, false)
		token := signedToken(t, userAccountID.String(), time.Now().Add(time.Hour))
		mocks.portfolioRepository.EXPECT().
			Get(nil, portfolioID).
			Return(nil, fmt.Errorf("failed to get portfolio: %w", qrm.ErrNoRows))

		w := doRequest(router, "GET", "/portfolios/"+portfolioID.String(), "", token)
		require.Equal(t, 404, w.Code)
	})

	t.Run("bad portfolio id is a 400", func(t *testing.T) {
		router, _ := newTestRouter(t, false)
		token := signedToken(t, userAccountID.String(), time.Now().Add(time.Hour))

		w := doRequest(router, "GET", "/portfolios/not-a-uuid", "", token)
		require.Equal(t, 400, w.Code)
	})

	t.Run("unknown scenario is a 404", func(t *testing.T) {
		router, mocks := newTestRouter(t, false)
		token := signedToken(t, userAccountID.String(), time.Now().Add(time.Hour))
		mocks.portfolioRepository.EXPECT().
			Get(nil, portfolioID).
			Return(&model.Portfolio{PortfolioID: portfolioID, UserAccountID: userAccountID, Currency: "USD"}, nil)
		mocks.portfolioAssetRepository.EXPECT().
			ListByPortfolio(nil, []uuid.UUID{portfolioID}).
			Return(map[uuid.UUID][]model.PortfolioAsset{}, nil)

		w := doRequest(router, "POST", "/portfolios/"+portfolioID.String()+"/analyze", `{"scenarioID": "stagflation"}`, token)
		require.Equal(t, 404, w.Code)
	})

	t.Run("analyze requires a scenario", func(t *testing.T) {
		router, _ := newTestRouter(t, false)
		token := signedToken(t, userAccountID.String(), time.Now().Add(time.Hour))

		w := doRequest(router, "POST", "/portfolios/"+portfolioID.String()+"/analyze", `{}`, token)
		require.Equal(t, 400, w.Code)
	})
}

func TestApi_RequestLog(t *testing.T) {
	router, mocks := newTestRouter(t, true)
	userAccountID := uuid.New()
	requestID := uuid.New()
	token := signedToken(t, userAccountID.String(), time.Now().Add(time.Hour))

	mocks.apiRequestRepository.EXPECT().
		Add(nil, gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, ar model.APIRequest) (*model.APIRequest, error) {
			require.Equal(t, "GET", ar.Method)
			require.Equal(t, "/portfolios", ar.Route)
			ar.RequestID = requestID
			return &ar, nil
		})
	mocks.portfolioRepository.EXPECT().List(nil, gomock.Any()).Return([]model.Portfolio{}, nil)
	mocks.portfolioAssetRepository.EXPECT().ListByPortfolio(nil, []uuid.UUID{}).Return(map[uuid.UUID][]model.PortfolioAsset{}, nil)
	mocks.apiRequestRepository.EXPECT().
		Complete(nil, gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, ar model.APIRequest) error {
			require.Equal(t, requestID, ar.RequestID)
			require.Equal(t, userAccountID, *ar.UserAccountID)
			require.Equal(t, int32(200), *ar.StatusCode)
			require.Equal(t, `{"data":[]}`, *ar.ResponseBody)
			return nil
		})

	w := doRequest(router, "GET", "/portfolios", "", token)
	require.Equal(t, 200, w.Code)
}
