package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/handlers"
	"github.com/istafrica-dennw/trucks-app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JourneyService ---
type MockJourneyService struct {
	mock.Mock
}

func (m *MockJourneyService) GetJourneyByID(ctx context.Context, journeyID string) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyService) ListJourneys(ctx context.Context, params dto.ListJourneysParams) ([]domain.Journey, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Journey), next, args.Error(2)
}

func (m *MockJourneyService) GetJourneyStats(ctx context.Context) (*domain.JourneyStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyStats), args.Error(1)
}

func (m *MockJourneyService) CreateJourney(ctx context.Context, req dto.CreateJourneyRequest, userID string) (*domain.Journey, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyService) UpdateJourney(ctx context.Context, journeyID string, req dto.UpdateJourneyRequest, userID string) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyService) AddInstallment(ctx context.Context, journeyID string, req dto.AddInstallmentRequest, userID string) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyService) AddExpense(ctx context.Context, journeyID string, req dto.AddExpenseRequest, userID string) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyService) DeleteJourney(ctx context.Context, journeyID string) error {
	args := m.Called(ctx, journeyID)
	return args.Error(0)
}

var _ portssvc.JourneySvcFacade = (*MockJourneyService)(nil)

// --- Mock FileStore ---
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFileStore) Remove(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// --- Test Suite ---
type JourneyHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJourneyService *MockJourneyService
	mockFileStore      *MockFileStore
	jwtSecret          string
}

func (suite *JourneyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterCustomValidations())
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockJourneyService = new(MockJourneyService)
	suite.mockFileStore = new(MockFileStore)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skips swagger registration
	}
	services := &portssvc.ServiceContainer{
		Journey: suite.mockJourneyService,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services, suite.mockFileStore)
}

func (suite *JourneyHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "trucks-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JourneyHandlerTestSuite) authedRequest(method, url string, body io.Reader, userID string) *http.Request {
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	return req
}

func testJourney() *domain.Journey {
	return &domain.Journey{
		JourneyID:       "jrn-1",
		DriverID:        "drv-1",
		TruckID:         "trk-1",
		CustomerID:      "cst-1",
		DepartureCity:   "Kigali",
		DestinationCity: "Kampala",
		Cargo:           "Cement",
		JourneyDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:          domain.JourneyStarted,
		Pay: domain.Payment{
			TotalAmount:  decimal.NewFromInt(1000),
			Currency:     domain.RWF,
			ExchangeRate: decimal.NewFromInt(1),
			PaidOption:   domain.PaidInstallment,
			Installments: []domain.Installment{
				{Amount: decimal.NewFromInt(400), Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
			},
		},
		Expenses: []domain.Expense{
			{Title: "Fuel", Amount: decimal.NewFromInt(250)},
		},
		Balance: decimal.NewFromInt(150),
	}
}

func (suite *JourneyHandlerTestSuite) TestCreateJourney_Success() {
	body := `{
		"driver": "drv-1", "truck": "trk-1", "customer": "cst-1",
		"departureCity": "Kigali", "destinationCity": "Kampala", "cargo": "Cement",
		"pay": {"totalAmount": "1000", "currency": "RWF", "paidOption": "installment",
			"installments": [{"amount": "400"}]},
		"expenses": [{"title": "Fuel", "amount": "250"}]
	}`

	suite.mockJourneyService.On("CreateJourney",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateJourneyRequest) bool {
			return req.DriverID == "drv-1" && req.Pay.TotalAmount.Equal(decimal.NewFromInt(1000))
		}),
		"user-1",
	).Return(testJourney(), nil).Once()

	req := suite.authedRequest(http.MethodPost, "/api/v1/journeys", strings.NewReader(body), "user-1")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JourneyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("jrn-1", resp.JourneyID)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(150)))
	suite.mockJourneyService.AssertExpectations(suite.T())
}

func (suite *JourneyHandlerTestSuite) TestCreateJourney_MultipartStoresProof() {
	data := `{
		"driver": "drv-1", "truck": "trk-1", "customer": "cst-1",
		"departureCity": "Kigali", "destinationCity": "Kampala", "cargo": "Cement",
		"pay": {"totalAmount": "1000", "currency": "RWF", "paidOption": "full"}
	}`

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	suite.Require().NoError(mw.WriteField("data", data))
	fw, err := mw.CreateFormFile("payProof", "proof.pdf")
	suite.Require().NoError(err)
	_, err = fw.Write([]byte("%PDF-1.4"))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	suite.mockFileStore.On("Save", mock.Anything, "proof.pdf", mock.Anything).
		Return("2025/03/abc-proof.pdf", nil).Once()
	suite.mockJourneyService.On("CreateJourney",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateJourneyRequest) bool {
			return req.Pay.Attachment != nil && req.Pay.Attachment.Path == "2025/03/abc-proof.pdf"
		}),
		"user-1",
	).Return(testJourney(), nil).Once()

	req := suite.authedRequest(http.MethodPost, "/api/v1/journeys", &buf, "user-1")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockFileStore.AssertExpectations(suite.T())
	suite.mockJourneyService.AssertExpectations(suite.T())
}

func (suite *JourneyHandlerTestSuite) TestCreateJourney_MissingFields() {
	body := `{"driver": "drv-1"}`

	req := suite.authedRequest(http.MethodPost, "/api/v1/journeys", strings.NewReader(body), "user-1")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJourneyService.AssertNotCalled(suite.T(), "CreateJourney")
}

func (suite *JourneyHandlerTestSuite) TestCreateJourney_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journeys", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestGetJourney_NotFound() {
	suite.mockJourneyService.On("GetJourneyByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("journey not found")).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/journeys/missing", nil, "user-1")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestAddInstallment_PaymentExceeded() {
	suite.mockJourneyService.On("AddInstallment",
		mock.Anything, "jrn-1", mock.Anything, "user-1",
	).Return(nil, apperrors.ErrPaymentExceeded).Once()

	body := `{"amount": "700"}`
	req := suite.authedRequest(http.MethodPost, "/api/v1/journeys/jrn-1/installments", strings.NewReader(body), "user-1")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestUpdateJourney_PaymentIncomplete() {
	suite.mockJourneyService.On("UpdateJourney",
		mock.Anything, "jrn-1", mock.Anything, "user-1",
	).Return(nil, apperrors.ErrPaymentIncomplete).Once()

	body := `{"status": "completed"}`
	req := suite.authedRequest(http.MethodPatch, "/api/v1/journeys/jrn-1", strings.NewReader(body), "user-1")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestListJourneys_PassesFilters() {
	next := "tok-2"
	suite.mockJourneyService.On("ListJourneys",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListJourneysParams) bool {
			return p.Limit == 10 && p.Status == "started" && p.TruckID == "trk-1"
		}),
	).Return([]domain.Journey{*testJourney()}, &next, nil).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/journeys?limit=10&status=started&truckId=trk-1", nil, "user-1")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJourneysResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Journeys, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("tok-2", *resp.NextToken)
}

func (suite *JourneyHandlerTestSuite) TestDownloadFile_NotFound() {
	suite.mockFileStore.On("Open", mock.Anything, "2025/03/missing.pdf").
		Return(nil, apperrors.NewNotFoundError("file not found")).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/files/2025/03/missing.pdf", nil, "user-1")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestJourneyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JourneyHandlerTestSuite))
}
