package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"infraghost/backend/internal/analysis"
	"infraghost/backend/internal/api/handler"
	"infraghost/backend/internal/config"
	"infraghost/backend/internal/models"
)

// MockStorage is a testify mock for the persistence boundary.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) ListReports() ([]models.Report, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) AppendReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

// MockAnalyzer is a testify mock for the analysis pipeline.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, imageBase64, infraType, comment string) (*models.Analysis, error) {
	args := m.Called(ctx, imageBase64, infraType, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

func setupTestRouter(store *MockStorage, analyzer *MockAnalyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewHandler(store, analyzer, &config.Config{MapboxToken: "pk.test"})
	r := gin.New()
	r.POST("/api/submit-report", h.SubmitReport)
	r.GET("/api/reports", h.ListReports)
	r.GET("/api/stats", h.GetStats)
	r.GET("/api/health", h.Health)
	r.GET("/api/config", h.GetConfig)
	return r
}

func postSubmit(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-report", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testAnalysis() *models.Analysis {
	return &models.Analysis{
		AnalysisCore: models.AnalysisCore{
			Exists: true, Usable: false, Reason: "dry tap", UsabilityScore: 20,
		},
		DerivedFields: models.DerivedFields{GhostScore: 80, GhostLevel: models.LevelInfraGhost},
	}
}

// TestSubmitReportSuccess: a valid submission is analyzed, persisted with a
// truncated image preview and echoed back.
func TestSubmitReportSuccess(t *testing.T) {
	// Arrange
	store := new(MockStorage)
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, "imagedata", "water", "No comment").
		Return(testAnalysis(), nil).Once()
	store.On("AppendReport", mock.MatchedBy(func(r *models.Report) bool {
		return r.InfraType == "water" && r.Analysis.GhostScore == 80 && r.ImagePreview == "imagedata"
	})).Return(nil).Once()
	r := setupTestRouter(store, analyzer)

	// Act
	w := postSubmit(t, r, gin.H{
		"infra_type":   "water",
		"latitude":     26.8415,
		"longitude":    75.5637,
		"image_base64": "data:image/jpeg;base64,imagedata",
	})

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool          `json:"success"`
		Report  models.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, models.LevelInfraGhost, resp.Report.Analysis.GhostLevel)
	store.AssertExpectations(t)
	analyzer.AssertExpectations(t)
}

// TestSubmitReportValidation rejects bad input before the pipeline runs.
func TestSubmitReportValidation(t *testing.T) {
	store := new(MockStorage)
	analyzer := new(MockAnalyzer)
	r := setupTestRouter(store, analyzer)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing coordinates", gin.H{"infra_type": "water", "image_base64": "x"}},
		{"unknown type", gin.H{"infra_type": "bridge", "latitude": 1.0, "longitude": 1.0, "image_base64": "x"}},
		{"bad coordinates", gin.H{"infra_type": "water", "latitude": 91.0, "longitude": 0.0, "image_base64": "x"}},
		{"missing image", gin.H{"infra_type": "water", "latitude": 1.0, "longitude": 1.0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postSubmit(t, r, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "AppendReport", mock.Anything)
}

// TestSubmitReportBudgetGuidance: a budget failure returns the image-too-large
// guidance without leaking the internal error text.
func TestSubmitReportBudgetGuidance(t *testing.T) {
	store := new(MockStorage)
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, analysis.ErrBudgetExceeded).Once()
	r := setupTestRouter(store, analyzer)

	w := postSubmit(t, r, gin.H{
		"infra_type": "water", "latitude": 1.0, "longitude": 1.0, "image_base64": "x",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Image too large for analysis")
	assert.NotContains(t, w.Body.String(), "token budget")
	store.AssertNotCalled(t, "AppendReport", mock.Anything)
}

// TestSubmitReportModelFailure keeps the store untouched and the message
// generic on a model outage.
func TestSubmitReportModelFailure(t *testing.T) {
	store := new(MockStorage)
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, analysis.ErrModelUnavailable).Once()
	r := setupTestRouter(store, analyzer)

	w := postSubmit(t, r, gin.H{
		"infra_type": "ramp", "latitude": 1.0, "longitude": 1.0, "image_base64": "x",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to analyze infrastructure")
	store.AssertNotCalled(t, "AppendReport", mock.Anything)
}

// TestListReports returns the stored collection as-is.
func TestListReports(t *testing.T) {
	store := new(MockStorage)
	store.On("ListReports").Return([]models.Report{
		{ID: "r2", InfraType: "toilet"},
		{ID: "r1", InfraType: "water"},
	}, nil).Once()
	r := setupTestRouter(store, new(MockAnalyzer))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var reports []models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID, "newest-first order comes from the store")
}

// TestGetStatsStorageFailure: an unreadable collection is an explicit error,
// never a zeroed snapshot.
func TestGetStatsStorageFailure(t *testing.T) {
	store := new(MockStorage)
	store.On("ListReports").Return(nil, assert.AnError).Once()
	r := setupTestRouter(store, new(MockAnalyzer))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch statistics")
}

// TestGetStatsEmptyCollection distinguishes truly-empty data: 200 with zeros.
func TestGetStatsEmptyCollection(t *testing.T) {
	store := new(MockStorage)
	store.On("ListReports").Return([]models.Report{}, nil).Once()
	r := setupTestRouter(store, new(MockAnalyzer))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var s models.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, 0, s.TotalReports)
	assert.NotNil(t, s.ByType)
}

// TestHealthAndConfig covers the two trivial endpoints.
func TestHealthAndConfig(t *testing.T) {
	r := setupTestRouter(new(MockStorage), new(MockAnalyzer))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pk.test")
}
