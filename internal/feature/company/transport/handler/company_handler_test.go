package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shukatsu_backend/internal/feature/company/domain"
	"shukatsu_backend/internal/feature/company/domain/entity"
	"shukatsu_backend/internal/feature/company/usecase"
	"shukatsu_backend/internal/platform/gemini"
	jwtmw "shukatsu_backend/internal/platform/jwt"
)

// mockCompanyUsecase はCompanyUsecaseインターフェースのモック実装です。
type mockCompanyUsecase struct {
	RegisterFunc  func(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error)
	ReanalyzeFunc func(ctx context.Context, userID, companyID uint) error
	GetFunc       func(ctx context.Context, userID, companyID uint) (*entity.Company, error)
	ListFunc      func(ctx context.Context, userID uint) ([]entity.Company, error)
}

func (m *mockCompanyUsecase) Register(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, userID, companyName)
	}
	return nil, errors.New("RegisterFunc is not implemented")
}

func (m *mockCompanyUsecase) Reanalyze(ctx context.Context, userID, companyID uint) error {
	if m.ReanalyzeFunc != nil {
		return m.ReanalyzeFunc(ctx, userID, companyID)
	}
	return errors.New("ReanalyzeFunc is not implemented")
}

func (m *mockCompanyUsecase) Get(ctx context.Context, userID, companyID uint) (*entity.Company, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, companyID)
	}
	return nil, errors.New("GetFunc is not implemented")
}

func (m *mockCompanyUsecase) List(ctx context.Context, userID uint) ([]entity.Company, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, errors.New("ListFunc is not implemented")
}

// setupRouter は認証済みユーザー(ID=1)を注入したテスト用ルーターを生成します。
func setupRouter(h *CompanyHandler, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if authenticated {
		router.Use(func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, uint(1))
		})
	}
	router.POST("/companies", h.Register)
	router.POST("/companies/:id/reanalyze", h.Reanalyze)
	router.GET("/companies/:id", h.Get)
	return router
}

func TestCompanyHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    gin.H
		authenticated  bool
		mockFunc       func(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error)
		expectedStatus int
		check          func(t *testing.T, body gin.H)
	}{
		{
			name:          "success: new company",
			requestBody:   gin.H{"companyName": "株式会社コドモン"},
			authenticated: true,
			mockFunc: func(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error) {
				return &usecase.RegisterResult{CompanyID: 10, IsDuplicate: false}, nil
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body gin.H) {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, float64(10), body["companyId"])
				assert.Equal(t, false, body["isDuplicate"])
			},
		},
		{
			name:          "success: duplicate returns existing id",
			requestBody:   gin.H{"companyName": "㈱コドモン"},
			authenticated: true,
			mockFunc: func(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error) {
				return &usecase.RegisterResult{CompanyID: 10, IsDuplicate: true}, nil
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body gin.H) {
				assert.Equal(t, float64(10), body["companyId"])
				assert.Equal(t, true, body["isDuplicate"])
			},
		},
		{
			name:           "failure: unauthenticated",
			requestBody:    gin.H{"companyName": "株式会社コドモン"},
			authenticated:  false,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "failure: missing company name",
			requestBody:    gin.H{},
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "failure: invalid company name",
			requestBody:   gin.H{"companyName": "<script>alert(1)</script>"},
			authenticated: true,
			mockFunc: func(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error) {
				return nil, domain.ErrInvalidCompanyName
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "failure: AI response parse error maps to bad gateway",
			requestBody:   gin.H{"companyName": "株式会社コドモン"},
			authenticated: true,
			mockFunc: func(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error) {
				return nil, &gemini.ParseError{Raw: "not json", Err: errors.New("invalid character")}
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:          "failure: store error maps to internal",
			requestBody:   gin.H{"companyName": "株式会社コドモン"},
			authenticated: true,
			mockFunc: func(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCompanyUsecase{RegisterFunc: tt.mockFunc}
			router := setupRouter(NewCompanyHandler(mockUC), tt.authenticated)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/companies", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.check != nil {
				var responseBody gin.H
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
				tt.check(t, responseBody)
			}
		})
	}
}

func TestCompanyHandler_Reanalyze(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockFunc       func(ctx context.Context, userID, companyID uint) error
		expectedStatus int
	}{
		{
			name: "success",
			path: "/companies/10/reanalyze",
			mockFunc: func(ctx context.Context, userID, companyID uint) error {
				return nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: invalid id",
			path:           "/companies/abc/reanalyze",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure: unknown id",
			path: "/companies/999/reanalyze",
			mockFunc: func(ctx context.Context, userID, companyID uint) error {
				return domain.ErrCompanyNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCompanyUsecase{ReanalyzeFunc: tt.mockFunc}
			router := setupRouter(NewCompanyHandler(mockUC), true)

			req, _ := http.NewRequest(http.MethodPost, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCompanyHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	company := &entity.Company{
		ID:             10,
		UserID:         1,
		CompanyName:    "株式会社コドモン",
		NormalizedName: "コドモン",
		Metadata: entity.AnalysisMetadata{
			Status:  entity.StatusCompleted,
			Model:   "gemini-2.5-flash",
			IsStale: true,
		},
	}
	mockUC := &mockCompanyUsecase{
		GetFunc: func(ctx context.Context, userID, companyID uint) (*entity.Company, error) {
			if companyID != 10 {
				return nil, domain.ErrCompanyNotFound
			}
			return company, nil
		},
	}
	router := setupRouter(NewCompanyHandler(mockUC), true)

	t.Run("success", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/companies/10", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "株式会社コドモン", body["companyName"])
		assert.Equal(t, true, body["isStale"], "陳腐化フラグが応答へ含まれること")
	})

	t.Run("not found", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/companies/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
