package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shukatsu_backend/internal/feature/auth/usecase"
)

// mockAuthUsecase はAuthUsecaseインターフェースのモック実装です。
type mockAuthUsecase struct {
	SignupFunc func(ctx context.Context, email, password string) error
	LoginFunc  func(ctx context.Context, email, password string) (string, error)
}

func (m *mockAuthUsecase) Signup(ctx context.Context, email, password string) error {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, email, password)
	}
	return nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "mock-token", nil
}

func setupAuthRouter(uc AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(uc)
	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		signupErr  error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "正常系: 201を返す",
			body:       `{"email":"test@example.com","password":"password123"}`,
			wantStatus: http.StatusCreated,
			wantBody:   `"message":"ok"`,
		},
		{
			name:       "メール形式が不正なら400",
			body:       `{"email":"not-an-email","password":"password123"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"invalid request"`,
		},
		{
			name:       "パスワードが短すぎると400",
			body:       `{"email":"test@example.com","password":"short"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "メール重複でも詳細を漏らさず409",
			body:       `{"email":"dup@example.com","password":"password123"}`,
			signupErr:  usecase.ErrEmailAlreadyExists,
			wantStatus: http.StatusConflict,
			wantBody:   `"error":"signup failed"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAuthUsecase{
				SignupFunc: func(ctx context.Context, email, password string) error {
					return tt.signupErr
				},
			}
			r := setupAuthRouter(uc)

			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginToken string
		loginErr   error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "正常系: トークンを返す",
			body:       `{"email":"test@example.com","password":"password123"}`,
			loginToken: "jwt-token-value",
			wantStatus: http.StatusOK,
			wantBody:   `"token":"jwt-token-value"`,
		},
		{
			name:       "リクエスト形式が不正なら400",
			body:       `{"email":""}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "認証失敗は401",
			body:       `{"email":"test@example.com","password":"wrong-password"}`,
			loginErr:   usecase.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"error":"invalid email or password"`,
		},
		{
			name:       "予期しない失敗は500",
			body:       `{"email":"test@example.com","password":"password123"}`,
			loginErr:   errors.New("db connection lost"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"error":"server error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAuthUsecase{
				LoginFunc: func(ctx context.Context, email, password string) (string, error) {
					return tt.loginToken, tt.loginErr
				},
			}
			r := setupAuthRouter(uc)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}
