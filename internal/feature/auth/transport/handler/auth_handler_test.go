package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shelf_backend/internal/feature/auth/transport/handler"
)

// mockAuthUsecase はAuthUsecaseインターフェースのモック実装です。
type mockAuthUsecase struct {
	SignupFunc func(ctx context.Context, email, password string) error
	LoginFunc  func(ctx context.Context, email, password string) (string, error)
}

func (m *mockAuthUsecase) Signup(ctx context.Context, email, password string) error {
	return m.SignupFunc(ctx, email, password)
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	return m.LoginFunc(ctx, email, password)
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    string
		mockFunc       func(ctx context.Context, email, password string) error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success: operator created",
			requestBody: `{"email":"op@example.com","password":"password123"}`,
			mockFunc: func(ctx context.Context, email, password string) error {
				assert.Equal(t, "op@example.com", email)
				return nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"ok"}`,
		},
		{
			name:           "error: invalid email",
			requestBody:    `{"email":"not-an-email","password":"password123"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "error: password too short",
			requestBody:    `{"email":"op@example.com","password":"short"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:        "error: duplicate email",
			requestBody: `{"email":"op@example.com","password":"password123"}`,
			mockFunc: func(ctx context.Context, email, password string) error {
				return errors.New("email already exists")
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"signup failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: tt.mockFunc}
			h := handler.NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/signup", h.Signup)

			w := postJSON(t, router, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    string
		mockFunc       func(ctx context.Context, email, password string) (string, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success: token issued",
			requestBody: `{"email":"op@example.com","password":"password123"}`,
			mockFunc: func(ctx context.Context, email, password string) (string, error) {
				return "signed-jwt", nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"signed-jwt"}`,
		},
		{
			name:           "error: invalid json",
			requestBody:    `invalid`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:        "error: wrong credentials",
			requestBody: `{"email":"op@example.com","password":"wrong-password"}`,
			mockFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", errors.New("invalid email or password")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid email or password"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockFunc}
			h := handler.NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/login", h.Login)

			w := postJSON(t, router, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
