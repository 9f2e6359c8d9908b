package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	signupFn  func(ctx context.Context, email, password string) error
	loginFn   func(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error)
	refreshFn func(ctx context.Context, refreshToken string) (string, error)
	logoutFn  func(ctx context.Context, refreshToken string) error
}

func (m *mockAuthUsecase) Signup(ctx context.Context, email, password string) error {
	if m.signupFn != nil {
		return m.signupFn(ctx, email, password)
	}
	return nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password, userAgent, ipAddress)
	}
	return "", "", errors.New("login failed")
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return "", errors.New("refresh failed")
}

func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, refreshToken)
	}
	return nil
}

// postJSON performs a JSON POST against the given route.
func postJSON(t *testing.T, router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       gin.H
		signupFn   func(ctx context.Context, email, password string) error
		wantStatus int
		wantBody   gin.H
	}{
		{
			name:       "created",
			body:       gin.H{"email": "test@example.com", "password": "password123"},
			signupFn:   func(ctx context.Context, email, password string) error { return nil },
			wantStatus: http.StatusCreated,
			wantBody:   gin.H{"message": "ok"},
		},
		{
			name:       "invalid email",
			body:       gin.H{"email": "invalid-email", "password": "password123"},
			wantStatus: http.StatusBadRequest,
			wantBody:   gin.H{"error": "invalid request"},
		},
		{
			name:       "short password",
			body:       gin.H{"email": "test@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
			wantBody:   gin.H{"error": "invalid request"},
		},
		{
			// The handler hides the real reason behind a generic message.
			name:       "duplicate email",
			body:       gin.H{"email": "existing@example.com", "password": "password123"},
			signupFn:   func(ctx context.Context, email, password string) error { return errors.New("email already exists") },
			wantStatus: http.StatusConflict,
			wantBody:   gin.H{"error": "signup failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewAuthHandler(&mockAuthUsecase{signupFn: tt.signupFn})
			router := gin.New()
			router.POST("/signup", h.Signup)

			w := postJSON(t, router, "/signup", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)

			var got gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       gin.H
		loginFn    func(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error)
		wantStatus int
		wantBody   gin.H
	}{
		{
			name: "ok",
			body: gin.H{"email": "test@example.com", "password": "password123"},
			loginFn: func(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error) {
				return "access-token", "refresh-token", nil
			},
			wantStatus: http.StatusOK,
			wantBody:   gin.H{"token": "access-token", "refresh_token": "refresh-token"},
		},
		{
			name:       "invalid email",
			body:       gin.H{"email": "invalid-email", "password": "password123"},
			wantStatus: http.StatusBadRequest,
			wantBody:   gin.H{"error": "invalid request"},
		},
		{
			name:       "missing password",
			body:       gin.H{"email": "test@example.com"},
			wantStatus: http.StatusBadRequest,
			wantBody:   gin.H{"error": "invalid request"},
		},
		{
			// Every authentication failure answers with the same message.
			name: "bad credentials",
			body: gin.H{"email": "wrong@example.com", "password": "wrong-password"},
			loginFn: func(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error) {
				return "", "", errors.New("invalid credentials")
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   gin.H{"error": "invalid email or password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewAuthHandler(&mockAuthUsecase{loginFn: tt.loginFn})
			router := gin.New()
			router.POST("/login", h.Login)

			w := postJSON(t, router, "/login", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)

			var got gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestAuthHandler_Login_PassesClientMetadata(t *testing.T) {
	t.Parallel()

	var gotAgent string
	h := NewAuthHandler(&mockAuthUsecase{
		loginFn: func(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error) {
			gotAgent = userAgent
			return "a", "r", nil
		},
	})
	router := gin.New()
	router.POST("/login", h.Login)

	raw, err := json.Marshal(gin.H{"email": "test@example.com", "password": "password123"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent/1.0")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-agent/1.0", gotAgent)
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       gin.H
		refreshFn  func(ctx context.Context, refreshToken string) (string, error)
		wantStatus int
		wantBody   gin.H
	}{
		{
			name: "ok",
			body: gin.H{"refresh_token": "refresh-token"},
			refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
				return "new-access-token", nil
			},
			wantStatus: http.StatusOK,
			wantBody:   gin.H{"token": "new-access-token", "refresh_token": "refresh-token"},
		},
		{
			name:       "missing token",
			body:       gin.H{},
			wantStatus: http.StatusBadRequest,
			wantBody:   gin.H{"error": "invalid request"},
		},
		{
			name: "revoked session",
			body: gin.H{"refresh_token": "revoked"},
			refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
				return "", errors.New("session revoked")
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   gin.H{"error": "invalid refresh token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewAuthHandler(&mockAuthUsecase{refreshFn: tt.refreshFn})
			router := gin.New()
			router.POST("/refresh", h.Refresh)

			w := postJSON(t, router, "/refresh", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)

			var got gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

// TestAuthHandler_Logout verifies logout acknowledges even for tokens
// the server no longer knows about.
func TestAuthHandler_Logout(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthUsecase{
		logoutFn: func(ctx context.Context, refreshToken string) error {
			return errors.New("session not found")
		},
	})
	router := gin.New()
	router.POST("/logout", h.Logout)

	w := postJSON(t, router, "/logout", gin.H{"refresh_token": "long-gone"})

	assert.Equal(t, http.StatusOK, w.Code)

	var got gin.H
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, gin.H{"message": "ok"}, got)
}
