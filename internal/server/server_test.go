package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farellandr/encuentro/config"
	"github.com/farellandr/encuentro/internal/middleware"
	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAccounts struct {
	service.AccountService
}

func (stubAccounts) GetUser(context.Context, uuid.UUID) (*models.User, error) {
	return nil, service.ErrUserNotFound
}

type stubAttendance struct {
	service.AttendanceService
}

func (stubAttendance) TotalAttendance(context.Context) (int64, error) {
	return 5, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{BaseURL: "http://localhost:8080"},
		Database: config.DatabaseConfig{Host: "localhost", Name: "encuentro"},
		JWT:      config.JWTConfig{Secret: "secret"},
		Upload:   config.UploadConfig{Dir: t.TempDir()},
	}
	store, err := middleware.NewSessionStore("0123456789abcdef0123456789abcdef", false, 3600, zap.NewNop())
	require.NoError(t, err)

	r, err := NewRouter(&Services{Accounts: stubAccounts{}, Attendance: stubAttendance{}}, store, cfg, zap.NewNop())
	require.NoError(t, err)
	return r
}

func TestRoutes(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		status   int
		location string
	}{
		{name: "Health", method: http.MethodGet, path: "/healthz", status: http.StatusOK},
		{name: "Landing", method: http.MethodGet, path: "/", status: http.StatusOK},
		{name: "News", method: http.MethodGet, path: "/news", status: http.StatusOK},
		{name: "TotalIsPublic", method: http.MethodGet, path: "/total_attendance", status: http.StatusOK},
		{name: "ProfileNeedsLogin", method: http.MethodGet, path: "/profile", status: http.StatusSeeOther, location: "/login?next=%2Fprofile"},
		{name: "CheckInNeedsLogin", method: http.MethodGet, path: "/attendance/" + uuid.NewString(), status: http.StatusSeeOther},
		{name: "JoinNeedsLogin", method: http.MethodPost, path: "/join_group", status: http.StatusSeeOther},
		{name: "APINeedsToken", method: http.MethodPost, path: "/api/v1/attendance/" + uuid.NewString(), status: http.StatusUnauthorized},
		{name: "APITotalNeedsToken", method: http.MethodGet, path: "/api/v1/attendance/total", status: http.StatusUnauthorized},
		{name: "Unknown", method: http.MethodGet, path: "/nada", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestAPIPreflight(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/attendance/abc", nil)
	req.Header.Set("Origin", "https://scanner.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
