package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/auth/jwt"
	"github.com/reobserve/reobserve/internal/common/config"
)

func TestBuildRouter(t *testing.T) {
	cfg := &config.APIServerConfig{
		Database: config.DatabaseConfig{
			Type:   "sqlite",
			DBName: filepath.Join(t.TempDir(), "api.db"),
		},
		JWT: config.JWTConfig{
			SecretKey: "0123456789abcdef0123456789abcdef",
			Duration:  time.Hour,
		},
		Metrics: config.MetricsConfig{Enabled: true, Namespace: "reobserve"},
		Port:    0,
	}

	db, err := database.NewDatabase(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	jwtService, err := jwt.NewService(jwt.Config{SecretKey: cfg.JWT.SecretKey, Duration: cfg.JWT.Duration})
	require.NoError(t, err)

	router := buildRouter(cfg, db, jwtService, zap.NewNop())

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ok")
	})

	t.Run("metrics exposed", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("guarded route rejects anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/periods", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("request id header set", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})

	t.Run("register login and use the api end to end", func(t *testing.T) {
		register := map[string]string{
			"cnpj":      "11.222.333/0001-81",
			"password":  "s3cret",
			"tradeName": "ACME",
		}
		w := postJSON(router, "/api/enterprises", register, "")
		require.Equal(t, http.StatusOK, w.Code)

		login := map[string]string{"cnpj": "11222333000181", "password": "s3cret"}
		w = postJSON(router, "/api/enterprises/auth/login", login, "")
		require.Equal(t, http.StatusOK, w.Code)

		var loginResp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
		require.NotEmpty(t, loginResp.Token)

		w = postJSON(router, "/api/periods", map[string]any{
			"name": "2026-08", "month": 8, "year": 2026,
		}, loginResp.Token)
		require.Equal(t, http.StatusOK, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/periods", nil)
		req.Header.Set("Authorization", "Bearer "+loginResp.Token)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "2026-08")
	})
}

func postJSON(h http.Handler, path string, body any, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
