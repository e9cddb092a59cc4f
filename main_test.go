package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T, storage, dsn string) *config.Config {
	t.Helper()
	v := viper.New()
	v.Set("STORAGE_DRIVER", storage)
	v.Set("DATABASE_DSN", dsn)
	v.Set("JWT_SECRET", "test_jwt_secret")
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func TestNewApp_HealthAndSeedData(t *testing.T) {
	for name, cfg := range map[string]*config.Config{
		"memory": testConfig(t, "memory", ""),
		"sqlite": testConfig(t, "sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared"),
	} {
		t.Run(name, func(t *testing.T) {
			app, err := newApp(cfg, nil, zaptest.NewLogger(t))
			require.NoError(t, err)

			// --- Test Health Endpoint ---
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			var health map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "healthy", health["status"])
			assert.Equal(t, name, health["storage"])
			assert.Equal(t, false, health["order_events"])

			// --- Test Unauthenticated Access ---
			resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			// --- The seeded admin can sign in and sees the starter catalog ---
			login, _ := json.Marshal(map[string]string{"email": "admin@admin.com", "password": "1234"})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(login))
			req.Header.Set("Content-Type", "application/json")
			resp, err = app.Test(req, -1)
			require.NoError(t, err)
			var loginResp map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			token, _ := loginResp["token"].(string)
			require.NotEmpty(t, token)

			req = httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err = app.Test(req, -1)
			require.NoError(t, err)
			var products []map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
			resp.Body.Close()
			require.Len(t, products, 7)
			assert.Equal(t, "Organic Milk", products[0]["name"])
			assert.Equal(t, "Generic Mug", products[6]["name"])
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger("loud")
	assert.Error(t, err)
}
