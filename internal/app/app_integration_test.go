//go:build integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp_Integration(t *testing.T) {
	cfg := integrationConfig(t)
	app := InitializeApp(cfg)
	require.NotNil(t, app)
	require.NotNil(t, app.Database)
	t.Cleanup(func() {
		_ = app.Close(context.Background())
	})

	t.Run("readiness reports mongodb", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		checks, ok := body["checks"].(map[string]interface{})
		require.True(t, ok, w.Body.String())
		assert.Equal(t, "ok", checks["mongodb"])
		assert.Contains(t, checks, "mongodb_catalog_circuit")
		assert.Contains(t, checks, "mongodb_logs_circuit")
	})

	t.Run("plans against the seeded catalog", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"items":[{"name":"rice","grams":200}],"daily_cap":2000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data struct {
				CatalogVersion int `json:"catalog_version"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Data.CatalogVersion)
	})

	t.Run("audit entries reach the logs collection", func(t *testing.T) {
		require.NoError(t, app.Close(context.Background()))

		// Close flushed the async logger; reopen a connection to count.
		components := InitializeDatabase(cfg.Database)
		require.NotNil(t, components)
		defer func() {
			_ = components.DB.Database.Drop(context.Background())
			_ = components.Close(context.Background())
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		count, err := components.DB.Database.Collection("logs").CountDocuments(ctx, map[string]interface{}{})
		require.NoError(t, err)
		assert.Positive(t, count)
	})
}
