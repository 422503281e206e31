package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCheck(context.Context) error { return nil }

func failCheck(context.Context) error { return errors.New("connection refused") }

type poolStats struct {
	TotalConns int `json:"total_conns"`
}

func serveHealth(t *testing.T, probes []probe, stats func() (poolStats, error)) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", healthCheckHandler("1.2.3", probes, stats))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthAllUp(t *testing.T) {
	code, body := serveHealth(t, []probe{
		{name: "postgres", critical: true, check: okCheck},
		{name: "redis", check: okCheck},
	}, func() (poolStats, error) { return poolStats{TotalConns: 4}, nil })

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, map[string]interface{}{"postgres": "ok", "redis": "ok"}, body["services"])
	assert.Equal(t, map[string]interface{}{"total_conns": float64(4)}, body["db_pool"])
}

func TestHealthNonCriticalFailureIsDegraded(t *testing.T) {
	code, body := serveHealth(t, []probe{
		{name: "postgres", critical: true, check: okCheck},
		{name: "minio", check: failCheck},
	}, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body["status"])
	assert.Contains(t, body["services"].(map[string]interface{})["minio"], "connection refused")
	assert.NotContains(t, body, "db_pool")
}

func TestHealthCriticalFailureIsUnavailable(t *testing.T) {
	code, body := serveHealth(t, []probe{
		{name: "mongo", critical: true, check: failCheck},
	}, func() (poolStats, error) { return poolStats{}, errors.New("pool closed") })

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["status"])
	assert.NotContains(t, body, "db_pool")
}
