package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunChecksStopsAtFirstFailure(t *testing.T) {
	var ran []string
	checks := []check{
		{"a", func(context.Context) error { ran = append(ran, "a"); return nil }},
		{"b", func(context.Context) error { ran = append(ran, "b"); return errors.New("down") }},
		{"c", func(context.Context) error { ran = append(ran, "c"); return nil }},
	}

	err := runChecks(context.Background(), checks)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "b failed")
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestHealthRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	healthy := true
	r := healthRouter([]check{{"redis", func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("connection refused")
	}}})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get("/health").Code)
	assert.Equal(t, http.StatusOK, get("/ready").Code)

	healthy = false
	w := get("/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_READY")
	assert.Equal(t, http.StatusOK, get("/health").Code)
}
