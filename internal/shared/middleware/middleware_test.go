package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
	tags []map[string]string
}

func (r *recordingReporter) Capture(_ context.Context, err error, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func (r *recordingReporter) Flush(time.Duration) {}

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())

	var fromCtx string
	r.GET("/x", func(c *gin.Context) {
		fromCtx = RequestIDFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, fromCtx)
}

func TestRequestIDKeepsClientValue(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Empty(t, RequestIDFrom(context.Background()))
}

func TestRecoveryReportsPanic(t *testing.T) {
	rep := &recordingReporter{}
	r := gin.New()
	r.Use(RequestID(), Recovery(rep))
	r.GET("/boom", func(c *gin.Context) { panic("nil map") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	require.Len(t, rep.errs, 1)
	assert.Equal(t, "/boom", rep.tags[0]["route"])
}

func TestErrorReportCapturesAttachedErrors(t *testing.T) {
	rep := &recordingReporter{}
	r := gin.New()
	r.Use(RequestID(), ErrorReport(rep))
	r.GET("/fail", func(c *gin.Context) {
		response.FromError(c, errors.New("mongo timeout"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, rep.errs, 1)
	assert.NotEmpty(t, rep.tags[0]["request_id"])
}

type observed struct {
	method, route, status string
}

type fakeObserver struct {
	got []observed
}

func (f *fakeObserver) ObserveHTTP(method, route, status string, _ time.Duration) {
	f.got = append(f.got, observed{method, route, status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Len(t, obs.got, 2)
	assert.Equal(t, observed{"GET", "/books/:id", "200"}, obs.got[0])
	assert.Equal(t, "unmatched", obs.got[1].route)
	assert.Equal(t, "404", obs.got[1].status)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.POST("/graphql", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
