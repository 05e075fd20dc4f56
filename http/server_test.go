package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-details/repository"
	"scheme-details/service"
)

const testScheme = "meridian-flexi-cap"

func newTestServer(t *testing.T, limiter *RateLimiter) *Server {
	t.Helper()
	log := zerolog.New(io.Discard)

	schemes, err := repository.NewEmbeddedBundleRepository()
	require.NoError(t, err)
	cache := repository.NewMockCache()

	projection := service.NewProjectionService(
		service.DefaultProjectionConfig(),
		repository.NewProjectionRepositoryMemory(),
		log,
	)
	nav := service.NewNavService(schemes, cache, time.Minute, log)
	scheme := service.NewSchemeService(schemes, cache, time.Minute, log)

	return NewServer(Config{
		Port:    8080,
		Log:     log,
		Returns: NewReturnsHandler(projection, log),
		Schemes: NewSchemeHandler(scheme, nav, log),
		Limiter: limiter,
	})
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCalculateRateLimited(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(2, time.Minute, func() time.Time { return now })
	s := newTestServer(t, limiter)

	body := `{"amount": 5000, "tenure_years": 1, "mode": "sip"}`
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/returns/calculate", body).Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/returns/calculate", body).Code)

	w := do(t, s, http.MethodPost, "/api/returns/calculate", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// read-only endpoints are not limited
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/returns/options", "").Code)

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/returns/calculate", body).Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/api/nothing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
