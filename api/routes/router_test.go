package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rmoralesdev/salon-backoffice/pkg/config"
	"github.com/rmoralesdev/salon-backoffice/pkg/logger"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		HTTP: config.HTTPConfig{CORSAllowedOrigins: []string{"*"}},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(cfg, logg, nil, prometheus.NewRegistry(), Services{})
}

func TestRouterHealthLive(t *testing.T) {
	resp := httptest.NewRecorder()
	testRouter(t).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "test", resp.Header().Get("X-Salon-Env"))
}

func TestRouterMetricsEndpoint(t *testing.T) {
	resp := httptest.NewRecorder()
	testRouter(t).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRouterUnknownRoute(t *testing.T) {
	resp := httptest.NewRecorder()
	testRouter(t).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRouterUnwiredServiceIsInternalError(t *testing.T) {
	resp := httptest.NewRecorder()
	testRouter(t).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/clients", nil))

	require.Equal(t, http.StatusInternalServerError, resp.Code)
}
