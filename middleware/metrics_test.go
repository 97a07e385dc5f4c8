package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	e := echo.New()
	m := NewHTTPMetrics(prometheus.NewRegistry())
	e.Use(Metrics(m))
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("bad"))
	})

	for _, path := range []string{"/ok", "/ok", "/fail"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/ok", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/fail", "400")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.activeConnections))
}
