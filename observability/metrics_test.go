package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveStoreAndAssistant(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveStore("read", OutcomeSuccess)
	m.ObserveStore("read", OutcomeSuccess)
	m.ObserveStore("update", OutcomeNotFound)
	m.ObserveAssistant(OutcomeError, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("read", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("update", OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssistantRequests.WithLabelValues(OutcomeError)))
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", Handler(reg))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `wealthai_http_requests_total{route="/ping",status="204"} 1`), body)
}
