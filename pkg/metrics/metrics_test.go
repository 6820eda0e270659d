package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	r := gin.New()
	r.Use(Middleware(m))
	r.GET("/alerts/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, p := range []string{"/alerts/1", "/alerts/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/alerts/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestBusinessCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordPanelOperation("forum", "like")
	m.RecordChatExchange("fallback", 10*time.Millisecond)
	m.RecordNotification("sms", nil)
	m.RecordNotification("sms", errors.New("down"))
	m.SetSSEClients(3)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.panelOperations.WithLabelValues("forum", "like")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.chatExchanges.WithLabelValues("fallback")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.notifications.WithLabelValues("sms", "error")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.sseClients))
}

func TestHandlerExposes(t *testing.T) {
	m := NewMetrics()
	m.RecordPanelOperation("alerts", "read")
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portal_panel_operations_total{operation="read",panel="alerts"} 1`)
}

func TestCollect(t *testing.T) {
	s := Collect()
	assert.Positive(t, s.Runtime.Goroutines)
	assert.Positive(t, s.CPU.CountLogical)
	NewMetrics().Observe(s)
}
