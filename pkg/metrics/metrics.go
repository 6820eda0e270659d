package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标管理器，所有指标注册在自己的 Registry 上
type Metrics struct {
	registry *prometheus.Registry

	// HTTP请求指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// 业务指标
	panelOperations *prometheus.CounterVec
	chatExchanges   *prometheus.CounterVec
	chatLatency     prometheus.Histogram
	notifications   *prometheus.CounterVec
	sseClients      prometheus.Gauge

	// 系统指标
	systemMemoryUsage *prometheus.GaugeVec
	systemCPUUsage    prometheus.Gauge
}

// NewMetrics 创建指标管理器，附带 Go 运行时和进程采集器
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		httpResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		panelOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_panel_operations_total",
				Help: "Store mutations per panel and operation",
			},
			[]string{"panel", "operation"},
		),
		chatExchanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_chat_exchanges_total",
				Help: "Chat exchanges by outcome (reply, fallback, dropped)",
			},
			[]string{"outcome"},
		),
		chatLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "portal_chat_reply_seconds",
				Help:    "Time the assistant took to answer",
				Buckets: prometheus.DefBuckets,
			},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_notifications_total",
				Help: "Reminder notifications by channel and status",
			},
			[]string{"channel", "status"},
		),
		sseClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "portal_sse_clients",
				Help: "Connected event stream subscribers",
			},
		),

		systemMemoryUsage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "system_memory_usage_bytes",
				Help: "System memory usage in bytes",
			},
			[]string{"type"},
		),
		systemCPUUsage: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "system_cpu_usage_percent",
				Help: "System CPU usage percentage",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal, m.httpRequestDuration, m.httpResponseSize,
		m.panelOperations, m.chatExchanges, m.chatLatency, m.notifications, m.sseClients,
		m.systemMemoryUsage, m.systemCPUUsage,
	)
	return m
}

// Registry 供其他组件注册自己的指标（如限流观察者）
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler 暴露 /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest 记录HTTP请求指标
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int64) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.httpResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordPanelOperation 记录一次面板变更
func (m *Metrics) RecordPanelOperation(panel, operation string) {
	m.panelOperations.WithLabelValues(panel, operation).Inc()
}

func (m *Metrics) RecordChatExchange(outcome string, took time.Duration) {
	m.chatExchanges.WithLabelValues(outcome).Inc()
	if took > 0 {
		m.chatLatency.Observe(took.Seconds())
	}
}

func (m *Metrics) RecordNotification(channel string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.notifications.WithLabelValues(channel, status).Inc()
}

func (m *Metrics) SetSSEClients(n int) { m.sseClients.Set(float64(n)) }

// SetSystemMemoryUsage 设置系统内存使用量
func (m *Metrics) SetSystemMemoryUsage(memoryType string, bytes uint64) {
	m.systemMemoryUsage.WithLabelValues(memoryType).Set(float64(bytes))
}

// SetSystemCPUUsage 设置系统CPU使用率
func (m *Metrics) SetSystemCPUUsage(percentage float64) {
	m.systemCPUUsage.Set(percentage)
}
