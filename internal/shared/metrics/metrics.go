package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_uploads_total",
		Help: "Resume uploads by result",
	}, []string{"result"})

	parseFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resume_parse_failures_total",
		Help: "Resumes stored without parsed content",
	})

	analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analyses_total",
		Help: "Resume analyses by result",
	}, []string{"result"})

	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_duration_ms",
		Help:    "Analysis duration in milliseconds",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		uploadsTotal,
		parseFailuresTotal,
		analysesTotal,
		analysisDuration,
		httpRequestsTotal,
	)
}

// IncUpload records an upload outcome ("stored", "rejected", "failed").
func IncUpload(result string) {
	uploadsTotal.WithLabelValues(result).Inc()
}

// IncParseFailure counts a resume whose text could not be extracted.
func IncParseFailure() {
	parseFailuresTotal.Inc()
}

// IncAnalysis records an analysis outcome ("completed", "failed").
func IncAnalysis(result string) {
	analysesTotal.WithLabelValues(result).Inc()
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// ObserveRequest counts a finished HTTP request.
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Registry returns the registry holding all service collectors.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
