package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(uploadsTotal.WithLabelValues("stored"))
	IncUpload("stored")
	assert.Equal(t, before+1, testutil.ToFloat64(uploadsTotal.WithLabelValues("stored")))

	beforeParse := testutil.ToFloat64(parseFailuresTotal)
	IncParseFailure()
	assert.Equal(t, beforeParse+1, testutil.ToFloat64(parseFailuresTotal))
}

func TestHandlerRendersPrometheusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncAnalysis("completed")
	ObserveAnalysisDurationMs(42)
	ObserveRequest(http.MethodGet, "/health", http.StatusOK)

	r := gin.New()
	r.GET("/metrics", Handler())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "analyses_total")
	assert.Contains(t, body, "analysis_duration_ms_bucket")
	assert.Contains(t, body, `http_requests_total{method="GET",route="/health",status="200"}`)
}
