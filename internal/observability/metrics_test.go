package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/blog-platform/config"
)

func TestMetrics_RecordAnswer(t *testing.T) {
	m := NewMetrics()

	m.RecordAnswer("kb:reset-password")
	m.RecordAnswer("kb:create-post")
	m.RecordAnswer("openai")
	m.RecordAnswer("none")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.assistantAnswers.WithLabelValues("kb")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assistantAnswers.WithLabelValues("openai")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assistantAnswers.WithLabelValues("none")))
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m := NewMetrics()

	m.RecordHTTPRequest(http.MethodGet, "/api/blogs", http.StatusOK, 15*time.Millisecond)
	m.RecordHTTPRequest(http.MethodGet, "/api/blogs", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/blogs", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordAnswer("openai")
		m.ObserveRetrievalScore(1.2)
		m.RecordHTTPRequest(http.MethodPost, "/api/ai/query", http.StatusOK, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRetrievalScore(2.4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blog_assistant_retrieval_score")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "debug", LogFormat: "json"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLogger(config.ObservabilityConfig{LogLevel: "warn", LogFormat: "text"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(config.ObservabilityConfig{LogLevel: "loud"})
	assert.Error(t, err)
}
