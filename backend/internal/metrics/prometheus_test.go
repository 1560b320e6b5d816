package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGeneration(t *testing.T) {
	m := New()
	m.ObserveGeneration("strong", "success", 3, time.Millisecond)
	m.ObserveGeneration("strong", "success", 1, time.Millisecond)
	m.ObserveGeneration("custom", "exhausted", 100, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues("strong", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("custom", "exhausted")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.attempts))
}

func TestObserveAnalysisAndDictionary(t *testing.T) {
	m := New()
	m.ObserveAnalysis(5, 104.2)
	m.ObserveAnalysis(1, 9.4)
	m.ObserveAnalysis(5, 98.7)
	m.SetDictionaryWords(42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("5")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("1")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.dictionaryWords))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/password/generate", http.StatusOK)
	m.SetDictionaryWords(7)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "passforge_dictionary_words 7")
	assert.Contains(t, string(body), `passforge_http_requests_total{method="POST",route="/api/v1/password/generate",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.SetDictionaryWords(1)
	b.SetDictionaryWords(2)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.dictionaryWords))
	assert.Equal(t, 2.0, testutil.ToFloat64(b.dictionaryWords))
}
