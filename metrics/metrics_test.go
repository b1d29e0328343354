// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopDefault(t *testing.T) {
	assert.Nil(t, HTTPHandler())

	// meters created before initialization are safe to use
	Counter("noop_count").Add(1)
	CounterVec("noop_count_vec", []string{"status"}).AddWithLabel(1, map[string]string{"status": "ok"})
	Gauge("noop_gauge").Set(7)
	HistogramVec("noop_hist", []string{"code"}, BucketHTTPReqs).ObserveWithLabels(3, map[string]string{"code": "200"})
}

func TestPrometheusBackend(t *testing.T) {
	InitializePrometheusMetrics()

	lazy := LazyLoadCounterVec("call_count_test", []string{"method"})
	lazy().AddWithLabel(2, map[string]string{"method": "stake"})
	lazy().AddWithLabel(1, map[string]string{"method": "stake"})
	Counter("plain_count_test").Add(5)
	Gauge("gauge_test").Set(42)

	rec := httptest.NewRecorder()
	handler := HTTPHandler()
	require.NotNil(t, handler)
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `stakebonus_metrics_call_count_test{method="stake"} 3`)
	assert.Contains(t, string(body), "stakebonus_metrics_plain_count_test 5")
	assert.Contains(t, string(body), "stakebonus_metrics_gauge_test 42")
}
