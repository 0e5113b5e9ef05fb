package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("validate", 15*time.Millisecond)
	pr.ObserveBuildDuration(50 * time.Millisecond)
	pr.IncStageResult("validate", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.AddIssues("group-empty", "INFO", 1)
	pr.AddIssues("link-target", "ERROR", 0)
	pr.SetPagesIndexed(21)
	pr.SetNavLinks(23)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	assert.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.issues.WithLabelValues("group-empty", "INFO")), 0)
	assert.InDelta(t, 21, testutil.ToFloat64(pr.pagesIndexed), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(pr.issues), "zero additions create no series")
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveBuildDuration(time.Second)
		pr.IncBuildOutcome(BuildOutcomeFailed)
		pr.SetPagesIndexed(1)
	})
}

func TestPrometheusRecorder_HandlerAndTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome(BuildOutcomeInvalid)

	rec := httptest.NewRecorder()
	pr.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sitenav_build_outcomes_total{outcome="invalid"} 1`)

	path := filepath.Join(t.TempDir(), "sitenav.prom")
	require.NoError(t, pr.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "sitenav_build_outcomes_total"))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveStageDuration("render", time.Millisecond)
		r.AddIssues("x", "INFO", 3)
	})
}
