package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/build"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/validate"
)

func guideResult(t *testing.T) *build.Result {
	t.Helper()
	site, err := nav.BuildConfig()
	require.NoError(t, err)
	return &build.Result{
		Site:       site,
		Validation: validate.New().Validate(validate.Input{Site: site}),
		Report:     &build.Report{BuildID: "b-1", Outcome: build.OutcomeSuccess},
	}
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_BeforeFirstBuild(t *testing.T) {
	s := New(":0", nil)

	rec := get(t, s, "/config.json")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status": "starting"`)
}

func TestServer_ConfigJSON(t *testing.T) {
	s := New(":0", nil)
	s.Publish(guideResult(t))

	rec := get(t, s, "/config.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "TypeScript is Like C#", doc["title"])
}

func TestServer_ConfigFormats(t *testing.T) {
	s := New(":0", nil)
	s.Publish(guideResult(t))

	rec := get(t, s, "/config/toml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `title = "TypeScript is Like C#"`)

	rec = get(t, s, "/config/xml")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Sidebar(t *testing.T) {
	s := New(":0", nil)
	s.Publish(guideResult(t))

	rec := get(t, s, "/sidebar")
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 5)
	last := groups[4]
	assert.Equal(t, "How Do I...", last["text"])
	assert.Equal(t, true, last["collapsed"])
	assert.Equal(t, []any{}, last["items"])
}

func TestServer_ReportAndValidation(t *testing.T) {
	s := New(":0", nil)
	s.Publish(guideResult(t))

	rec := get(t, s, "/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"build_id": "b-1"`)

	rec = get(t, s, "/validation")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rule": "group-empty"`)
}

func TestServer_Edit(t *testing.T) {
	s := New(":0", nil)
	s.Publish(guideResult(t))

	rec := get(t, s, "/edit?path=pages/conventions.md")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://github.com/CharlieDigital/typescript-is-like-csharp/edit/main/docs/pages/conventions.md", rec.Header().Get("Location"))

	rec = get(t, s, "/edit")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_FailKeepsServingLastBuild(t *testing.T) {
	s := New(":0", nil)
	s.Publish(guideResult(t))
	s.Fail(errors.ValidationError("navigation failed validation").Build())

	rec := get(t, s, "/health")
	assert.Contains(t, rec.Body.String(), `"status": "degraded"`)
	assert.Contains(t, rec.Body.String(), "navigation failed validation")

	assert.Equal(t, http.StatusOK, get(t, s, "/config.json").Code)

	s.Publish(guideResult(t))
	assert.Contains(t, get(t, s, "/health").Body.String(), `"status": "ok"`)
}

func TestServer_Metrics(t *testing.T) {
	rec := metrics.NewPrometheusRecorder(nil)
	rec.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	s := New(":0", rec)

	resp := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), "sitenav_build_outcomes_total"))

	assert.Equal(t, http.StatusNotFound, get(t, New(":0", nil), "/metrics").Code)
}
