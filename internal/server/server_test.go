package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-numeric/pkg/analysis"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(nil, analysis.DefaultSettings()).Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleRoot(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "bisection", path: "/v1/roots/bisection", body: `{"equation":"x^3 - x - 1"}`, wantStatus: http.StatusOK},
		{name: "secant", path: "/v1/roots/secant", body: `{"equation":"x^3 - x - 1","x0":1,"x1":2}`, wantStatus: http.StatusOK},
		{name: "secant without seeds", path: "/v1/roots/secant", body: `{"equation":"x - 1"}`, wantStatus: http.StatusBadRequest, wantError: "configuration_error"},
		{name: "unknown method", path: "/v1/roots/newton", body: `{"equation":"x"}`, wantStatus: http.StatusBadRequest, wantError: "configuration_error"},
		{name: "invalid expression", path: "/v1/roots/bisection", body: `{"equation":"x +* 1"}`, wantStatus: http.StatusBadRequest, wantError: "invalid_expression"},
		{name: "bad decimals", path: "/v1/roots/bisection", body: `{"equation":"x^3 - x - 1","decimals":12}`, wantStatus: http.StatusBadRequest, wantError: "configuration_error"},
		{name: "zero decimals", path: "/v1/roots/bisection", body: `{"equation":"x^3 - x - 1","decimals":0}`, wantStatus: http.StatusBadRequest, wantError: "configuration_error"},
		{name: "negative decimals", path: "/v1/roots/bisection", body: `{"equation":"x^3 - x - 1","decimals":-1}`, wantStatus: http.StatusBadRequest, wantError: "configuration_error"},
		{name: "no bracket", path: "/v1/roots/bisection", body: `{"equation":"x^2 + 1"}`, wantStatus: http.StatusUnprocessableEntity, wantError: "bracket_not_found"},
		{name: "degenerate", path: "/v1/roots/secant", body: `{"equation":"x^2 - 4","x0":-1,"x1":1}`, wantStatus: http.StatusUnprocessableEntity, wantError: "degenerate_step"},
		{name: "unknown field", path: "/v1/roots/bisection", body: `{"equation":"x","guess":3}`, wantStatus: http.StatusBadRequest, wantError: "bad_request"},
		{name: "malformed json", path: "/v1/roots/bisection", body: `{`, wantStatus: http.StatusBadRequest, wantError: "bad_request"},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, ts, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				return
			}
			root, ok := body["root"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, true, root["converged"])
			assert.InDelta(t, 1.325, root["root"], 5e-4)
		})
	}
}

func TestHandleLinear(t *testing.T) {
	ts := newTestServer(t)

	status, body := post(t, ts, "/v1/linear", `{"matrix":[[10,-1,2,6],[-1,11,-1,25],[2,-1,10,-11]],"tolerance":0.0001,"max_iter":25}`)
	require.Equal(t, http.StatusOK, status)
	lin, ok := body["linear"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, lin["dominance"].(map[string]any)["ok"])
	assert.NotNil(t, lin["jacobi"])
	assert.NotNil(t, lin["gauss_seidel"])
	assert.Nil(t, body["warning"])
}

func TestHandleLinear_NonConvergenceIsWarning(t *testing.T) {
	ts := newTestServer(t)

	status, body := post(t, ts, "/v1/linear", `{"matrix":[[1,2,3],[3,1,4]],"method":"jacobi","max_iter":10}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["warning"], "no convergence")
	lin := body["linear"].(map[string]any)
	jac := lin["jacobi"].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, false, jac["converged"])
	assert.Len(t, jac["iterations"], 10)
}

func TestHandleLinear_Errors(t *testing.T) {
	ts := newTestServer(t)

	status, body := post(t, ts, "/v1/linear", `{"matrix":[[0,1,1],[1,1,2]]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "configuration_error", body["error"])

	status, body = post(t, ts, "/v1/linear", `{"matrix":[[1,0,1],[0,1,2]],"method":"secant"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "configuration_error", body["error"])

	for _, settings := range []string{`"tolerance":-5`, `"tolerance":0`, `"max_iter":-3`, `"max_iter":0`} {
		status, body = post(t, ts, "/v1/linear", `{"matrix":[[2,1,3],[1,2,3]],`+settings+`}`)
		assert.Equal(t, http.StatusBadRequest, status, settings)
		assert.Equal(t, "configuration_error", body["error"], settings)
	}
}

func TestHandleLinear_HugeMaxIter(t *testing.T) {
	ts := newTestServer(t)

	status, body := post(t, ts, "/v1/linear", `{"matrix":[[10,-1,2,6],[-1,11,-1,25],[2,-1,10,-11]],"max_iter":4611686018427387904}`)
	require.Equal(t, http.StatusOK, status)
	lin := body["linear"].(map[string]any)
	jac := lin["jacobi"].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, true, jac["converged"])
	assert.Len(t, jac["iterations"], 8)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts, "/v1/roots/bisection", `{"equation":"x^3 - x - 1"}`)
	post(t, ts, "/v1/roots/bisection", `{"equation":"x^2 + 1"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, `toynum_solves_total{method="bisection",outcome="converged"} 1`)
	assert.Contains(t, text, `toynum_solves_total{method="bisection",outcome="bracket_not_found"} 1`)
	assert.Contains(t, text, "toynum_solve_iterations_bucket")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.EOF))
}
