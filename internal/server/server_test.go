package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simplexopt/simplexopt/internal/config"
)

// testConfig creates a test configuration with default values.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{Environment: "test"}

	cfg.HTTP.Port = 8080
	cfg.HTTP.ReadTimeout = 30 * time.Second
	cfg.HTTP.WriteTimeout = 30 * time.Second
	cfg.HTTP.IdleTimeout = 120 * time.Second
	cfg.HTTP.ShutdownTimeout = 30 * time.Second

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"
	cfg.Logging.Output = "stderr"

	cfg.Optimizer.ExplorationDepth = 5
	cfg.Optimizer.MaxSessions = 4

	return cfg
}

func testServer(t *testing.T) (*Server, *chi.Mux) {
	t.Helper()
	srv := NewServer(testConfig(t), zap.NewNop(), NewMetrics(prometheus.NewRegistry()))
	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return srv, r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()
	var resp createResponse
	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", createRequest{
		Bounds:   [][2]float64{{-10, 10}, {-20, 20}},
		Minimize: true,
	}, &resp)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, 2, resp.Dimensions)
	return resp.ID
}

func TestCreateSessionValidation(t *testing.T) {
	_, r := testServer(t)

	tests := []struct {
		name string
		req  createRequest
		want int
	}{
		{
			name: "valid",
			req:  createRequest{Bounds: [][2]float64{{0, 1}}, Minimize: true},
			want: http.StatusCreated,
		},
		{
			name: "empty bounds",
			req:  createRequest{Minimize: true},
			want: http.StatusBadRequest,
		},
		{
			name: "degenerate interval",
			req:  createRequest{Bounds: [][2]float64{{2, 2}}},
			want: http.StatusBadRequest,
		},
		{
			name: "negative exploration depth",
			req:  createRequest{Bounds: [][2]float64{{0, 1}}, ExplorationDepth: intPtr(-1)},
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", tt.req, nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSuggestReportCycle(t *testing.T) {
	_, r := testServer(t)
	id := createSession(t, r)

	// Bootstrap: three distinct corner suggestions for a 2-D domain.
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		var sugg suggestionResponse
		w := doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/suggestion", nil, &sugg)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, sugg.Coordinates, 2)

		key := fmt.Sprintf("%v", sugg.Coordinates)
		assert.False(t, seen[key], "bootstrap suggestions must be distinct")
		seen[key] = true

		var rep reportResponse
		value := sugg.Coordinates[0] * sugg.Coordinates[1]
		w = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/report", reportRequest{Value: value}, &rep)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, i+1, rep.Evaluations)
	}

	// Steady state: the suggestion is the initial simplex centroid and
	// repeating the GET does not advance the optimizer.
	var first, second suggestionResponse
	doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/suggestion", nil, &first)
	doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/suggestion", nil, &second)
	assert.Equal(t, first.Coordinates, second.Coordinates)
	assert.InDelta(t, -10+20.0/3, first.Coordinates[0], 1e-9)
	assert.InDelta(t, -20+40.0/3, first.Coordinates[1], 1e-9)

	var rep reportResponse
	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/report",
		reportRequest{Value: first.Coordinates[0] * first.Coordinates[1]}, &rep)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, rep.Evaluations)
	assert.InDelta(t, -200, rep.BestValue, 1e-9, "a bootstrap corner is the known minimum of x*y here")
}

func TestSessionStatus(t *testing.T) {
	_, r := testServer(t)
	id := createSession(t, r)

	var status statusResponse
	w := doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id, nil, &status)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, status.ID)
	assert.Equal(t, 2, status.Dimensions)
	assert.True(t, status.Minimize)
	assert.Zero(t, status.Evaluations)
	assert.Nil(t, status.Best)
}

func TestUnknownSession(t *testing.T) {
	_, r := testServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/sessions/nope"},
		{http.MethodGet, "/api/v1/sessions/nope/suggestion"},
		{http.MethodPost, "/api/v1/sessions/nope/report"},
		{http.MethodDelete, "/api/v1/sessions/nope"},
	}
	for _, p := range paths {
		var body interface{}
		if p.method == http.MethodPost {
			body = reportRequest{Value: 1}
		}
		w := doJSON(t, r, p.method, p.path, body, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", p.method, p.path)
	}
}

func TestCloseSession(t *testing.T) {
	_, r := testServer(t)
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/sessions/"+id, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/sessions/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLimit(t *testing.T) {
	srv, r := testServer(t)
	srv.cfg.Optimizer.MaxSessions = 1

	createSession(t, r)
	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", createRequest{
		Bounds: [][2]float64{{0, 1}},
	}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func intPtr(v int) *int { return &v }
