package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pathviz/internal/grid"
)

// fakeService mounts handler on the run endpoint and records the last request.
func fakeService(t *testing.T, handler func(w http.ResponseWriter, req Request)) (*httptest.Server, *Request) {
	t.Helper()
	var (
		mu   sync.Mutex
		last Request
	)
	r := chi.NewRouter()
	r.Post(RunPath, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		var body Request
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		mu.Lock()
		last = body
		mu.Unlock()
		handler(w, body)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &last
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type recordingObserver struct {
	outcomes []string
}

func (r *recordingObserver) ObserveRun(algo, outcome string, _ time.Duration, _, _ int) {
	r.outcomes = append(r.outcomes, algo+":"+outcome)
}

func TestRun_Success(t *testing.T) {
	srv, last := fakeService(t, func(w http.ResponseWriter, req Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"visited_nodes": []map[string]int{{"x": 15, "y": 10}, {"x": 16, "y": 10}},
			"path":          []map[string]int{{"x": 15, "y": 10}, {"x": 35, "y": 10}},
		})
	})

	g := grid.Default()
	g, err := g.ToggleWall(0, 3)
	require.NoError(t, err)

	obs := &recordingObserver{}
	c := New(srv.URL, WithObserver(obs))
	res, err := c.Run(context.Background(), g, Dijkstra)
	require.NoError(t, err)

	assert.Equal(t, []grid.Coord{{Row: 10, Col: 15}, {Row: 10, Col: 16}}, res.Visited)
	assert.Equal(t, []grid.Coord{{Row: 10, Col: 15}, {Row: 10, Col: 35}}, res.Path)
	assert.True(t, res.Found())

	assert.Equal(t, 50, last.Width)
	assert.Equal(t, 20, last.Height)
	assert.Equal(t, "dijkstra", last.Algorithm)
	assert.Equal(t, point{X: 15, Y: 10}, last.Start)
	assert.Equal(t, point{X: 35, Y: 10}, last.End)
	require.Len(t, last.Grid, 20)
	require.Len(t, last.Grid[0], 50)
	assert.Equal(t, 1, last.Grid[0][3])
	assert.Equal(t, 0, last.Grid[0][4])

	assert.Equal(t, []string{"dijkstra:ok"}, obs.outcomes)
}

func TestRun_NoPath(t *testing.T) {
	srv, _ := fakeService(t, func(w http.ResponseWriter, _ Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"visited_nodes": []map[string]int{{"x": 15, "y": 10}},
			"path":          []map[string]int{},
		})
	})

	res, err := New(srv.URL).Run(context.Background(), grid.Default(), BFS)
	require.NoError(t, err)
	assert.Len(t, res.Visited, 1)
	assert.Empty(t, res.Path)
	assert.False(t, res.Found())
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler func(w http.ResponseWriter, req Request)
		status  int
		message string
	}{
		{
			name: "detail message",
			handler: func(w http.ResponseWriter, _ Request) {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Algorithm failed: boom"})
			},
			status:  http.StatusInternalServerError,
			message: "Algorithm failed: boom",
		},
		{
			name: "non-string detail",
			handler: func(w http.ResponseWriter, _ Request) {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]string{{"msg": "field required"}}})
			},
			status:  http.StatusUnprocessableEntity,
			message: "API request failed",
		},
		{
			name: "plain text error",
			handler: func(w http.ResponseWriter, _ Request) {
				http.Error(w, "bad gateway", http.StatusBadGateway)
			},
			status:  http.StatusBadGateway,
			message: "API request failed",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("{not json"))
			},
			status:  http.StatusOK,
			message: "malformed response from algorithm service",
		},
		{
			name: "embedded error",
			handler: func(w http.ResponseWriter, _ Request) {
				writeJSON(w, http.StatusOK, map[string]string{"error": "C++ executable not found"})
			},
			status:  http.StatusOK,
			message: "C++ executable not found",
		},
		{
			name: "empty object",
			handler: func(w http.ResponseWriter, _ Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{}`))
			},
			status:  http.StatusOK,
			message: "malformed response from algorithm service",
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, _ Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`null`))
			},
			status:  http.StatusOK,
			message: "malformed response from algorithm service",
		},
		{
			name: "unrelated keys",
			handler: func(w http.ResponseWriter, _ Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"foo":1}`))
			},
			status:  http.StatusOK,
			message: "malformed response from algorithm service",
		},
		{
			name: "missing path",
			handler: func(w http.ResponseWriter, _ Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"visited_nodes":[{"x":1,"y":1}]}`))
			},
			status:  http.StatusOK,
			message: "malformed response from algorithm service",
		},
		{
			name: "null visited",
			handler: func(w http.ResponseWriter, _ Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"visited_nodes":null,"path":[]}`))
			},
			status:  http.StatusOK,
			message: "malformed response from algorithm service",
		},
		{
			name: "coordinate outside grid",
			handler: func(w http.ResponseWriter, _ Request) {
				writeJSON(w, http.StatusOK, map[string]any{
					"visited_nodes": []map[string]int{{"x": 99, "y": 0}},
					"path":          []map[string]int{},
				})
			},
			status:  http.StatusOK,
			message: "malformed response from algorithm service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := fakeService(t, tt.handler)
			obs := &recordingObserver{}

			_, err := New(srv.URL, WithObserver(obs)).Run(context.Background(), grid.Default(), AStar)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRunFailed))

			var rf *RunFailedError
			require.True(t, errors.As(err, &rf))
			assert.Equal(t, tt.status, rf.Status)
			assert.Equal(t, tt.message, rf.Message)
			assert.Equal(t, []string{"astar:failed"}, obs.outcomes)
		})
	}
}

func TestRun_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithTimeout(time.Second)).Run(context.Background(), grid.Default(), BFS)
	require.ErrorIs(t, err, ErrRunFailed)

	var rf *RunFailedError
	require.ErrorAs(t, err, &rf)
	assert.Zero(t, rf.Status)
	assert.Contains(t, rf.Message, "API request failed")
}

func TestRun_SingleAttempt(t *testing.T) {
	calls := 0
	srv, _ := fakeService(t, func(w http.ResponseWriter, _ Request) {
		calls++
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "busy"})
	})

	_, err := New(srv.URL).Run(context.Background(), grid.Default(), BFS)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm(" AStar ")
	require.NoError(t, err)
	assert.Equal(t, AStar, a)

	_, err = ParseAlgorithm("greedy")
	assert.Error(t, err)

	assert.Equal(t, DFS, BFS.Next())
	assert.Equal(t, BFS, AStar.Next())
	assert.Equal(t, AStar, BFS.Prev())
	assert.Equal(t, "A* Search", AStar.Label())
	assert.Len(t, Algorithms(), 4)
}

func TestRunAll_KeepsOrder(t *testing.T) {
	srv, _ := fakeService(t, func(w http.ResponseWriter, req Request) {
		if req.Algorithm == string(DFS) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "dfs exploded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"visited_nodes": []map[string]int{{"x": 15, "y": 10}},
			"path":          []map[string]int{{"x": 15, "y": 10}, {"x": 35, "y": 10}},
		})
	})

	out := New(srv.URL).RunAll(context.Background(), grid.Default())
	require.Len(t, out, 4)
	for i, algo := range Algorithms() {
		assert.Equal(t, algo, out[i].Algorithm)
	}
	assert.NoError(t, out[0].Err)
	assert.ErrorIs(t, out[1].Err, ErrRunFailed)
	assert.True(t, out[3].Result.Found())
}
