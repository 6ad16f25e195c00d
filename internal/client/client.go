// Package client talks to the external pathfinding service.
//
// A single POST to /run-algorithm carries the wall bitmap and endpoints; the
// response holds the visitation trace and the found path. Each call is one
// attempt: failures come back as *RunFailedError and are never retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/san-kum/pathviz/internal/grid"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000"
	RunPath        = "/run-algorithm"
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 16 << 20
)

// Result is the ordered output of one algorithm run.
type Result struct {
	Visited []grid.Coord
	Path    []grid.Coord
}

// Found reports whether the service returned a path.
func (r Result) Found() bool { return len(r.Path) > 0 }

// Observer receives one notification per finished run.
type Observer interface {
	ObserveRun(algo string, outcome string, elapsed time.Duration, visited, path int)
}

type Client struct {
	baseURL  string
	http     *http.Client
	log      *slog.Logger
	observer Observer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the timeout of the default HTTP client. It has no effect
// after WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Request is the wire form of a run request.
type Request struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Grid      [][]int `json:"grid"`
	Start     point   `json:"start"`
	End       point   `json:"end"`
	Algorithm string  `json:"algorithm"`
}

// response keeps both traces as pointers so a missing or null key is told
// apart from an empty list.
type response struct {
	Visited *[]point `json:"visited_nodes"`
	Path    *[]point `json:"path"`
	Error   string   `json:"error,omitempty"`
}

type errorBody struct {
	Detail any `json:"detail"`
}

// NewRequest snapshots g into a request for algo.
func NewRequest(g grid.Grid, algo Algorithm) Request {
	return Request{
		Width:     g.Width(),
		Height:    g.Height(),
		Grid:      g.Walls(),
		Start:     toPoint(g.Start()),
		End:       toPoint(g.Finish()),
		Algorithm: string(algo),
	}
}

// Run sends one request for g and decodes the trace.
func (c *Client) Run(ctx context.Context, g grid.Grid, algo Algorithm) (Result, error) {
	started := time.Now()
	res, err := c.run(ctx, g, algo)
	elapsed := time.Since(started)

	outcome := "ok"
	if err != nil {
		outcome = "failed"
		c.log.Warn("run failed", "algorithm", algo, "elapsed", elapsed, "error", err)
	} else {
		if !res.Found() {
			outcome = "no_path"
		}
		c.log.Info("run finished", "algorithm", algo, "elapsed", elapsed,
			"visited", len(res.Visited), "path", len(res.Path))
	}
	if c.observer != nil {
		c.observer.ObserveRun(string(algo), outcome, elapsed, len(res.Visited), len(res.Path))
	}
	return res, err
}

func (c *Client) run(ctx context.Context, g grid.Grid, algo Algorithm) (Result, error) {
	payload, err := json.Marshal(NewRequest(g, algo))
	if err != nil {
		return Result{}, &RunFailedError{Message: genericFailure, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RunPath, bytes.NewReader(payload))
	if err != nil {
		return Result{}, &RunFailedError{Message: genericFailure, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("dispatching run", "url", req.URL.String(), "algorithm", algo, "walls", g.WallCount())
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, &RunFailedError{Message: fmt.Sprintf("%s: %v", genericFailure, err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, &RunFailedError{Status: resp.StatusCode, Message: genericFailure, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &RunFailedError{
			Status:  resp.StatusCode,
			Message: errorMessage(body),
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Result{}, &RunFailedError{Status: resp.StatusCode, Message: "malformed response from algorithm service", Err: err}
	}
	if decoded.Error != "" && decoded.Visited == nil && decoded.Path == nil {
		return Result{}, &RunFailedError{Status: resp.StatusCode, Message: decoded.Error}
	}
	if decoded.Visited == nil || decoded.Path == nil {
		return Result{}, &RunFailedError{
			Status:  resp.StatusCode,
			Message: "malformed response from algorithm service",
			Err:     errors.New("visited_nodes and path are required"),
		}
	}

	visited, err := toCoords(g, *decoded.Visited)
	if err != nil {
		return Result{}, &RunFailedError{Status: resp.StatusCode, Message: "malformed response from algorithm service", Err: err}
	}
	path, err := toCoords(g, *decoded.Path)
	if err != nil {
		return Result{}, &RunFailedError{Status: resp.StatusCode, Message: "malformed response from algorithm service", Err: err}
	}
	return Result{Visited: visited, Path: path}, nil
}

// errorMessage prefers a string detail embedded in an error body.
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return genericFailure
	}
	if s, ok := eb.Detail.(string); ok && s != "" {
		return s
	}
	return genericFailure
}

func toPoint(c grid.Coord) point {
	return point{X: c.Col, Y: c.Row}
}

func toCoords(g grid.Grid, pts []point) ([]grid.Coord, error) {
	out := make([]grid.Coord, len(pts))
	for i, p := range pts {
		c := grid.Coord{Row: p.Y, Col: p.X}
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: %s at index %d", grid.ErrOutOfBounds, c, i)
		}
		out[i] = c
	}
	return out, nil
}
