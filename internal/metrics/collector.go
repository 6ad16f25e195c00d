package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records run outcomes. It satisfies client.Observer.
type Collector struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	visited  *prometheus.HistogramVec
	path     *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathviz_runs_total",
				Help: "Algorithm runs by outcome",
			},
			[]string{"algorithm", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathviz_run_duration_seconds",
				Help:    "Round trip time of algorithm service calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"algorithm"},
		),
		visited: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathviz_visited_nodes",
				Help:    "Length of the visited trace per successful run",
				Buckets: prometheus.ExponentialBuckets(8, 2, 8),
			},
			[]string{"algorithm"},
		),
		path: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathviz_path_nodes",
				Help:    "Length of the found path per successful run",
				Buckets: prometheus.LinearBuckets(0, 10, 10),
			},
			[]string{"algorithm"},
		),
	}
	if reg != nil {
		reg.MustRegister(c.runs, c.duration, c.visited, c.path)
	}
	return c
}

func (c *Collector) ObserveRun(algo, outcome string, elapsed time.Duration, visited, path int) {
	c.runs.WithLabelValues(algo, outcome).Inc()
	c.duration.WithLabelValues(algo).Observe(elapsed.Seconds())
	if outcome != "failed" {
		c.visited.WithLabelValues(algo).Observe(float64(visited))
		c.path.WithLabelValues(algo).Observe(float64(path))
	}
}

// NewHandler serves reg at /metrics and a liveness probe at /healthz.
func NewHandler(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Serve exposes reg on addr until ctx is done.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry) error {
	srv := &http.Server{Addr: addr, Handler: NewHandler(reg), ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
