package tui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-canvas/internal/render"
)

var (
	metricFramesPresented = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "canvas",
		Name:      "frames_presented_total",
		Help:      "Frames presented, by presentation mode.",
	}, []string{"mode"})
	metricBytesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "canvas",
		Name:      "bytes_written_total",
		Help:      "Bytes accepted by canvas sinks.",
	})
	metricDirtyRegions = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "canvas",
		Name:      "dirty_regions",
		Help:      "Merged dirty regions per dirty-path frame.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
	metricOutputDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "canvas",
		Name:      "output_dropped_total",
		Help:      "Output pieces skipped because the frame buffer was full.",
	})
	metricSinkErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "canvas",
		Name:      "sink_errors_total",
		Help:      "Frames whose sink write failed.",
	})
	metricActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "canvas",
		Name:      "sessions_active",
		Help:      "Players currently running.",
	})
)

// ObserveFrame records one presentation.
func ObserveFrame(stats render.FrameStats) {
	metricFramesPresented.WithLabelValues(stats.Mode.String()).Inc()
	metricBytesWritten.Add(float64(stats.Bytes))
	if stats.Mode == render.PresentDirty {
		metricDirtyRegions.Observe(float64(stats.Regions))
	}
	if stats.Dropped > 0 {
		metricOutputDropped.Add(float64(stats.Dropped))
	}
	if stats.Err != nil {
		metricSinkErrors.Inc()
	}
}

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// ServeMetrics exposes /metrics on addr until ctx is cancelled.
func ServeMetrics(ctx context.Context, addr string, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           MetricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
