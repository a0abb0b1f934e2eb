package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

const namespace = "videoedit"

// Metrics düzenleme, dışa aktarma ve betik sayaçlarını tutar.
type Metrics struct {
	registry *prometheus.Registry

	editOps         *prometheus.CounterVec
	historyDepth    *prometheus.GaugeVec
	virtualDuration prometheus.Gauge
	segments        prometheus.Gauge
	exports         *prometheus.CounterVec
	exportDuration  prometheus.Histogram
	scripts         *prometheus.CounterVec
}

// New kendi registry'si olan bir Metrics oluşturur.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		editOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edit_operations_total",
			Help:      "Applied timeline operations by type.",
		}, []string{"op"}),
		historyDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_depth",
			Help:      "Current undo/redo stack depth.",
		}, []string{"stack"}),
		virtualDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "virtual_duration_seconds",
			Help:      "Length of the most recently edited virtual timeline.",
		}),
		segments: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kept_segments",
			Help:      "Number of kept source intervals after the last edit.",
		}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Export attempts by result.",
		}, []string{"status"}),
		exportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Wall time of successful ffmpeg exports.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		scripts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "script_runs_total",
			Help:      "Edit script runs by result.",
		}, []string{"status"}),
	}
}

// Observer timeline.WithObserver ile bağlanacak fonksiyonu döner.
func (m *Metrics) Observer() func(timeline.Change) {
	return func(c timeline.Change) {
		m.editOps.WithLabelValues(string(c.Op)).Inc()
		m.historyDepth.WithLabelValues("undo").Set(float64(c.UndoDepth))
		m.historyDepth.WithLabelValues("redo").Set(float64(c.RedoDepth))
		if c.After != nil {
			m.virtualDuration.Set(c.After.TotalDuration().Seconds())
			m.segments.Set(float64(c.After.Len()))
		}
	}
}

// ObserveExport bir dışa aktarma sonucunu kaydeder (success|skipped|failed).
func (m *Metrics) ObserveExport(status string, elapsed time.Duration) {
	m.exports.WithLabelValues(status).Inc()
	if status == "success" && elapsed > 0 {
		m.exportDuration.Observe(elapsed.Seconds())
	}
}

// ObserveScript bir betik çalıştırma sonucunu kaydeder.
func (m *Metrics) ObserveScript(status string) {
	m.scripts.WithLabelValues(status).Inc()
}

// Handler /metrics uç noktasıdır.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve ctx iptal edilene kadar addr üzerinde /metrics yayınlar.
// ready nil değilse dinlenen gerçek adres gönderilir.
func (m *Metrics) Serve(ctx context.Context, addr string, ready chan<- string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics adresi dinlenemedi (%s): %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
