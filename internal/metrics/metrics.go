package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's Prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Ticks          *prometheus.CounterVec // by source (auto, manual) and result
	Triggers       *prometheus.CounterVec // manual triggers by kind (env, custom)
	LessonsOpened  *prometheus.CounterVec // by lesson_id
	LessonsDone    *prometheus.CounterVec // by lesson_id
	XPAwarded      prometheus.Counter
	QueueDepth     prometheus.Gauge
	AmbientEnabled prometheus.Gauge
	Resets         prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Ticks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudge_selection_attempts_total",
				Help: "Lesson selection attempts by outcome",
			},
			[]string{"source", "result"},
		),
		Triggers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudge_manual_triggers_total",
				Help: "Manual triggers by whether the tag is a configured environment tag",
			},
			[]string{"kind"},
		),
		LessonsOpened: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudge_lessons_opened_total",
				Help: "Lessons opened",
			},
			[]string{"lesson_id"},
		),
		LessonsDone: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudge_lessons_completed_total",
				Help: "Lessons marked complete",
			},
			[]string{"lesson_id"},
		),
		XPAwarded: f.NewCounter(prometheus.CounterOpts{
			Name: "nudge_xp_awarded_total",
			Help: "Experience points credited",
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "nudge_queue_depth",
			Help: "Pending lessons in the queue",
		}),
		AmbientEnabled: f.NewGauge(prometheus.GaugeOpts{
			Name: "nudge_ambient_enabled",
			Help: "1 while ambient mode is on",
		}),
		Resets: f.NewCounter(prometheus.CounterOpts{
			Name: "nudge_resets_total",
			Help: "State resets",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
