package game

import (
	"context"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net"
	"net/http"
	"time"
)

// Metrics are kept on a registry owned by the session, so several sessions
// (and tests) never collide.
type Metrics struct {
	Registry     *prometheus.Registry
	RaysCast     prometheus.Counter
	RayHits      prometheus.Counter
	FrameSeconds prometheus.Histogram
	BlockEdits   *prometheus.CounterVec
	PlayerState  prometheus.Gauge
	Respawns     prometheus.Counter

	server *http.Server
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RaysCast: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "termcraft_rays_cast_total",
			Help: "Rays cast for rendering, selection and physics.",
		}),
		RayHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "termcraft_ray_hits_total",
			Help: "Rendered rays that struck a block.",
		}),
		FrameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "termcraft_frame_seconds",
			Help:    "Frame delta time.",
			Buckets: []float64{0.005, 0.01, 0.02, 0.033, 0.05, 0.1, 0.25, 0.5},
		}),
		BlockEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "termcraft_block_edits_total",
			Help: "Blocks created or deleted by the player.",
		}, []string{"op"}),
		PlayerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "termcraft_player_state",
			Help: "0 while grounded, 1 while airborne.",
		}),
		Respawns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "termcraft_respawns_total",
			Help: "Times the player fell out of the world.",
		}),
	}
	m.Registry.MustRegister(m.RaysCast, m.RayHits, m.FrameSeconds, m.BlockEdits, m.PlayerState, m.Respawns)
	return m
}

func (m *Metrics) ObserveRays(cast, hits int) {
	m.RaysCast.Add(float64(cast))
	m.RayHits.Add(float64(hits))
}

func (m *Metrics) ObserveFrame(deltaTime float64) {
	m.FrameSeconds.Observe(deltaTime)
}

func (m *Metrics) ObserveEdit(op string) {
	m.BlockEdits.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveState(state PlayerState) {
	m.PlayerState.Set(float64(state))
}

// Serve exposes /metrics on addr until Close is called.
func (m *Metrics) Serve(addr string) (net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen for metrics on %s", addr)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	m.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := m.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			util.LogSystemError("[Metrics] " + err.Error())
		}
	}()
	util.LogSystemInfo("[Metrics] Serving on " + listener.Addr().String())
	return listener.Addr(), nil
}

func (m *Metrics) Close(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return errors.Wrap(m.server.Shutdown(ctx), "stop metrics server")
}
