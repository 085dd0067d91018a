package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the turn inference core.
type Metrics struct {
	TurnsTotal          *prometheus.CounterVec
	TurnStageLatency    *prometheus.HistogramVec
	WorkerRestarts      *prometheus.CounterVec
	WorkerState         *prometheus.GaugeVec
	QualityGateRejects  *prometheus.CounterVec
	SubstitutionsTotal  *prometheus.CounterVec
	EmotionConfidence   prometheus.Histogram
	CombinedConfidence  prometheus.Histogram
	turnStageWindow     *turnStageWindow
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TurnsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Completed turns by outcome (ok, degraded, deadline_exceeded).",
		}, []string{"outcome"}),
		TurnStageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_stage_latency_ms",
			Help:      "Per-stage turn latency in milliseconds.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2000, 3000, 5000, 8000, 10000, 20000},
		}, []string{"stage"}),
		WorkerRestarts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_restarts_total",
			Help:      "Worker process restarts by worker kind and reason.",
		}, []string{"worker", "reason"}),
		WorkerState: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_state",
			Help:      "1 if the worker is currently in the labeled state, else 0.",
		}, []string{"worker", "state"}),
		QualityGateRejects: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "response_quality_gate_rejections_total",
			Help:      "Response candidates rejected by the quality gate, by reason.",
		}, []string{"reason"}),
		SubstitutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_substitutions_total",
			Help:      "Stage-local fallback substitutions by stage and cause.",
		}, []string{"stage", "cause"}),
		EmotionConfidence: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "emotion_confidence",
			Help:      "Text-path emotion classification confidence.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95},
		}),
		CombinedConfidence: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "combined_emotion_confidence",
			Help:      "Fused text+voice emotion confidence.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95},
		}),
		turnStageWindow: newTurnStageWindow(256),
	}
}

func (m *Metrics) ObserveTurnOutcome(outcome string) {
	if m == nil || m.TurnsTotal == nil {
		return
	}
	m.TurnsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveTurnStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	ms := float64(d.Milliseconds())
	m.TurnStageLatency.WithLabelValues(stage).Observe(ms)
	m.turnStageWindow.Observe(stage, ms)
}

func (m *Metrics) ObserveWorkerRestart(worker, reason string) {
	if m == nil || m.WorkerRestarts == nil {
		return
	}
	m.WorkerRestarts.WithLabelValues(worker, reason).Inc()
}

func (m *Metrics) SetWorkerState(worker, state string, active bool) {
	if m == nil || m.WorkerState == nil {
		return
	}
	v := 0.0
	if active {
		v = 1.0
	}
	m.WorkerState.WithLabelValues(worker, state).Set(v)
}

func (m *Metrics) ObserveQualityGateReject(reason string) {
	if m == nil || m.QualityGateRejects == nil {
		return
	}
	m.QualityGateRejects.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveSubstitution(stage, cause string) {
	if m == nil || m.SubstitutionsTotal == nil {
		return
	}
	m.SubstitutionsTotal.WithLabelValues(stage, cause).Inc()
	m.turnStageWindow.ObserveIndicator(stage + ":" + cause)
}

func (m *Metrics) ObserveEmotionConfidence(c float64) {
	if m == nil || m.EmotionConfidence == nil {
		return
	}
	m.EmotionConfidence.Observe(c)
}

func (m *Metrics) ObserveCombinedConfidence(c float64) {
	if m == nil || m.CombinedConfidence == nil {
		return
	}
	m.CombinedConfidence.Observe(c)
}

func (m *Metrics) SnapshotTurnStages() TurnStageSnapshot {
	if m == nil || m.turnStageWindow == nil {
		return TurnStageSnapshot{}
	}
	return m.turnStageWindow.Snapshot()
}

func (m *Metrics) ResetTurnStages() {
	if m == nil || m.turnStageWindow == nil {
		return
	}
	m.turnStageWindow.Reset()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
