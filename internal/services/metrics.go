package services

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics counts brand kit generations and the steps that fell
// back to defaults. A nil *PipelineMetrics records nothing.
type PipelineMetrics struct {
	generations *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandforge_brand_kit_generations_total",
				Help: "Brand kit generation requests by outcome.",
			},
			[]string{"outcome"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandforge_brand_kit_step_fallbacks_total",
				Help: "Pipeline steps that failed and were replaced by a default.",
			},
			[]string{"step"},
		),
	}

	reg.MustRegister(m.generations, m.fallbacks)
	return m
}

func (m *PipelineMetrics) generation(outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
}

func (m *PipelineMetrics) fallback(step string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(step).Inc()
}
