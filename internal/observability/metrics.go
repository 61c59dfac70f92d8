package observability

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"obs-mapper/internal/form"
	"obs-mapper/internal/record"
	"obs-mapper/internal/validation"
)

var (
	registerOnce sync.Once

	recordsBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obs_mapper",
			Subsystem: "records",
			Name:      "built_total",
			Help:      "Records built from a form definition.",
		},
		[]string{"kind", "fallback"},
	)
	edits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obs_mapper",
			Subsystem: "tree",
			Name:      "edits_total",
			Help:      "Edit operations applied to a record tree.",
		},
		[]string{"op"},
	)
	validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obs_mapper",
			Subsystem: "validation",
			Name:      "failures_total",
			Help:      "Validation errors raised while editing.",
		},
		[]string{"severity"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(recordsBuilt, edits, validationFailures)
	})
}

func RecordBuilt(kind form.Kind, fallback bool) {
	RegisterMetrics()
	recordsBuilt.WithLabelValues(kind.String(), strconv.FormatBool(fallback)).Inc()
}

func RecordEdit(op string) {
	RegisterMetrics()
	edits.WithLabelValues(op).Inc()
}

func RecordValidationFailure(severity validation.Severity) {
	RegisterMetrics()
	validationFailures.WithLabelValues(severity.String()).Inc()
}

// Recorder forwards record tree events to the process metrics.
type Recorder struct{}

var _ record.Observer = Recorder{}

func (Recorder) RecordBuilt(kind form.Kind, fallback bool)     { RecordBuilt(kind, fallback) }
func (Recorder) Edited(op string)                              { RecordEdit(op) }
func (Recorder) ValidationFailed(severity validation.Severity) { RecordValidationFailure(severity) }

// WriteTextfile dumps the registered metrics in the text exposition format,
// for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	RegisterMetrics()

	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}

	return nil
}
