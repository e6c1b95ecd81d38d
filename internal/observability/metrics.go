// Package observability holds the Prometheus instrumentation.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	userPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_tracker",
		Subsystem: "persistence",
		Name:      "last_user_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent user persisted to Postgres.",
	})
	exercisePersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_tracker",
		Subsystem: "persistence",
		Name:      "last_exercise_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent exercise entry persisted to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(userPersistGauge, exercisePersistGauge)
}

// RecordUserPersisted updates the user persistence watermark gauge.
func RecordUserPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	userPersistGauge.Set(float64(ts.Unix()))
}

// RecordExercisePersisted updates the exercise persistence watermark gauge.
func RecordExercisePersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	exercisePersistGauge.Set(float64(ts.Unix()))
}
