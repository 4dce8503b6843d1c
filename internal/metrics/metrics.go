// Package metrics holds the Prometheus collectors shared by the board and
// the activities API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeTransport = "transport_error"
)

var (
	boardOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_board",
		Subsystem: "board",
		Name:      "operations_total",
		Help:      "Board operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	enrollments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_board",
		Subsystem: "api",
		Name:      "enrollment_changes_total",
		Help:      "Signup and unregister requests handled by the API, by outcome.",
	}, []string{"operation", "outcome"})
)

func init() {
	prometheus.MustRegister(boardOperations, enrollments)
}

// RecordBoardOperation counts one board operation (load, signup, unregister).
func RecordBoardOperation(operation, outcome string) {
	boardOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordEnrollment counts one API-side signup or unregister.
func RecordEnrollment(operation, outcome string) {
	enrollments.WithLabelValues(operation, outcome).Inc()
}
