// Package metrics defines and registers all custom Prometheus metrics for the
// techNotes API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/technotes/notes-api/internal/core/domain"
)

const namespace = "technotes"

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordMutationsTotal counts create/update/delete attempts.
// Labels:
//   - entity: "user" or "note"
//   - op: "create", "update" or "delete"
//   - outcome: see Outcome
var RecordMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_mutations_total",
		Help:      "Total number of record mutations, by entity, operation and outcome.",
	},
	[]string{"entity", "op", "outcome"},
)

// ── Join metrics ──────────────────────────────────────────────────────────────

// OwnerFallbackTotal counts notes listed with the "Unknown" owner placeholder.
var OwnerFallbackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "note_owner_fallback_total",
		Help:      "Total number of listed notes whose owner could not be resolved.",
	},
)

// UsernameCacheTotal counts username cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var UsernameCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "username_cache_total",
		Help:      "Total number of username cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// Outcome maps an operation error to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidData):
		return "invalid_data"
	default:
		return "error"
	}
}

// ObserveMutation records one mutation attempt.
func ObserveMutation(entity, op string, err error) {
	RecordMutationsTotal.WithLabelValues(entity, op, Outcome(err)).Inc()
}
