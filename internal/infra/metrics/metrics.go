// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"errors"

	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "decor",
		Subsystem: "catalog",
		Name:      "writes_total",
		Help:      "Create/update calls by entity, operation and result.",
	}, []string{"entity", "op", "result"})

	RecalcProducts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "decor",
		Subsystem: "pricing",
		Name:      "recalc_products_total",
		Help:      "Products handled by price recalculation, by outcome (updated|skipped).",
	}, []string{"outcome"})

	RecalcRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "decor",
		Subsystem: "pricing",
		Name:      "recalc_runs_total",
		Help:      "Price recalculation batches by result.",
	}, []string{"result"})

	RecalcDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "decor",
		Subsystem: "pricing",
		Name:      "recalc_duration_seconds",
		Help:      "Wall time of a price recalculation batch.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Result maps an error to a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errs.IsValidation(err):
		return "invalid"
	case errors.Is(err, errs.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
