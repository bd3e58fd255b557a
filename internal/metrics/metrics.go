// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"parcelhub/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParcelTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parcelhub_parcel_transitions_total",
		Help: "Parcel status changes committed, by target status.",
	},
		[]string{"status"},
	)

	TransitionRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parcelhub_transition_rejections_total",
		Help: "Rejected transition attempts, by error kind.",
	},
		[]string{"kind"},
	)

	CODReconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parcelhub_cod_reconciliations_total",
		Help: "COD reconciliation attempts, by outcome.",
	},
		[]string{"outcome"},
	)

	InvoicesGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parcelhub_invoices_generated_total",
		Help: "Brand invoices issued.",
	})

	InvoicesPaidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parcelhub_invoices_paid_total",
		Help: "Brand invoices marked paid.",
	})

	SalaryPaymentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parcelhub_salary_payments_total",
		Help: "Salary payments recorded.",
	})

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parcelhub_outbox_published_total",
		Help: "Change events delivered to the broker.",
	})

	UnreconciledCODAmount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parcelhub_unreconciled_cod_amount",
		Help: "Cash collected on delivery that a driver has not yet handed over, in PKR.",
	},
		[]string{"driver_id"},
	)
)

// ErrorKind labels an error for the rejection and outcome counters.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errs.IsValidation(err):
		return "validation"
	case errs.IsNotFound(err):
		return "not_found"
	case errs.IsConflict(err):
		return "conflict"
	case errs.IsUpstream(err):
		return "upstream"
	default:
		return "internal"
	}
}
