package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the result label on news_operations_total.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var (
	NewsOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "news_operations_total",
		Help: "News operations by operation (get, list, create, update) and result.",
	}, []string{"operation", "result"})

	NewsValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "news_validation_failures_total",
		Help: "Rejected fields on news writes.",
	}, []string{"field"})

	NewsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_created_total",
		Help: "News items stored by create.",
	})
)

func RecordNewsOperation(operation, result string) {
	NewsOperationsTotal.WithLabelValues(operation, result).Inc()
}

func RecordNewsCreated() { NewsCreatedTotal.Inc() }

// RecordValidationFailure counts one rejected field; a request failing on
// title and content counts twice.
func RecordValidationFailure(field string) {
	NewsValidationFailuresTotal.WithLabelValues(field).Inc()
}
