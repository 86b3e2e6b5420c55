package pagination

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels of news_pages_total.
const (
	OutcomeServed   = "served"
	OutcomeRejected = "rejected" // bad page or filter
	OutcomeFailed   = "failed"   // store error
)

var (
	pagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_pages_total",
			Help: "List requests by outcome and requested page depth",
		},
		[]string{"outcome", "depth"},
	)

	pageSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_page_duration_seconds",
			Help:    "Time to produce one page of news, by stage",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"stage"},
	)

	matchingTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "news_list_matching_total",
		Help: "News matching the filter of the most recent list request",
	})

	pastEndTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_pages_past_end_total",
		Help: "List requests for a page after the last one",
	})
)

// depth buckets the requested page so deep crawls stand out without one
// series per page number.
func depth(page int) string {
	switch {
	case page <= 1:
		return "1"
	case page <= 10:
		return "2-10"
	case page <= 100:
		return "11-100"
	default:
		return "100+"
	}
}

// CountPage counts one list request.
func CountPage(outcome string, page int) {
	pagesTotal.WithLabelValues(outcome, depth(page)).Inc()
}

// ObserveStage records how long stage ("handler", "service") took.
func ObserveStage(stage string, took time.Duration) {
	pageSeconds.WithLabelValues(stage).Observe(took.Seconds())
}

// ObserveTotal records the match count of a list request and whether the
// requested page lies past its end.
func ObserveTotal(params Params, total int64) {
	matchingTotal.Set(float64(total))
	if params.Page > 1 && params.PastEnd(total) {
		pastEndTotal.Inc()
	}
}

