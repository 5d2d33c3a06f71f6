package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the contact pipeline
type Metrics struct {
	Submissions      *prometheus.CounterVec
	SpamScore        prometheus.Histogram
	RateLimited      prometheus.Counter
	GlobalThrottled  prometheus.Counter
	DispatchDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contactform_submissions_total",
			Help: "Total number of contact submissions by pipeline outcome",
		}, []string{"outcome"}),
		SpamScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "contactform_spam_score",
			Help:    "Spam score of submissions that reached the detector",
			Buckets: []float64{0, 10, 25, 40, 50, 75, 100, 150},
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "contactform_ratelimit_rejections_total",
			Help: "Total number of submissions rejected by the per-client rate limit",
		}),
		GlobalThrottled: factory.NewCounter(prometheus.CounterOpts{
			Name: "contactform_global_throttled_total",
			Help: "Total number of requests rejected by the process-wide burst guard",
		}),
		DispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "contactform_mail_dispatch_seconds",
			Help:    "Time spent handing a message to the mail provider",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementSubmission counts one submission with the given outcome label
func (m *Metrics) IncrementSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ObserveSpamScore records a detector score
func (m *Metrics) ObserveSpamScore(score int) {
	if m == nil {
		return
	}
	m.SpamScore.Observe(float64(score))
}

// IncrementRateLimited counts one per-client rate limit rejection
func (m *Metrics) IncrementRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

// IncrementGlobalThrottled counts one burst guard rejection
func (m *Metrics) IncrementGlobalThrottled() {
	if m == nil {
		return
	}
	m.GlobalThrottled.Inc()
}

// ObserveDispatch records how long a mail dispatch took
func (m *Metrics) ObserveDispatch(seconds float64) {
	if m == nil {
		return
	}
	m.DispatchDuration.Observe(seconds)
}
