package services

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes used as metric labels
const (
	OutcomeSent           = "sent"
	OutcomeMissingToken   = "missing_token"
	OutcomeSecurityFailed = "security_failed"
	OutcomeInvalid        = "invalid"
	OutcomeMisconfigured  = "misconfigured"
	OutcomeRelayFailed    = "relay_failed"
)

// LeadMetrics exposes counters/histograms for the relay flow.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	recaptchaScore   prometheus.Histogram
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Relay requests by form and outcome",
		}, []string{"form", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "studio",
			Subsystem: "leads",
			Name:      "upstream_latency_seconds",
			Help:      "Latency of reCAPTCHA and Telegram calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream", "status"}),
		recaptchaScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "studio",
			Subsystem: "leads",
			Name:      "recaptcha_score",
			Help:      "Scores returned by reCAPTCHA v3",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.upstreamLatency, m.recaptchaScore)
	return m
}

func (m *LeadMetrics) ObserveSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, outcome).Inc()
}

func (m *LeadMetrics) ObserveUpstream(upstream string, ok bool, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.upstreamLatency.WithLabelValues(upstream, status).Observe(seconds)
}

func (m *LeadMetrics) ObserveRecaptchaScore(score float64) {
	if m == nil {
		return
	}
	m.recaptchaScore.Observe(score)
}
