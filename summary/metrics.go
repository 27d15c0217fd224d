package summary

import "github.com/prometheus/client_golang/prometheus"

var (
	summariesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "summary_emails_sent_total",
		Help: "Total number of maintenance summary emails delivered",
	})

	summariesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "summary_emails_skipped_total",
		Help: "Total number of users skipped (no bikes, no alerts, or no email address)",
	})

	summariesFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "summary_emails_failed_total",
		Help: "Total number of summary email deliveries that failed",
	})
)

// RegisterMetrics registers the dispatcher's counters with the process
// registry. Call once at startup.
func RegisterMetrics(reg *prometheus.Registry) {
	reg.MustRegister(summariesSent, summariesSkipped, summariesFailed)
}
