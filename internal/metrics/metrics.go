package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shareity"

// Registry holds every application metric plus the Go runtime and process collectors
var Registry = prometheus.NewRegistry()

var (
	// NotificationsCreated counts stored notifications by type
	NotificationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifier",
		Name:      "notifications_created_total",
		Help:      "Notifications stored, by notification type.",
	}, []string{"type"})

	// NotificationsDropped counts intents that could not be delivered
	NotificationsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifier",
		Name:      "notifications_dropped_total",
		Help:      "Notification intents dropped, by notification type.",
	}, []string{"type"})

	// MatcherIntents counts intents produced by the matcher
	MatcherIntents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "matcher",
		Name:      "intents_total",
		Help:      "Notification intents produced by the matcher, by notification type.",
	}, []string{"type"})

	// MatcherFailures counts matcher runs aborted by a panic or a store error
	MatcherFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "matcher",
		Name:      "failures_total",
		Help:      "Matcher runs that failed, by trigger.",
	}, []string{"trigger"})

	// DonationTransitions counts donation status changes by target status
	DonationTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "donations",
		Name:      "transitions_total",
		Help:      "Donation status transitions, by target status.",
	}, []string{"status"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		NotificationsCreated,
		NotificationsDropped,
		MatcherIntents,
		MatcherFailures,
		DonationTransitions,
	)
}

// Handler serves Registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
