package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ChallengesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChallengesCreated,
			Help: HelpTextChallengesCreated,
		},
	)

	ChallengesResponded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChallengesResponded,
			Help: HelpTextChallengesResponded,
		},
		[]string{LabelDecision},
	)

	ChallengesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChallengesResolved,
			Help: HelpTextChallengesResolved,
		},
		[]string{LabelResult},
	)

	AggregateUpdateFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAggregateUpdateFailures,
			Help: HelpTextAggregateUpdateFailures,
		},
		[]string{LabelAggregate},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsSent,
			Help: HelpTextNotificationsSent,
		},
		[]string{LabelType},
	)

	SSEClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClientsConnected,
			Help: HelpTextSSEClientsConnected,
		},
	)
)
