package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameChallengesCreated       = "challenges_created_total"
	MetricNameChallengesResponded     = "challenges_responded_total"
	MetricNameChallengesResolved      = "challenges_resolved_total"
	MetricNameAggregateUpdateFailures = "aggregate_update_failures_total"
	MetricNameNotificationsSent       = "notifications_sent_total"
	MetricNameSSEClientsConnected     = "sse_clients_connected"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextChallengesCreated       = "Total number of challenges created"
	HelpTextChallengesResponded     = "Total number of challenge responses by decision"
	HelpTextChallengesResolved      = "Total number of challenges resolved by result"
	HelpTextAggregateUpdateFailures = "Total number of failed statistics aggregate updates"
	HelpTextNotificationsSent       = "Total number of realtime notifications sent"
	HelpTextSSEClientsConnected     = "Current number of connected SSE clients"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelResult    = "result"
	LabelDecision  = "decision"
	LabelAggregate = "aggregate"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
