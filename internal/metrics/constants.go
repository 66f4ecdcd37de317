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
	MetricNameCheckoutsTotal       = "checkouts_total"
	MetricNameCreditsSpent         = "credits_spent_total"
	MetricNameItemsPurchased       = "items_purchased_total"
	MetricNameItemsEquipped        = "items_equipped_total"
	MetricNameXPAwarded            = "xp_awarded_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameSignupsTotal         = "signups_total"
	MetricNameLoginsTotal          = "logins_total"
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
	HelpTextCheckoutsTotal       = "Total number of checkout attempts by result"
	HelpTextCreditsSpent         = "Total credits spent on completed checkouts"
	HelpTextItemsPurchased       = "Total number of items purchased"
	HelpTextItemsEquipped        = "Total number of items equipped by slot"
	HelpTextXPAwarded            = "Total experience points awarded"
	HelpTextAchievementsUnlocked = "Total achievements unlocked"
	HelpTextSignupsTotal         = "Total number of account signups"
	HelpTextLoginsTotal          = "Total number of login attempts by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelItem   = "item"
	LabelSlot   = "slot"
	LabelResult = "result"
)

// Result label values
const (
	ResultSuccess  = "success"
	ResultDeclined = "declined"
	ResultFailure  = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
