package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesGenerated      prometheus.Counter
	PlaceholdersGenerated prometheus.Counter
	ResultsRecorded       *prometheus.CounterVec
	ResultsRejected       *prometheus.CounterVec
	BracketAdvancements   prometheus.Counter
	StandingsDuration     prometheus.Histogram
	SlackNotifSent        prometheus.Counter
	SlackNotifFailed      prometheus.Counter
	LiveConnections       prometheus.Gauge
	StartupTimeSeconds    prometheus.Gauge
}
