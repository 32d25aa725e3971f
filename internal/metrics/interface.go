package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	AddMatchesGenerated(n int)
	AddPlaceholdersGenerated(n int)
	IncResultsRecorded(phase string)
	IncResultsRejected(reason string)
	IncBracketAdvancements()
	ObserveStandingsDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetLiveConnections(n int)
	SetStartupTime(duration float64)
}
