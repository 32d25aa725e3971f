package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	matchesGenerated      int
	placeholdersGenerated int
	resultsRecorded       map[string]int
	resultsRejected       map[string]int
	bracketAdvancements   int
	standingsDurations    []float64
	slackNotifSent        int
	slackNotifFailed      int
	liveConnections       int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		resultsRecorded:    make(map[string]int),
		resultsRejected:    make(map[string]int),
		standingsDurations: make([]float64, 0),
	}
}

func (m *Mock) AddMatchesGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesGenerated += n
}

func (m *Mock) AddPlaceholdersGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placeholdersGenerated += n
}

func (m *Mock) IncResultsRecorded(phase string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded[phase]++
}

func (m *Mock) IncResultsRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRejected[reason]++
}

func (m *Mock) IncBracketAdvancements() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bracketAdvancements++
}

func (m *Mock) ObserveStandingsDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.standingsDurations = append(m.standingsDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetLiveConnections(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liveConnections = n
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesGenerated returns the sum passed to AddMatchesGenerated.
func (m *Mock) MatchesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesGenerated
}

// PlaceholdersGenerated returns the sum passed to AddPlaceholdersGenerated.
func (m *Mock) PlaceholdersGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placeholdersGenerated
}

// ResultsRecorded returns the number of results recorded for a phase.
func (m *Mock) ResultsRecorded(phase string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded[phase]
}

// ResultsRejected returns the number of results refused for a reason.
func (m *Mock) ResultsRejected(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRejected[reason]
}

// BracketAdvancements returns the number of times IncBracketAdvancements was called.
func (m *Mock) BracketAdvancements() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bracketAdvancements
}

// StandingsRecomputations returns how many standings durations were observed.
func (m *Mock) StandingsRecomputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.standingsDurations)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// LiveConnections returns the last value passed to SetLiveConnections.
func (m *Mock) LiveConnections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveConnections
}
