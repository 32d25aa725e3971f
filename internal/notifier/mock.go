package notifier

import (
	"sync"

	"github.com/mauv0809/padel-tournament/internal/padel"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultNotificationCalls []*padel.MatchWithTeams
	SendStandingsCalls          []StandingsCall
	SendChampionCalls           []ChampionCall

	// Spies
	SendResultNotificationFunc  func(match *padel.MatchWithTeams, dryRun bool) error
	SendStandingsFunc           func(title string, rows []padel.Standing, dryRun bool) error
	FormatStandingsResponseFunc func(title string, rows []padel.Standing) (any, error)
}

type StandingsCall struct {
	Title  string
	Rows   []padel.Standing
	DryRun bool
}

type ChampionCall struct {
	Category string
	Team     *padel.Team
	DryRun   bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendStandingsCalls = nil
	m.SendChampionCalls = nil
}

func (m *Mock) SendResultNotification(match *padel.MatchWithTeams, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, match)
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(title string, rows []padel.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, StandingsCall{Title: title, Rows: rows, DryRun: dryRun})
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(title, rows, dryRun)
	}
	return nil
}

func (m *Mock) SendChampion(category string, team *padel.Team, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChampionCalls = append(m.SendChampionCalls, ChampionCall{Category: category, Team: team, DryRun: dryRun})
	return nil
}

func (m *Mock) FormatStandingsResponse(title string, rows []padel.Standing) (any, error) {
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(title, rows)
	}
	return title, nil
}

// ResultCalls returns a copy of the recorded result notifications.
func (m *Mock) ResultCalls() []*padel.MatchWithTeams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*padel.MatchWithTeams(nil), m.SendResultNotificationCalls...)
}

// StandingsCalls returns a copy of the recorded standings messages.
func (m *Mock) StandingsCalls() []StandingsCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]StandingsCall(nil), m.SendStandingsCalls...)
}

// ChampionCalls returns a copy of the recorded champion messages.
func (m *Mock) ChampionCalls() []ChampionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChampionCall(nil), m.SendChampionCalls...)
}
