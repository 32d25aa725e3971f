package notifier

import "github.com/mauv0809/padel-tournament/internal/padel"

// Notifier defines a high-level interface for sending notifications about tournament events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded results
	SendResultNotification(match *padel.MatchWithTeams, dryRun bool) error
	// For group tables, either on demand or from the digest
	SendStandings(title string, rows []padel.Standing, dryRun bool) error
	// For a decided final
	SendChampion(category string, team *padel.Team, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(title string, rows []padel.Standing) (any, error)
}
