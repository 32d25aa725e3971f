package store

import "github.com/mauv0809/padel-tournament/internal/padel"

// Store is the repository behind the tournament service. Lookups of a missing
// row return padel.ErrNotFound and uniqueness violations padel.ErrConflict.
type Store interface {
	CreateCategory(c *padel.Category) error
	GetCategory(id string) (*padel.Category, error)
	ListCategories() ([]padel.Category, error)
	DeleteCategory(id string) error

	CreateTeam(t *padel.Team) error
	UpdateTeam(t *padel.Team) error
	GetTeam(id string) (*padel.Team, error)
	ListTeams(category string) ([]padel.Team, error)
	CountTeams(category string) (int, error)
	DeleteTeam(id string) error

	CreateGroup(g *padel.Group) error
	GetGroup(id string) (*padel.GroupWithTeams, error)
	ListGroups(category string) ([]padel.GroupWithTeams, error)
	DeleteGroup(id string) error
	AddTeamToGroup(groupID, teamID string) error
	RemoveTeamFromGroup(groupID, teamID string) error

	CreateMatches(matches []*padel.Match) error
	GetMatch(id string) (*padel.Match, error)
	UpdateMatches(matches []*padel.Match) error
	ListMatches(filter MatchFilter) ([]padel.Match, error)
	ListMatchesWithTeams(filter MatchFilter) ([]padel.MatchWithTeams, error)
	DeleteMatches(filter MatchFilter) (int, error)

	ReplaceStandings(groupID string, rows []padel.Standing) error
	ListStandings(groupID string) ([]padel.Standing, error)

	CreatePrize(p *padel.Prize) error
	UpdatePrize(p *padel.Prize) error
	ListPrizes(category string) ([]padel.Prize, error)

	CreateTournament(t *padel.Tournament) error
	ListTournaments() ([]padel.Tournament, error)
}
