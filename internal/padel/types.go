package padel

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Phase is the stage of the tournament a match belongs to.
type Phase string

const (
	PhaseGroup        Phase = "group"
	PhaseRoundOf16    Phase = "round_of_16"
	PhaseQuarterfinal Phase = "quarterfinal"
	PhaseSemifinal    Phase = "semifinal"
	PhaseFinal        Phase = "final"
)

var knockoutOrder = []Phase{PhaseRoundOf16, PhaseQuarterfinal, PhaseSemifinal, PhaseFinal}

func (p Phase) Valid() bool {
	return p == PhaseGroup || p.IsKnockout()
}

func (p Phase) IsKnockout() bool {
	for _, k := range knockoutOrder {
		if p == k {
			return true
		}
	}
	return false
}

// Next returns the knockout phase fed by p. The final and the group phase have none.
func (p Phase) Next() (Phase, bool) {
	for i, k := range knockoutOrder[:len(knockoutOrder)-1] {
		if p == k {
			return knockoutOrder[i+1], true
		}
	}
	return "", false
}

// KnockoutPhases lists the phases of a bracket with size teams, first round first.
func KnockoutPhases(size int) ([]Phase, error) {
	switch size {
	case 16:
		return []Phase{PhaseRoundOf16, PhaseQuarterfinal, PhaseSemifinal, PhaseFinal}, nil
	case 8:
		return []Phase{PhaseQuarterfinal, PhaseSemifinal, PhaseFinal}, nil
	case 4:
		return []Phase{PhaseSemifinal, PhaseFinal}, nil
	}
	return nil, fmt.Errorf("%w: %d teams", ErrUnsupportedBracketSize, size)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Side identifies one of the two slots of a match.
type Side string

const (
	SideNone Side = ""
	SideA    Side = "a"
	SideB    Side = "b"
)

func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "a":
		return SideA, nil
	case "b":
		return SideB, nil
	}
	return SideNone, fmt.Errorf("%w: unknown side %q", ErrInvalidInput, s)
}

func (s Side) Other() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	}
	return SideNone
}

// MatchRef addresses a knockout match by phase and position within that phase.
type MatchRef struct {
	Phase    Phase `json:"phase"`
	Position int   `json:"position"`
}

func (r MatchRef) String() string {
	return string(r.Phase) + ":" + strconv.Itoa(r.Position)
}

func ParseMatchRef(s string) (MatchRef, error) {
	phase, pos, ok := strings.Cut(s, ":")
	if !ok {
		return MatchRef{}, fmt.Errorf("%w: malformed match reference %q", ErrInvalidInput, s)
	}
	position, err := strconv.Atoi(pos)
	if err != nil || position < 0 || !Phase(phase).IsKnockout() {
		return MatchRef{}, fmt.Errorf("%w: malformed match reference %q", ErrInvalidInput, s)
	}
	return MatchRef{Phase: Phase(phase), Position: position}, nil
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	MaxTeams    *int      `json:"max_teams,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Player1   string    `json:"player1_name"`
	Player2   string    `json:"player2_name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the fields every registered team must carry.
func (t Team) Validate() error {
	var missing []string
	if strings.TrimSpace(t.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(t.Player1) == "" {
		missing = append(missing, "player1_name")
	}
	if strings.TrimSpace(t.Player2) == "" {
		missing = append(missing, "player2_name")
	}
	if strings.TrimSpace(t.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GroupWithTeams struct {
	Group
	Teams []Team `json:"teams"`
}

func (g GroupWithTeams) TeamIDs() []string {
	ids := make([]string, len(g.Teams))
	for i, t := range g.Teams {
		ids[i] = t.ID
	}
	return ids
}

func (g GroupWithTeams) HasTeam(teamID string) bool {
	for _, t := range g.Teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

// MatchWithTeams is a match joined with its team and group rows.
type MatchWithTeams struct {
	Match
	TeamA  *Team  `json:"team_a,omitempty"`
	TeamB  *Team  `json:"team_b,omitempty"`
	Winner *Team  `json:"winner,omitempty"`
	Group  *Group `json:"group,omitempty"`
}

// Standing is one team's row in a group table. It is always derived from completed matches.
type Standing struct {
	GroupID   string `json:"group_id"`
	TeamID    string `json:"team_id"`
	TeamName  string `json:"team_name"`
	Played    int    `json:"played"`
	Won       int    `json:"won"`
	Lost      int    `json:"lost"`
	SetsWon   int    `json:"sets_won"`
	SetsLost  int    `json:"sets_lost"`
	GamesWon  int    `json:"games_won"`
	GamesLost int    `json:"games_lost"`
	Points    int    `json:"points"`
	Position  int    `json:"position"`
}

func (s Standing) SetDiff() int  { return s.SetsWon - s.SetsLost }
func (s Standing) GameDiff() int { return s.GamesWon - s.GamesLost }

type Prize struct {
	ID           string    `json:"id"`
	TournamentID string    `json:"tournament_id,omitempty"`
	Category     string    `json:"category"`
	Position     string    `json:"position"`
	TeamID       string    `json:"team_id,omitempty"`
	Amount       *float64  `json:"prize_amount,omitempty"`
	Description  string    `json:"prize_description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Tournament struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Location  string     `json:"location,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
