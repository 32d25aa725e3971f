package padel

import (
	"fmt"
	"time"
)

// Match is a single game between two slots. Group matches carry a GroupID;
// knockout matches carry a Position and the refs of the matches feeding each slot.
type Match struct {
	ID        string     `json:"id"`
	Category  string     `json:"category"`
	Phase     Phase      `json:"phase"`
	GroupID   string     `json:"group_id,omitempty"`
	Position  int        `json:"position"`
	SideA     string     `json:"side_a,omitempty"`
	SideB     string     `json:"side_b,omitempty"`
	SideAFrom string     `json:"side_a_from,omitempty"`
	SideBFrom string     `json:"side_b_from,omitempty"`
	SourceA   *MatchRef  `json:"source_a,omitempty"`
	SourceB   *MatchRef  `json:"source_b,omitempty"`
	Score     Score      `json:"score"`
	WinnerID  string     `json:"winner_id,omitempty"`
	Status    Status     `json:"status"`
	MatchDate *time.Time `json:"match_date,omitempty"`
	Court     string     `json:"court_number,omitempty"`
	BookingID string     `json:"booking_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (m *Match) Ref() MatchRef {
	return MatchRef{Phase: m.Phase, Position: m.Position}
}

// Slot returns the team in the given side.
func (m *Match) Slot(side Side) string {
	switch side {
	case SideA:
		return m.SideA
	case SideB:
		return m.SideB
	}
	return ""
}

// SlotFrom returns the ID of the match whose winner filled the given side.
func (m *Match) SlotFrom(side Side) string {
	switch side {
	case SideA:
		return m.SideAFrom
	case SideB:
		return m.SideBFrom
	}
	return ""
}

// Source returns the feeder ref of the given side.
func (m *Match) Source(side Side) *MatchRef {
	switch side {
	case SideA:
		return m.SourceA
	case SideB:
		return m.SourceB
	}
	return nil
}

func (m *Match) Has(teamID string) bool {
	return teamID != "" && (m.SideA == teamID || m.SideB == teamID)
}

// SideOf returns the side teamID plays on.
func (m *Match) SideOf(teamID string) Side {
	switch {
	case teamID == "":
		return SideNone
	case m.SideA == teamID:
		return SideA
	case m.SideB == teamID:
		return SideB
	}
	return SideNone
}

// Opponent returns the other team of a match teamID plays in.
func (m *Match) Opponent(teamID string) string {
	return m.Slot(m.SideOf(teamID).Other())
}

// IsPlaceholder reports a group match generated with a missing opponent.
func (m *Match) IsPlaceholder() bool {
	return m.Phase == PhaseGroup && (m.SideA == "") != (m.SideB == "")
}

func (m *Match) IsDecided() bool {
	return m.Status == StatusCompleted && m.WinnerID != ""
}

// WinnerSide returns the side of the winner, or SideNone when undecided.
func (m *Match) WinnerSide() Side {
	return m.SideOf(m.WinnerID)
}

// Assign puts teamID in an empty slot. from is the ID of the match whose
// winner advances into the slot, or empty for a manual assignment.
func (m *Match) Assign(side Side, teamID, from string) error {
	if side != SideA && side != SideB {
		return fmt.Errorf("%w: unknown side %q", ErrInvalidInput, side)
	}
	if teamID == "" {
		return fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	if m.Slot(side) != "" {
		return fmt.Errorf("%w: side %s of %s", ErrSlotOccupied, side, m.ID)
	}
	if m.Slot(side.Other()) == teamID {
		return ErrSameTeam
	}
	if side == SideA {
		m.SideA, m.SideAFrom = teamID, from
	} else {
		m.SideB, m.SideBFrom = teamID, from
	}
	return nil
}

// Clear empties a slot and resets the match result.
func (m *Match) Clear(side Side) {
	if side == SideA {
		m.SideA, m.SideAFrom = "", ""
	} else if side == SideB {
		m.SideB, m.SideBFrom = "", ""
	}
	m.ResetResult()
}

// ResetResult drops the score and the winner.
func (m *Match) ResetResult() {
	m.Score = Score{}
	m.WinnerID = ""
	m.Status = StatusPending
}

// ApplyResult stores score and derives winner and status from it.
// An undecided score leaves the match pending.
func (m *Match) ApplyResult(score Score) (Outcome, error) {
	if m.SideA == "" || m.SideB == "" {
		return Outcome{}, ErrSidesNotAssigned
	}
	out := score.Resolve()
	m.Score = score
	if out.Winner == SideNone {
		m.WinnerID = ""
		m.Status = StatusPending
		return out, nil
	}
	m.WinnerID = m.Slot(out.Winner)
	m.Status = StatusCompleted
	return out, nil
}

// Validate checks the consistency of sides, winner and status.
func (m *Match) Validate() error {
	if !m.Phase.Valid() {
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, m.Phase)
	}
	if m.Phase == PhaseGroup && m.GroupID == "" {
		return fmt.Errorf("%w: group match without group", ErrInvalidInput)
	}
	if m.Phase != PhaseGroup && m.GroupID != "" {
		return fmt.Errorf("%w: knockout match with group", ErrInvalidInput)
	}
	if m.SideA != "" && m.SideA == m.SideB {
		return ErrSameTeam
	}
	switch m.Status {
	case StatusPending:
		if m.WinnerID != "" {
			return fmt.Errorf("%w: pending match with winner", ErrInvalidInput)
		}
	case StatusCompleted:
		if m.WinnerID == "" {
			return fmt.Errorf("%w: completed match without winner", ErrInvalidInput)
		}
		if !m.Has(m.WinnerID) {
			return fmt.Errorf("%w: winner %s is not playing", ErrInvalidInput, m.WinnerID)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, m.Status)
	}
	return nil
}

// MatchState is the explicit lifecycle state of a match.
type MatchState interface {
	isMatchState()
}

// Empty: no side assigned.
type Empty struct{}

// Partial: exactly one side assigned.
type Partial struct {
	SideA string
	SideB string
}

// AwaitingResult: both sides assigned, no winner yet.
type AwaitingResult struct {
	SideA string
	SideB string
}

// Decided: both sides assigned and a winner recorded.
type Decided struct {
	SideA  string
	SideB  string
	Winner string
	Score  Score
}

func (Empty) isMatchState()          {}
func (Partial) isMatchState()        {}
func (AwaitingResult) isMatchState() {}
func (Decided) isMatchState()        {}

// State derives the lifecycle state of the match.
func (m *Match) State() MatchState {
	switch {
	case m.SideA == "" && m.SideB == "":
		return Empty{}
	case m.SideA == "" || m.SideB == "":
		return Partial{SideA: m.SideA, SideB: m.SideB}
	case m.IsDecided():
		return Decided{SideA: m.SideA, SideB: m.SideB, Winner: m.WinnerID, Score: m.Score}
	}
	return AwaitingResult{SideA: m.SideA, SideB: m.SideB}
}
