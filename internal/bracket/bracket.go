// Package bracket moves teams through an elimination bracket: manual slot
// assignment, advancement of winners and retraction when a result goes away.
//
// Retraction never cascades. Clearing a match whose winner already sits in
// the next round also clears that slot, but only while the next match is
// undecided. Once it is decided the change is refused with
// padel.ErrDownstreamDecided and the later result has to be cleared first.
//
// Every operation returns the matches it modified so the caller can persist them.
package bracket

import (
	"fmt"

	"github.com/mauv0809/padel-tournament/internal/padel"
)

// Next returns the match fed by ref and the side its winner lands on.
// Position p feeds position p/2 of the next phase, side A when p is even.
func Next(ref padel.MatchRef) (padel.MatchRef, padel.Side, bool) {
	phase, ok := ref.Phase.Next()
	if !ok {
		return padel.MatchRef{}, padel.SideNone, false
	}
	side := padel.SideA
	if ref.Position%2 == 1 {
		side = padel.SideB
	}
	return padel.MatchRef{Phase: phase, Position: ref.Position / 2}, side, true
}

func lookup(b *padel.Bracket, ref padel.MatchRef) (*padel.Match, error) {
	m, ok := b.Match(ref)
	if !ok {
		return nil, fmt.Errorf("match %s: %w", ref, padel.ErrNotFound)
	}
	return m, nil
}

func successor(b *padel.Bracket, m *padel.Match) (*padel.Match, padel.Side) {
	ref, side, ok := Next(m.Ref())
	if !ok {
		return nil, padel.SideNone
	}
	next, ok := b.Match(ref)
	if !ok {
		return nil, padel.SideNone
	}
	return next, side
}

// Assign places a team from the unassigned pool into an empty slot.
// Slots whose feeder match is decided belong to advancement.
func Assign(b *padel.Bracket, ref padel.MatchRef, side padel.Side, teamID string) ([]*padel.Match, error) {
	m, err := lookup(b, ref)
	if err != nil {
		return nil, err
	}
	if side != padel.SideA && side != padel.SideB {
		return nil, fmt.Errorf("%w: unknown side %q", padel.ErrInvalidInput, side)
	}
	if b.Contains(teamID) {
		return nil, fmt.Errorf("%w: %s already plays in the bracket", padel.ErrTeamNotInPool, teamID)
	}
	if src := m.Source(side); src != nil {
		if feeder, ok := b.Match(*src); ok && feeder.IsDecided() {
			return nil, fmt.Errorf("%w: %s side %s is fed by %s", padel.ErrSlotOwnedByAdvancement, ref, side, src)
		}
	}
	if err := m.Assign(side, teamID, ""); err != nil {
		return nil, err
	}
	return []*padel.Match{m}, nil
}

// Record applies a score to a bracket match and keeps the next round in step:
// a new winner advances, a changed or withdrawn winner is retracted first.
func Record(b *padel.Bracket, ref padel.MatchRef, score padel.Score) ([]*padel.Match, error) {
	m, err := lookup(b, ref)
	if err != nil {
		return nil, err
	}
	updated := *m
	if _, err := updated.ApplyResult(score); err != nil {
		return nil, err
	}

	next, side := successor(b, m)
	if next == nil {
		*m = updated
		return []*padel.Match{m}, nil
	}

	slot := next.Slot(side)
	owned := slot != "" && next.SlotFrom(side) == m.ID
	retract := owned && slot != updated.WinnerID
	if retract && next.IsDecided() {
		return nil, fmt.Errorf("%w: %s", padel.ErrDownstreamDecided, next.Ref())
	}
	if updated.WinnerID != "" && slot != "" && !owned {
		return nil, fmt.Errorf("%w: %s side %s holds %s", padel.ErrSlotOccupied, next.Ref(), side, slot)
	}

	*m = updated
	touched := []*padel.Match{m}
	if retract {
		next.Clear(side)
		touched = append(touched, next)
	}
	if m.WinnerID != "" && next.Slot(side) == "" {
		if err := next.Assign(side, m.WinnerID, m.ID); err != nil {
			return nil, err
		}
		if !retract {
			touched = append(touched, next)
		}
	}
	return touched, nil
}

// Remove empties a slot, drops the match result and retracts the winner it
// had sent to the next round.
func Remove(b *padel.Bracket, ref padel.MatchRef, side padel.Side) ([]*padel.Match, error) {
	m, err := lookup(b, ref)
	if err != nil {
		return nil, err
	}
	if side != padel.SideA && side != padel.SideB {
		return nil, fmt.Errorf("%w: unknown side %q", padel.ErrInvalidInput, side)
	}

	next, nextSide := successor(b, m)
	retract := next != nil && m.WinnerID != "" &&
		next.Slot(nextSide) == m.WinnerID && next.SlotFrom(nextSide) == m.ID
	if retract && next.IsDecided() {
		return nil, fmt.Errorf("%w: %s", padel.ErrDownstreamDecided, next.Ref())
	}

	m.Clear(side)
	touched := []*padel.Match{m}
	if retract {
		next.Clear(nextSide)
		touched = append(touched, next)
	}
	return touched, nil
}

// Unassigned returns the teams of the pool that hold no slot in the bracket.
func Unassigned(b *padel.Bracket, teamIDs []string) []string {
	var pool []string
	for _, id := range teamIDs {
		if !b.Contains(id) {
			pool = append(pool, id)
		}
	}
	return pool
}
