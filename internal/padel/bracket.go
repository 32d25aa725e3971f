package padel

import (
	"fmt"
	"slices"
)

// Bracket is a single-elimination tree. Rounds[0] is the first round and
// the last round holds only the final.
type Bracket struct {
	Category string     `json:"category"`
	Rounds   [][]*Match `json:"rounds"`
}

// NewBracket rebuilds a bracket from its stored knockout matches.
func NewBracket(category string, matches []Match) (*Bracket, error) {
	byPhase := make(map[Phase][]*Match)
	for i := range matches {
		m := &matches[i]
		if !m.Phase.IsKnockout() {
			continue
		}
		byPhase[m.Phase] = append(byPhase[m.Phase], m)
	}
	if len(byPhase) == 0 {
		return nil, fmt.Errorf("bracket for %s: %w", category, ErrNotFound)
	}

	first := 0
	for _, p := range knockoutOrder {
		if n := len(byPhase[p]); n > 0 {
			first = n
			break
		}
	}
	phases, err := KnockoutPhases(first * 2)
	if err != nil {
		return nil, err
	}

	b := &Bracket{Category: category}
	size := first
	for _, p := range phases {
		round := byPhase[p]
		if len(round) != size {
			return nil, fmt.Errorf("%w: %s has %d matches, want %d", ErrInvalidInput, p, len(round), size)
		}
		slices.SortFunc(round, func(a, b *Match) int { return a.Position - b.Position })
		for i, m := range round {
			if m.Position != i {
				return nil, fmt.Errorf("%w: %s positions are not contiguous", ErrInvalidInput, p)
			}
		}
		b.Rounds = append(b.Rounds, round)
		size /= 2
	}
	return b, nil
}

// Size is the number of teams the bracket was seeded with.
func (b *Bracket) Size() int {
	if len(b.Rounds) == 0 {
		return 0
	}
	return len(b.Rounds[0]) * 2
}

func (b *Bracket) Match(ref MatchRef) (*Match, bool) {
	for _, round := range b.Rounds {
		if len(round) == 0 || round[0].Phase != ref.Phase {
			continue
		}
		if ref.Position < 0 || ref.Position >= len(round) {
			return nil, false
		}
		return round[ref.Position], true
	}
	return nil, false
}

// MatchByID finds a bracket match by its ID.
func (b *Bracket) MatchByID(id string) (*Match, bool) {
	for _, m := range b.Matches() {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

func (b *Bracket) Final() *Match {
	if len(b.Rounds) == 0 {
		return nil
	}
	last := b.Rounds[len(b.Rounds)-1]
	if len(last) != 1 {
		return nil
	}
	return last[0]
}

// Contains reports whether teamID occupies any slot of the bracket.
func (b *Bracket) Contains(teamID string) bool {
	for _, m := range b.Matches() {
		if m.Has(teamID) {
			return true
		}
	}
	return false
}

// Matches returns every match, round by round.
func (b *Bracket) Matches() []*Match {
	var all []*Match
	for _, round := range b.Rounds {
		all = append(all, round...)
	}
	return all
}

// Champion returns the winner of the final once it is decided.
func (b *Bracket) Champion() (string, bool) {
	final := b.Final()
	if final == nil || !final.IsDecided() {
		return "", false
	}
	return final.WinnerID, true
}
