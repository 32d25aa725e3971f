// Package schedule builds match lists: round robin and capped group stages,
// the group draw and the seeded elimination bracket. Nothing here touches storage.
package schedule

import (
	"fmt"
	"math/rand/v2"

	"github.com/mauv0809/padel-tournament/internal/padel"
)

// Pairing is one generated group match. SideB is empty for a placeholder
// that still needs an opponent.
type Pairing struct {
	SideA string `json:"side_a"`
	SideB string `json:"side_b,omitempty"`
}

func (p Pairing) IsPlaceholder() bool { return p.SideB == "" }

// Mode selects the group stage generator.
type Mode string

const (
	ModeRoundRobin Mode = "round_robin"
	ModeCapped     Mode = "capped"
)

func checkTeams(teamIDs []string) error {
	if len(teamIDs) < 2 {
		return fmt.Errorf("%w: got %d, need at least 2", padel.ErrNotEnoughTeams, len(teamIDs))
	}
	seen := make(map[string]bool, len(teamIDs))
	for _, id := range teamIDs {
		if id == "" {
			return fmt.Errorf("%w: empty team id", padel.ErrInvalidInput)
		}
		if seen[id] {
			return fmt.Errorf("%w: team %s listed twice", padel.ErrInvalidInput, id)
		}
		seen[id] = true
	}
	return nil
}

// RoundRobin pairs every team with every other team exactly once.
func RoundRobin(teamIDs []string) ([]Pairing, error) {
	if err := checkTeams(teamIDs); err != nil {
		return nil, err
	}
	n := len(teamIDs)
	pairings := make([]Pairing, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairings = append(pairings, Pairing{SideA: teamIDs[i], SideB: teamIDs[j]})
		}
	}
	return pairings, nil
}

// cappedAttempts bounds how many shuffles Capped tries before settling for
// placeholders.
const cappedAttempts = 16

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Capped gives every team perTeam distinct opponents picked at random.
// Matches in played already count toward each team's quota and their pairs
// are never offered again; only the new pairings are returned.
// Teams are visited in shuffled order and each one takes random opponents that
// still need matches. A pass that leaves teams short is retried with a fresh
// shuffle, and the attempt with the fewest placeholders is kept. Every missing
// match becomes a placeholder pairing holding only the short team.
// A nil rng uses the global source.
func Capped(teamIDs []string, perTeam int, rng *rand.Rand, played []Pairing) ([]Pairing, error) {
	if err := checkTeams(teamIDs); err != nil {
		return nil, err
	}
	n := len(teamIDs)
	if perTeam < 1 || perTeam > n-1 {
		return nil, fmt.Errorf("%w: matches per team must be between 1 and %d, got %d", padel.ErrInvalidInput, n-1, perTeam)
	}
	c := capper{teamIDs: teamIDs, perTeam: perTeam, intn: rand.IntN, shuffle: rand.Shuffle}
	if rng != nil {
		c.intn = rng.IntN
		c.shuffle = rng.Shuffle
	}

	member := make(map[string]bool, n)
	for _, id := range teamIDs {
		member[id] = true
	}
	c.base = make(map[string]int, n)
	c.done = make(map[[2]string]bool)
	for _, p := range played {
		if p.IsPlaceholder() || c.done[pairKey(p.SideA, p.SideB)] {
			continue
		}
		c.done[pairKey(p.SideA, p.SideB)] = true
		for _, id := range []string{p.SideA, p.SideB} {
			if member[id] {
				c.base[id]++
			}
		}
	}

	var best []Pairing
	fewest := -1
	for range cappedAttempts {
		pairings := c.pass()
		short := Placeholders(pairings)
		if fewest < 0 || short < fewest {
			best, fewest = pairings, short
		}
		if short == 0 {
			break
		}
	}
	return best, nil
}

type capper struct {
	teamIDs []string
	perTeam int
	base    map[string]int
	done    map[[2]string]bool
	intn    func(int) int
	shuffle func(int, func(i, j int))
}

// pass runs one greedy round over a fresh shuffle.
func (c *capper) pass() []Pairing {
	order := append([]string(nil), c.teamIDs...)
	c.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	count := make(map[string]int, len(order))
	for id, k := range c.base {
		count[id] = k
	}
	paired := make(map[[2]string]bool, len(c.done))
	for k := range c.done {
		paired[k] = true
	}

	var pairings []Pairing
	for _, team := range order {
		for count[team] < c.perTeam {
			var candidates []string
			for _, opp := range order {
				if opp == team || count[opp] >= c.perTeam || paired[pairKey(team, opp)] {
					continue
				}
				candidates = append(candidates, opp)
			}
			if len(candidates) == 0 {
				break
			}
			opp := candidates[c.intn(len(candidates))]
			pairings = append(pairings, Pairing{SideA: team, SideB: opp})
			paired[pairKey(team, opp)] = true
			count[team]++
			count[opp]++
		}
	}

	for _, team := range c.teamIDs {
		for i := count[team]; i < c.perTeam; i++ {
			pairings = append(pairings, Pairing{SideA: team})
		}
	}
	return pairings
}

// Placeholders counts the pairings still waiting for an opponent.
func Placeholders(pairings []Pairing) int {
	n := 0
	for _, p := range pairings {
		if p.IsPlaceholder() {
			n++
		}
	}
	return n
}
