package schedule

import (
	"fmt"
	"math/rand/v2"

	"github.com/mauv0809/padel-tournament/internal/padel"
)

// GroupName returns the display name of the i-th drawn group: Grupo A, Grupo B, ...
func GroupName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return "Grupo " + name
}

// DrawGroups shuffles teams and deals them into groups one by one, so group
// sizes never differ by more than one. Each group needs at least two teams.
func DrawGroups(category string, teams []padel.Team, groups int, rng *rand.Rand) ([]padel.GroupWithTeams, error) {
	if groups < 1 {
		return nil, fmt.Errorf("%w: number of groups must be positive", padel.ErrInvalidInput)
	}
	if len(teams) < 2*groups {
		return nil, fmt.Errorf("%w: %d teams cannot fill %d groups of two", padel.ErrNotEnoughTeams, len(teams), groups)
	}
	shuffled := append([]padel.Team(nil), teams...)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	drawn := make([]padel.GroupWithTeams, groups)
	for i := range drawn {
		drawn[i].Name = GroupName(i)
		drawn[i].Category = category
	}
	for i, team := range shuffled {
		g := &drawn[i%groups]
		g.Teams = append(g.Teams, team)
	}
	return drawn, nil
}
