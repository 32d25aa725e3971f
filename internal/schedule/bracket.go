package schedule

import "github.com/mauv0809/padel-tournament/internal/padel"

// SeedBracket builds an empty elimination bracket for 4, 8 or 16 seeds.
// First round position i plays seeds[i] against seeds[n-1-i]. Every later
// match starts empty with each slot pointing at the match that feeds it.
func SeedBracket(category string, seeds []string) (*padel.Bracket, error) {
	phases, err := padel.KnockoutPhases(len(seeds))
	if err != nil {
		return nil, err
	}
	if err := checkTeams(seeds); err != nil {
		return nil, err
	}

	n := len(seeds)
	b := &padel.Bracket{Category: category}
	first := make([]*padel.Match, n/2)
	for i := range first {
		first[i] = &padel.Match{
			Category: category,
			Phase:    phases[0],
			Position: i,
			SideA:    seeds[i],
			SideB:    seeds[n-1-i],
			Status:   padel.StatusPending,
		}
	}
	b.Rounds = append(b.Rounds, first)

	for r := 1; r < len(phases); r++ {
		prev := phases[r-1]
		round := make([]*padel.Match, len(b.Rounds[r-1])/2)
		for p := range round {
			round[p] = &padel.Match{
				Category: category,
				Phase:    phases[r],
				Position: p,
				SourceA:  &padel.MatchRef{Phase: prev, Position: 2 * p},
				SourceB:  &padel.MatchRef{Phase: prev, Position: 2*p + 1},
				Status:   padel.StatusPending,
			}
		}
		b.Rounds = append(b.Rounds, round)
	}
	return b, nil
}
