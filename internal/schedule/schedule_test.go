package schedule_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("t%d", i+1)
	}
	return ids
}

func pairKey(p schedule.Pairing) string {
	a, b := p.SideA, p.SideB
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func TestRoundRobin(t *testing.T) {
	for n := 2; n <= 9; n++ {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			pairings, err := schedule.RoundRobin(teamIDs(n))
			require.NoError(t, err)
			assert.Len(t, pairings, n*(n-1)/2)

			seen := make(map[string]bool)
			for _, p := range pairings {
				assert.NotEqual(t, p.SideA, p.SideB)
				assert.False(t, p.IsPlaceholder())
				assert.False(t, seen[pairKey(p)], "pair %s generated twice", pairKey(p))
				seen[pairKey(p)] = true
			}
		})
	}

	t.Run("rejects fewer than two teams", func(t *testing.T) {
		_, err := schedule.RoundRobin(nil)
		assert.ErrorIs(t, err, padel.ErrNotEnoughTeams)
		_, err = schedule.RoundRobin([]string{"t1"})
		assert.ErrorIs(t, err, padel.ErrNotEnoughTeams)
	})

	t.Run("rejects duplicate teams", func(t *testing.T) {
		_, err := schedule.RoundRobin([]string{"t1", "t2", "t1"})
		assert.ErrorIs(t, err, padel.ErrInvalidInput)
	})
}

func TestCapped(t *testing.T) {
	testCases := []struct {
		teams   int
		perTeam int
	}{
		{4, 3}, {5, 2}, {5, 3}, {6, 3}, {7, 3}, {7, 4}, {8, 1}, {3, 1},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d teams %d each", tc.teams, tc.perTeam), func(t *testing.T) {
			for seed := uint64(0); seed < 25; seed++ {
				rng := rand.New(rand.NewPCG(seed, seed*7+1))
				ids := teamIDs(tc.teams)
				pairings, err := schedule.Capped(ids, tc.perTeam, rng, nil)
				require.NoError(t, err)

				perTeam := make(map[string]int)
				seen := make(map[string]bool)
				for _, p := range pairings {
					perTeam[p.SideA]++
					if p.IsPlaceholder() {
						continue
					}
					perTeam[p.SideB]++
					assert.NotEqual(t, p.SideA, p.SideB)
					assert.False(t, seen[pairKey(p)], "pair %s generated twice", pairKey(p))
					seen[pairKey(p)] = true
				}
				// Real matches plus placeholders cover every team's quota exactly.
				for _, id := range ids {
					assert.Equal(t, tc.perTeam, perTeam[id], "team %s", id)
				}
			}
		})
	}

	t.Run("odd quota leaves a placeholder", func(t *testing.T) {
		pairings, err := schedule.Capped(teamIDs(3), 1, rand.New(rand.NewPCG(1, 2)), nil)
		require.NoError(t, err)
		assert.Len(t, pairings, 2)
		assert.Equal(t, 1, schedule.Placeholders(pairings))
	})

	t.Run("full quota equals round robin", func(t *testing.T) {
		pairings, err := schedule.Capped(teamIDs(6), 5, nil, nil)
		require.NoError(t, err)
		assert.Len(t, pairings, 15)
		assert.Zero(t, schedule.Placeholders(pairings))
	})

	t.Run("feasible quota needs no placeholders", func(t *testing.T) {
		for seed := uint64(0); seed < 200; seed++ {
			pairings, err := schedule.Capped(teamIDs(4), 2, rand.New(rand.NewPCG(seed, 3)), nil)
			require.NoError(t, err)
			assert.Zero(t, schedule.Placeholders(pairings), "seed %d", seed)
			assert.Len(t, pairings, 4, "seed %d", seed)
		}
	})

	t.Run("played matches count toward the quota", func(t *testing.T) {
		played := []schedule.Pairing{{SideA: "t1", SideB: "t2"}, {SideA: "t3", SideB: "t1"}}
		for seed := uint64(0); seed < 25; seed++ {
			pairings, err := schedule.Capped(teamIDs(5), 2, rand.New(rand.NewPCG(seed, 5)), played)
			require.NoError(t, err)

			total := make(map[string]int)
			for _, p := range append(append([]schedule.Pairing(nil), played...), pairings...) {
				total[p.SideA]++
				if !p.IsPlaceholder() {
					total[p.SideB]++
				}
			}
			for _, p := range pairings {
				assert.NotEqual(t, "t1", p.SideA, "t1 already played twice")
				assert.NotEqual(t, "t1", p.SideB, "t1 already played twice")
			}
			for _, id := range teamIDs(5) {
				assert.Equal(t, 2, total[id], "team %s seed %d", id, seed)
			}
		}
	})

	t.Run("rejects quota out of range", func(t *testing.T) {
		_, err := schedule.Capped(teamIDs(4), 4, nil, nil)
		assert.ErrorIs(t, err, padel.ErrInvalidInput)
		_, err = schedule.Capped(teamIDs(4), 0, nil, nil)
		assert.ErrorIs(t, err, padel.ErrInvalidInput)
		_, err = schedule.Capped(teamIDs(1), 1, nil, nil)
		assert.ErrorIs(t, err, padel.ErrNotEnoughTeams)
	})
}
