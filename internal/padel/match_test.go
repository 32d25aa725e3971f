package padel_test

import (
	"testing"

	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustScore(t *testing.T, in padel.ScoreInput) padel.Score {
	t.Helper()
	score, err := padel.NewScore(in)
	require.NoError(t, err)
	return score
}

func TestMatchApplyResult(t *testing.T) {
	t.Run("decisive result completes the match", func(t *testing.T) {
		m := &padel.Match{ID: "m1", Phase: padel.PhaseGroup, GroupID: "g1", SideA: "t1", SideB: "t2", Status: padel.StatusPending}
		out, err := m.ApplyResult(mustScore(t, padel.ScoreInput{Set1A: 6, Set1B: 4, Set2A: intp(6), Set2B: intp(2)}))
		require.NoError(t, err)
		assert.Equal(t, padel.SideA, out.Winner)
		assert.Equal(t, "t1", m.WinnerID)
		assert.Equal(t, padel.StatusCompleted, m.Status)
		assert.NoError(t, m.Validate())
	})

	t.Run("undecided result stays pending", func(t *testing.T) {
		m := &padel.Match{ID: "m1", Phase: padel.PhaseGroup, GroupID: "g1", SideA: "t1", SideB: "t2", WinnerID: "t1", Status: padel.StatusCompleted}
		_, err := m.ApplyResult(mustScore(t, padel.ScoreInput{Set1A: 6, Set1B: 4, Set2A: intp(4), Set2B: intp(6)}))
		require.NoError(t, err)
		assert.Empty(t, m.WinnerID)
		assert.Equal(t, padel.StatusPending, m.Status)
		assert.Len(t, m.Score.Sets, 2)
	})

	t.Run("missing side is refused", func(t *testing.T) {
		m := &padel.Match{ID: "m1", Phase: padel.PhaseGroup, GroupID: "g1", SideA: "t1", Status: padel.StatusPending}
		_, err := m.ApplyResult(mustScore(t, padel.ScoreInput{Set1A: 6, Set1B: 4}))
		assert.ErrorIs(t, err, padel.ErrSidesNotAssigned)
		assert.True(t, m.Score.IsZero())
	})
}

func TestMatchAssignAndClear(t *testing.T) {
	m := &padel.Match{ID: "sf0", Phase: padel.PhaseSemifinal, Status: padel.StatusPending}

	require.NoError(t, m.Assign(padel.SideA, "t1", "qf0"))
	assert.Equal(t, "qf0", m.SlotFrom(padel.SideA))
	assert.ErrorIs(t, m.Assign(padel.SideA, "t3", ""), padel.ErrSlotOccupied)
	assert.ErrorIs(t, m.Assign(padel.SideB, "t1", ""), padel.ErrSameTeam)
	assert.ErrorIs(t, m.Assign(padel.SideNone, "t3", ""), padel.ErrInvalidInput)

	require.NoError(t, m.Assign(padel.SideB, "t2", ""))
	_, err := m.ApplyResult(mustScore(t, padel.ScoreInput{Set1A: 6, Set1B: 1}))
	require.NoError(t, err)
	assert.True(t, m.IsDecided())

	m.Clear(padel.SideA)
	assert.Empty(t, m.SideA)
	assert.Empty(t, m.SideAFrom)
	assert.Equal(t, "t2", m.SideB)
	assert.Empty(t, m.WinnerID)
	assert.Equal(t, padel.StatusPending, m.Status)
	assert.True(t, m.Score.IsZero())
}

func TestMatchState(t *testing.T) {
	m := &padel.Match{ID: "f", Phase: padel.PhaseFinal, Status: padel.StatusPending}
	assert.Equal(t, padel.Empty{}, m.State())

	require.NoError(t, m.Assign(padel.SideB, "t2", ""))
	assert.Equal(t, padel.Partial{SideB: "t2"}, m.State())

	require.NoError(t, m.Assign(padel.SideA, "t1", ""))
	assert.Equal(t, padel.AwaitingResult{SideA: "t1", SideB: "t2"}, m.State())

	score := mustScore(t, padel.ScoreInput{Set1A: 3, Set1B: 6})
	_, err := m.ApplyResult(score)
	require.NoError(t, err)
	state, ok := m.State().(padel.Decided)
	require.True(t, ok)
	assert.Equal(t, "t2", state.Winner)
	assert.Equal(t, score, state.Score)
}

func TestMatchValidate(t *testing.T) {
	testCases := []struct {
		name  string
		match padel.Match
		valid bool
	}{
		{"pending group match", padel.Match{Phase: padel.PhaseGroup, GroupID: "g", SideA: "a", SideB: "b", Status: padel.StatusPending}, true},
		{"group match without group", padel.Match{Phase: padel.PhaseGroup, SideA: "a", SideB: "b", Status: padel.StatusPending}, false},
		{"knockout match with group", padel.Match{Phase: padel.PhaseFinal, GroupID: "g", Status: padel.StatusPending}, false},
		{"winner on pending", padel.Match{Phase: padel.PhaseFinal, SideA: "a", SideB: "b", WinnerID: "a", Status: padel.StatusPending}, false},
		{"completed without winner", padel.Match{Phase: padel.PhaseFinal, SideA: "a", SideB: "b", Status: padel.StatusCompleted}, false},
		{"winner not playing", padel.Match{Phase: padel.PhaseFinal, SideA: "a", SideB: "b", WinnerID: "c", Status: padel.StatusCompleted}, false},
		{"same team", padel.Match{Phase: padel.PhaseFinal, SideA: "a", SideB: "a", Status: padel.StatusPending}, false},
		{"unknown phase", padel.Match{Phase: "friendly", Status: padel.StatusPending}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.match.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMatchIsPlaceholder(t *testing.T) {
	assert.True(t, (&padel.Match{Phase: padel.PhaseGroup, SideA: "a"}).IsPlaceholder())
	assert.False(t, (&padel.Match{Phase: padel.PhaseGroup, SideA: "a", SideB: "b"}).IsPlaceholder())
	assert.False(t, (&padel.Match{Phase: padel.PhaseSemifinal, SideA: "a"}).IsPlaceholder())
}
