package tournament_test

import (
	"testing"

	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bracketMatch(t *testing.T, f *fixture, category string, phase padel.Phase, pos int) *padel.Match {
	t.Helper()
	b, err := f.svc.Bracket(category)
	require.NoError(t, err)
	m, ok := b.Match(padel.MatchRef{Phase: phase, Position: pos})
	require.True(t, ok, "%s:%d", phase, pos)
	return m
}

func TestSeedBracket(t *testing.T) {
	f := setup(t)
	c := f.category(t, "5ta Masculino")
	other := f.category(t, "5ta Femenino")
	teams := f.teams(t, c.ID, 8)
	stranger := f.teams(t, other.ID, 1)[0]

	b, err := f.svc.SeedBracket(c.ID, ids(teams))
	require.NoError(t, err)
	assert.Equal(t, 8, b.Size())
	require.Len(t, b.Rounds, 3)

	qf := bracketMatch(t, f, c.ID, padel.PhaseQuarterfinal, 0)
	assert.Equal(t, teams[0].ID, qf.SideA)
	assert.Equal(t, teams[7].ID, qf.SideB)
	qf = bracketMatch(t, f, c.ID, padel.PhaseQuarterfinal, 3)
	assert.Equal(t, teams[3].ID, qf.SideA)
	assert.Equal(t, teams[4].ID, qf.SideB)
	final := bracketMatch(t, f, c.ID, padel.PhaseFinal, 0)
	assert.Empty(t, final.SideA)
	assert.Empty(t, final.SideB)

	_, err = f.svc.SeedBracket(c.ID, ids(teams[:3]))
	assert.ErrorIs(t, err, padel.ErrUnsupportedBracketSize)
	_, err = f.svc.SeedBracket(c.ID, []string{teams[0].ID, teams[1].ID, teams[2].ID, stranger.ID})
	assert.ErrorIs(t, err, padel.ErrInvalidInput)

	// Reseeding replaces the bracket.
	b, err = f.svc.SeedBracket(c.ID, ids(teams[:4]))
	require.NoError(t, err)
	assert.Equal(t, 4, b.Size())
	reloaded, err := f.svc.Bracket(c.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Matches(), 3)
}

func TestKnockoutAdvancement(t *testing.T) {
	f := setup(t)
	c := f.category(t, "5ta Masculino")
	teams := f.teams(t, c.ID, 8)
	_, err := f.svc.SeedBracket(c.ID, ids(teams))
	require.NoError(t, err)

	qf0 := bracketMatch(t, f, c.ID, padel.PhaseQuarterfinal, 0)
	rec, err := f.svc.RecordResult(qf0.ID, straightSets(false))
	require.NoError(t, err)
	require.Len(t, rec.Updated, 2)
	assert.Equal(t, 1, f.metrics.BracketAdvancements())
	assert.Equal(t, 1, f.metrics.ResultsRecorded(string(padel.PhaseQuarterfinal)))
	assert.Nil(t, rec.Standings)
	assert.Contains(t, f.topics(), pubsub.EventBracketAdvanced)
	assert.NotContains(t, f.topics(), pubsub.EventStandingsUpdated)

	sf0 := bracketMatch(t, f, c.ID, padel.PhaseSemifinal, 0)
	assert.Equal(t, teams[0].ID, sf0.SideA)
	assert.Equal(t, qf0.ID, sf0.SideAFrom)

	t.Run("changed winner replaces the advanced team", func(t *testing.T) {
		_, err := f.svc.RecordResult(qf0.ID, straightSets(true))
		require.NoError(t, err)
		sf0 := bracketMatch(t, f, c.ID, padel.PhaseSemifinal, 0)
		assert.Equal(t, teams[7].ID, sf0.SideA)
		assert.Equal(t, 2, f.metrics.BracketAdvancements())
	})

	qf1 := bracketMatch(t, f, c.ID, padel.PhaseQuarterfinal, 1)
	_, err = f.svc.RecordResult(qf1.ID, straightSets(false))
	require.NoError(t, err)
	sf0 = bracketMatch(t, f, c.ID, padel.PhaseSemifinal, 0)
	assert.Equal(t, teams[1].ID, sf0.SideB)

	_, err = f.svc.RecordResult(sf0.ID, straightSets(false))
	require.NoError(t, err)
	final := bracketMatch(t, f, c.ID, padel.PhaseFinal, 0)
	assert.Equal(t, teams[7].ID, final.SideA)

	t.Run("decided next round blocks changes", func(t *testing.T) {
		_, err := f.svc.RecordResult(qf0.ID, straightSets(false))
		assert.ErrorIs(t, err, padel.ErrDownstreamDecided)
		assert.Equal(t, 1, f.metrics.ResultsRejected("downstream_decided"))

		_, err = f.svc.ClearResult(qf0.ID)
		assert.ErrorIs(t, err, padel.ErrDownstreamDecided)

		_, err = f.svc.RemoveSlot(qf0.ID, padel.SideB)
		assert.ErrorIs(t, err, padel.ErrDownstreamDecided)

		sf0 := bracketMatch(t, f, c.ID, padel.PhaseSemifinal, 0)
		assert.Equal(t, teams[7].ID, sf0.SideA)
		assert.True(t, sf0.IsDecided())
	})

	t.Run("clearing the later result unblocks", func(t *testing.T) {
		rec, err := f.svc.ClearResult(sf0.ID)
		require.NoError(t, err)
		assert.Len(t, rec.Updated, 2)
		final := bracketMatch(t, f, c.ID, padel.PhaseFinal, 0)
		assert.Empty(t, final.SideA)

		_, err = f.svc.RecordResult(qf0.ID, straightSets(false))
		require.NoError(t, err)
		sf0 := bracketMatch(t, f, c.ID, padel.PhaseSemifinal, 0)
		assert.Equal(t, teams[0].ID, sf0.SideA)
	})
}

func TestChampion(t *testing.T) {
	f := setup(t)
	c := f.category(t, "5ta Masculino")
	teams := f.teams(t, c.ID, 4)
	_, err := f.svc.SeedBracket(c.ID, ids(teams))
	require.NoError(t, err)

	_, err = f.svc.Champion(c.ID)
	assert.ErrorIs(t, err, padel.ErrNotFound)

	for pos := range 2 {
		sf := bracketMatch(t, f, c.ID, padel.PhaseSemifinal, pos)
		_, err := f.svc.RecordResult(sf.ID, straightSets(false))
		require.NoError(t, err)
	}
	final := bracketMatch(t, f, c.ID, padel.PhaseFinal, 0)
	assert.Equal(t, teams[0].ID, final.SideA)
	assert.Equal(t, teams[1].ID, final.SideB)

	rec, err := f.svc.RecordResult(final.ID, straightSets(true))
	require.NoError(t, err)
	assert.Equal(t, teams[1].ID, rec.Champion)

	champion, err := f.svc.Champion(c.ID)
	require.NoError(t, err)
	assert.Equal(t, teams[1].Name, champion.Name)

	var ev pubsub.ResultEvent
	for _, call := range f.events.Sent() {
		if e := call.Data.(pubsub.ResultEvent); e.Champion != "" {
			ev = e
		}
	}
	require.Equal(t, final.ID, ev.MatchID)
	require.NoError(t, f.svc.HandleResultEvent(ev, false))
	calls := f.notifier.ChampionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "5ta Masculino", calls[0].Category)
	assert.Equal(t, teams[1].ID, calls[0].Team.ID)
	assert.False(t, calls[0].DryRun)
}

func TestSlotAssignment(t *testing.T) {
	f := setup(t)
	c := f.category(t, "5ta Masculino")
	other := f.category(t, "5ta Femenino")
	teams := f.teams(t, c.ID, 6)
	stranger := f.teams(t, other.ID, 1)[0]
	_, err := f.svc.SeedBracket(c.ID, ids(teams[:4]))
	require.NoError(t, err)

	pool, err := f.svc.UnassignedTeams(c.ID)
	require.NoError(t, err)
	assert.Equal(t, ids(teams[4:]), ids(pool))

	sf0 := bracketMatch(t, f, c.ID, padel.PhaseSemifinal, 0)
	touched, err := f.svc.RemoveSlot(sf0.ID, padel.SideB)
	require.NoError(t, err)
	require.Len(t, touched, 1)
	assert.Empty(t, touched[0].SideB)

	pool, err = f.svc.UnassignedTeams(c.ID)
	require.NoError(t, err)
	assert.Len(t, pool, 3)

	_, err = f.svc.AssignSlot(sf0.ID, padel.SideB, teams[1].ID)
	assert.ErrorIs(t, err, padel.ErrTeamNotInPool)
	_, err = f.svc.AssignSlot(sf0.ID, padel.SideB, stranger.ID)
	assert.ErrorIs(t, err, padel.ErrInvalidInput)

	m, err := f.svc.AssignSlot(sf0.ID, padel.SideB, teams[4].ID)
	require.NoError(t, err)
	assert.Equal(t, teams[4].ID, m.SideB)
	assert.Empty(t, m.SideBFrom)

	_, err = f.svc.AssignSlot(sf0.ID, padel.SideB, teams[5].ID)
	assert.ErrorIs(t, err, padel.ErrSlotOccupied)

	_, err = f.svc.RecordResult(sf0.ID, straightSets(true))
	require.NoError(t, err)
	final := bracketMatch(t, f, c.ID, padel.PhaseFinal, 0)
	assert.Equal(t, teams[4].ID, final.SideA)

	_, err = f.svc.AssignSlot(final.ID, padel.SideA, teams[5].ID)
	assert.ErrorIs(t, err, padel.ErrSlotOwnedByAdvancement)

	t.Run("manual occupant blocks advancement", func(t *testing.T) {
		_, err := f.svc.AssignSlot(final.ID, padel.SideB, teams[5].ID)
		require.NoError(t, err)

		sf1 := bracketMatch(t, f, c.ID, padel.PhaseSemifinal, 1)
		_, err = f.svc.RecordResult(sf1.ID, straightSets(false))
		assert.ErrorIs(t, err, padel.ErrSlotOccupied)
	})
}

func TestBracketFromStandings(t *testing.T) {
	f := setup(t)
	c := f.category(t, "5ta Masculino")
	teams := f.teams(t, c.ID, 8)
	rank := make(map[string]int, len(teams))
	for i, team := range teams {
		rank[team.ID] = i
	}
	for _, g := range []*padel.Group{
		f.group(t, c.ID, "Grupo A", teams[:4]...),
		f.group(t, c.ID, "Grupo B", teams[4:]...),
	} {
		gen, err := f.svc.GenerateGroupMatches(g.ID, "", 0)
		require.NoError(t, err)
		// The lower numbered team wins every match.
		for _, m := range gen.Matches {
			_, err := f.svc.RecordResult(m.ID, straightSets(rank[m.SideA] > rank[m.SideB]))
			require.NoError(t, err)
		}
	}

	qualifiers, err := f.svc.Qualifiers(t.Context(), c.ID, 4)
	require.NoError(t, err)
	got := make([]string, len(qualifiers))
	for i, q := range qualifiers {
		got[i] = q.TeamID
	}
	assert.Equal(t, []string{teams[0].ID, teams[4].ID, teams[1].ID, teams[5].ID}, got)

	b, err := f.svc.SeedBracketFromStandings(t.Context(), c.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Size())
	sf0 := bracketMatch(t, f, c.ID, padel.PhaseSemifinal, 0)
	assert.Equal(t, teams[0].ID, sf0.SideA)
	assert.Equal(t, teams[5].ID, sf0.SideB)

	_, err = f.svc.SeedBracketFromStandings(t.Context(), c.ID, 6)
	assert.ErrorIs(t, err, padel.ErrNotEnoughQualifiers)
}

func TestDeleteBracket(t *testing.T) {
	f := setup(t)
	c := f.category(t, "5ta Masculino")
	teams := f.teams(t, c.ID, 4)
	_, err := f.svc.SeedBracket(c.ID, ids(teams))
	require.NoError(t, err)

	n, err := f.svc.DeleteBracket(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = f.svc.Bracket(c.ID)
	assert.ErrorIs(t, err, padel.ErrNotFound)
	_, err = f.svc.UnassignedTeams(c.ID)
	assert.ErrorIs(t, err, padel.ErrNotFound)
}
