package tournament_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/mauv0809/padel-tournament/internal/live"
	"github.com/mauv0809/padel-tournament/internal/metrics"
	"github.com/mauv0809/padel-tournament/internal/notifier"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/playtomic"
	"github.com/mauv0809/padel-tournament/internal/pubsub"
	"github.com/mauv0809/padel-tournament/internal/store"
	"github.com/mauv0809/padel-tournament/internal/tournament"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *tournament.Service
	store    store.Store
	metrics  *metrics.Mock
	events   *pubsub.MockPubSubClient
	live     *live.Mock
	bookings *playtomic.MockClient
	notifier *notifier.Mock
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    store.NewMemory(),
		metrics:  metrics.NewMock(),
		events:   pubsub.NewMock(),
		live:     live.NewMock(),
		bookings: playtomic.NewMockClient(),
		notifier: notifier.NewMock(),
	}
	f.svc = tournament.New(f.store, f.metrics, f.events, f.live, f.bookings, f.notifier,
		tournament.WithRand(rand.New(rand.NewPCG(7, 11))))
	return f
}

func (f *fixture) category(t *testing.T, name string) *padel.Category {
	t.Helper()
	c, err := f.svc.CreateCategory(name, "", nil)
	require.NoError(t, err)
	return c
}

// teams registers n teams named "Team 1".."Team n".
func (f *fixture) teams(t *testing.T, category string, n int) []padel.Team {
	t.Helper()
	out := make([]padel.Team, n)
	for i := range n {
		team := &padel.Team{
			Name:     fmt.Sprintf("Team %d", i+1),
			Player1:  fmt.Sprintf("P%da", i+1),
			Player2:  fmt.Sprintf("P%db", i+1),
			Category: category,
		}
		require.NoError(t, f.svc.RegisterTeam(team))
		out[i] = *team
	}
	return out
}

func (f *fixture) group(t *testing.T, category, name string, teams ...padel.Team) *padel.Group {
	t.Helper()
	g, err := f.svc.CreateGroup(name, category)
	require.NoError(t, err)
	for _, team := range teams {
		require.NoError(t, f.svc.AddTeamToGroup(g.ID, team.ID))
	}
	return g
}

func ids(teams []padel.Team) []string {
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = t.ID
	}
	return out
}

func intp(v int) *int { return &v }

// straightSets is a 6-0 6-0 win for side A, or side B when reversed.
func straightSets(reversed bool) padel.ScoreInput {
	if reversed {
		return padel.ScoreInput{Set1A: 0, Set1B: 6, Set2A: intp(0), Set2B: intp(6)}
	}
	return padel.ScoreInput{Set1A: 6, Set1B: 0, Set2A: intp(6), Set2B: intp(0)}
}

func (f *fixture) topics() []pubsub.EventType {
	var out []pubsub.EventType
	for _, c := range f.events.Sent() {
		out = append(out, c.Topic)
	}
	return out
}
