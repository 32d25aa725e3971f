package digest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/padel-tournament/internal/digest"
	"github.com/mauv0809/padel-tournament/internal/notifier"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/standings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	categories []padel.Category
	tables     map[string][]standings.Table
	failing    string
}

func (f *fakeSource) ListCategories() ([]padel.Category, error) {
	return f.categories, nil
}

func (f *fakeSource) CategoryStandings(ctx context.Context, category string) ([]standings.Table, error) {
	if category == f.failing {
		return nil, errors.New("boom")
	}
	return f.tables[category], nil
}

func newSource() *fakeSource {
	return &fakeSource{
		categories: []padel.Category{
			{ID: "5ta-masculino", Name: "5ta Masculino"},
			{ID: "5ta-femenino", Name: "5ta Femenino"},
		},
		tables: map[string][]standings.Table{
			"5ta-masculino": {
				{Group: padel.Group{ID: "g1", Name: "Grupo A"}, Rows: []padel.Standing{{TeamID: "t1", Position: 1}}},
				{Group: padel.Group{ID: "g2", Name: "Grupo B"}},
			},
		},
	}
}

func TestRunOnce(t *testing.T) {
	n := notifier.NewMock()
	d, err := digest.New(newSource(), n, time.Hour, true)
	require.NoError(t, err)

	require.NoError(t, d.RunOnce(context.Background()))

	calls := n.StandingsCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "5ta Masculino - Grupo A", calls[0].Title)
	assert.Len(t, calls[0].Rows, 1)
	assert.Equal(t, "5ta Masculino - Grupo B", calls[1].Title)
	assert.True(t, calls[0].DryRun)
}

func TestRunOnceContinuesPastFailures(t *testing.T) {
	src := newSource()
	src.failing = "5ta-masculino"
	src.tables["5ta-femenino"] = []standings.Table{{Group: padel.Group{ID: "g3", Name: "Grupo A"}}}
	n := notifier.NewMock()
	d, err := digest.New(src, n, time.Hour, false)
	require.NoError(t, err)

	err = d.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5ta-masculino")
	require.Len(t, n.StandingsCalls(), 1)
	assert.Equal(t, "5ta Femenino - Grupo A", n.StandingsCalls()[0].Title)
}

func TestScheduledDigest(t *testing.T) {
	n := notifier.NewMock()
	d, err := digest.New(newSource(), n, 20*time.Millisecond, true)
	require.NoError(t, err)
	d.Start()
	defer d.Shutdown()

	assert.Eventually(t, func() bool { return len(n.StandingsCalls()) >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestNewRejectsZeroInterval(t *testing.T) {
	_, err := digest.New(newSource(), notifier.NewMock(), 0, false)
	assert.Error(t, err)
}
