package tournament

import (
	"context"
	"time"

	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/standings"
	"github.com/mauv0809/padel-tournament/internal/store"
	"golang.org/x/sync/errgroup"
)

func (s *Service) computeTable(g *padel.GroupWithTeams) (standings.Table, error) {
	matches, err := s.store.ListMatches(store.MatchFilter{GroupID: g.ID, Phase: padel.PhaseGroup})
	if err != nil {
		return standings.Table{}, err
	}
	return standings.Table{Group: g.Group, Rows: standings.Compute(g.ID, g.Teams, matches)}, nil
}

// refreshStandings recomputes a group's table from its matches and stores it.
func (s *Service) refreshStandings(groupID string) (standings.Table, error) {
	start := time.Now()
	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return standings.Table{}, err
	}
	table, err := s.computeTable(g)
	if err != nil {
		return standings.Table{}, err
	}
	if err := s.store.ReplaceStandings(groupID, table.Rows); err != nil {
		return standings.Table{}, err
	}
	s.metrics.ObserveStandingsDuration(time.Since(start).Seconds())
	return table, nil
}

// GroupStandings returns the ranked table of a group, derived from its matches.
func (s *Service) GroupStandings(groupID string) (standings.Table, error) {
	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return standings.Table{}, err
	}
	return s.computeTable(g)
}

// StoredStandings returns the table last written for a group, without
// recomputing it from the matches.
func (s *Service) StoredStandings(groupID string) (standings.Table, error) {
	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return standings.Table{}, err
	}
	rows, err := s.store.ListStandings(groupID)
	if err != nil {
		return standings.Table{}, err
	}
	return standings.Table{Group: g.Group, Rows: rows}, nil
}

// CategoryStandings returns the table of every group of a category, in group order.
func (s *Service) CategoryStandings(ctx context.Context, category string) ([]standings.Table, error) {
	if _, err := s.store.GetCategory(category); err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroups(category)
	if err != nil {
		return nil, err
	}
	tables := make([]standings.Table, len(groups))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i := range groups {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			table, err := s.computeTable(&groups[i])
			if err != nil {
				return err
			}
			tables[i] = table
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// Qualifiers picks the teams that go through to the bracket: group leaders
// first, then the best runners-up.
func (s *Service) Qualifiers(ctx context.Context, category string, count int) ([]padel.Standing, error) {
	tables, err := s.CategoryStandings(ctx, category)
	if err != nil {
		return nil, err
	}
	rows := make([][]padel.Standing, len(tables))
	for i, t := range tables {
		rows[i] = t.Rows
	}
	return standings.SelectQualifiers(rows, count)
}
