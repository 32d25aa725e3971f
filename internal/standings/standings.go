// Package standings derives group tables from completed matches.
// Tables are never patched incrementally: every call replays the matches.
package standings

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mauv0809/padel-tournament/internal/padel"
)

// PointsPerWin is awarded for each match won. Losses and set or game
// differences give no points.
const PointsPerWin = 3

// Table is the ranked standings of one group.
type Table struct {
	Group padel.Group      `json:"group"`
	Rows  []padel.Standing `json:"rows"`
}

// Compute folds the completed matches of a group into one row per team and ranks them.
// Teams that have not played get a zeroed row. Matches involving a team that
// is not listed, and matches of another group, are ignored.
func Compute(groupID string, teams []padel.Team, matches []padel.Match) []padel.Standing {
	rows := make([]padel.Standing, len(teams))
	index := make(map[string]*padel.Standing, len(teams))
	for i, t := range teams {
		rows[i] = padel.Standing{GroupID: groupID, TeamID: t.ID, TeamName: t.Name}
		index[t.ID] = &rows[i]
	}

	for i := range matches {
		m := &matches[i]
		if m.GroupID != groupID || !m.IsDecided() {
			continue
		}
		a, b := index[m.SideA], index[m.SideB]
		if a == nil || b == nil {
			continue
		}
		out := m.Score.Resolve()
		a.Played++
		b.Played++
		a.SetsWon += out.SetsA
		a.SetsLost += out.SetsB
		b.SetsWon += out.SetsB
		b.SetsLost += out.SetsA
		a.GamesWon += out.GamesA
		a.GamesLost += out.GamesB
		b.GamesWon += out.GamesB
		b.GamesLost += out.GamesA
		if m.WinnerID == m.SideA {
			a.Won++
			b.Lost++
		} else {
			b.Won++
			a.Lost++
		}
	}
	for i := range rows {
		rows[i].Points = rows[i].Won * PointsPerWin
	}
	Rank(rows)
	return rows
}

// Compare orders two rows best first: more wins, then better set
// difference, then better game difference.
func Compare(x, y padel.Standing) int {
	if c := cmp.Compare(y.Won, x.Won); c != 0 {
		return c
	}
	if c := cmp.Compare(y.SetDiff(), x.SetDiff()); c != 0 {
		return c
	}
	return cmp.Compare(y.GameDiff(), x.GameDiff())
}

// Rank sorts rows in place and numbers their positions from 1.
// Rows equal on every criterion keep their input order.
func Rank(rows []padel.Standing) {
	slices.SortStableFunc(rows, Compare)
	for i := range rows {
		rows[i].Position = i + 1
	}
}

// SelectQualifiers picks count teams across group tables: every group leader
// first, then runners-up compared against each other. Third place and lower
// never qualify.
func SelectQualifiers(tables [][]padel.Standing, count int) ([]padel.Standing, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: qualifier count must be positive", padel.ErrInvalidInput)
	}
	var leaders, runnersUp []padel.Standing
	for _, table := range tables {
		ranked := slices.Clone(table)
		Rank(ranked)
		if len(ranked) > 0 {
			leaders = append(leaders, ranked[0])
		}
		if len(ranked) > 1 {
			runnersUp = append(runnersUp, ranked[1])
		}
	}
	if count > len(leaders)+len(runnersUp) {
		return nil, fmt.Errorf("%w: asked for %d, groups provide %d", padel.ErrNotEnoughQualifiers, count, len(leaders)+len(runnersUp))
	}
	slices.SortStableFunc(leaders, Compare)
	slices.SortStableFunc(runnersUp, Compare)
	qualified := append(leaders, runnersUp...)
	return qualified[:count], nil
}
