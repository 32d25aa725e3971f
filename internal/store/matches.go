package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mauv0809/padel-tournament/internal/padel"
)

const matchColumns = `m.id, m.category, m.phase, m.group_id, m.position, m.side_a_id, m.side_b_id, m.side_a_from, m.side_b_from,
	m.source_a, m.source_b, m.set1_a, m.set1_b, m.set2_a, m.set2_b, m.set3_a, m.set3_b,
	m.winner_id, m.status, m.match_date, m.court_number, m.booking_id, m.created_at, m.updated_at`

// CreateMatches inserts the matches in one transaction, filling in IDs and timestamps.
func (s *store) CreateMatches(matches []*padel.Match) error {
	if len(matches) == 0 {
		return nil
	}
	for _, m := range matches {
		if m.Status == "" {
			m.Status = padel.StatusPending
		}
		if err := m.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO matches (id, category, phase, group_id, position, side_a_id, side_b_id, side_a_from, side_b_from,
			source_a, source_b, set1_a, set1_b, set2_a, set2_b, set3_a, set3_b,
			winner_id, status, match_date, court_number, booking_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	ts := now()
	for _, m := range matches {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.CreatedAt, m.UpdatedAt = ts, ts
		args := append([]any{m.ID, m.Category, string(m.Phase), nullString(m.GroupID), m.Position}, matchValues(m)...)
		args = append(args, m.CreatedAt.Unix(), m.UpdatedAt.Unix())
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return mapErr(err, "match "+m.ID)
		}
	}
	return tx.Commit()
}

// matchValues returns the mutable columns, side_a_id through booking_id.
func matchValues(m *padel.Match) []any {
	refString := func(r *padel.MatchRef) any {
		if r == nil {
			return nil
		}
		return r.String()
	}
	sets := make([]any, 6)
	for i := range 3 {
		if i < len(m.Score.Sets) {
			sets[2*i], sets[2*i+1] = m.Score.Sets[i].A, m.Score.Sets[i].B
		}
	}
	values := []any{nullString(m.SideA), nullString(m.SideB), nullString(m.SideAFrom), nullString(m.SideBFrom),
		refString(m.SourceA), refString(m.SourceB)}
	values = append(values, sets...)
	return append(values, nullString(m.WinnerID), string(m.Status), nullTime(m.MatchDate), nullString(m.Court), nullString(m.BookingID))
}

func (s *store) GetMatch(id string) (*padel.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches m WHERE m.id = ?`, id)
	m, err := scanMatch(row)
	if err != nil {
		return nil, mapErr(err, "match "+id)
	}
	return m, nil
}

// UpdateMatches writes the slots, score, result and booking fields of each
// match in one transaction. Category, phase, group and position never change.
func (s *store) UpdateMatches(matches []*padel.Match) error {
	for _, m := range matches {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("match %s: %w", m.ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	ts := now()
	for _, m := range matches {
		args := append(matchValues(m), ts.Unix(), m.ID)
		res, err := tx.Exec(`
			UPDATE matches SET side_a_id = ?, side_b_id = ?, side_a_from = ?, side_b_from = ?,
				source_a = ?, source_b = ?, set1_a = ?, set1_b = ?, set2_a = ?, set2_b = ?, set3_a = ?, set3_b = ?,
				winner_id = ?, status = ?, match_date = ?, court_number = ?, booking_id = ?, updated_at = ?
			WHERE id = ?`, args...)
		if err != nil {
			tx.Rollback()
			return mapErr(err, "match "+m.ID)
		}
		if err := expectRows(res, "match "+m.ID); err != nil {
			tx.Rollback()
			return err
		}
		m.UpdatedAt = ts
	}
	return tx.Commit()
}

func (s *store) ListMatches(filter MatchFilter) ([]padel.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := filter.where()
	rows, err := s.db.Query(`SELECT `+matchColumns+` FROM matches m`+where+` ORDER BY m.position, m.rowid`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []padel.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// ListMatchesWithTeams joins every match with its team and group rows.
func (s *store) ListMatchesWithTeams(filter MatchFilter) ([]padel.MatchWithTeams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := filter.where()
	rows, err := s.db.Query(`
		SELECT `+matchColumns+`,
			ta.id, ta.name, ta.player1_name, ta.player2_name, ta.category,
			tb.id, tb.name, tb.player1_name, tb.player2_name, tb.category,
			g.id, g.name, g.category
		FROM matches m
		LEFT JOIN teams ta ON ta.id = m.side_a_id
		LEFT JOIN teams tb ON tb.id = m.side_b_id
		LEFT JOIN "groups" g ON g.id = m.group_id`+where+`
		ORDER BY m.position, m.rowid`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []padel.MatchWithTeams
	for rows.Next() {
		var (
			teamA, teamB [5]sql.NullString
			group        [3]sql.NullString
		)
		m, err := scanMatch(rows,
			&teamA[0], &teamA[1], &teamA[2], &teamA[3], &teamA[4],
			&teamB[0], &teamB[1], &teamB[2], &teamB[3], &teamB[4],
			&group[0], &group[1], &group[2])
		if err != nil {
			return nil, err
		}
		mt := padel.MatchWithTeams{Match: *m, TeamA: joinedTeam(teamA), TeamB: joinedTeam(teamB)}
		if group[0].Valid {
			mt.Group = &padel.Group{ID: group[0].String, Name: group[1].String, Category: group[2].String}
		}
		switch m.WinnerID {
		case "":
		case m.SideA:
			mt.Winner = mt.TeamA
		case m.SideB:
			mt.Winner = mt.TeamB
		}
		out = append(out, mt)
	}
	return out, rows.Err()
}

func joinedTeam(cols [5]sql.NullString) *padel.Team {
	if !cols[0].Valid {
		return nil
	}
	return &padel.Team{ID: cols[0].String, Name: cols[1].String, Player1: cols[2].String, Player2: cols[3].String, Category: cols[4].String}
}

// DeleteMatches removes every match the filter selects and returns how many went.
func (s *store) DeleteMatches(filter MatchFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	where, args := filter.where()
	res, err := s.db.Exec(`DELETE FROM matches WHERE id IN (SELECT m.id FROM matches m`+where+`)`, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// scanMatch reads the match columns followed by any extra destinations.
func scanMatch(sc scanner, extra ...any) (*padel.Match, error) {
	var (
		m                                     padel.Match
		phase, status                         string
		groupID, sideA, sideB, sideAFrom      sql.NullString
		sideBFrom, sourceA, sourceB, winnerID sql.NullString
		court, bookingID                      sql.NullString
		sets                                  [6]sql.NullInt64
		matchDate                             sql.NullInt64
		createdAt, updatedAt                  int64
	)
	dest := []any{&m.ID, &m.Category, &phase, &groupID, &m.Position, &sideA, &sideB, &sideAFrom, &sideBFrom,
		&sourceA, &sourceB, &sets[0], &sets[1], &sets[2], &sets[3], &sets[4], &sets[5],
		&winnerID, &status, &matchDate, &court, &bookingID, &createdAt, &updatedAt}
	if err := sc.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	m.Phase = padel.Phase(phase)
	m.Status = padel.Status(status)
	m.GroupID = groupID.String
	m.SideA, m.SideB = sideA.String, sideB.String
	m.SideAFrom, m.SideBFrom = sideAFrom.String, sideBFrom.String
	m.WinnerID = winnerID.String
	m.Court = court.String
	m.BookingID = bookingID.String
	m.MatchDate = timePtr(matchDate)
	m.CreatedAt = unix(createdAt)
	m.UpdatedAt = unix(updatedAt)
	for i := 0; i < 3; i++ {
		a, b := sets[2*i], sets[2*i+1]
		if !a.Valid || !b.Valid {
			break
		}
		m.Score.Sets = append(m.Score.Sets, padel.SetScore{A: int(a.Int64), B: int(b.Int64)})
	}
	for _, src := range []struct {
		col sql.NullString
		ref **padel.MatchRef
	}{{sourceA, &m.SourceA}, {sourceB, &m.SourceB}} {
		if !src.col.Valid {
			continue
		}
		ref, err := padel.ParseMatchRef(src.col.String)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", m.ID, err)
		}
		*src.ref = &ref
	}
	return &m, nil
}
