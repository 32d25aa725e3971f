package store

import "github.com/mauv0809/padel-tournament/internal/padel"

// ReplaceStandings swaps the materialized table of a group for rows.
func (s *store) ReplaceStandings(groupID string, rows []padel.Standing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM standings WHERE group_id = ?`, groupID); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO standings (group_id, team_id, played, won, lost, sets_won, sets_lost, games_won, games_lost, points, position, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	ts := now().Unix()
	for _, r := range rows {
		_, err := stmt.Exec(groupID, r.TeamID, r.Played, r.Won, r.Lost, r.SetsWon, r.SetsLost, r.GamesWon, r.GamesLost, r.Points, r.Position, ts)
		if err != nil {
			tx.Rollback()
			return mapErr(err, "standing of "+r.TeamID)
		}
	}
	return tx.Commit()
}

// ListStandings returns the stored table of a group by position.
func (s *store) ListStandings(groupID string) ([]padel.Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT s.group_id, s.team_id, t.name, s.played, s.won, s.lost, s.sets_won, s.sets_lost, s.games_won, s.games_lost, s.points, s.position
		FROM standings s
		JOIN teams t ON t.id = s.team_id
		WHERE s.group_id = ?
		ORDER BY s.position, t.name`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var table []padel.Standing
	for rows.Next() {
		var r padel.Standing
		if err := rows.Scan(&r.GroupID, &r.TeamID, &r.TeamName, &r.Played, &r.Won, &r.Lost,
			&r.SetsWon, &r.SetsLost, &r.GamesWon, &r.GamesLost, &r.Points, &r.Position); err != nil {
			return nil, err
		}
		table = append(table, r)
	}
	return table, rows.Err()
}
