package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mauv0809/padel-tournament/internal/padel"
)

const teamColumns = `t.id, t.name, t.player1_name, t.player2_name, t.category, t.created_at, t.updated_at`

func (s *store) CreateTeam(t *padel.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	_, err := s.db.Exec(`INSERT INTO teams (id, name, player1_name, player2_name, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Player1, t.Player2, t.Category, t.CreatedAt.Unix(), t.UpdatedAt.Unix())
	return mapErr(err, "team "+t.Name)
}

func (s *store) UpdateTeam(t *padel.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.UpdatedAt = now()
	res, err := s.db.Exec(`UPDATE teams SET name = ?, player1_name = ?, player2_name = ?, category = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Player1, t.Player2, t.Category, t.UpdatedAt.Unix(), t.ID)
	if err != nil {
		return mapErr(err, "team "+t.ID)
	}
	return expectRows(res, "team "+t.ID)
}

func (s *store) GetTeam(id string) (*padel.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+teamColumns+` FROM teams t WHERE t.id = ?`, id)
	t, err := scanTeam(row)
	if err != nil {
		return nil, mapErr(err, "team "+id)
	}
	return t, nil
}

// ListTeams returns the teams of a category by name, or every team when category is empty.
func (s *store) ListTeams(category string) ([]padel.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + teamColumns + ` FROM teams t`
	var args []any
	if category != "" {
		query += ` WHERE t.category = ?`
		args = append(args, category)
	}
	rows, err := s.db.Query(query+` ORDER BY t.name, t.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []padel.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (s *store) CountTeams(category string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM teams WHERE category = ?`, category).Scan(&n)
	return n, err
}

// DeleteTeam removes a team together with its group memberships and standing rows.
func (s *store) DeleteTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM teams WHERE id = ?`, id)
	if isForeignKeyErr(err) {
		return fmt.Errorf("team %s: %w", id, padel.ErrTeamHasMatches)
	}
	if err != nil {
		return mapErr(err, "team "+id)
	}
	return expectRows(res, "team "+id)
}

func scanTeam(sc scanner) (*padel.Team, error) {
	var (
		t                    padel.Team
		createdAt, updatedAt int64
	)
	if err := sc.Scan(&t.ID, &t.Name, &t.Player1, &t.Player2, &t.Category, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = unix(createdAt)
	t.UpdatedAt = unix(updatedAt)
	return &t, nil
}
