package store

import (
	"github.com/google/uuid"
	"github.com/mauv0809/padel-tournament/internal/padel"
)

func (s *store) CreateGroup(g *padel.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.CreatedAt = now()
	g.UpdatedAt = g.CreatedAt
	_, err := s.db.Exec(`INSERT INTO "groups" (id, name, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Category, g.CreatedAt.Unix(), g.UpdatedAt.Unix())
	return mapErr(err, "group "+g.Name)
}

func (s *store) GetGroup(id string) (*padel.GroupWithTeams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		g                    padel.GroupWithTeams
		createdAt, updatedAt int64
	)
	err := s.db.QueryRow(`SELECT id, name, category, created_at, updated_at FROM "groups" WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.Category, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapErr(err, "group "+id)
	}
	g.CreatedAt = unix(createdAt)
	g.UpdatedAt = unix(updatedAt)

	members, err := s.groupMembers(`gt.group_id = ?`, id)
	if err != nil {
		return nil, err
	}
	g.Teams = members[id]
	return &g, nil
}

// ListGroups returns the groups of a category with their teams, or every group when category is empty.
func (s *store) ListGroups(category string) ([]padel.GroupWithTeams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, category, created_at, updated_at FROM "groups"`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	rows, err := s.db.Query(query+` ORDER BY name, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []padel.GroupWithTeams
	for rows.Next() {
		var (
			g                    padel.GroupWithTeams
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Category, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		g.CreatedAt = unix(createdAt)
		g.UpdatedAt = unix(updatedAt)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	where, arg := `1 = 1`, []any{}
	if category != "" {
		where, arg = `g.category = ?`, []any{category}
	}
	members, err := s.groupMembers(where, arg...)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].Teams = members[groups[i].ID]
	}
	return groups, nil
}

// groupMembers loads team rows keyed by group ID, each list ordered by team name.
func (s *store) groupMembers(where string, args ...any) (map[string][]padel.Team, error) {
	rows, err := s.db.Query(`
		SELECT gt.group_id, `+teamColumns+`
		FROM group_teams gt
		JOIN teams t ON t.id = gt.team_id
		JOIN "groups" g ON g.id = gt.group_id
		WHERE `+where+`
		ORDER BY t.name, t.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make(map[string][]padel.Team)
	for rows.Next() {
		var (
			groupID              string
			t                    padel.Team
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&groupID, &t.ID, &t.Name, &t.Player1, &t.Player2, &t.Category, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		t.CreatedAt = unix(createdAt)
		t.UpdatedAt = unix(updatedAt)
		members[groupID] = append(members[groupID], t)
	}
	return members, rows.Err()
}

// DeleteGroup removes a group with its memberships, group matches and standings.
func (s *store) DeleteGroup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM "groups" WHERE id = ?`, id)
	if err != nil {
		return mapErr(err, "group "+id)
	}
	return expectRows(res, "group "+id)
}

func (s *store) AddTeamToGroup(groupID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO group_teams (id, group_id, team_id, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), groupID, teamID, now().Unix())
	return mapErr(err, "team "+teamID+" in group "+groupID)
}

// RemoveTeamFromGroup drops the membership and the team's standing row in that group.
func (s *store) RemoveTeamFromGroup(groupID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM group_teams WHERE group_id = ? AND team_id = ?`, groupID, teamID)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := expectRows(res, "team "+teamID+" in group "+groupID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM standings WHERE group_id = ? AND team_id = ?`, groupID, teamID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
