package store

import (
	"database/sql"

	"github.com/mauv0809/padel-tournament/internal/padel"
)

func (s *store) CreateCategory(c *padel.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	var maxTeams any
	if c.MaxTeams != nil {
		maxTeams = *c.MaxTeams
	}
	_, err := s.db.Exec(`INSERT INTO categories (id, name, description, max_teams, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, nullString(c.Description), maxTeams, c.CreatedAt.Unix(), c.UpdatedAt.Unix())
	return mapErr(err, "category "+c.ID)
}

func (s *store) GetCategory(id string) (*padel.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT id, name, description, max_teams, created_at, updated_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, mapErr(err, "category "+id)
	}
	return c, nil
}

func (s *store) ListCategories() ([]padel.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, description, max_teams, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []padel.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return mapErr(err, "category "+id)
	}
	return expectRows(res, "category "+id)
}

func scanCategory(sc scanner) (*padel.Category, error) {
	var (
		c                    padel.Category
		description          sql.NullString
		maxTeams             sql.NullInt64
		createdAt, updatedAt int64
	)
	if err := sc.Scan(&c.ID, &c.Name, &description, &maxTeams, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.Description = description.String
	if maxTeams.Valid {
		n := int(maxTeams.Int64)
		c.MaxTeams = &n
	}
	c.CreatedAt = unix(createdAt)
	c.UpdatedAt = unix(updatedAt)
	return &c, nil
}
