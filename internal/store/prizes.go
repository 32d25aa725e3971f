package store

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mauv0809/padel-tournament/internal/padel"
)

func (s *store) CreatePrize(p *padel.Prize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	_, err := s.db.Exec(`
		INSERT INTO prizes (id, tournament_id, category, position, team_id, prize_amount, prize_description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, nullString(p.TournamentID), p.Category, p.Position, nullString(p.TeamID), amount(p.Amount),
		nullString(p.Description), p.CreatedAt.Unix(), p.UpdatedAt.Unix())
	return mapErr(err, "prize "+p.Position)
}

func (s *store) UpdatePrize(p *padel.Prize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = now()
	res, err := s.db.Exec(`
		UPDATE prizes SET tournament_id = ?, category = ?, position = ?, team_id = ?, prize_amount = ?, prize_description = ?, updated_at = ?
		WHERE id = ?`,
		nullString(p.TournamentID), p.Category, p.Position, nullString(p.TeamID), amount(p.Amount),
		nullString(p.Description), p.UpdatedAt.Unix(), p.ID)
	if err != nil {
		return mapErr(err, "prize "+p.ID)
	}
	return expectRows(res, "prize "+p.ID)
}

// ListPrizes returns the prizes of a category, or all of them when category is empty.
func (s *store) ListPrizes(category string) ([]padel.Prize, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, tournament_id, category, position, team_id, prize_amount, prize_description, created_at, updated_at FROM prizes`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	rows, err := s.db.Query(query+` ORDER BY category, position`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prizes []padel.Prize
	for rows.Next() {
		var (
			p                                 padel.Prize
			tournamentID, teamID, description sql.NullString
			prizeAmount                       sql.NullFloat64
			createdAt, updatedAt              int64
		)
		if err := rows.Scan(&p.ID, &tournamentID, &p.Category, &p.Position, &teamID, &prizeAmount, &description, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.TournamentID = tournamentID.String
		p.TeamID = teamID.String
		p.Description = description.String
		if prizeAmount.Valid {
			v := prizeAmount.Float64
			p.Amount = &v
		}
		p.CreatedAt = unix(createdAt)
		p.UpdatedAt = unix(updatedAt)
		prizes = append(prizes, p)
	}
	return prizes, rows.Err()
}

func amount(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
