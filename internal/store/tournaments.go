package store

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mauv0809/padel-tournament/internal/padel"
)

func (s *store) CreateTournament(t *padel.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = "upcoming"
	}
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	_, err := s.db.Exec(`
		INSERT INTO tournaments (id, name, start_date, end_date, location, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, nullTime(t.StartDate), nullTime(t.EndDate), nullString(t.Location), t.Status, t.CreatedAt.Unix(), t.UpdatedAt.Unix())
	return mapErr(err, "tournament "+t.Name)
}

func (s *store) ListTournaments() ([]padel.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, start_date, end_date, location, status, created_at, updated_at FROM tournaments ORDER BY start_date DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []padel.Tournament
	for rows.Next() {
		var (
			t                    padel.Tournament
			start, end           sql.NullInt64
			location             sql.NullString
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&t.ID, &t.Name, &start, &end, &location, &t.Status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		t.StartDate = timePtr(start)
		t.EndDate = timePtr(end)
		t.Location = location.String
		t.CreatedAt = unix(createdAt)
		t.UpdatedAt = unix(updatedAt)
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}
