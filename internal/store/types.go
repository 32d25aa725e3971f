package store

import (
	"strings"
	"time"

	"github.com/mauv0809/padel-tournament/internal/padel"
)

// MatchFilter narrows match queries. Zero fields match everything.
type MatchFilter struct {
	ID       string
	Category string
	Phase    padel.Phase
	GroupID  string
	TeamID   string
	Status   padel.Status
	// Knockout keeps only bracket matches.
	Knockout bool
}

// Matches reports whether m passes the filter.
func (f MatchFilter) Matches(m *padel.Match) bool {
	switch {
	case f.ID != "" && m.ID != f.ID:
		return false
	case f.Category != "" && m.Category != f.Category:
		return false
	case f.Phase != "" && m.Phase != f.Phase:
		return false
	case f.GroupID != "" && m.GroupID != f.GroupID:
		return false
	case f.TeamID != "" && !m.Has(f.TeamID):
		return false
	case f.Status != "" && m.Status != f.Status:
		return false
	case f.Knockout && !m.Phase.IsKnockout():
		return false
	}
	return true
}

func (f MatchFilter) where() (string, []any) {
	var clauses []string
	var args []any
	if f.ID != "" {
		clauses = append(clauses, "m.id = ?")
		args = append(args, f.ID)
	}
	if f.Category != "" {
		clauses = append(clauses, "m.category = ?")
		args = append(args, f.Category)
	}
	if f.Phase != "" {
		clauses = append(clauses, "m.phase = ?")
		args = append(args, string(f.Phase))
	}
	if f.GroupID != "" {
		clauses = append(clauses, "m.group_id = ?")
		args = append(args, f.GroupID)
	}
	if f.TeamID != "" {
		clauses = append(clauses, "(m.side_a_id = ? OR m.side_b_id = ?)")
		args = append(args, f.TeamID, f.TeamID)
	}
	if f.Status != "" {
		clauses = append(clauses, "m.status = ?")
		args = append(args, string(f.Status))
	}
	if f.Knockout {
		clauses = append(clauses, "m.phase != ?")
		args = append(args, string(padel.PhaseGroup))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// now is the timestamp source of both stores. Rows keep second precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
