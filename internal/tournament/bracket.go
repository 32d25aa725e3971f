package tournament

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-tournament/internal/bracket"
	"github.com/mauv0809/padel-tournament/internal/live"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/schedule"
	"github.com/mauv0809/padel-tournament/internal/store"
)

func (s *Service) loadBracket(category string) (*padel.Bracket, error) {
	matches, err := s.store.ListMatches(store.MatchFilter{Category: category, Knockout: true})
	if err != nil {
		return nil, err
	}
	return padel.NewBracket(category, matches)
}

// Bracket returns the category's elimination bracket, round by round.
func (s *Service) Bracket(category string) (*padel.Bracket, error) {
	return s.loadBracket(category)
}

// SeedBracket replaces the category's bracket with a new one seeded in the
// given order. Seeds must be registered teams of the category.
func (s *Service) SeedBracket(category string, seeds []string) (*padel.Bracket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetCategory(category); err != nil {
		return nil, err
	}
	for _, id := range seeds {
		t, err := s.store.GetTeam(id)
		if err != nil {
			return nil, err
		}
		if t.Category != category {
			return nil, fmt.Errorf("%w: team %s plays %s", padel.ErrInvalidInput, id, t.Category)
		}
	}
	b, err := schedule.SeedBracket(category, seeds)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.DeleteMatches(store.MatchFilter{Category: category, Knockout: true}); err != nil {
		return nil, err
	}
	if err := s.store.CreateMatches(b.Matches()); err != nil {
		return nil, err
	}
	log.Info("Seeded bracket", "category", category, "size", b.Size())
	s.live.Publish(category, live.TypeBracketUpdated, b)
	return b, nil
}

// SeedBracketFromStandings seeds the bracket with the category's qualifiers.
func (s *Service) SeedBracketFromStandings(ctx context.Context, category string, count int) (*padel.Bracket, error) {
	qualifiers, err := s.Qualifiers(ctx, category, count)
	if err != nil {
		return nil, err
	}
	seeds := make([]string, len(qualifiers))
	for i, q := range qualifiers {
		seeds[i] = q.TeamID
	}
	return s.SeedBracket(category, seeds)
}

// DeleteBracket removes every knockout match of the category.
func (s *Service) DeleteBracket(category string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.store.DeleteMatches(store.MatchFilter{Category: category, Knockout: true})
	if err != nil {
		return 0, err
	}
	s.live.Publish(category, live.TypeBracketUpdated, nil)
	return n, nil
}

func (s *Service) knockoutMatch(matchID string) (*padel.Match, *padel.Bracket, error) {
	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return nil, nil, err
	}
	if !m.Phase.IsKnockout() {
		return nil, nil, fmt.Errorf("%w: match %s is not a bracket match", padel.ErrInvalidInput, matchID)
	}
	b, err := s.loadBracket(m.Category)
	if err != nil {
		return nil, nil, err
	}
	bm, ok := b.MatchByID(m.ID)
	if !ok {
		return nil, nil, fmt.Errorf("match %s is not part of the %s bracket: %w", m.ID, m.Category, padel.ErrNotFound)
	}
	return bm, b, nil
}

// AssignSlot places a team of the category into an empty bracket slot.
func (s *Service) AssignSlot(matchID string, side padel.Side, teamID string) (*padel.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, b, err := s.knockoutMatch(matchID)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTeam(teamID)
	if err != nil {
		return nil, err
	}
	if t.Category != m.Category {
		return nil, fmt.Errorf("%w: team %s plays %s", padel.ErrInvalidInput, teamID, t.Category)
	}
	touched, err := bracket.Assign(b, m.Ref(), side, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateMatches(touched); err != nil {
		return nil, err
	}
	s.live.Publish(m.Category, live.TypeBracketUpdated, touched)
	return touched[0], nil
}

// RemoveSlot empties a bracket slot and resets the match.
func (s *Service) RemoveSlot(matchID string, side padel.Side) ([]*padel.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, b, err := s.knockoutMatch(matchID)
	if err != nil {
		return nil, err
	}
	touched, err := bracket.Remove(b, m.Ref(), side)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateMatches(touched); err != nil {
		return nil, err
	}
	s.live.Publish(m.Category, live.TypeBracketUpdated, touched)
	return touched, nil
}

// UnassignedTeams lists the category's teams that hold no bracket slot.
func (s *Service) UnassignedTeams(category string) ([]padel.Team, error) {
	b, err := s.loadBracket(category)
	if err != nil {
		return nil, err
	}
	teams, err := s.store.ListTeams(category)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	pool := make(map[string]bool)
	for _, id := range bracket.Unassigned(b, ids) {
		pool[id] = true
	}
	var out []padel.Team
	for _, t := range teams {
		if pool[t.ID] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Champion returns the winner of the category's final.
func (s *Service) Champion(category string) (*padel.Team, error) {
	b, err := s.loadBracket(category)
	if err != nil {
		return nil, err
	}
	id, ok := b.Champion()
	if !ok {
		return nil, fmt.Errorf("champion of %s: %w", category, padel.ErrNotFound)
	}
	return s.store.GetTeam(id)
}

func (s *Service) matchWithTeams(category, matchID string) (*padel.MatchWithTeams, error) {
	matches, err := s.store.ListMatchesWithTeams(store.MatchFilter{Category: category})
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].ID == matchID {
			return &matches[i], nil
		}
	}
	return nil, fmt.Errorf("match %s: %w", matchID, padel.ErrNotFound)
}
