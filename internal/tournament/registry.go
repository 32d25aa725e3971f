package tournament

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/schedule"
	"github.com/mauv0809/padel-tournament/internal/store"
)

// CreateCategory registers a category. Its ID is the slug of its name.
func (s *Service) CreateCategory(name, description string, maxTeams *int) (*padel.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", padel.ErrInvalidInput)
	}
	if maxTeams != nil && *maxTeams < 2 {
		return nil, fmt.Errorf("%w: max_teams must be at least 2", padel.ErrInvalidInput)
	}
	id := slug.Make(name)
	if id == "" {
		return nil, fmt.Errorf("%w: category name %q has no usable characters", padel.ErrInvalidInput, name)
	}
	c := &padel.Category{ID: id, Name: name, Description: description, MaxTeams: maxTeams}
	if err := s.store.CreateCategory(c); err != nil {
		return nil, err
	}
	log.Info("Created category", "id", c.ID)
	return c, nil
}

func (s *Service) GetCategory(id string) (*padel.Category, error) {
	return s.store.GetCategory(id)
}

func (s *Service) ListCategories() ([]padel.Category, error) {
	return s.store.ListCategories()
}

// DeleteCategory removes a category with its teams, groups and matches.
func (s *Service) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.DeleteCategory(id); err != nil {
		return err
	}
	log.Info("Deleted category", "id", id)
	return nil
}

// RegisterTeam adds a team to its category, respecting the category's capacity.
func (s *Service) RegisterTeam(t *padel.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c, err := s.store.GetCategory(t.Category)
	if err != nil {
		return err
	}
	if c.MaxTeams != nil {
		n, err := s.store.CountTeams(c.ID)
		if err != nil {
			return err
		}
		if n >= *c.MaxTeams {
			return fmt.Errorf("%w: %s holds %d teams", padel.ErrCategoryFull, c.ID, n)
		}
	}
	if err := s.store.CreateTeam(t); err != nil {
		return err
	}
	log.Info("Registered team", "id", t.ID, "name", t.Name, "category", t.Category)
	return nil
}

// UpdateTeam renames a team or changes its players. The category is fixed.
func (s *Service) UpdateTeam(t *padel.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	existing, err := s.store.GetTeam(t.ID)
	if err != nil {
		return err
	}
	if existing.Category != t.Category {
		return fmt.Errorf("%w: a team cannot change category", padel.ErrInvalidInput)
	}
	return s.store.UpdateTeam(t)
}

func (s *Service) GetTeam(id string) (*padel.Team, error) {
	return s.store.GetTeam(id)
}

func (s *Service) ListTeams(category string) ([]padel.Team, error) {
	return s.store.ListTeams(category)
}

// DeleteTeam removes a team that no longer appears in any match, then
// refreshes the tables of the groups it belonged to.
func (s *Service) DeleteTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.GetTeam(id)
	if err != nil {
		return err
	}
	groups, err := s.groupsOf(t)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTeam(id); err != nil {
		return err
	}
	for _, g := range groups {
		if _, err := s.refreshStandings(g.ID); err != nil {
			return err
		}
	}
	log.Info("Deleted team", "id", id)
	return nil
}

func (s *Service) groupsOf(t *padel.Team) ([]padel.GroupWithTeams, error) {
	groups, err := s.store.ListGroups(t.Category)
	if err != nil {
		return nil, err
	}
	var out []padel.GroupWithTeams
	for _, g := range groups {
		if g.HasTeam(t.ID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Service) CreateGroup(name, category string) (*padel.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", padel.ErrInvalidInput)
	}
	if _, err := s.store.GetCategory(category); err != nil {
		return nil, err
	}
	g := &padel.Group{Name: name, Category: category}
	if err := s.store.CreateGroup(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) GetGroup(id string) (*padel.GroupWithTeams, error) {
	return s.store.GetGroup(id)
}

func (s *Service) ListGroups(category string) ([]padel.GroupWithTeams, error) {
	return s.store.ListGroups(category)
}

// DeleteGroup removes a group along with its matches and standings.
func (s *Service) DeleteGroup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteGroup(id)
}

// AddTeamToGroup places a team in a group of its own category. A team
// belongs to at most one group per category.
func (s *Service) AddTeamToGroup(groupID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return err
	}
	t, err := s.store.GetTeam(teamID)
	if err != nil {
		return err
	}
	if t.Category != g.Category {
		return fmt.Errorf("%w: team %s plays %s, group %s belongs to %s", padel.ErrInvalidInput, t.ID, t.Category, g.Name, g.Category)
	}
	current, err := s.groupsOf(t)
	if err != nil {
		return err
	}
	if len(current) > 0 {
		return fmt.Errorf("%w: team %s is already in %s", padel.ErrConflict, t.ID, current[0].Name)
	}
	if err := s.store.AddTeamToGroup(groupID, teamID); err != nil {
		return err
	}
	_, err = s.refreshStandings(groupID)
	return err
}

// RemoveTeamFromGroup drops the membership and the team's row. The team survives.
func (s *Service) RemoveTeamFromGroup(groupID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.RemoveTeamFromGroup(groupID, teamID); err != nil {
		return err
	}
	_, err := s.refreshStandings(groupID)
	return err
}

// DrawGroups previews a random split of the category's teams into groups.
// Nothing is stored.
func (s *Service) DrawGroups(category string, groups int) ([]padel.GroupWithTeams, error) {
	if _, err := s.store.GetCategory(category); err != nil {
		return nil, err
	}
	teams, err := s.store.ListTeams(category)
	if err != nil {
		return nil, err
	}
	return schedule.DrawGroups(category, teams, groups, s.rng)
}

// SaveDraw replaces the category's groups with the drawn ones. Existing
// group matches and groups are deleted first; the steps are not atomic.
func (s *Service) SaveDraw(category string, draw []padel.GroupWithTeams) ([]padel.GroupWithTeams, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams, err := s.store.ListTeams(category)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(teams))
	for _, t := range teams {
		known[t.ID] = true
	}
	seen := make(map[string]bool)
	for _, g := range draw {
		if strings.TrimSpace(g.Name) == "" {
			return nil, fmt.Errorf("%w: group name is required", padel.ErrInvalidInput)
		}
		for _, t := range g.Teams {
			if !known[t.ID] {
				return nil, fmt.Errorf("%w: team %s is not registered in %s", padel.ErrInvalidInput, t.ID, category)
			}
			if seen[t.ID] {
				return nil, fmt.Errorf("%w: team %s drawn twice", padel.ErrInvalidInput, t.ID)
			}
			seen[t.ID] = true
		}
	}

	if _, err := s.store.DeleteMatches(store.MatchFilter{Category: category, Phase: padel.PhaseGroup}); err != nil {
		return nil, err
	}
	existing, err := s.store.ListGroups(category)
	if err != nil {
		return nil, err
	}
	for _, g := range existing {
		if err := s.store.DeleteGroup(g.ID); err != nil {
			return nil, err
		}
	}
	for _, g := range draw {
		group := &padel.Group{Name: g.Name, Category: category}
		if err := s.store.CreateGroup(group); err != nil {
			return nil, err
		}
		for _, t := range g.Teams {
			if err := s.store.AddTeamToGroup(group.ID, t.ID); err != nil {
				return nil, err
			}
		}
		if _, err := s.refreshStandings(group.ID); err != nil {
			return nil, err
		}
	}
	log.Info("Saved group draw", "category", category, "groups", len(draw))
	return s.store.ListGroups(category)
}

func (s *Service) CreatePrize(p *padel.Prize) error {
	if strings.TrimSpace(p.Position) == "" {
		return fmt.Errorf("%w: prize position is required", padel.ErrInvalidInput)
	}
	if p.Amount != nil && *p.Amount < 0 {
		return fmt.Errorf("%w: prize amount cannot be negative", padel.ErrInvalidInput)
	}
	if _, err := s.store.GetCategory(p.Category); err != nil {
		return err
	}
	return s.store.CreatePrize(p)
}

func (s *Service) UpdatePrize(p *padel.Prize) error {
	if p.Amount != nil && *p.Amount < 0 {
		return fmt.Errorf("%w: prize amount cannot be negative", padel.ErrInvalidInput)
	}
	return s.store.UpdatePrize(p)
}

func (s *Service) ListPrizes(category string) ([]padel.Prize, error) {
	return s.store.ListPrizes(category)
}

func (s *Service) CreateTournament(t *padel.Tournament) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: tournament name is required", padel.ErrInvalidInput)
	}
	if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(*t.StartDate) {
		return fmt.Errorf("%w: tournament ends before it starts", padel.ErrInvalidInput)
	}
	if t.Status == "" {
		t.Status = "upcoming"
	}
	return s.store.CreateTournament(t)
}

func (s *Service) ListTournaments() ([]padel.Tournament, error) {
	return s.store.ListTournaments()
}
