package store

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/mauv0809/padel-tournament/internal/padel"
)

// memory is an in-process Store with the same rules as the database one.
// It backs unit tests and the server when no database is wanted.
type memory struct {
	mu sync.RWMutex

	seq         int
	categories  map[string]padel.Category
	teams       map[string]padel.Team
	groups      map[string]padel.Group
	members     map[string]map[string]bool
	matches     map[string]storedMatch
	standings   map[string]map[string]padel.Standing
	prizes      map[string]padel.Prize
	tournaments map[string]padel.Tournament
}

type storedMatch struct {
	seq   int
	match padel.Match
}

// NewMemory creates an empty in-memory Store.
func NewMemory() Store {
	return &memory{
		categories:  make(map[string]padel.Category),
		teams:       make(map[string]padel.Team),
		groups:      make(map[string]padel.Group),
		members:     make(map[string]map[string]bool),
		matches:     make(map[string]storedMatch),
		standings:   make(map[string]map[string]padel.Standing),
		prizes:      make(map[string]padel.Prize),
		tournaments: make(map[string]padel.Tournament),
	}
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, padel.ErrNotFound)
}

func cloneMatch(m padel.Match) padel.Match {
	m.Score.Sets = slices.Clone(m.Score.Sets)
	if m.SourceA != nil {
		ref := *m.SourceA
		m.SourceA = &ref
	}
	if m.SourceB != nil {
		ref := *m.SourceB
		m.SourceB = &ref
	}
	if m.MatchDate != nil {
		t := *m.MatchDate
		m.MatchDate = &t
	}
	return m
}

func (s *memory) CreateCategory(c *padel.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[c.ID]; ok {
		return fmt.Errorf("category %s: %w", c.ID, padel.ErrConflict)
	}
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	s.categories[c.ID] = *c
	return nil
}

func (s *memory) GetCategory(id string) (*padel.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, notFound("category", id)
	}
	return &c, nil
}

func (s *memory) ListCategories() ([]padel.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padel.Category
	for _, c := range s.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b padel.Category) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *memory) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return notFound("category", id)
	}
	delete(s.categories, id)
	for mid, sm := range s.matches {
		if sm.match.Category == id {
			delete(s.matches, mid)
		}
	}
	for gid, g := range s.groups {
		if g.Category == id {
			s.deleteGroupLocked(gid)
		}
	}
	for tid, t := range s.teams {
		if t.Category == id {
			s.deleteTeamLocked(tid)
		}
	}
	for pid, p := range s.prizes {
		if p.Category == id {
			delete(s.prizes, pid)
		}
	}
	return nil
}

func (s *memory) CreateTeam(t *padel.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[t.Category]; !ok {
		return notFound("category", t.Category)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, ok := s.teams[t.ID]; ok {
		return fmt.Errorf("team %s: %w", t.ID, padel.ErrConflict)
	}
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	s.teams[t.ID] = *t
	return nil
}

func (s *memory) UpdateTeam(t *padel.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.teams[t.ID]
	if !ok {
		return notFound("team", t.ID)
	}
	if _, ok := s.categories[t.Category]; !ok {
		return notFound("category", t.Category)
	}
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = now()
	s.teams[t.ID] = *t
	return nil
}

func (s *memory) GetTeam(id string) (*padel.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	if !ok {
		return nil, notFound("team", id)
	}
	return &t, nil
}

func sortTeams(teams []padel.Team) {
	slices.SortFunc(teams, func(a, b padel.Team) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

func (s *memory) ListTeams(category string) ([]padel.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padel.Team
	for _, t := range s.teams {
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}
	sortTeams(out)
	return out, nil
}

func (s *memory) CountTeams(category string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, t := range s.teams {
		if t.Category == category {
			n++
		}
	}
	return n, nil
}

func (s *memory) DeleteTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[id]; !ok {
		return notFound("team", id)
	}
	for _, sm := range s.matches {
		if sm.match.Has(id) || sm.match.WinnerID == id {
			return fmt.Errorf("team %s: %w", id, padel.ErrTeamHasMatches)
		}
	}
	s.deleteTeamLocked(id)
	return nil
}

func (s *memory) deleteTeamLocked(id string) {
	delete(s.teams, id)
	for _, m := range s.members {
		delete(m, id)
	}
	for _, table := range s.standings {
		delete(table, id)
	}
	for pid, p := range s.prizes {
		if p.TeamID == id {
			p.TeamID = ""
			s.prizes[pid] = p
		}
	}
}

func (s *memory) CreateGroup(g *padel.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[g.Category]; !ok {
		return notFound("category", g.Category)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if _, ok := s.groups[g.ID]; ok {
		return fmt.Errorf("group %s: %w", g.ID, padel.ErrConflict)
	}
	g.CreatedAt = now()
	g.UpdatedAt = g.CreatedAt
	s.groups[g.ID] = *g
	s.members[g.ID] = make(map[string]bool)
	return nil
}

func (s *memory) groupWithTeams(g padel.Group) padel.GroupWithTeams {
	out := padel.GroupWithTeams{Group: g}
	for tid := range s.members[g.ID] {
		out.Teams = append(out.Teams, s.teams[tid])
	}
	sortTeams(out.Teams)
	return out
}

func (s *memory) GetGroup(id string) (*padel.GroupWithTeams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, notFound("group", id)
	}
	out := s.groupWithTeams(g)
	return &out, nil
}

func (s *memory) ListGroups(category string) ([]padel.GroupWithTeams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padel.GroupWithTeams
	for _, g := range s.groups {
		if category == "" || g.Category == category {
			out = append(out, s.groupWithTeams(g))
		}
	}
	slices.SortFunc(out, func(a, b padel.GroupWithTeams) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *memory) DeleteGroup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return notFound("group", id)
	}
	s.deleteGroupLocked(id)
	return nil
}

func (s *memory) deleteGroupLocked(id string) {
	delete(s.groups, id)
	delete(s.members, id)
	delete(s.standings, id)
	for mid, sm := range s.matches {
		if sm.match.GroupID == id {
			delete(s.matches, mid)
		}
	}
}

func (s *memory) AddTeamToGroup(groupID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[groupID]; !ok {
		return notFound("group", groupID)
	}
	if _, ok := s.teams[teamID]; !ok {
		return notFound("team", teamID)
	}
	if s.members[groupID][teamID] {
		return fmt.Errorf("team %s in group %s: %w", teamID, groupID, padel.ErrConflict)
	}
	s.members[groupID][teamID] = true
	return nil
}

func (s *memory) RemoveTeamFromGroup(groupID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.members[groupID][teamID] {
		return notFound("team "+teamID+" in group", groupID)
	}
	delete(s.members[groupID], teamID)
	delete(s.standings[groupID], teamID)
	return nil
}

func (s *memory) checkMatchRefs(m *padel.Match) error {
	if _, ok := s.categories[m.Category]; !ok {
		return notFound("category", m.Category)
	}
	if _, ok := s.groups[m.GroupID]; m.GroupID != "" && !ok {
		return notFound("group", m.GroupID)
	}
	for _, id := range []string{m.SideA, m.SideB, m.WinnerID} {
		if _, ok := s.teams[id]; id != "" && !ok {
			return notFound("team", id)
		}
	}
	return nil
}

func (s *memory) CreateMatches(matches []*padel.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range matches {
		if m.Status == "" {
			m.Status = padel.StatusPending
		}
		if err := m.Validate(); err != nil {
			return err
		}
		if err := s.checkMatchRefs(m); err != nil {
			return err
		}
		if _, ok := s.matches[m.ID]; m.ID != "" && ok {
			return fmt.Errorf("match %s: %w", m.ID, padel.ErrConflict)
		}
	}
	ts := now()
	for _, m := range matches {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.CreatedAt, m.UpdatedAt = ts, ts
		s.seq++
		s.matches[m.ID] = storedMatch{seq: s.seq, match: cloneMatch(*m)}
	}
	return nil
}

func (s *memory) GetMatch(id string) (*padel.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sm, ok := s.matches[id]
	if !ok {
		return nil, notFound("match", id)
	}
	m := cloneMatch(sm.match)
	return &m, nil
}

func (s *memory) UpdateMatches(matches []*padel.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range matches {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("match %s: %w", m.ID, err)
		}
		if _, ok := s.matches[m.ID]; !ok {
			return notFound("match", m.ID)
		}
		if err := s.checkMatchRefs(m); err != nil {
			return err
		}
	}
	ts := now()
	for _, m := range matches {
		sm := s.matches[m.ID]
		updated := cloneMatch(*m)
		updated.Category = sm.match.Category
		updated.Phase = sm.match.Phase
		updated.GroupID = sm.match.GroupID
		updated.Position = sm.match.Position
		updated.CreatedAt = sm.match.CreatedAt
		updated.UpdatedAt = ts
		m.UpdatedAt = ts
		s.matches[m.ID] = storedMatch{seq: sm.seq, match: updated}
	}
	return nil
}

func (s *memory) selectMatches(filter MatchFilter) []storedMatch {
	var out []storedMatch
	for _, sm := range s.matches {
		if filter.Matches(&sm.match) {
			out = append(out, sm)
		}
	}
	slices.SortFunc(out, func(a, b storedMatch) int {
		return cmp.Or(cmp.Compare(a.match.Position, b.match.Position), cmp.Compare(a.seq, b.seq))
	})
	return out
}

func (s *memory) ListMatches(filter MatchFilter) ([]padel.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padel.Match
	for _, sm := range s.selectMatches(filter) {
		out = append(out, cloneMatch(sm.match))
	}
	return out, nil
}

func (s *memory) ListMatchesWithTeams(filter MatchFilter) ([]padel.MatchWithTeams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team := func(id string) *padel.Team {
		t, ok := s.teams[id]
		if !ok {
			return nil
		}
		return &padel.Team{ID: t.ID, Name: t.Name, Player1: t.Player1, Player2: t.Player2, Category: t.Category}
	}
	var out []padel.MatchWithTeams
	for _, sm := range s.selectMatches(filter) {
		mt := padel.MatchWithTeams{Match: cloneMatch(sm.match), TeamA: team(sm.match.SideA), TeamB: team(sm.match.SideB)}
		if g, ok := s.groups[sm.match.GroupID]; ok {
			mt.Group = &padel.Group{ID: g.ID, Name: g.Name, Category: g.Category}
		}
		switch sm.match.WinnerID {
		case "":
		case sm.match.SideA:
			mt.Winner = mt.TeamA
		case sm.match.SideB:
			mt.Winner = mt.TeamB
		}
		out = append(out, mt)
	}
	return out, nil
}

func (s *memory) DeleteMatches(filter MatchFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := s.selectMatches(filter)
	for _, sm := range selected {
		delete(s.matches, sm.match.ID)
	}
	return len(selected), nil
}

func (s *memory) ReplaceStandings(groupID string, rows []padel.Standing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[groupID]; !ok {
		return notFound("group", groupID)
	}
	table := make(map[string]padel.Standing, len(rows))
	for _, r := range rows {
		if _, ok := s.teams[r.TeamID]; !ok {
			return notFound("team", r.TeamID)
		}
		if _, ok := table[r.TeamID]; ok {
			return fmt.Errorf("standing of %s: %w", r.TeamID, padel.ErrConflict)
		}
		r.GroupID = groupID
		table[r.TeamID] = r
	}
	s.standings[groupID] = table
	return nil
}

func (s *memory) ListStandings(groupID string) ([]padel.Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padel.Standing
	for _, r := range s.standings[groupID] {
		r.TeamName = s.teams[r.TeamID].Name
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b padel.Standing) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.TeamName, b.TeamName))
	})
	return out, nil
}

func (s *memory) CreatePrize(p *padel.Prize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPrizeRefs(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	s.prizes[p.ID] = *p
	return nil
}

func (s *memory) checkPrizeRefs(p *padel.Prize) error {
	if _, ok := s.categories[p.Category]; !ok {
		return notFound("category", p.Category)
	}
	if _, ok := s.tournaments[p.TournamentID]; p.TournamentID != "" && !ok {
		return notFound("tournament", p.TournamentID)
	}
	if _, ok := s.teams[p.TeamID]; p.TeamID != "" && !ok {
		return notFound("team", p.TeamID)
	}
	return nil
}

func (s *memory) UpdatePrize(p *padel.Prize) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.prizes[p.ID]
	if !ok {
		return notFound("prize", p.ID)
	}
	if err := s.checkPrizeRefs(p); err != nil {
		return err
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = now()
	s.prizes[p.ID] = *p
	return nil
}

func (s *memory) ListPrizes(category string) ([]padel.Prize, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padel.Prize
	for _, p := range s.prizes {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b padel.Prize) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Position, b.Position))
	})
	return out, nil
}

func (s *memory) CreateTournament(t *padel.Tournament) error {
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
	s.tournaments[t.ID] = *t
	return nil
}

func (s *memory) ListTournaments() ([]padel.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []padel.Tournament
	for _, t := range s.tournaments {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b padel.Tournament) int {
		var sa, sb int64
		if a.StartDate != nil {
			sa = a.StartDate.Unix()
		}
		if b.StartDate != nil {
			sb = b.StartDate.Unix()
		}
		return cmp.Or(cmp.Compare(sb, sa), cmp.Compare(a.Name, b.Name))
	})
	return out, nil
}
