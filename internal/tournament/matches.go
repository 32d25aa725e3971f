package tournament

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/playtomic"
	"github.com/mauv0809/padel-tournament/internal/schedule"
	"github.com/mauv0809/padel-tournament/internal/store"
)

// Generated is the outcome of a group stage generation. Discarded counts the
// replaced pending matches that already had a booking or a partial score.
type Generated struct {
	Matches      []*padel.Match `json:"matches"`
	Placeholders int            `json:"placeholders"`
	Discarded    int            `json:"discarded,omitempty"`
}

// GenerateGroupMatches replaces the pending matches of a group with a new
// schedule. Completed matches stay, pairs that already played are not
// scheduled again, and in capped mode they count toward each team's quota.
func (s *Service) GenerateGroupMatches(groupID string, mode schedule.Mode, perTeam int) (*Generated, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	played, err := s.store.ListMatches(store.MatchFilter{GroupID: groupID, Phase: padel.PhaseGroup, Status: padel.StatusCompleted})
	if err != nil {
		return nil, err
	}
	var pairings []schedule.Pairing
	switch mode {
	case schedule.ModeRoundRobin, "":
		pairings, err = schedule.RoundRobin(g.TeamIDs())
	case schedule.ModeCapped:
		history := make([]schedule.Pairing, len(played))
		for i, m := range played {
			history[i] = schedule.Pairing{SideA: m.SideA, SideB: m.SideB}
		}
		pairings, err = schedule.Capped(g.TeamIDs(), perTeam, s.rng, history)
	default:
		return nil, fmt.Errorf("%w: unknown generation mode %q", padel.ErrInvalidInput, mode)
	}
	if err != nil {
		return nil, err
	}

	pendingFilter := store.MatchFilter{GroupID: groupID, Phase: padel.PhaseGroup, Status: padel.StatusPending}
	pending, err := s.store.ListMatches(pendingFilter)
	if err != nil {
		return nil, err
	}
	out := &Generated{}
	for _, m := range pending {
		if m.BookingID != "" || len(m.Score.Sets) > 0 {
			out.Discarded++
		}
	}
	if out.Discarded > 0 {
		log.Warn("Regeneration discards booked or partly scored matches", "group", g.Name, "count", out.Discarded)
	}
	if _, err := s.store.DeleteMatches(pendingFilter); err != nil {
		return nil, err
	}

	for _, p := range pairings {
		if !p.IsPlaceholder() && alreadyPaired(played, p.SideA, p.SideB) {
			continue
		}
		out.Matches = append(out.Matches, &padel.Match{
			Category: g.Category,
			Phase:    padel.PhaseGroup,
			GroupID:  g.ID,
			Position: len(played) + len(out.Matches),
			SideA:    p.SideA,
			SideB:    p.SideB,
			Status:   padel.StatusPending,
		})
		if p.IsPlaceholder() {
			out.Placeholders++
		}
	}
	if err := s.store.CreateMatches(out.Matches); err != nil {
		return nil, err
	}
	s.metrics.AddMatchesGenerated(len(out.Matches))
	s.metrics.AddPlaceholdersGenerated(out.Placeholders)
	log.Info("Generated group matches", "group", g.Name, "mode", mode, "matches", len(out.Matches), "placeholders", out.Placeholders)
	return out, nil
}

func alreadyPaired(matches []padel.Match, a, b string) bool {
	for i := range matches {
		if matches[i].Has(a) && matches[i].Has(b) {
			return true
		}
	}
	return false
}

func (s *Service) GetMatch(id string) (*padel.Match, error) {
	return s.store.GetMatch(id)
}

func (s *Service) ListMatches(filter store.MatchFilter) ([]padel.MatchWithTeams, error) {
	return s.store.ListMatchesWithTeams(filter)
}

// CreateMatch schedules a single group match between two members of the group.
func (s *Service) CreateMatch(category, groupID, sideA, sideB string) (*padel.Match, error) {
	if sideA == "" || sideB == "" {
		return nil, fmt.Errorf("%w: both teams are required", padel.ErrInvalidInput)
	}
	if sideA == sideB {
		return nil, padel.ErrSameTeam
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	if category != "" && category != g.Category {
		return nil, fmt.Errorf("%w: group %s belongs to %s", padel.ErrInvalidInput, g.Name, g.Category)
	}
	for _, id := range []string{sideA, sideB} {
		if !g.HasTeam(id) {
			return nil, fmt.Errorf("%w: team %s is not in %s", padel.ErrInvalidInput, id, g.Name)
		}
	}
	existing, err := s.store.ListMatches(store.MatchFilter{GroupID: groupID, Phase: padel.PhaseGroup})
	if err != nil {
		return nil, err
	}
	m := &padel.Match{
		Category: g.Category,
		Phase:    padel.PhaseGroup,
		GroupID:  g.ID,
		Position: len(existing),
		SideA:    sideA,
		SideB:    sideB,
		Status:   padel.StatusPending,
	}
	if err := s.store.CreateMatches([]*padel.Match{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// ResolvePlaceholder fills the open side of a capped-mode placeholder.
func (s *Service) ResolvePlaceholder(matchID, opponentID string) (*padel.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsPlaceholder() {
		return nil, fmt.Errorf("%w: match %s is not a placeholder", padel.ErrInvalidInput, matchID)
	}
	side, known := padel.SideB, m.SideA
	if m.SideA == "" {
		side, known = padel.SideA, m.SideB
	}
	if opponentID == known {
		return nil, padel.ErrSameTeam
	}
	g, err := s.store.GetGroup(m.GroupID)
	if err != nil {
		return nil, err
	}
	if !g.HasTeam(opponentID) {
		return nil, fmt.Errorf("%w: team %s is not in %s", padel.ErrInvalidInput, opponentID, g.Name)
	}
	others, err := s.store.ListMatches(store.MatchFilter{GroupID: m.GroupID, Phase: padel.PhaseGroup, TeamID: known})
	if err != nil {
		return nil, err
	}
	if alreadyPaired(others, known, opponentID) {
		return nil, fmt.Errorf("%w: %s already plays %s", padel.ErrConflict, known, opponentID)
	}
	// The placeholder's team holds one slot per match it is owed; the
	// opponent must still have a free slot, taken from its own placeholder
	// when it has one.
	quota := len(others)
	theirs, err := s.store.ListMatches(store.MatchFilter{GroupID: m.GroupID, Phase: padel.PhaseGroup, TeamID: opponentID})
	if err != nil {
		return nil, err
	}
	var filled int
	var spare *padel.Match
	for i := range theirs {
		if theirs[i].IsPlaceholder() {
			if spare == nil {
				spare = &theirs[i]
			}
			continue
		}
		filled++
	}
	if filled >= quota {
		return nil, fmt.Errorf("%w: %s already has its %d matches", padel.ErrConflict, opponentID, quota)
	}
	if err := m.Assign(side, opponentID, ""); err != nil {
		return nil, err
	}
	if spare != nil {
		if _, err := s.store.DeleteMatches(store.MatchFilter{ID: spare.ID}); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateMatches([]*padel.Match{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// AttachBooking copies court and start time of a Playtomic booking onto a match.
func (s *Service) AttachBooking(matchID, bookingID string) (*padel.Match, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", padel.ErrInvalidInput)
	}
	booking, err := s.bookings.GetBooking(bookingID)
	if errors.Is(err, playtomic.ErrBookingNotFound) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, padel.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	start := booking.Start
	m.MatchDate = &start
	m.Court = booking.Court
	m.BookingID = booking.ID
	if err := s.store.UpdateMatches([]*padel.Match{m}); err != nil {
		return nil, err
	}
	log.Info("Attached booking", "matchID", m.ID, "bookingID", booking.ID, "court", booking.Court)
	return m, nil
}

// ListBookings returns the club's bookings from the given day on.
func (s *Service) ListBookings(from time.Time) ([]playtomic.BookingSummary, error) {
	return s.bookings.ListBookings(from)
}
