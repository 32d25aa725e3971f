package tournament

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-tournament/internal/bracket"
	"github.com/mauv0809/padel-tournament/internal/live"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/pubsub"
	"github.com/mauv0809/padel-tournament/internal/standings"
)

// Recorded describes everything a result changed.
type Recorded struct {
	Match     *padel.Match     `json:"match"`
	Outcome   padel.Outcome    `json:"outcome"`
	Updated   []*padel.Match   `json:"updated"`
	Standings *standings.Table `json:"standings,omitempty"`
	Champion  string           `json:"champion,omitempty"`
}

// RecordResult validates a score and stores it on the match. Group results
// refresh the group table; knockout results move the winner on.
func (s *Service) RecordResult(matchID string, in padel.ScoreInput) (*Recorded, error) {
	score, err := padel.NewScore(in)
	if err != nil {
		s.metrics.IncResultsRejected(rejectReason(err))
		return nil, err
	}
	rec, err := s.applyScore(matchID, score)
	if err != nil {
		s.metrics.IncResultsRejected(rejectReason(err))
		return nil, err
	}
	s.metrics.IncResultsRecorded(string(rec.Match.Phase))
	log.Info("Recorded result", "matchID", matchID, "phase", rec.Match.Phase, "winner", rec.Match.WinnerID)
	s.announce(rec)
	return rec, nil
}

// ClearResult withdraws a recorded result. A knockout winner that already
// moved on is taken back, unless the next match is decided.
func (s *Service) ClearResult(matchID string) (*Recorded, error) {
	rec, err := s.applyScore(matchID, padel.Score{})
	if err != nil {
		return nil, err
	}
	log.Info("Cleared result", "matchID", matchID, "phase", rec.Match.Phase)
	s.announce(rec)
	return rec, nil
}

func (s *Service) applyScore(matchID string, score padel.Score) (*Recorded, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Phase.IsKnockout() {
		return s.applyKnockoutScore(m, score)
	}

	rec := &Recorded{Match: m}
	if score.IsZero() {
		m.ResetResult()
	} else if rec.Outcome, err = m.ApplyResult(score); err != nil {
		return nil, err
	}
	if err := s.store.UpdateMatches([]*padel.Match{m}); err != nil {
		return nil, err
	}
	rec.Updated = []*padel.Match{m}
	table, err := s.refreshStandings(m.GroupID)
	if err != nil {
		return nil, err
	}
	rec.Standings = &table
	return rec, nil
}

func (s *Service) applyKnockoutScore(m *padel.Match, score padel.Score) (*Recorded, error) {
	b, err := s.loadBracket(m.Category)
	if err != nil {
		return nil, err
	}
	touched, err := bracket.Record(b, m.Ref(), score)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateMatches(touched); err != nil {
		return nil, err
	}
	rec := &Recorded{Match: touched[0], Outcome: score.Resolve(), Updated: touched}
	for _, next := range touched[1:] {
		if next.SlotFrom(next.SideOf(rec.Match.WinnerID)) == rec.Match.ID && rec.Match.WinnerID != "" {
			s.metrics.IncBracketAdvancements()
		}
	}
	if champion, ok := b.Champion(); ok {
		rec.Champion = champion
	}
	return rec, nil
}

// announce fans a stored result out to Pub/Sub and live subscribers.
// Failures are logged; the result itself is already persisted.
func (s *Service) announce(rec *Recorded) {
	m := rec.Match
	ev := pubsub.ResultEvent{
		MatchID:    m.ID,
		Category:   m.Category,
		Phase:      string(m.Phase),
		GroupID:    m.GroupID,
		WinnerID:   m.WinnerID,
		Champion:   rec.Champion,
		RecordedAt: time.Now().UTC(),
	}
	for _, u := range rec.Updated[1:] {
		ev.Advanced = append(ev.Advanced, u.Ref().String())
	}
	if m.WinnerID != "" {
		if err := s.events.SendMessage(pubsub.EventResultRecorded, ev); err != nil {
			log.Warn("Failed to publish result event", "error", err, "matchID", m.ID)
		}
	}

	s.live.Publish(m.Category, live.TypeResultRecorded, rec.Updated)
	if rec.Standings != nil {
		if err := s.events.SendMessage(pubsub.EventStandingsUpdated, ev); err != nil {
			log.Warn("Failed to publish standings event", "error", err, "groupID", m.GroupID)
		}
		s.live.Publish(m.Category, live.TypeStandingsUpdated, rec.Standings)
	}
	if len(rec.Updated) > 1 {
		if err := s.events.SendMessage(pubsub.EventBracketAdvanced, ev); err != nil {
			log.Warn("Failed to publish bracket event", "error", err, "matchID", m.ID)
		}
		s.live.Publish(m.Category, live.TypeBracketUpdated, rec.Updated)
	}
}

// HandleResultEvent sends the Slack messages for a result pushed back by
// Pub/Sub: the result itself and, when the final was decided, the champion.
func (s *Service) HandleResultEvent(ev pubsub.ResultEvent, dryRun bool) error {
	m, err := s.matchWithTeams(ev.Category, ev.MatchID)
	if err != nil {
		return err
	}
	if err := s.notifier.SendResultNotification(m, dryRun); err != nil {
		return fmt.Errorf("failed to send result notification: %w", err)
	}
	if ev.Champion == "" {
		return nil
	}
	team, err := s.store.GetTeam(ev.Champion)
	if err != nil {
		return err
	}
	name := ev.Category
	if c, err := s.store.GetCategory(ev.Category); err == nil {
		name = c.Name
	}
	if err := s.notifier.SendChampion(name, team, dryRun); err != nil {
		return fmt.Errorf("failed to send champion notification: %w", err)
	}
	return nil
}
