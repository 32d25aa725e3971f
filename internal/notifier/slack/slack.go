package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-tournament/internal/metrics"
	"github.com/mauv0809/padel-tournament/internal/notifier"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	location  *time.Location
}

// NewNotifier creates a new Notifier. Without a channel every message is
// treated as a dry run.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		loc = time.UTC
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
		location:  loc,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.channelID == "" {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(match *padel.MatchWithTeams, dryRun bool) error {
	msg := s.formatResultNotification(match)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(title string, rows []padel.Standing, dryRun bool) error {
	msg := s.formatStandings(title, rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendChampion(category string, team *padel.Team, dryRun bool) error {
	msg := s.formatChampion(category, team)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats a group table for a slash command response.
func (s *Notifier) FormatStandingsResponse(title string, rows []padel.Standing) (any, error) {
	return s.formatStandings(title, rows), nil
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func teamLabel(t *padel.Team, fallback string) string {
	if t == nil {
		if fallback == "" {
			return "TBD"
		}
		return fallback
	}
	if t.Player1 != "" && t.Player2 != "" {
		return fmt.Sprintf("%s (%s / %s)", t.Name, t.Player1, t.Player2)
	}
	return t.Name
}

func phaseLabel(p padel.Phase) string {
	switch p {
	case padel.PhaseGroup:
		return "Group stage"
	case padel.PhaseRoundOf16:
		return "Round of 16"
	case padel.PhaseQuarterfinal:
		return "Quarterfinal"
	case padel.PhaseSemifinal:
		return "Semifinal"
	case padel.PhaseFinal:
		return "Final"
	}
	return string(p)
}

// formatResultNotification creates the Slack message for a recorded result using Block Kit.
func (s *Notifier) formatResultNotification(match *padel.MatchWithTeams) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(plain("🎾 Match finished! 🎾")))

	details := phaseLabel(match.Phase)
	if match.Group != nil {
		details = fmt.Sprintf("%s, %s", details, match.Group.Name)
	}
	if match.Court != "" {
		details = fmt.Sprintf("%s\nCourt: %s", details, match.Court)
	}
	if match.MatchDate != nil {
		details = fmt.Sprintf("%s\nTime: %s", details, match.MatchDate.In(s.location).Format("Monday 02 Jan, 15:04"))
	}
	blocks = append(blocks, slack.NewSectionBlock(plain(details), nil, nil))

	nameA := teamLabel(match.TeamA, match.SideA)
	nameB := teamLabel(match.TeamB, match.SideB)
	if match.Score.IsZero() {
		blocks = append(blocks, slack.NewSectionBlock(plain("Result: No scores reported."), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var setsText []string
	for i, set := range match.Score.Sets {
		setsText = append(setsText, fmt.Sprintf("Set %d: %d-%d", i+1, set.A, set.B))
	}
	header := "Result:"
	if match.Winner != nil {
		header = fmt.Sprintf("Result: %s won! 🏆", match.Winner.Name)
	}
	fields := []*slack.TextBlockObject{
		plain(fmt.Sprintf("%s\nvs\n%s", nameA, nameB)),
		plain(strings.Join(setsText, "\n")),
	}
	blocks = append(blocks, slack.NewSectionBlock(plain(header), fields, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message with a group table.
func (s *Notifier) formatStandings(title string, rows []padel.Standing) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(plain(fmt.Sprintf("🏆 %s 🏆", title))))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plain("No standings available yet. Go play some matches!"), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, row := range rows {
		var medal string
		switch row.Position {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		name := row.TeamName
		if name == "" {
			name = row.TeamID
		}
		text := fmt.Sprintf("%d. %s %s\n> Won: %d/%d | Sets: %+d | Games: %+d | Points: %d",
			row.Position,
			medal,
			name,
			row.Won,
			row.Played,
			row.SetDiff(),
			row.GameDiff(),
			row.Points,
		)
		blocks = append(blocks, slack.NewSectionBlock(plain(text), nil, nil))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatChampion(category string, team *padel.Team) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plain("🏆 We have a champion! 🏆")),
		slack.NewSectionBlock(plain(fmt.Sprintf("%s wins %s", teamLabel(team, ""), category)), nil, nil),
	}
	return slack.NewBlockMessage(blocks...)
}
