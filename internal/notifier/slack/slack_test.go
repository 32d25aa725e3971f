package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/padel-tournament/internal/metrics"
	"github.com/mauv0809/padel-tournament/internal/padel"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// The api must not be touched in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NoChannelIsDryRun(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "", metrics.NewMock())
	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(plain("hello"), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func resultMatch() *padel.MatchWithTeams {
	date := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	teamA := &padel.Team{ID: "t1", Name: "Los Lobos", Player1: "Ana", Player2: "Bea"}
	teamB := &padel.Team{ID: "t2", Name: "Smash", Player1: "Carla", Player2: "Dani"}
	return &padel.MatchWithTeams{
		Match: padel.Match{
			ID:        "m1",
			Phase:     padel.PhaseGroup,
			SideA:     "t1",
			SideB:     "t2",
			Score:     padel.Score{Sets: []padel.SetScore{{A: 6, B: 4}, {A: 3, B: 6}, {A: 7, B: 5}}},
			WinnerID:  "t1",
			Status:    padel.StatusCompleted,
			Court:     "Pista 3",
			MatchDate: &date,
		},
		TeamA:  teamA,
		TeamB:  teamB,
		Winner: teamA,
		Group:  &padel.Group{ID: "g1", Name: "Grupo A"},
	}
}

func TestSendResultNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, notifier.SendResultNotification(resultMatch(), false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendResultNotification")
}

func TestFormatResultNotification(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	msg := notifier.formatResultNotification(resultMatch())
	require.Len(t, msg.Blocks.BlockSet, 3)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Match finished")

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, details.Text.Text, "Group stage, Grupo A")
	assert.Contains(t, details.Text.Text, "Court: Pista 3")

	result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Result: Los Lobos won! 🏆", result.Text.Text)
	require.Len(t, result.Fields, 2)
	assert.Contains(t, result.Fields[0].Text, "Los Lobos (Ana / Bea)")
	assert.Equal(t, "Set 1: 6-4\nSet 2: 3-6\nSet 3: 7-5", result.Fields[1].Text)
}

func TestFormatResultNotification_NoScore(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	m := resultMatch()
	m.Score = padel.Score{}
	m.Winner = nil
	msg := notifier.formatResultNotification(m)
	require.Len(t, msg.Blocks.BlockSet, 3)
	section := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Equal(t, "Result: No scores reported.", section.Text.Text)
}

func TestFormatStandings(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	t.Run("empty table", func(t *testing.T) {
		msg := notifier.formatStandings("Grupo A", nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, section.Text.Text, "No standings available yet")
	})

	t.Run("ranked rows", func(t *testing.T) {
		rows := []padel.Standing{
			{TeamID: "t1", TeamName: "Los Lobos", Played: 2, Won: 2, SetsWon: 4, SetsLost: 1, GamesWon: 30, GamesLost: 20, Points: 6, Position: 1},
			{TeamID: "t2", Played: 2, Won: 0, SetsWon: 1, SetsLost: 4, GamesWon: 20, GamesLost: 30, Points: 0, Position: 2},
		}
		msg, err := notifier.FormatStandingsResponse("Grupo A", rows)
		require.NoError(t, err)
		slackMsg, ok := msg.(slackapi.Message)
		require.True(t, ok)
		require.Len(t, slackMsg.Blocks.BlockSet, 3)

		header := slackMsg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Equal(t, "🏆 Grupo A 🏆", header.Text.Text)
		first := slackMsg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "1. 🥇 Los Lobos\n> Won: 2/2 | Sets: +3 | Games: +10 | Points: 6", first.Text.Text)
		second := slackMsg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		assert.Contains(t, second.Text.Text, "t2")
		assert.Contains(t, second.Text.Text, "Sets: -3")
	})
}

func TestSendChampion_DryRun(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	team := &padel.Team{Name: "Los Lobos"}
	require.NoError(t, notifier.SendChampion("5ta Masculino", team, true))

	msg := notifier.formatChampion("5ta Masculino", team)
	section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "Los Lobos wins 5ta Masculino", section.Text.Text)
}
