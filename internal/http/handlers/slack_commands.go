package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"
	"github.com/mauv0809/padel-tournament/internal/notifier"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/tournament"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler answers /standings <category> with the table of
// every group of the category. The category may be given by ID or by name.
func StandingsCommandHandler(svc *tournament.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		text := strings.TrimSpace(r.FormValue("text"))
		if text == "" {
			http.Error(w, "Category is required.", http.StatusBadRequest)
			return
		}

		categoryID := slug.Make(text)
		log.Info("Received standings command", "category", categoryID)
		category, err := svc.GetCategory(categoryID)
		if errors.Is(err, padel.ErrNotFound) {
			respondWithSlackMsg(w, slack.Message{Msg: slack.Msg{Text: fmt.Sprintf("Could not find a category called %q.", text)}})
			return
		}
		if err != nil {
			http.Error(w, "Failed to get category", http.StatusInternalServerError)
			log.Error("Failed to get category", "error", err)
			return
		}
		tables, err := svc.CategoryStandings(r.Context(), category.ID)
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings", "error", err, "category", category.ID)
			return
		}

		var combined slack.Message
		if len(tables) == 0 {
			msg, err := notifier.FormatStandingsResponse(category.Name, nil)
			if !appendSlackMsg(w, &combined, msg, err) {
				return
			}
		}
		for _, table := range tables {
			msg, err := notifier.FormatStandingsResponse(fmt.Sprintf("%s - %s", category.Name, table.Group.Name), table.Rows)
			if !appendSlackMsg(w, &combined, msg, err) {
				return
			}
		}
		respondWithSlackMsg(w, combined)
	}
}

// appendSlackMsg merges a formatted message into dst. It writes the error
// response and reports false when msg is unusable.
func appendSlackMsg(w http.ResponseWriter, dst *slack.Message, msg any, err error) bool {
	if err != nil {
		http.Error(w, "Failed to format standings", http.StatusInternalServerError)
		log.Error("Failed to format standings", "error", err)
		return false
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return false
	}
	dst.Blocks.BlockSet = append(dst.Blocks.BlockSet, slackMsg.Blocks.BlockSet...)
	if slackMsg.Text != "" {
		if dst.Text != "" {
			dst.Text += "\n"
		}
		dst.Text += slackMsg.Text
	}
	return true
}
