package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/pubsub"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

// ResultRecordedHandler receives result events pushed by Pub/Sub and sends
// the Slack notifications for them.
func ResultRecordedHandler(svc *tournament.Service, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received result recorded message", "body", string(bodyBytes))

		var pubsubMsg pubsub.PushMessage
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var ev pubsub.ResultEvent
		if err := pubsubClient.ProcessMessage(rawData, &ev); err != nil {
			log.Error("Failed to decode result event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		isDryRun := IsDryRunFromContext(r)
		err = svc.HandleResultEvent(ev, isDryRun)
		if errors.Is(err, padel.ErrNotFound) {
			// The match is gone; a redelivery will not bring it back.
			log.Warn("Dropping result event", "matchID", ev.MatchID, "error", err)
			w.Write([]byte("OK"))
			return
		}
		if err != nil {
			log.Error("Failed to notify result", "error", err, "matchID", ev.MatchID)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
