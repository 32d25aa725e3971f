package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/store"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

type createMatchRequest struct {
	Category string `json:"category"`
	GroupID  string `json:"group_id"`
	SideA    string `json:"side_a"`
	SideB    string `json:"side_b"`
}

type teamRequest struct {
	TeamID string `json:"team_id"`
}

type bookingRequest struct {
	BookingID string `json:"booking_id"`
}

func ListMatchesHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := store.MatchFilter{
			Category: q.Get("category"),
			Phase:    padel.Phase(q.Get("phase")),
			GroupID:  q.Get("group"),
			TeamID:   q.Get("team"),
			Status:   padel.Status(q.Get("status")),
		}
		if filter.Phase != "" && !filter.Phase.Valid() {
			writeError(w, invalid("unknown phase %q", filter.Phase))
			return
		}
		matches, err := svc.ListMatches(filter)
		if err != nil {
			writeError(w, err)
			return
		}
		if matches == nil {
			matches = []padel.MatchWithTeams{}
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func CreateMatchHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		m, err := svc.CreateMatch(req.Category, req.GroupID, req.SideA, req.SideB)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func GetMatchHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetMatch(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// RecordResultHandler stores a score. The response lists every match the
// result touched and, for group matches, the refreshed table.
func RecordResultHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var score padel.ScoreInput
		if err := readJSON(w, r, &score); err != nil {
			writeError(w, err)
			return
		}
		matchID := chi.URLParam(r, "id")
		rec, err := svc.RecordResult(matchID, score)
		if err != nil {
			log.Warn("Result rejected", "matchID", matchID, "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func ClearResultHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.ClearResult(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func ResolvePlaceholderHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		m, err := svc.ResolvePlaceholder(chi.URLParam(r, "id"), req.TeamID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func AssignSlotHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		side, err := padel.ParseSide(chi.URLParam(r, "side"))
		if err != nil {
			writeError(w, err)
			return
		}
		var req teamRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		m, err := svc.AssignSlot(chi.URLParam(r, "id"), side, req.TeamID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func RemoveSlotHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		side, err := padel.ParseSide(chi.URLParam(r, "side"))
		if err != nil {
			writeError(w, err)
			return
		}
		touched, err := svc.RemoveSlot(chi.URLParam(r, "id"), side)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, touched)
	}
}

func AttachBookingHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookingRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		m, err := svc.AttachBooking(chi.URLParam(r, "id"), req.BookingID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}
