package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

// seedRequest seeds either explicit team IDs in seed order or the top
// Count qualifiers of the group stage.
type seedRequest struct {
	Seeds []string `json:"seeds"`
	Count int      `json:"count"`
}

func GetBracketHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.Bracket(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func SeedBracketHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req seedRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		category := chi.URLParam(r, "id")
		var (
			b   *padel.Bracket
			err error
		)
		switch {
		case len(req.Seeds) > 0 && req.Count > 0:
			err = invalid("give either seeds or count, not both")
		case len(req.Seeds) > 0:
			b, err = svc.SeedBracket(category, req.Seeds)
		case req.Count > 0:
			b, err = svc.SeedBracketFromStandings(r.Context(), category, req.Count)
		default:
			err = invalid("seeds or count is required")
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, b)
	}
}

func DeleteBracketHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.DeleteBracket(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
	}
}

func UnassignedTeamsHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := svc.UnassignedTeams(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if teams == nil {
			teams = []padel.Team{}
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func ChampionHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := svc.Champion(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}
