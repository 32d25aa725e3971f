package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

func ListTeamsHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := svc.ListTeams(r.URL.Query().Get("category"))
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

func CreateTeamHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var team padel.Team
		if err := readJSON(w, r, &team); err != nil {
			writeError(w, err)
			return
		}
		team.ID = ""
		if err := svc.RegisterTeam(&team); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, team)
	}
}

func GetTeamHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := svc.GetTeam(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}

func UpdateTeamHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var team padel.Team
		if err := readJSON(w, r, &team); err != nil {
			writeError(w, err)
			return
		}
		team.ID = chi.URLParam(r, "id")
		if err := svc.UpdateTeam(&team); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}

func DeleteTeamHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteTeam(chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
