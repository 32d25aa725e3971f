package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/schedule"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

type createGroupRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type groupTeamRequest struct {
	TeamID string `json:"team_id"`
}

type generateRequest struct {
	Mode    schedule.Mode `json:"mode"`
	PerTeam int           `json:"per_team"`
}

func ListGroupsHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.ListGroups(r.URL.Query().Get("category"))
		if err != nil {
			writeError(w, err)
			return
		}
		if groups == nil {
			groups = []padel.GroupWithTeams{}
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

func CreateGroupHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGroupRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		g, err := svc.CreateGroup(req.Name, req.Category)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, g)
	}
}

func GetGroupHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := svc.GetGroup(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

func DeleteGroupHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteGroup(chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func AddGroupTeamHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req groupTeamRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		groupID := chi.URLParam(r, "id")
		if err := svc.AddTeamToGroup(groupID, req.TeamID); err != nil {
			writeError(w, err)
			return
		}
		g, err := svc.GetGroup(groupID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

func RemoveGroupTeamHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RemoveTeamFromGroup(chi.URLParam(r, "id"), chi.URLParam(r, "teamID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GenerateMatchesHandler replaces the pending matches of a group. An empty
// body generates a full round robin.
func GenerateMatchesHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if r.ContentLength != 0 {
			if err := readJSON(w, r, &req); err != nil {
				writeError(w, err)
				return
			}
		}
		gen, err := svc.GenerateGroupMatches(chi.URLParam(r, "id"), req.Mode, req.PerTeam)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, gen)
	}
}

func GroupStandingsHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupStandings := svc.GroupStandings
		if r.URL.Query().Get("stored") == "true" {
			groupStandings = svc.StoredStandings
		}
		table, err := groupStandings(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, table)
	}
}
