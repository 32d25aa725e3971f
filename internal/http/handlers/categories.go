package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxTeams    *int   `json:"max_teams"`
}

func ListCategoriesHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories()
		if err != nil {
			writeError(w, err)
			return
		}
		if categories == nil {
			categories = []padel.Category{}
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func CreateCategoryHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCategoryRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		c, err := svc.CreateCategory(req.Name, req.Description, req.MaxTeams)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func GetCategoryHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetCategory(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func DeleteCategoryHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCategory(chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type drawRequest struct {
	Groups int `json:"groups"`
}

// DrawGroupsHandler previews a random split of the category into groups.
func DrawGroupsHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req drawRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		draw, err := svc.DrawGroups(chi.URLParam(r, "id"), req.Groups)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, draw)
	}
}

type saveDrawRequest struct {
	Groups []padel.GroupWithTeams `json:"groups"`
}

func SaveDrawHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveDrawRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		category := chi.URLParam(r, "id")
		groups, err := svc.SaveDraw(category, req.Groups)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Info("Saved draw over HTTP", "category", category, "groups", len(groups))
		writeJSON(w, http.StatusCreated, groups)
	}
}

func CategoryStandingsHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables, err := svc.CategoryStandings(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tables)
	}
}

func QualifiersHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := queryInt(r, "count", 8)
		if err != nil {
			writeError(w, err)
			return
		}
		qualifiers, err := svc.Qualifiers(r.Context(), chi.URLParam(r, "id"), count)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, qualifiers)
	}
}
