package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

// LiveServer upgrades a request to a websocket subscribed to a category.
type LiveServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, category string)
}

// LiveHandler streams a category's result, standings and bracket updates.
func LiveHandler(svc *tournament.Service, live LiveServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetCategory(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		live.ServeWS(w, r, c.ID)
	}
}
