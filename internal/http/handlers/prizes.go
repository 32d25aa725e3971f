package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

func ListPrizesHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prizes, err := svc.ListPrizes(r.URL.Query().Get("category"))
		if err != nil {
			writeError(w, err)
			return
		}
		if prizes == nil {
			prizes = []padel.Prize{}
		}
		writeJSON(w, http.StatusOK, prizes)
	}
}

func CreatePrizeHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p padel.Prize
		if err := readJSON(w, r, &p); err != nil {
			writeError(w, err)
			return
		}
		p.ID = ""
		if err := svc.CreatePrize(&p); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func UpdatePrizeHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p padel.Prize
		if err := readJSON(w, r, &p); err != nil {
			writeError(w, err)
			return
		}
		p.ID = chi.URLParam(r, "id")
		if err := svc.UpdatePrize(&p); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func ListTournamentsHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := svc.ListTournaments()
		if err != nil {
			writeError(w, err)
			return
		}
		if tournaments == nil {
			tournaments = []padel.Tournament{}
		}
		writeJSON(w, http.StatusOK, tournaments)
	}
}

func CreateTournamentHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t padel.Tournament
		if err := readJSON(w, r, &t); err != nil {
			writeError(w, err)
			return
		}
		t.ID = ""
		if err := svc.CreateTournament(&t); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}
