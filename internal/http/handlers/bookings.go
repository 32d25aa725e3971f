package handlers

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-tournament/internal/playtomic"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

// ListBookingsHandler lists the club's Playtomic bookings from the given
// date on, today by default.
func ListBookingsHandler(svc *tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := time.Now()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				writeError(w, invalid("date must look like YYYY-MM-DD, got %q", raw))
				return
			}
			from = parsed
		}
		log.Info("Fetching bookings", "from", from.Format(time.DateOnly))
		bookings, err := svc.ListBookings(from)
		if err != nil {
			log.Error("Error fetching Playtomic bookings", "error", err)
			writeError(w, err)
			return
		}
		if bookings == nil {
			bookings = []playtomic.BookingSummary{}
		}
		writeJSON(w, http.StatusOK, bookings)
	}
}
