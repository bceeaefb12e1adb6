package route

import (
	"log/slog"
	"net/http"

	"gridcal/src-server/ical"
	"gridcal/src-server/utils"
)

// Feed exposes the calendar as an iCalendar subscription.
func Feed(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /calendar.ics", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			events, err := as.EventRepo.List(r.Context())
			if err != nil {
				slog.Error("can't list events for ics feed", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to fetch events")
				return
			}
			w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="gridcal.ics"`)
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte(ical.Feed(events))); err != nil {
				slog.Warn("can't write ics feed", "error", err)
			}
		}))
}
