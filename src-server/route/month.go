package route

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"
	"gridcal/src-server/recur"
	"gridcal/src-server/utils"
)

const monthParamFormat = "2006-01"

// Month serves the expanded month grid: every stored event expanded
// against the month window, grouped per day, each day carrying its
// conflict flag and density bucket. Search and category filters apply
// before expansion.
func Month(muxer *http.ServeMux, as *utils.AppState) {
	type occurrenceRespBody struct {
		eventBody
		OccurrenceIndex int `json:"occurrenceIndex"`
	}

	type dayRespBody struct {
		Date         string               `json:"date"`
		Density      recur.Density        `json:"density"`
		HasConflicts bool                 `json:"hasConflicts"`
		Events       []occurrenceRespBody `json:"events"`
	}

	type monthRespBody struct {
		Month string        `json:"month"`
		Days  []dayRespBody `json:"days"`
	}

	muxer.HandleFunc("GET /api/calendar/month", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			monthDate := time.Now().In(as.Config.GetLocation())
			if monthParam := r.URL.Query().Get("month"); monthParam != "" {
				parsed, err := time.Parse(monthParamFormat, monthParam)
				if err != nil {
					respondError(w, http.StatusBadRequest, "Invalid month, want YYYY-MM")
					return
				}
				monthDate = parsed
			}

			events, err := as.EventRepo.List(r.Context())
			if err != nil {
				slog.Error("can't list events for month view", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to fetch events")
				return
			}

			var categories []model.Category
			if categoriesParam := r.URL.Query().Get("categories"); categoriesParam != "" {
				for _, raw := range strings.Split(categoriesParam, ",") {
					categories = append(categories, model.Category(strings.TrimSpace(raw)))
				}
			}
			events = recur.FilterEvents(events, r.URL.Query().Get("search"), categories)

			startTimer := time.Now()
			occurrences := recur.ExpandForMonth(events, monthDate)
			utils.Send(as.MetricChans.Expansion, float64(time.Since(startTimer).Microseconds()))

			byDay := make(map[string][]recur.Occurrence)
			for _, occurrence := range occurrences {
				day := caldate.FormatDay(occurrence.Date)
				byDay[day] = append(byDay[day], occurrence)
			}

			first, last := caldate.MonthBounds(monthDate)
			days := make([]dayRespBody, 0, last.Day())
			for cursor := first; !cursor.After(last); cursor = caldate.AddDays(cursor, 1) {
				dayOccurrences := byDay[caldate.FormatDay(cursor)]
				dayEvents := make([]model.Event, 0, len(dayOccurrences))
				respEvents := make([]occurrenceRespBody, 0, len(dayOccurrences))
				for _, occurrence := range dayOccurrences {
					materialized := occurrence.Materialize()
					dayEvents = append(dayEvents, materialized)

					body := eventToBody(materialized)
					body.ID = instanceID(occurrence)
					respEvents = append(respEvents, occurrenceRespBody{
						eventBody:       body,
						OccurrenceIndex: occurrence.Index,
					})
				}
				days = append(days, dayRespBody{
					Date:         caldate.FormatDay(cursor),
					Density:      recur.DayDensity(dayEvents, cursor),
					HasConflicts: recur.HasConflicts(dayEvents, cursor),
					Events:       respEvents,
				})
			}

			respondJSON(w, http.StatusOK, monthRespBody{
				Month: monthDate.Format(monthParamFormat),
				Days:  days,
			})
		}))
}

// instanceID flattens the engine's compound (base, index) occurrence
// key into the legacy wire integer. Only this layer depends on the
// stride; the engine itself never produces flattened ids.
func instanceID(occurrence recur.Occurrence) int64 {
	return occurrence.BaseID + int64(occurrence.Index)*10000
}
