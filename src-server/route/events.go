package route

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"
	"gridcal/src-server/recur"
	"gridcal/src-server/repo"
	"gridcal/src-server/utils"
)

func Events(muxer *http.ServeMux, as *utils.AppState) {
	type createEventReqBody struct {
		Title           string                   `json:"title"`
		Description     string                   `json:"description"`
		Date            string                   `json:"date"`
		Time            string                   `json:"time"`
		Category        model.Category           `json:"category"`
		IsRecurring     bool                     `json:"isRecurring"`
		Recurrence      *model.RecurrencePattern `json:"recurrence"`
		ExceptionDates  []string                 `json:"exceptionDates"`
		OriginalEventID *int64                   `json:"originalEventId"`
	}

	// list all base records, not expanded
	muxer.HandleFunc("GET /api/events", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			events, err := as.EventRepo.List(r.Context())
			if err != nil {
				slog.Error("can't list events", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to fetch events")
				return
			}
			respondJSON(w, http.StatusOK, eventsToBodies(events))
		}))

	// list base records whose date falls in the inclusive day range
	muxer.HandleFunc("GET /api/events/range", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			startParam := r.URL.Query().Get("startDate")
			endParam := r.URL.Query().Get("endDate")
			if startParam == "" || endParam == "" {
				respondError(w, http.StatusBadRequest, "Start date and end date are required")
				return
			}
			start, err := caldate.ParseDay(startParam)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid start date")
				return
			}
			end, err := caldate.ParseDay(endParam)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid end date")
				return
			}

			events, err := as.EventRepo.ListByRange(r.Context(), start, end)
			if err != nil {
				slog.Error("can't list events by range", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to fetch events by date range")
				return
			}
			respondJSON(w, http.StatusOK, eventsToBodies(events))
		}))

	muxer.HandleFunc("GET /api/events/{id}", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			id, err := pathID(r)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid event id")
				return
			}
			event, err := as.EventRepo.Get(r.Context(), id)
			switch {
			case errors.Is(err, repo.ErrNotFound):
				respondError(w, http.StatusNotFound, "Event not found")
				return
			case err != nil:
				slog.Error("can't get event", "id", id, "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to fetch event")
				return
			}
			respondJSON(w, http.StatusOK, eventToBody(*event))
		}))

	muxer.HandleFunc("POST /api/events", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody createEventReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			event := model.Event{
				Title:       utils.CleanupTitle(reqBody.Title),
				Description: reqBody.Description,
				Date:        reqBody.Date,
				Time:        reqBody.Time,
				Category:    reqBody.Category.Normalize(),
				IsRecurring: reqBody.IsRecurring,
			}
			if reqBody.OriginalEventID != nil {
				event.OriginalEventID = *reqBody.OriginalEventID
			}
			if err := event.SetPattern(reqBody.Recurrence); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid recurrence pattern")
				return
			}
			if err := event.SetExceptions(reqBody.ExceptionDates); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid exception dates")
				return
			}
			if err := event.Validate(); err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}

			if err := as.EventRepo.Create(r.Context(), &event); err != nil {
				slog.Error("can't create event", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to create event")
				return
			}
			respondJSON(w, http.StatusCreated, eventToBody(event))
		}))

	type patchEventReqBody struct {
		Title           *string         `json:"title"`
		Description     *string         `json:"description"`
		Date            *string         `json:"date"`
		Time            *string         `json:"time"`
		Category        *model.Category `json:"category"`
		IsRecurring     *bool           `json:"isRecurring"`
		Recurrence      json.RawMessage `json:"recurrence"`
		ExceptionDates  *[]string       `json:"exceptionDates"`
		OriginalEventID *int64          `json:"originalEventId"`
	}

	muxer.HandleFunc("PATCH /api/events/{id}", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			id, err := pathID(r)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid event id")
				return
			}
			var reqBody patchEventReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			patch := repo.Patch{
				Description:     reqBody.Description,
				Date:            reqBody.Date,
				Time:            reqBody.Time,
				Category:        reqBody.Category,
				IsRecurring:     reqBody.IsRecurring,
				OriginalEventID: reqBody.OriginalEventID,
			}
			if reqBody.Title != nil {
				title := utils.CleanupTitle(*reqBody.Title)
				patch.Title = &title
			}
			// recurrence is tri-state: absent leaves it alone, null
			// clears it, an object replaces it
			if len(reqBody.Recurrence) > 0 {
				if string(reqBody.Recurrence) == "null" {
					cleared := ""
					patch.Recurrence = &cleared
				} else {
					var pattern model.RecurrencePattern
					if err := json.Unmarshal(reqBody.Recurrence, &pattern); err != nil {
						respondError(w, http.StatusBadRequest, "Invalid recurrence pattern")
						return
					}
					raw, err := json.Marshal(pattern)
					if err != nil {
						respondError(w, http.StatusBadRequest, "Invalid recurrence pattern")
						return
					}
					encoded := string(raw)
					patch.Recurrence = &encoded
				}
			}
			if reqBody.ExceptionDates != nil {
				var holder model.Event
				if err := holder.SetExceptions(*reqBody.ExceptionDates); err != nil {
					respondError(w, http.StatusBadRequest, "Invalid exception dates")
					return
				}
				patch.ExceptionDates = &holder.ExceptionDates
			}

			event, err := as.EventRepo.Update(r.Context(), id, patch)
			switch {
			case errors.Is(err, repo.ErrNotFound):
				respondError(w, http.StatusNotFound, "Event not found")
				return
			case err != nil:
				slog.Error("can't update event", "id", id, "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to update event")
				return
			}
			respondJSON(w, http.StatusOK, eventToBody(*event))
		}))

	muxer.HandleFunc("DELETE /api/events/{id}", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			id, err := pathID(r)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid event id")
				return
			}
			err = as.EventRepo.Delete(r.Context(), id)
			switch {
			case errors.Is(err, repo.ErrNotFound):
				respondError(w, http.StatusNotFound, "Event not found")
				return
			case err != nil:
				slog.Error("can't delete event", "id", id, "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to delete event")
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}))

	// persisted records grouped to a base event
	muxer.HandleFunc("GET /api/events/{id}/recurrence", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			id, err := pathID(r)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid event id")
				return
			}
			events, err := as.EventRepo.ListByOriginalID(r.Context(), id)
			if err != nil {
				slog.Error("can't list recurring instances", "id", id, "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to fetch recurring events")
				return
			}
			respondJSON(w, http.StatusOK, eventsToBodies(events))
		}))

	type conflictsReqBody struct {
		Date      string `json:"date"`
		Time      string `json:"time"`
		ExcludeID int64  `json:"excludeId"`
	}

	// check a candidate event against everything stored
	muxer.HandleFunc("POST /api/events/conflicts", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody conflictsReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if reqBody.Date == "" {
				respondError(w, http.StatusBadRequest, "Date is required")
				return
			}
			existing, err := as.EventRepo.List(r.Context())
			if err != nil {
				slog.Error("can't list events for conflict check", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to check conflicts")
				return
			}
			candidate := model.Event{Date: reqBody.Date, Time: reqBody.Time}
			conflicting := recur.Conflicts(candidate, existing, reqBody.ExcludeID)
			respondJSON(w, http.StatusOK, eventsToBodies(conflicting))
		}))
}
