package route

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"
	"gridcal/src-server/utils"
)

// Quick creates events from natural language ("dentist tomorrow at
// 14:30"). The date phrase is parsed out of the text; whatever remains
// becomes the title.
func Quick(muxer *http.ServeMux, as *utils.AppState) {
	type quickAddReqBody struct {
		Text     string         `json:"text"`
		Category model.Category `json:"category"`
	}

	muxer.HandleFunc("POST /api/events/quick", LogMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody quickAddReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if strings.TrimSpace(reqBody.Text) == "" {
				respondError(w, http.StatusBadRequest, "Text is required")
				return
			}

			now := time.Now().In(as.Config.GetLocation())
			result, err := as.When.Parse(reqBody.Text, now)
			if err != nil || result == nil {
				respondError(w, http.StatusBadRequest, "Couldn't find a date in the text")
				return
			}

			title := utils.CleanupTitle(strings.Replace(reqBody.Text, result.Text, "", 1))
			if title == "" {
				title = "Untitled"
			}

			event := model.Event{
				Title:    title,
				Date:     caldate.FormatDay(result.Time),
				Category: reqBody.Category.Normalize(),
			}
			// midnight means the phrase carried no clock time
			if result.Time.Hour() != 0 || result.Time.Minute() != 0 {
				event.Time = fmt.Sprintf("%02d:%02d", result.Time.Hour(), result.Time.Minute())
			}

			if err := as.EventRepo.Create(r.Context(), &event); err != nil {
				slog.Error("can't create quick-add event", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to create event")
				return
			}
			respondJSON(w, http.StatusCreated, eventToBody(event))
		}))
}
