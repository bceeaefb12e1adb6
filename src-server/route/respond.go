package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"gridcal/src-server/model"
)

// respondJSON writes data as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("can't encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// pathID extracts the {id} path value as an int64.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// eventBody is the wire shape of an event record, with recurrence and
// exceptionDates as structured values instead of stored JSON text.
type eventBody struct {
	ID              int64                    `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Date            string                   `json:"date"`
	Time            string                   `json:"time,omitempty"`
	Category        model.Category           `json:"category"`
	CategoryColor   string                   `json:"categoryColor,omitempty"`
	IsRecurring     bool                     `json:"isRecurring"`
	Recurrence      *model.RecurrencePattern `json:"recurrence,omitempty"`
	ExceptionDates  []string                 `json:"exceptionDates"`
	OriginalEventID *int64                   `json:"originalEventId"`
	CreatedAt       int64                    `json:"createdAt,omitempty"`
	UpdatedAt       int64                    `json:"updatedAt,omitempty"`
}

func eventToBody(event model.Event) eventBody {
	pattern, err := event.Pattern()
	if err != nil {
		pattern = nil
	}
	exceptions := event.Exceptions()
	if exceptions == nil {
		exceptions = []string{}
	}
	var originalEventID *int64
	if event.OriginalEventID != 0 {
		id := event.OriginalEventID
		originalEventID = &id
	}
	return eventBody{
		ID:              event.ID,
		Title:           event.Title,
		Description:     event.Description,
		Date:            event.Date,
		Time:            event.Time,
		Category:        event.Category.Normalize(),
		CategoryColor:   event.Category.Color(),
		IsRecurring:     event.IsRecurring,
		Recurrence:      pattern,
		ExceptionDates:  exceptions,
		OriginalEventID: originalEventID,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
}

func eventsToBodies(events []model.Event) []eventBody {
	bodies := make([]eventBody, 0, len(events))
	for _, event := range events {
		bodies = append(bodies, eventToBody(event))
	}
	return bodies
}
