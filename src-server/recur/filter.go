package recur

import (
	"strings"

	"gridcal/src-server/model"
)

// FilterEvents keeps events matching the free-text query (title or
// description, case-insensitive) and, when categories is non-empty,
// belonging to one of the given categories.
func FilterEvents(events []model.Event, query string, categories []model.Category) []model.Event {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]model.Event, 0, len(events))
	for _, event := range events {
		if len(categories) > 0 && !containsCategory(categories, event.Category.Normalize()) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(event.Title), query) &&
			!strings.Contains(strings.ToLower(event.Description), query) {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered
}

func containsCategory(categories []model.Category, category model.Category) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
