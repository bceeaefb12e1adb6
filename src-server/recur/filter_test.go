package recur_test

import (
	"testing"

	"gridcal/src-server/model"
	"gridcal/src-server/recur"
)

func TestFilterEvents(t *testing.T) {
	events := []model.Event{
		{ID: 1, Title: "Team Meeting", Description: "Weekly sync", Category: model.CategoryWork},
		{ID: 2, Title: "Gym Session", Description: "Leg day", Category: model.CategoryHealth},
		{ID: 3, Title: "Dinner", Description: "With the team", Category: model.CategorySocial},
		{ID: 4, Title: "Mystery", Category: "??"}, // folds into the default category
	}

	tests := []struct {
		name       string
		query      string
		categories []model.Category
		wantIDs    []int64
	}{
		{"no filters keeps everything", "", nil, []int64{1, 2, 3, 4}},
		{"query matches title case-insensitively", "gym", nil, []int64{2}},
		{"query matches description", "team", nil, []int64{1, 3}},
		{"category filter", "", []model.Category{model.CategoryHealth}, []int64{2}},
		{"unknown category folds to default", "", []model.Category{model.CategoryWork}, []int64{1, 4}},
		{"query and category compose", "team", []model.Category{model.CategorySocial}, []int64{3}},
		{"no match", "zzz", nil, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recur.FilterEvents(events, tt.query, tt.categories)
			gotIDs := make([]int64, 0, len(got))
			for _, event := range got {
				gotIDs = append(gotIDs, event.ID)
			}
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("FilterEvents ids = %v, want %v", gotIDs, tt.wantIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Fatalf("FilterEvents ids = %v, want %v", gotIDs, tt.wantIDs)
				}
			}
		})
	}
}
