// Package repo defines the event repository contract and its sqlite
// and in-memory implementations. The recurrence and conflict engines
// are pure consumers of what List/ListByRange return; identity
// generation for base records lives here, not in the engine.
package repo

import (
	"context"
	"errors"
	"time"

	"gridcal/src-server/model"
)

// ErrNotFound is returned by Get, Update, and Delete when no record
// carries the requested id.
var ErrNotFound = errors.New("event not found")

type EventRepo interface {
	Get(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	// ListByRange returns base records whose anchor date falls inside
	// the inclusive [start, end] day window.
	ListByRange(ctx context.Context, start, end time.Time) ([]model.Event, error)
	// Create assigns the record's id and timestamps.
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, id int64, patch Patch) (*model.Event, error)
	Delete(ctx context.Context, id int64) error
	ListByOriginalID(ctx context.Context, originalEventID int64) ([]model.Event, error)
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title           *string
	Description     *string
	Date            *string
	Time            *string
	Category        *model.Category
	IsRecurring     *bool
	Recurrence      *string
	ExceptionDates  *string
	OriginalEventID *int64
}

func (p Patch) apply(event *model.Event) {
	if p.Title != nil {
		event.Title = *p.Title
	}
	if p.Description != nil {
		event.Description = *p.Description
	}
	if p.Date != nil {
		event.Date = *p.Date
	}
	if p.Time != nil {
		event.Time = *p.Time
	}
	if p.Category != nil {
		event.Category = p.Category.Normalize()
	}
	if p.IsRecurring != nil {
		event.IsRecurring = *p.IsRecurring
	}
	if p.Recurrence != nil {
		event.Recurrence = *p.Recurrence
	}
	if p.ExceptionDates != nil {
		event.ExceptionDates = *p.ExceptionDates
	}
	if p.OriginalEventID != nil {
		event.OriginalEventID = *p.OriginalEventID
	}
}
