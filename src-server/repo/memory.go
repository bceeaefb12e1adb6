package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"
)

// MemRepo keeps events in a mutex-guarded map with auto-increment
// identity. Each call is atomic with respect to concurrent callers.
type MemRepo struct {
	mu     sync.Mutex
	events map[int64]model.Event
	nextID int64
}

var _ EventRepo = (*MemRepo)(nil)

func NewMemRepo() *MemRepo {
	return &MemRepo{
		events: make(map[int64]model.Event),
		nextID: 1,
	}
}

func (r *MemRepo) Get(ctx context.Context, id int64) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (r *MemRepo) List(ctx context.Context) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked(), nil
}

func (r *MemRepo) ListByRange(ctx context.Context, start, end time.Time) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]model.Event, 0)
	for _, event := range r.sortedLocked() {
		date, err := caldate.ParseDay(event.Date)
		if err != nil {
			continue
		}
		if date.Before(caldate.Day(start)) || date.After(caldate.Day(end)) {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *MemRepo) Create(ctx context.Context, event *model.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("(*MemRepo).Create: %w", err)
	}
	event.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	r.nextID++
	now := time.Now().UTC().Unix()
	event.CreatedAt = now
	event.UpdatedAt = now
	r.events[event.ID] = *event
	return nil
}

func (r *MemRepo) Update(ctx context.Context, id int64, patch Patch) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.apply(&event)
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("(*MemRepo).Update: %w", err)
	}
	event.Normalize()
	event.UpdatedAt = time.Now().UTC().Unix()
	r.events[id] = event
	return &event, nil
}

func (r *MemRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *MemRepo) ListByOriginalID(ctx context.Context, originalEventID int64) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]model.Event, 0)
	for _, event := range r.sortedLocked() {
		if event.OriginalEventID == originalEventID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (r *MemRepo) sortedLocked() []model.Event {
	events := make([]model.Event, 0, len(r.events))
	for _, event := range r.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events
}
