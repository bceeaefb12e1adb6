package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"

	"github.com/uptrace/bun"
)

// BunRepo persists events through bun over sqlite.
type BunRepo struct {
	db *bun.DB
}

var _ EventRepo = (*BunRepo)(nil)

func NewBunRepo(db *bun.DB) *BunRepo {
	return &BunRepo{db: db}
}

func (r *BunRepo) Get(ctx context.Context, id int64) (*model.Event, error) {
	event := new(model.Event)
	if err := r.db.NewSelect().
		Model(event).
		Where("id = ?", id).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("(*BunRepo).Get: %w", err)
	}
	return event, nil
}

func (r *BunRepo) List(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := r.db.NewSelect().
		Model(&events).
		Order("id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*BunRepo).List: %w", err)
	}
	return events, nil
}

func (r *BunRepo) ListByRange(ctx context.Context, start, end time.Time) ([]model.Event, error) {
	// YYYY-MM-DD strings order lexicographically, so the day window is
	// a plain string range.
	events := make([]model.Event, 0)
	if err := r.db.NewSelect().
		Model(&events).
		Where("date >= ?", caldate.FormatDay(start)).
		Where("date <= ?", caldate.FormatDay(end)).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*BunRepo).ListByRange: %w", err)
	}
	return events, nil
}

func (r *BunRepo) Create(ctx context.Context, event *model.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("(*BunRepo).Create: %w", err)
	}
	event.Normalize()
	now := time.Now().UTC().Unix()
	event.CreatedAt = now
	event.UpdatedAt = now
	if _, err := r.db.NewInsert().
		Model(event).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*BunRepo).Create: %w", err)
	}
	return nil
}

func (r *BunRepo) Update(ctx context.Context, id int64, patch Patch) (*model.Event, error) {
	event, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(event)
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("(*BunRepo).Update: %w", err)
	}
	event.Normalize()
	event.UpdatedAt = time.Now().UTC().Unix()
	if _, err := r.db.NewUpdate().
		Model(event).
		WherePK().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("(*BunRepo).Update: %w", err)
	}
	return event, nil
}

func (r *BunRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*model.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("(*BunRepo).Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("(*BunRepo).Delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BunRepo) ListByOriginalID(ctx context.Context, originalEventID int64) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := r.db.NewSelect().
		Model(&events).
		Where("original_event_id = ?", originalEventID).
		Order("id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*BunRepo).ListByOriginalID: %w", err)
	}
	return events, nil
}
