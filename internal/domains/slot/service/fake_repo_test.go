package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"studio/internal/domains/slot/model"
	gDto "studio/shared/dto"

	"github.com/jmoiron/sqlx"
)

// fakeRepo keeps slots in memory and honours the unique slot_datetime key.
type fakeRepo struct {
	mu    sync.Mutex
	slots map[int64]model.TimeSlot
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slots: map[int64]model.TimeSlot{}}
}

func filterValues(filter gDto.FilterGroup) map[string]any {
	values := map[string]any{}

	for _, f := range filter.Filters {
		if flt, ok := f.(gDto.Filter); ok {
			values[flt.Field] = flt.Value
		}
	}

	return values
}

func (r *fakeRepo) find(filter gDto.FilterGroup) (model.TimeSlot, bool) {
	values := filterValues(filter)

	if at, ok := values[model.FieldSlotDateTime].(time.Time); ok {
		slot, found := r.slots[at.UnixNano()]

		return slot, found
	}

	if id, ok := values[model.FieldID].(string); ok {
		for _, slot := range r.slots {
			if slot.ID == id {
				return slot, true
			}
		}
	}

	return model.TimeSlot{}, false
}

func (r *fakeRepo) InsertBulkIgnoreConflict(_ context.Context, models []model.TimeSlot) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var created int64

	for _, mod := range models {
		key := mod.SlotDateTime.UnixNano()
		if _, exists := r.slots[key]; exists {
			continue
		}

		r.slots[key] = mod
		created++
	}

	return created, nil
}

func (r *fakeRepo) InsertBulkIgnoreConflictTx(ctx context.Context, _ *sqlx.Tx, models []model.TimeSlot) (int64, error) {
	return r.InsertBulkIgnoreConflict(ctx, models)
}

func (r *fakeRepo) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, _ := r.find(filter)

	return slot, nil
}

func (r *fakeRepo) GetForUpdateTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.TimeSlot, error) {
	return r.Get(ctx, filter, columns...)
}

func (r *fakeRepo) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := filterValues(filter)
	res := []model.TimeSlot{}

	for _, slot := range r.slots {
		if day, ok := values[model.FieldSlotDate]; ok && model.DayKey(slot.SlotDate) != day {
			continue
		}

		if available, ok := values[model.FieldIsAvailable]; ok && slot.IsAvailable != available {
			continue
		}

		if blocked, ok := values[model.FieldIsBlocked]; ok && slot.IsBlocked != blocked {
			continue
		}

		res = append(res, slot)
	}

	sort.Slice(res, func(i, j int) bool { return res[i].SlotDateTime.Before(res[j].SlotDateTime) })

	return res, nil
}

func (r *fakeRepo) Count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	slots, err := r.GetAll(ctx, gDto.QueryParams{}, filter)

	return len(slots), err
}

func (r *fakeRepo) Update(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.find(filter)
	if !ok {
		return nil
	}

	if v, ok := fields[model.FieldIsAvailable].(bool); ok {
		slot.IsAvailable = v
	}

	if v, ok := fields[model.FieldIsBlocked].(bool); ok {
		slot.IsBlocked = v
	}

	if v, ok := fields[model.FieldBlockReason]; ok {
		slot.BlockReason, _ = v.(*string)
	}

	r.slots[slot.SlotDateTime.UnixNano()] = slot

	return nil
}

func (r *fakeRepo) UpdateTx(ctx context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
	return r.Update(ctx, fields, filter)
}

func (r *fakeRepo) slot(at time.Time) (model.TimeSlot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[at.UnixNano()]

	return slot, ok
}
