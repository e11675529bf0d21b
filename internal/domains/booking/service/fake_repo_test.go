package service_test

import (
	"context"
	"database/sql"
	"maps"
	"sort"
	"sync"
	"time"

	"studio/infras/postgres"
	"studio/internal/domains/booking/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// fakeRepo keeps bookings in memory and rejects overlapping BOOKED rows the way the exclusion constraint does.
type fakeRepo struct {
	mu   sync.Mutex
	rows map[string]model.Booking
}

func newFakeRepo(bookings ...model.Booking) *fakeRepo {
	repo := &fakeRepo{rows: map[string]model.Booking{}}
	for _, booking := range bookings {
		repo.rows[booking.ID] = booking
	}

	return repo
}

func (f *fakeRepo) snapshot() map[string]model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	return maps.Clone(f.rows)
}

func (f *fakeRepo) restore(rows map[string]model.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rows = rows
}

func (f *fakeRepo) booked() []model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := []model.Booking{}

	for _, row := range f.rows {
		if row.Status == model.StatusBooked {
			res = append(res, row)
		}
	}

	return res
}

func (f *fakeRepo) row(id string) model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.rows[id]
}

func (f *fakeRepo) InsertTx(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range f.rows {
		if row.Status == model.StatusBooked && row.Overlaps(booking.StartTime, booking.EndTime) {
			return &pq.Error{Code: constant.PqErrorCodeExclusionViolation}
		}
	}

	f.rows[booking.ID] = booking

	return nil
}

func (f *fakeRepo) byID(filter gDto.FilterGroup) model.Booking {
	_, args := filter.GetWhereClause()
	id, _ := args[model.FieldID].(string)

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.rows[id]
}

func (f *fakeRepo) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	return f.byID(filter), nil
}

func (f *fakeRepo) GetForUpdateTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	return f.byID(filter), nil
}

func (f *fakeRepo) matching(filter gDto.FilterGroup) []model.Booking {
	_, args := filter.GetWhereClause()

	f.mu.Lock()
	defer f.mu.Unlock()

	res := []model.Booking{}

	for _, row := range f.rows {
		if clientID, ok := args[model.FieldClientID]; ok && row.ClientID != clientID {
			continue
		}

		if status, ok := args[model.FieldStatus]; ok && row.Status.String() != status {
			continue
		}

		res = append(res, row)
	}

	sort.Slice(res, func(i, j int) bool { return res[i].StartTime.Before(res[j].StartTime) })

	return res
}

func (f *fakeRepo) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
	return f.matching(filter), nil
}

func (f *fakeRepo) Count(_ context.Context, filter gDto.FilterGroup) (int, error) {
	return len(f.matching(filter)), nil
}

func (f *fakeRepo) UpdateTx(_ context.Context, _ *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error {
	_, args := filter.GetWhereClause()
	id, _ := args[model.FieldID].(string)

	f.mu.Lock()
	defer f.mu.Unlock()

	row := f.rows[id]

	if status, ok := req[model.FieldStatus].(string); ok {
		row.Status = model.Status(status)
	}

	if reason, ok := req[model.FieldCancellationReason]; ok {
		row.CancellationReason, _ = reason.(*string)
	}

	if at, ok := req[constant.FieldModifiedAt].(time.Time); ok {
		row.ModifiedAt = at
	}

	f.rows[id] = row

	return nil
}

func (f *fakeRepo) FindOverlappingTx(_ context.Context, _ *sqlx.Tx, start, end time.Time) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := []model.Booking{}

	for _, row := range f.rows {
		if row.Status == model.StatusBooked && row.Overlaps(start, end) {
			res = append(res, row)
		}
	}

	return res, nil
}

// fakeTransactor serializes transactions and restores the store when fn fails.
type fakeTransactor struct {
	mu   sync.Mutex
	repo *fakeRepo
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, _ *sql.TxOptions, fn postgres.TxFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var before map[string]model.Booking
	if f.repo != nil {
		before = f.repo.snapshot()
	}

	if err := fn(ctx, nil); err != nil {
		if f.repo != nil {
			f.repo.restore(before)
		}

		return err
	}

	return nil
}
