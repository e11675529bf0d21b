package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"studio/config"
	"studio/infras/otel"
	calendarService "studio/internal/domains/calendar/service"
	"studio/internal/domains/slot/model"
	"studio/internal/domains/slot/model/dto"
	"studio/internal/domains/slot/repository"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const systemActor = "system"

// Slot owns the time grid. Occupy and Release run inside the caller's transaction.
type Slot interface {
	Materialize(ctx context.Context, date time.Time) (int, error)
	MaterializeHorizon(ctx context.Context, from time.Time, days int) error
	ListAvailable(ctx context.Context, date time.Time) ([]time.Time, error)
	IsOccupiable(ctx context.Context, at time.Time) (bool, error)
	OccupyTx(ctx context.Context, tx *sqlx.Tx, at time.Time) error
	ReleaseTx(ctx context.Context, tx *sqlx.Tx, at time.Time) error
	Block(ctx context.Context, req dto.BlockSlotRequest) error
	Unblock(ctx context.Context, req dto.UnblockSlotRequest) error
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo     repository.TimeSlot
	calendar calendarService.Calendar
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.TimeSlot, calendar calendarService.Calendar, cfg *config.Config, otel otel.Otel) Slot {
	return &serviceImpl{
		repo:     repo,
		calendar: calendar,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) granularity() time.Duration {
	if s.cfg.Booking.SlotGranularityMinutes <= 0 {
		return constant.DefaultSlotGranularity
	}

	return time.Duration(s.cfg.Booking.SlotGranularityMinutes) * time.Minute
}

func (s *serviceImpl) maxRangeDays() int {
	if s.cfg.Booking.MaxRangeDays <= 0 {
		return constant.DefaultMaxRangeDays
	}

	return s.cfg.Booking.MaxRangeDays
}

func filterAt(at time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldSlotDateTime, Value: at, Operator: gDto.FilterOperatorEq},
		},
	}
}

func filterDay(date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldSlotDate, Value: model.DayKey(date), Operator: gDto.FilterOperatorEq},
		},
	}
}

// Materialize creates the grid of date in one batch. Existing slots are left untouched,
// so calling it again for the same date writes nothing.
func (s *serviceImpl) Materialize(ctx context.Context, date time.Time) (created int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Materialize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	window, open, err := s.calendar.Window(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to read calendar: %w", err)
	}

	if !open {
		return 0, nil
	}

	slots := []model.TimeSlot{}
	for at := window.Open; at.Before(window.Close); at = at.Add(s.granularity()) {
		slots = append(slots, model.New(at, systemActor))
	}

	affected, err := s.repo.InsertBulkIgnoreConflict(ctx, slots)
	if err != nil {
		log.Error().Err(err).Str("date", model.DayKey(date)).Msg("failed to materialize slots")

		return 0, fmt.Errorf("failed to materialize slots: %w", err)
	}

	scope.SetAttribute("slots.created", affected)

	return int(affected), nil
}

func (s *serviceImpl) MaterializeHorizon(ctx context.Context, from time.Time, days int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.MaterializeHorizon")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if days <= 0 {
		days = constant.DefaultHorizonDays
	}

	start := timezone.StartOfDay(from)
	total := 0

	for offset := range days {
		created, err := s.Materialize(ctx, start.AddDate(0, 0, offset))
		if err != nil {
			return err
		}

		total += created
	}

	log.Info().Str("from", model.DayKey(start)).Int("days", days).Int("created", total).Msg("slot horizon materialized")

	return nil
}

func (s *serviceImpl) ListAvailable(ctx context.Context, date time.Time) (res []time.Time, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.ListAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = []time.Time{}

	open, err := s.calendar.IsOpen(ctx, date)
	if err != nil {
		return res, fmt.Errorf("failed to read calendar: %w", err)
	}

	if !open {
		return res, nil
	}

	count, err := s.repo.Count(ctx, filterDay(date))
	if err != nil {
		log.Error().Err(err).Msg("failed to count slots")

		return res, fmt.Errorf("failed to count slots: %w", err)
	}

	if count == 0 {
		if _, err := s.Materialize(ctx, date); err != nil {
			return res, err
		}
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldSlotDate, Value: model.DayKey(date), Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldIsBlocked, Value: false, Operator: gDto.FilterOperatorEq},
		},
	}
	params := gDto.QueryParams{SortBy: model.FieldSlotDateTime, SortDir: gDto.SortDirAsc}

	slots, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available slots")

		return res, fmt.Errorf("failed to get available slots: %w", err)
	}

	for _, slot := range slots {
		res = append(res, timezone.ToAppTime(slot.SlotDateTime))
	}

	return res, nil
}

// IsOccupiable is a lock-free pre-check. A slot that was never materialized counts as free
// as long as the instant falls inside the operating window.
func (s *serviceImpl) IsOccupiable(ctx context.Context, at time.Time) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.IsOccupiable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	window, open, err := s.calendar.Window(ctx, at)
	if err != nil {
		return false, fmt.Errorf("failed to read calendar: %w", err)
	}

	if !open || !window.Contains(at) {
		return false, nil
	}

	slot, err := s.repo.Get(ctx, filterAt(at))
	if err != nil {
		return false, fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return true, nil
	}

	return slot.Occupiable(), nil
}

func (s *serviceImpl) OccupyTx(ctx context.Context, tx *sqlx.Tx, at time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.OccupyTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err := s.repo.InsertBulkIgnoreConflictTx(ctx, tx, []model.TimeSlot{model.New(at, user)}); err != nil {
		return fmt.Errorf("failed to ensure slot: %w", err)
	}

	slot, err := s.repo.GetForUpdateTx(ctx, tx, filterAt(at))
	if err != nil {
		return fmt.Errorf("failed to lock slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return fmt.Errorf("slot %s vanished after insert", at.Format(constant.DateFormat))
	}

	if !slot.Occupiable() {
		return ErrSlotUnavailable
	}

	fields := map[string]any{
		model.FieldIsAvailable:   false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(slot.ID, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to occupy slot: %w", err)
	}

	return nil
}

// ReleaseTx frees the slot at the given instant. A blocked slot stays unavailable.
func (s *serviceImpl) ReleaseTx(ctx context.Context, tx *sqlx.Tx, at time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.ReleaseTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	slot, err := s.repo.GetForUpdateTx(ctx, tx, filterAt(at))
	if err != nil {
		return fmt.Errorf("failed to lock slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return ErrSlotNotFound
	}

	if slot.IsBlocked || slot.IsAvailable {
		return nil
	}

	fields := map[string]any{
		model.FieldIsAvailable:   true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(slot.ID, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}

	return nil
}

func (s *serviceImpl) Block(ctx context.Context, req dto.BlockSlotRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Block")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	at, err := dto.ParseInstant(req.DateTime)
	if err != nil {
		return failure.BadRequest(err)
	}

	if _, err := s.repo.InsertBulkIgnoreConflict(ctx, []model.TimeSlot{model.New(at, user)}); err != nil {
		log.Error().Err(err).Msg("failed to ensure slot")

		return fmt.Errorf("failed to ensure slot: %w", err)
	}

	var reason *string
	if req.Reason != constant.Empty {
		reason = &req.Reason
	}

	fields := map[string]any{
		model.FieldIsBlocked:     true,
		model.FieldIsAvailable:   false,
		model.FieldBlockReason:   reason,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filterAt(at)); err != nil {
		log.Error().Err(err).Msg("failed to block slot")

		return fmt.Errorf("failed to block slot: %w", err)
	}

	log.Info().Time("slot", at).Str("by", user).Msg("slot blocked")

	return nil
}

func (s *serviceImpl) Unblock(ctx context.Context, req dto.UnblockSlotRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Unblock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	at, err := dto.ParseInstant(req.DateTime)
	if err != nil {
		return failure.BadRequest(err)
	}

	slot, err := s.repo.Get(ctx, filterAt(at))
	if err != nil {
		return fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return ErrSlotNotFound
	}

	fields := map[string]any{
		model.FieldIsBlocked:     false,
		model.FieldIsAvailable:   true,
		model.FieldBlockReason:   nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(slot.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to unblock slot")

		return fmt.Errorf("failed to unblock slot: %w", err)
	}

	return nil
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, err := timezone.Parse(constant.DayFormat, req.StartDate)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	end, err := timezone.Parse(constant.DayFormat, req.EndDate)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if end.Before(start) {
		return res, ErrInvalidRange
	}

	span := 0
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		span++
	}

	if span > s.maxRangeDays() {
		return res, ErrRangeTooLong
	}

	res.Days = make([]dto.DayAvailability, 0, span)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		day := dto.DayAvailability{Date: date.Format(constant.DayFormat), AvailableSlots: []string{}}

		day.IsWorkingDay, err = s.calendar.IsOpen(ctx, date)
		if err != nil {
			return res, fmt.Errorf("failed to read calendar: %w", err)
		}

		if day.IsWorkingDay {
			slots, err := s.ListAvailable(ctx, date)
			if err != nil {
				return res, err
			}

			day.AvailableSlots = dto.FormatSlots(slots)
		}

		res.Days = append(res.Days, day)
	}

	return res, nil
}

