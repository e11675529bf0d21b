package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/calendar/model"
	"studio/internal/domains/calendar/model/dto"
	"studio/internal/domains/calendar/repository"
	"studio/shared"
	"studio/shared/cache"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheGetWorkingDays = "calendar:days"

var ErrWorkingDayNotFound = failure.NotFound("working day not found")

// Calendar answers whether the studio is open on a date. A weekday without a policy row is closed.
type Calendar interface {
	IsOpen(ctx context.Context, date time.Time) (bool, error)
	Window(ctx context.Context, date time.Time) (model.Window, bool, error)
	GetAll(ctx context.Context) (dto.GetWorkingDaysResponse, error)
	Update(ctx context.Context, req dto.UpdateWorkingDayRequest, day int) error
}

type serviceImpl struct {
	repo  repository.WorkingDay
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.WorkingDay, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Calendar {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) IsOpen(ctx context.Context, date time.Time) (open bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.IsOpen")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, open, err = s.Window(ctx, date)

	return open, err
}

func (s *serviceImpl) Window(ctx context.Context, date time.Time) (res model.Window, open bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.Window")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	days, err := s.policies(ctx)
	if err != nil {
		return res, false, err
	}

	weekday := model.ISOWeekday(date)
	scope.SetAttribute("day_of_week", weekday)

	for _, day := range days {
		if day.DayOfWeek != weekday {
			continue
		}

		if !day.IsActive {
			return res, false, nil
		}

		res, err = day.WindowOn(date)
		if err != nil {
			return res, false, fmt.Errorf("invalid policy for weekday %d: %w", weekday, err)
		}

		return res, res.Open.Before(res.Close), nil
	}

	return res, false, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetWorkingDaysResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	days, err := s.policies(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(days)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateWorkingDayRequest, day int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldDayOfWeek, Value: day, Operator: gDto.FilterOperatorEq},
		},
	}

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int("day", day).Msg("failed to get working day")

		return fmt.Errorf("failed to get working day: %w", err)
	}

	if current.ID == constant.Empty {
		return ErrWorkingDayNotFound
	}

	if err := req.Validate(current); err != nil {
		return failure.BadRequest(err)
	}

	if err := s.repo.Update(ctx, shared.UpdatedFields(req, user), shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int("day", day).Msg("failed to update working day")

		return fmt.Errorf("failed to update working day: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetWorkingDays)
	}()

	return nil
}

func (s *serviceImpl) policies(ctx context.Context) ([]model.WorkingDay, error) {
	var days []model.WorkingDay

	if err := s.cache.Get(ctx, cacheGetWorkingDays, &days); err == nil {
		return days, nil
	}

	days, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get working days")

		return nil, fmt.Errorf("failed to get working days: %w", err)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].DayOfWeek < days[j].DayOfWeek })

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetWorkingDays, days, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save working days to cache")
		}
	}()

	return days, nil
}
