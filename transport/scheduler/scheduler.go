package scheduler

import (
	"context"
	"fmt"

	"studio/config"
	"studio/infras/otel"
	slotService "studio/internal/domains/slot/service"
	"studio/shared/constant"
	"studio/shared/logger"
	"studio/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler keeps the slot grid materialized over the booking horizon.
type Scheduler struct {
	cron   *cron.Cron
	slots  slotService.Slot
	config *config.Config
	otel   otel.Otel
	log    zerolog.Logger
}

func New(slots slotService.Slot, cfg *config.Config, otel otel.Otel) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(timezone.GetLocation())),
		slots:  slots,
		config: cfg,
		otel:   otel,
		log:    logger.Component("scheduler"),
	}
}

// Start extends the horizon once, then on every tick of BOOKING_HORIZON_CRON.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ExtendHorizon(ctx)

	_, err := s.cron.AddFunc(s.config.Booking.HorizonCron, func() {
		s.ExtendHorizon(context.WithoutCancel(ctx))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule horizon job %q: %w", s.config.Booking.HorizonCron, err)
	}

	s.cron.Start()

	s.log.Info().Str("schedule", s.config.Booking.HorizonCron).Msg("Slot horizon scheduler started")

	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler did not stop: %w", ctx.Err())
	}
}

func (s *Scheduler) ExtendHorizon(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".slot.ExtendHorizon")
	defer scope.End()

	days := s.config.Booking.HorizonDays
	if days <= 0 {
		days = constant.DefaultHorizonDays
	}

	if err := s.slots.MaterializeHorizon(ctx, timezone.Now(), days); err != nil {
		scope.TraceError(err)
		s.log.Error().Err(err).Int("days", days).Msg("failed to materialize slot horizon")
	}
}
