package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/booking/model"
	"studio/internal/domains/booking/model/dto"
	"studio/internal/domains/booking/repository"
	calendarService "studio/internal/domains/calendar/service"
	catalogService "studio/internal/domains/catalog/service"
	clientModel "studio/internal/domains/client/model"
	clientDto "studio/internal/domains/client/model/dto"
	clientService "studio/internal/domains/client/service"
	slotDto "studio/internal/domains/slot/model/dto"
	slotService "studio/internal/domains/slot/service"
	"studio/internal/notifier"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"
	"studio/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const adminStatusCancelReason = "Cancelled by admin"

type Clock func() time.Time

func SystemClock() Clock {
	return timezone.Now
}

type Booking interface {
	Admit(ctx context.Context, req dto.AdmitRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelRequest) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
	Get(ctx context.Context, id string, actor dto.Actor) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.ListRequest, actor dto.Actor) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	transactor postgres.Transactor
	calendar   calendarService.Calendar
	catalog    catalogService.Catalog
	slots      slotService.Slot
	clients    clientService.Clients
	notifier   notifier.Notifier
	rules      model.Rules
	now        Clock
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	transactor postgres.Transactor,
	calendar calendarService.Calendar,
	catalog catalogService.Catalog,
	slots slotService.Slot,
	clients clientService.Clients,
	notifier notifier.Notifier,
	rules model.Rules,
	now Clock,
	otel otel.Otel,
) Booking {
	if now == nil {
		now = timezone.Now
	}

	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		calendar:   calendar,
		catalog:    catalog,
		slots:      slots,
		clients:    clients,
		notifier:   notifier,
		rules:      rules,
		now:        now,
		otel:       otel,
	}
}

func resolveRequest(req dto.AdmitRequest) clientDto.ResolveRequest {
	if req.ByPhone() {
		return clientDto.ResolveRequest{Name: req.GuestName, Phone: req.GuestPhone, ByPhone: true}
	}

	return clientDto.ResolveRequest{
		UserID: req.Actor.UserID,
		Name:   req.Actor.Name,
		Phone:  req.Actor.Phone,
	}
}

// Admit runs the admission checks in order and stops at the first rejection.
func (s *serviceImpl) Admit(ctx context.Context, req dto.AdmitRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Admit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, err := slotDto.ParseInstant(req.StartTime)
	if err != nil {
		return res, failure.BadRequestFromString("invalid start_time") // nolint:wrapcheck
	}

	now := s.now()

	if err = s.rules.CheckAdmission(now, start); err != nil {
		return res, err
	}

	open, err := s.calendar.IsOpen(ctx, start)
	if err != nil {
		return res, fmt.Errorf("failed to check working day: %w", err)
	}

	if !open {
		return res, model.ErrClosedDay
	}

	massage, err := s.catalog.Lookup(ctx, req.ServiceID)
	if err != nil {
		return res, err
	}

	end := start.Add(massage.TotalDuration())

	occupiable, err := s.slots.IsOccupiable(ctx, start)
	if err != nil {
		return res, fmt.Errorf("failed to check slot: %w", err)
	}

	if !occupiable {
		return res, slotService.ErrSlotUnavailable
	}

	var (
		booking model.Booking
		client  clientModel.Client
	)

	err = s.transactor.WithTransaction(ctx, postgres.Serializable, func(ctx context.Context, tx *sqlx.Tx) error {
		overlapping, err := s.repo.FindOverlappingTx(ctx, tx, start, end)
		if err != nil {
			return err
		}

		if len(overlapping) > 0 {
			return model.ErrOverlap
		}

		client, err = s.clients.ResolveTx(ctx, tx, resolveRequest(req))
		if err != nil {
			return err
		}

		booking = req.ToModel(client.ID, start, massage.Duration(), massage.Cleanup(), now)

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return s.slots.OccupyTx(ctx, tx, start)
	})
	if err != nil {
		if gRepo.IsConflict(err) {
			log.Info().Err(err).Time("start", start).Msg("admission lost a concurrent race")

			return res, model.ErrOverlap
		}

		log.Error().Err(err).Time("start", start).Msg("failed to admit booking")

		return res, err
	}

	log.Info().Str("booking_id", booking.ID).Time("start", start).Time("end", end).Msg("booking admitted")

	s.notifier.BookingConfirmed(context.WithoutCancel(ctx), event(booking, client, massage.Name))

	res.FromModel(booking)

	return res, nil
}

// Cancel is a client cancellation unless the actor is an admin, who must give a reason but may cancel at any time.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reason := strings.TrimSpace(req.Reason)

	if req.Actor.IsAdmin() && reason == constant.Empty {
		return res, model.ErrReasonRequired
	}

	booking, err := s.cancel(ctx, req.BookingID, reason, req.Actor, !req.Actor.IsAdmin())
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) cancel(ctx context.Context, id, reason string, actor dto.Actor, asClient bool) (booking model.Booking, err error) {
	var owner clientModel.Client

	if asClient {
		owner, err = s.clients.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return booking, fmt.Errorf("failed to resolve caller: %w", err)
		}
	}

	now := s.now()

	err = s.transactor.WithTransaction(ctx, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return model.ErrBookingNotFound
		}

		if asClient && booking.ClientID != owner.ID {
			return model.ErrNotBookingOwner
		}

		if !booking.Status.CanTransitionTo(model.StatusCanceled) {
			return model.ErrInvalidStateTransition
		}

		if asClient {
			if err := s.rules.CheckClientCancellation(now, booking.StartTime); err != nil {
				return err
			}
		}

		booking.Status = model.StatusCanceled
		booking.CancellationReason = nil
		if reason != constant.Empty {
			booking.CancellationReason = &reason
		}
		booking.ModifiedAt = now
		booking.ModifiedBy = actor.UserID

		fields := map[string]any{
			model.FieldStatus:             booking.Status.String(),
			model.FieldCancellationReason: booking.CancellationReason,
			constant.FieldModifiedAt:      now,
			constant.FieldModifiedBy:      actor.UserID,
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		err := s.slots.ReleaseTx(ctx, tx, booking.StartTime)
		if errors.Is(err, slotService.ErrSlotNotFound) {
			log.Warn().Str("booking_id", id).Time("start", booking.StartTime).Msg("no slot row to release for cancelled booking")

			return nil
		}

		return err
	})
	if err != nil {
		return booking, err
	}

	log.Info().Str("booking_id", id).Bool("by_client", asClient).Msg("booking cancelled")

	s.notifyCanceled(ctx, booking)

	return booking, nil
}

// notifyCanceled leaves the client lookup to the dispatcher so the caller gets its answer right after commit.
func (s *serviceImpl) notifyCanceled(ctx context.Context, booking model.Booking) {
	ev := event(booking, clientModel.Client{}, constant.Empty)
	ev.LoadRecipient = s.recipient(booking.ClientID)

	s.notifier.BookingCanceled(context.WithoutCancel(ctx), ev)
}

func (s *serviceImpl) recipient(clientID string) notifier.RecipientFunc {
	return func(ctx context.Context) (notifier.Recipient, error) {
		client, err := s.clients.Get(ctx, clientID)
		if err != nil {
			return notifier.Recipient{}, fmt.Errorf("failed to load client %s: %w", clientID, err)
		}

		return notifier.Recipient{Name: client.Name, Phone: client.PhoneNumber()}, nil
	}
}

func event(booking model.Booking, client clientModel.Client, serviceName string) notifier.Event {
	ev := notifier.Event{
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		ClientName:  client.Name,
		ClientPhone: client.PhoneNumber(),
		ServiceName: serviceName,
		StartTime:   booking.StartTime,
		EndTime:     booking.SessionEnd(),
		OccurredAt:  booking.ModifiedAt,
	}

	if booking.CancellationReason != nil {
		ev.Reason = *booking.CancellationReason
	}

	return ev
}

// UpdateStatus is the staff path. CANCELED goes through the admin cancellation and frees the slot.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	next, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if next == model.StatusCanceled {
		booking, err := s.cancel(ctx, id, adminStatusCancelReason, req.Actor, false)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		return res, nil
	}

	var booking model.Booking

	err = s.transactor.WithTransaction(ctx, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return model.ErrBookingNotFound
		}

		if !booking.Status.CanTransitionTo(next) {
			return model.ErrInvalidStateTransition
		}

		now := s.now()
		booking.Status = next
		booking.ModifiedAt = now
		booking.ModifiedBy = req.Actor.UserID

		fields := map[string]any{
			model.FieldStatus:        next.String(),
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: req.Actor.UserID,
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	log.Info().Str("booking_id", id).Str("status", next.String()).Msg("booking status updated")

	res.FromModel(booking)

	return res, nil
}

// Get hides bookings of other clients behind a not found.
func (s *serviceImpl) Get(ctx context.Context, id string, actor dto.Actor) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, model.ErrBookingNotFound
	}

	if !actor.IsStaff() {
		owner, err := s.clients.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return res, fmt.Errorf("failed to resolve caller: %w", err)
		}

		if owner.ID != booking.ClientID {
			return res, model.ErrBookingNotFound
		}
	}

	res.FromModel(booking)

	return res, nil
}

func dayRange(req dto.ListRequest) (from, to *time.Time, err error) {
	if req.StartDate != constant.Empty {
		day, err := timezone.Parse(constant.DayFormat, req.StartDate)
		if err != nil {
			return nil, nil, failure.BadRequestFromString("invalid start_date") // nolint:wrapcheck
		}

		from = &day
	}

	if req.EndDate != constant.Empty {
		day, err := timezone.Parse(constant.DayFormat, req.EndDate)
		if err != nil {
			return nil, nil, failure.BadRequestFromString("invalid end_date") // nolint:wrapcheck
		}

		next := day.AddDate(0, 0, 1)
		to = &next
	}

	return from, to, nil
}

// GetAll lists every booking for staff and only the caller's own bookings otherwise.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.ListRequest, actor dto.Actor) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to, err := dayRange(req)
	if err != nil {
		return res, err
	}

	var clientID string

	if !actor.IsStaff() {
		owner, err := s.clients.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return res, fmt.Errorf("failed to resolve caller: %w", err)
		}

		if owner.ID == constant.Empty {
			res.FromModels(nil, 0, params.Limit)

			return res, nil
		}

		clientID = owner.ID
	}

	filter := req.Filter(clientID, from, to)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}
