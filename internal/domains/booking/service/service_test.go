package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studio/config"
	otelMocks "studio/infras/otel/mocks"
	"studio/internal/domains/booking/mocks"
	"studio/internal/domains/booking/model"
	"studio/internal/domains/booking/model/dto"
	"studio/internal/domains/booking/service"
	calendarMocks "studio/internal/domains/calendar/mocks"
	catalogMocks "studio/internal/domains/catalog/mocks"
	catalogModel "studio/internal/domains/catalog/model"
	catalogService "studio/internal/domains/catalog/service"
	clientMocks "studio/internal/domains/client/mocks"
	clientModel "studio/internal/domains/client/model"
	clientDto "studio/internal/domains/client/model/dto"
	slotMocks "studio/internal/domains/slot/mocks"
	slotService "studio/internal/domains/slot/service"
	"studio/internal/notifier"
	notifierMocks "studio/internal/notifier/mocks"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	ownerUserID  = "user-1"
	ownerClient  = "client-1"
	otherClient  = "client-2"
	serviceID    = "svc-60"
	localMinute  = "2006-01-02T15:04"
	adminUserID  = "admin-1"
	clientUserID = ownerUserID
)

var configDefaults = config.Config{}

var (
	clientActor = dto.Actor{UserID: clientUserID, Name: "Ana", Role: constant.RoleClient}
	adminActor  = dto.Actor{UserID: adminUserID, Name: "Admin", Role: constant.RoleAdmin}
	staffActor  = dto.Actor{UserID: "staff-1", Name: "Staff", Role: constant.RoleSubAdmin}
)

// 2030-01-01 is a Tuesday and 2030-01-03 a Thursday.
func at(t *testing.T, value string) time.Time {
	t.Helper()

	res, err := timezone.Parse(localMinute, value)
	require.NoError(t, err)

	return res
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

type fixture struct {
	svc      service.Booking
	repo     *fakeRepo
	clock    *clock
	calendar *calendarMocks.MockCalendar
	catalog  *catalogMocks.MockCatalog
	slots    *slotMocks.MockSlot
	clients  *clientMocks.MockClients
	notifier *notifierMocks.MockNotifier
}

func newFixture(t *testing.T, bookings ...model.Booking) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     newFakeRepo(bookings...),
		clock:    &clock{now: at(t, "2030-01-01T10:00")},
		calendar: calendarMocks.NewMockCalendar(ctrl),
		catalog:  catalogMocks.NewMockCatalog(ctrl),
		slots:    slotMocks.NewMockSlot(ctrl),
		clients:  clientMocks.NewMockClients(ctrl),
		notifier: notifierMocks.NewMockNotifier(ctrl),
	}

	f.svc = service.New(
		f.repo,
		&fakeTransactor{repo: f.repo},
		f.calendar,
		f.catalog,
		f.slots,
		f.clients,
		f.notifier,
		model.NewRules(&configDefaults),
		f.clock.Now,
		otelMocks.NewOtel(),
	)

	return f
}

// openStudio wires the collaborators for a request that passes every pre-transaction check.
func (f *fixture) openStudio() {
	f.calendar.EXPECT().IsOpen(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	f.catalog.EXPECT().Lookup(gomock.Any(), serviceID).
		Return(catalogModel.Service{ID: serviceID, Name: "Deep Tissue 60", DurationMinutes: 60, CleanupMinutes: 10, Active: true}, nil).
		AnyTimes()
	f.slots.EXPECT().IsOccupiable(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	f.slots.EXPECT().OccupyTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil).AnyTimes()
	f.clients.EXPECT().ResolveTx(gomock.Any(), gomock.Nil(), gomock.Any()).
		Return(clientModel.Client{ID: ownerClient, Name: "Ana"}, nil).
		AnyTimes()
	f.notifier.EXPECT().BookingConfirmed(gomock.Any(), gomock.Any()).AnyTimes()
}

func admit(start string) dto.AdmitRequest {
	return dto.AdmitRequest{ServiceID: serviceID, StartTime: start, Actor: clientActor}
}

func booked(t *testing.T, id, clientID, start string) model.Booking {
	t.Helper()

	begin := at(t, start)

	return model.Booking{
		ID:             id,
		ClientID:       clientID,
		ServiceID:      serviceID,
		StartTime:      begin,
		EndTime:        begin.Add(70 * time.Minute),
		Status:         model.StatusBooked,
		CleanupMinutes: 10,
	}
}

func TestAdmit_ComputesEndWithCleanup(t *testing.T) {
	f := newFixture(t)

	start := at(t, "2030-01-03T14:00")

	f.calendar.EXPECT().IsOpen(gomock.Any(), start).Return(true, nil)
	f.catalog.EXPECT().Lookup(gomock.Any(), serviceID).
		Return(catalogModel.Service{ID: serviceID, Name: "Deep Tissue 60", DurationMinutes: 60, CleanupMinutes: 10, Active: true}, nil)
	f.slots.EXPECT().IsOccupiable(gomock.Any(), start).Return(true, nil)
	f.clients.EXPECT().
		ResolveTx(gomock.Any(), gomock.Nil(), clientDto.ResolveRequest{UserID: clientUserID, Name: "Ana"}).
		Return(clientModel.Client{ID: ownerClient, Name: "Ana"}, nil)
	f.slots.EXPECT().OccupyTx(gomock.Any(), gomock.Nil(), start).Return(nil)

	var confirmed notifier.Event

	f.notifier.EXPECT().BookingConfirmed(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event notifier.Event) {
		confirmed = event
	})

	res, err := f.svc.Admit(context.Background(), admit("2030-01-03T14:00"))
	require.NoError(t, err)

	assert.Equal(t, "BOOKED", res.Status)
	assert.Equal(t, ownerClient, res.ClientID)

	stored := f.repo.row(res.ID)
	assert.True(t, stored.EndTime.Equal(at(t, "2030-01-03T15:10")))
	assert.Equal(t, 10, stored.CleanupMinutes)

	assert.Equal(t, timezone.Format(at(t, "2030-01-03T15:00"), constant.DateFormat), res.EndTime)
	assert.True(t, confirmed.EndTime.Equal(at(t, "2030-01-03T15:00")))
	assert.Equal(t, res.ID, confirmed.BookingID)
	assert.Equal(t, "Deep Tissue 60", confirmed.ServiceName)
}

func TestAdmit_OverlapInsideCleanupBuffer(t *testing.T) {
	f := newFixture(t, booked(t, "b1", otherClient, "2030-01-03T14:00"))
	f.openStudio()

	_, err := f.svc.Admit(context.Background(), admit("2030-01-03T15:05"))
	assert.ErrorIs(t, err, model.ErrOverlap)

	_, err = f.svc.Admit(context.Background(), admit("2030-01-03T15:10"))
	assert.NoError(t, err)
}

func TestAdmit_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		setup   func(f *fixture)
		wantErr error
		code    int
	}{
		{
			name:    "one minute inside the lead time",
			start:   "2030-01-01T11:59",
			wantErr: model.ErrTooSoon,
		},
		{
			name:    "in the past",
			start:   "2029-12-31T14:00",
			wantErr: model.ErrTooSoon,
		},
		{
			name:    "beyond the horizon",
			start:   "2030-04-02T10:01",
			wantErr: model.ErrTooFarAhead,
		},
		{
			name:  "closed weekday even with a free slot",
			start: "2030-01-07T14:00",
			setup: func(f *fixture) {
				f.calendar.EXPECT().IsOpen(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: model.ErrClosedDay,
		},
		{
			name:  "unknown service",
			start: "2030-01-03T14:00",
			setup: func(f *fixture) {
				f.calendar.EXPECT().IsOpen(gomock.Any(), gomock.Any()).Return(true, nil)
				f.catalog.EXPECT().Lookup(gomock.Any(), serviceID).Return(catalogModel.Service{}, catalogService.ErrServiceNotFound)
			},
			wantErr: catalogService.ErrServiceNotFound,
		},
		{
			name:  "slot blocked",
			start: "2030-01-03T14:00",
			setup: func(f *fixture) {
				f.calendar.EXPECT().IsOpen(gomock.Any(), gomock.Any()).Return(true, nil)
				f.catalog.EXPECT().Lookup(gomock.Any(), serviceID).Return(catalogModel.Service{ID: serviceID, DurationMinutes: 60, Active: true}, nil)
				f.slots.EXPECT().IsOccupiable(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: slotService.ErrSlotUnavailable,
		},
		{
			name:  "malformed start",
			start: "tomorrow",
			code:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.svc.Admit(context.Background(), admit(tt.start))
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			if tt.code != 0 {
				assert.Equal(t, tt.code, failure.GetCode(err))
			}

			assert.Empty(t, f.repo.booked())
		})
	}
}

func TestAdmit_ExactlyAtLeadTimeAndHorizon(t *testing.T) {
	f := newFixture(t)
	f.openStudio()

	_, err := f.svc.Admit(context.Background(), admit("2030-01-01T12:00"))
	require.NoError(t, err)

	_, err = f.svc.Admit(context.Background(), admit("2030-04-01T10:00"))
	require.NoError(t, err)
}

func TestAdmit_WalkInResolvedByPhone(t *testing.T) {
	f := newFixture(t)

	f.calendar.EXPECT().IsOpen(gomock.Any(), gomock.Any()).Return(true, nil)
	f.catalog.EXPECT().Lookup(gomock.Any(), serviceID).Return(catalogModel.Service{ID: serviceID, DurationMinutes: 60, CleanupMinutes: 10, Active: true}, nil)
	f.slots.EXPECT().IsOccupiable(gomock.Any(), gomock.Any()).Return(true, nil)
	f.slots.EXPECT().OccupyTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	f.clients.EXPECT().
		ResolveTx(gomock.Any(), gomock.Nil(), clientDto.ResolveRequest{Name: "Walk In", Phone: "+34600000000", ByPhone: true}).
		Return(clientModel.Client{ID: "walk-in"}, nil)
	f.notifier.EXPECT().BookingConfirmed(gomock.Any(), gomock.Any())

	req := admit("2030-01-03T14:00")
	req.Actor = adminActor
	req.GuestName = "Walk In"
	req.GuestPhone = "+34600000000"

	res, err := f.svc.Admit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "walk-in", res.ClientID)
	require.NotNil(t, res.GuestPhone)
	assert.Equal(t, "+34600000000", *res.GuestPhone)
}

func TestAdmit_ClientGuestPhoneKeepsBookingWithCaller(t *testing.T) {
	f := newFixture(t)

	f.calendar.EXPECT().IsOpen(gomock.Any(), gomock.Any()).Return(true, nil)
	f.catalog.EXPECT().Lookup(gomock.Any(), serviceID).Return(catalogModel.Service{ID: serviceID, DurationMinutes: 60, CleanupMinutes: 10, Active: true}, nil)
	f.slots.EXPECT().IsOccupiable(gomock.Any(), gomock.Any()).Return(true, nil)
	f.slots.EXPECT().OccupyTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	f.clients.EXPECT().
		ResolveTx(gomock.Any(), gomock.Nil(), clientDto.ResolveRequest{UserID: clientUserID, Name: "Ana"}).
		Return(clientModel.Client{ID: ownerClient, Name: "Ana"}, nil)
	f.notifier.EXPECT().BookingConfirmed(gomock.Any(), gomock.Any())

	req := admit("2030-01-03T14:00")
	req.GuestName = "Someone Else"
	req.GuestPhone = "+34600000000"

	res, err := f.svc.Admit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ownerClient, res.ClientID)
	assert.Nil(t, res.GuestPhone)
	assert.Nil(t, res.GuestName)

	f.clients.EXPECT().FindByUserID(gomock.Any(), clientUserID).Return(clientModel.Client{ID: ownerClient}, nil)
	f.slots.EXPECT().ReleaseTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().BookingCanceled(gomock.Any(), gomock.Any())

	_, err = f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: res.ID, Actor: clientActor})
	assert.NoError(t, err)
}

func TestAdmit_RollsBackWhenOccupyFails(t *testing.T) {
	f := newFixture(t)

	f.calendar.EXPECT().IsOpen(gomock.Any(), gomock.Any()).Return(true, nil)
	f.catalog.EXPECT().Lookup(gomock.Any(), serviceID).Return(catalogModel.Service{ID: serviceID, DurationMinutes: 60, Active: true}, nil)
	f.slots.EXPECT().IsOccupiable(gomock.Any(), gomock.Any()).Return(true, nil)
	f.clients.EXPECT().ResolveTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(clientModel.Client{ID: ownerClient}, nil)
	f.slots.EXPECT().OccupyTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(slotService.ErrSlotUnavailable)

	_, err := f.svc.Admit(context.Background(), admit("2030-01-03T14:00"))
	assert.ErrorIs(t, err, slotService.ErrSlotUnavailable)
	assert.Empty(t, f.repo.booked())
}

func TestAdmit_ConstraintViolationMapsToOverlap(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockBooking(ctrl)
	calendar := calendarMocks.NewMockCalendar(ctrl)
	catalog := catalogMocks.NewMockCatalog(ctrl)
	slots := slotMocks.NewMockSlot(ctrl)
	clients := clientMocks.NewMockClients(ctrl)
	notify := notifierMocks.NewMockNotifier(ctrl)

	now := at(t, "2030-01-01T10:00")

	svc := service.New(repo, &fakeTransactor{}, calendar, catalog, slots, clients, notify,
		model.NewRules(&configDefaults), func() time.Time { return now }, otelMocks.NewOtel())

	calendar.EXPECT().IsOpen(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	catalog.EXPECT().Lookup(gomock.Any(), serviceID).Return(catalogModel.Service{ID: serviceID, DurationMinutes: 60, Active: true}, nil).Times(2)
	slots.EXPECT().IsOccupiable(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	repo.EXPECT().FindOverlappingTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	clients.EXPECT().ResolveTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(clientModel.Client{ID: ownerClient}, nil).Times(2)

	gomock.InOrder(
		repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation}),
		repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(errors.New("connection reset")),
	)

	_, err := svc.Admit(context.Background(), admit("2030-01-03T14:00"))
	assert.ErrorIs(t, err, model.ErrOverlap)

	_, err = svc.Admit(context.Background(), admit("2030-01-03T14:00"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrOverlap)
}

func TestAdmit_ParallelRequestsAdmitExactlyOne(t *testing.T) {
	const attempts = 16

	f := newFixture(t)
	f.openStudio()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.svc.Admit(context.Background(), admit("2030-01-03T14:00"))

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				successes++
			case errors.Is(err, model.ErrOverlap), errors.Is(err, slotService.ErrSlotUnavailable):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, rejected)
	assert.Len(t, f.repo.booked(), 1)
}

func TestCancel_ClientWindow(t *testing.T) {
	tests := []struct {
		name    string
		now     string
		wantErr error
	}{
		{name: "exactly twelve hours before", now: "2030-01-03T02:00"},
		{name: "a day before", now: "2030-01-02T14:00"},
		{name: "one minute inside the window", now: "2030-01-03T02:01", wantErr: model.ErrWithinCancellationWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, booked(t, "b1", ownerClient, "2030-01-03T14:00"))
			f.clock.Set(at(t, tt.now))

			f.clients.EXPECT().FindByUserID(gomock.Any(), clientUserID).Return(clientModel.Client{ID: ownerClient}, nil)

			if tt.wantErr == nil {
				f.slots.EXPECT().ReleaseTx(gomock.Any(), gomock.Nil(), at(t, "2030-01-03T14:00")).Return(nil)
				f.notifier.EXPECT().BookingCanceled(gomock.Any(), gomock.Any())
			}

			res, err := f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: "b1", Actor: clientActor})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, model.StatusBooked, f.repo.row("b1").Status)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "CANCELED", res.Status)
			assert.Equal(t, model.StatusCanceled, f.repo.row("b1").Status)
		})
	}
}

func TestCancel_ClientMustOwnBooking(t *testing.T) {
	f := newFixture(t, booked(t, "b1", otherClient, "2030-01-03T14:00"))

	f.clients.EXPECT().FindByUserID(gomock.Any(), clientUserID).Return(clientModel.Client{ID: ownerClient}, nil)

	_, err := f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: "b1", Actor: clientActor})
	assert.ErrorIs(t, err, model.ErrNotBookingOwner)
	assert.Equal(t, 403, failure.GetCode(err))
}

func TestCancel_Admin(t *testing.T) {
	f := newFixture(t, booked(t, "b1", ownerClient, "2030-01-03T14:00"))
	f.clock.Set(at(t, "2030-01-03T13:30"))

	_, err := f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: "b1", Reason: "  ", Actor: adminActor})
	assert.ErrorIs(t, err, model.ErrReasonRequired)

	f.slots.EXPECT().ReleaseTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)

	var canceled notifier.Event

	f.notifier.EXPECT().BookingCanceled(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event notifier.Event) {
		canceled = event
	})

	res, err := f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: "b1", Reason: "duplicate booking", Actor: adminActor})
	require.NoError(t, err)
	require.NotNil(t, res.CancellationReason)
	assert.Equal(t, "duplicate booking", *res.CancellationReason)
	assert.Equal(t, "duplicate booking", canceled.Reason)
	assert.True(t, canceled.EndTime.Equal(at(t, "2030-01-03T15:00")))
	assert.Empty(t, canceled.ClientName)

	phone := "+34600000001"
	f.clients.EXPECT().Get(gomock.Any(), ownerClient).Return(clientModel.Client{ID: ownerClient, Name: "Ana", Phone: &phone}, nil)

	require.NoError(t, canceled.Resolve(context.Background()))
	assert.Equal(t, "Ana", canceled.ClientName)
	assert.Equal(t, phone, canceled.ClientPhone)
	assert.NoError(t, canceled.Resolve(context.Background()))

	_, err = f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: "b1", Reason: "again", Actor: adminActor})
	assert.ErrorIs(t, err, model.ErrInvalidStateTransition)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: "missing", Reason: "x", Actor: adminActor})
	assert.ErrorIs(t, err, model.ErrBookingNotFound)
}

func TestCancel_ToleratesMissingSlot(t *testing.T) {
	f := newFixture(t, booked(t, "b1", ownerClient, "2030-01-03T14:00"))

	f.slots.EXPECT().ReleaseTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(slotService.ErrSlotNotFound)
	f.notifier.EXPECT().BookingCanceled(gomock.Any(), gomock.Any())

	_, err := f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: "b1", Reason: "closed for repairs", Actor: adminActor})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCanceled, f.repo.row("b1").Status)
}

func TestCancel_FreesIntervalForNewAdmission(t *testing.T) {
	f := newFixture(t, booked(t, "b1", ownerClient, "2030-01-03T14:00"))
	f.openStudio()

	_, err := f.svc.Admit(context.Background(), admit("2030-01-03T14:30"))
	require.ErrorIs(t, err, model.ErrOverlap)

	f.slots.EXPECT().ReleaseTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().BookingCanceled(gomock.Any(), gomock.Any())

	_, err = f.svc.Cancel(context.Background(), dto.CancelRequest{BookingID: "b1", Reason: "moved", Actor: adminActor})
	require.NoError(t, err)

	_, err = f.svc.Admit(context.Background(), admit("2030-01-03T14:30"))
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		initial model.Status
		next    string
		setup   func(f *fixture)
		want    model.Status
		wantErr error
		code    int
	}{
		{name: "booked to completed", initial: model.StatusBooked, next: "COMPLETED", want: model.StatusCompleted},
		{name: "booked to no show", initial: model.StatusBooked, next: "NO_SHOW", want: model.StatusNoShow},
		{
			name:    "booked to canceled releases slot",
			initial: model.StatusBooked,
			next:    "CANCELED",
			setup: func(f *fixture) {
				f.slots.EXPECT().ReleaseTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
				f.notifier.EXPECT().BookingCanceled(gomock.Any(), gomock.Any())
			},
			want: model.StatusCanceled,
		},
		{name: "canceled to completed", initial: model.StatusCanceled, next: "COMPLETED", wantErr: model.ErrInvalidStateTransition},
		{name: "completed to no show", initial: model.StatusCompleted, next: "NO_SHOW", wantErr: model.ErrInvalidStateTransition},
		{name: "back to booked", initial: model.StatusBooked, next: "BOOKED", wantErr: model.ErrInvalidStateTransition},
		{name: "unknown status", initial: model.StatusBooked, next: "PENDING", code: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			initial := booked(t, "b1", ownerClient, "2030-01-03T14:00")
			initial.Status = tt.initial

			f := newFixture(t, initial)

			if tt.setup != nil {
				tt.setup(f)
			}

			res, err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: tt.next, Actor: staffActor}, "b1")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.initial, f.repo.row("b1").Status)
			case tt.code != 0:
				assert.Equal(t, tt.code, failure.GetCode(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want.String(), res.Status)
				assert.Equal(t, tt.want, f.repo.row("b1").Status)
			}
		})
	}
}

func TestUpdateStatus_AdminCancelReason(t *testing.T) {
	f := newFixture(t, booked(t, "b1", ownerClient, "2030-01-01T11:00"))

	f.slots.EXPECT().ReleaseTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().BookingCanceled(gomock.Any(), gomock.Any())

	_, err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: "CANCELED", Actor: adminActor}, "b1")
	require.NoError(t, err)

	reason := f.repo.row("b1").CancellationReason
	require.NotNil(t, reason)
	assert.Equal(t, "Cancelled by admin", *reason)
}

func TestGet_ScopedToOwner(t *testing.T) {
	f := newFixture(t, booked(t, "b1", ownerClient, "2030-01-03T14:00"), booked(t, "b2", otherClient, "2030-01-04T14:00"))

	f.clients.EXPECT().FindByUserID(gomock.Any(), clientUserID).Return(clientModel.Client{ID: ownerClient}, nil).Times(2)

	res, err := f.svc.Get(context.Background(), "b1", clientActor)
	require.NoError(t, err)
	assert.Equal(t, "b1", res.ID)

	_, err = f.svc.Get(context.Background(), "b2", clientActor)
	assert.ErrorIs(t, err, model.ErrBookingNotFound)

	res, err = f.svc.Get(context.Background(), "b2", staffActor)
	require.NoError(t, err)
	assert.Equal(t, otherClient, res.ClientID)

	_, err = f.svc.Get(context.Background(), "missing", staffActor)
	assert.ErrorIs(t, err, model.ErrBookingNotFound)
}

func TestGetAll(t *testing.T) {
	canceled := booked(t, "b3", ownerClient, "2030-01-05T10:00")
	canceled.Status = model.StatusCanceled

	f := newFixture(t,
		booked(t, "b1", ownerClient, "2030-01-03T14:00"),
		booked(t, "b2", otherClient, "2030-01-04T14:00"),
		canceled,
	)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.clients.EXPECT().FindByUserID(gomock.Any(), clientUserID).Return(clientModel.Client{ID: ownerClient}, nil).Times(2)

	own, err := f.svc.GetAll(context.Background(), params, dto.ListRequest{}, clientActor)
	require.NoError(t, err)
	assert.Equal(t, 2, own.TotalData)

	ownBooked, err := f.svc.GetAll(context.Background(), params, dto.ListRequest{Status: "BOOKED"}, clientActor)
	require.NoError(t, err)
	require.Len(t, ownBooked.Bookings, 1)
	assert.Equal(t, "b1", ownBooked.Bookings[0].ID)

	all, err := f.svc.GetAll(context.Background(), params, dto.ListRequest{}, staffActor)
	require.NoError(t, err)
	assert.Equal(t, 3, all.TotalData)
	assert.Equal(t, 1, all.TotalPage)

	f.clients.EXPECT().FindByUserID(gomock.Any(), "stranger").Return(clientModel.Client{}, nil)

	none, err := f.svc.GetAll(context.Background(), params, dto.ListRequest{}, dto.Actor{UserID: "stranger", Role: constant.RoleClient})
	require.NoError(t, err)
	assert.Empty(t, none.Bookings)

	_, err = f.svc.GetAll(context.Background(), params, dto.ListRequest{StartDate: "03/01/2030"}, staffActor)
	assert.Equal(t, 400, failure.GetCode(err))
}
