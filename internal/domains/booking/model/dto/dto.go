package dto

import (
	"strings"
	"time"

	"studio/internal/domains/booking/model"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as read from the request context.
type Actor struct {
	UserID string
	Name   string
	Phone  string
	Role   string
}

// IsAdmin grants the cancellation override.
func (a Actor) IsAdmin() bool {
	return a.Role == constant.RoleAdmin
}

// IsStaff can read every booking and move statuses.
func (a Actor) IsStaff() bool {
	return a.Role == constant.RoleAdmin || a.Role == constant.RoleSubAdmin
}

type AdmitRequest struct {
	ServiceID  string `json:"service_id"  validate:"required"`
	StartTime  string `json:"start_time"  validate:"required,datetime_local"`
	GuestName  string `json:"guest_name"  validate:"omitempty,max=100"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=20"`
	Actor      Actor  `json:"-"`
}

// ByPhone reports whether staff is booking for a walk-in identified by phone.
// Guest fields sent by anyone else are ignored and the booking belongs to the caller.
func (a *AdmitRequest) ByPhone() bool {
	return a.Actor.IsStaff() && strings.TrimSpace(a.GuestPhone) != ""
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}

// ToModel books [start, start+session+cleanup) for the client.
func (a *AdmitRequest) ToModel(clientID string, start time.Time, session, cleanup time.Duration, now time.Time) model.Booking {
	booking := model.Booking{
		ID:             uuid.NewString(),
		ClientID:       clientID,
		ServiceID:      a.ServiceID,
		StartTime:      start,
		EndTime:        start.Add(session + cleanup),
		Status:         model.StatusBooked,
		CleanupMinutes: int(cleanup / time.Minute),
		Metadata:       gModel.NewMetadata(a.Actor.UserID, now),
	}

	if a.ByPhone() {
		booking.GuestName = optional(a.GuestName)
		booking.GuestPhone = optional(a.GuestPhone)
	}

	return booking
}

type CancelRequest struct {
	BookingID string `json:"-"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
	Actor     Actor  `json:"-"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=BOOKED CANCELED COMPLETED NO_SHOW"`
	Actor  Actor  `json:"-"`
}

type ListRequest struct {
	Status    string `json:"status"     validate:"omitempty,oneof=BOOKED CANCELED COMPLETED NO_SHOW"`
	StartDate string `json:"start_date" validate:"omitempty,day"`
	EndDate   string `json:"end_date"   validate:"omitempty,day"`
}

// Filter narrows the listing; from and to are whole days in the studio timezone, clientID empty means every client.
func (l *ListRequest) Filter(clientID string, from, to *time.Time) gDto.FilterGroup {
	filters := []any{}

	if clientID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldClientID, Value: clientID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if l.Status != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: l.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if from != nil {
		filters = append(filters, gDto.Filter{ArgName: "range_from", Field: model.FieldStartTime, Value: *from, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if to != nil {
		filters = append(filters, gDto.Filter{ArgName: "range_to", Field: model.FieldStartTime, Value: *to, Operator: gDto.FilterOperatorLess, Table: model.TableName})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

type BookingResponse struct {
	ID                 string  `json:"id"`
	ClientID           string  `json:"client_id"`
	ServiceID          string  `json:"service_id"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	Status             string  `json:"status"`
	GuestName          *string `json:"guest_name,omitempty"`
	GuestPhone         *string `json:"guest_phone,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ClientID = model.ClientID
	r.ServiceID = model.ServiceID
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.SessionEnd(), constant.DateFormat)
	r.Status = model.Status.String()
	r.GuestName = model.GuestName
	r.GuestPhone = model.GuestPhone
	r.CancellationReason = model.CancellationReason
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
