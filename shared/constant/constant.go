package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserName  contextKey = "user_name"
	ContextKeyUserPhone contextKey = "user_phone"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleAdmin    = "admin"
	RoleSubAdmin = "subadmin"
	RoleClient   = "client"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID        = "id"
	RequestParamDay       = "day"
	RequestParamDate      = "date"
	RequestParamDateTime  = "date_time"
	RequestParamStartDate = "start_date"
	RequestParamEndDate   = "end_date"
	RequestParamStatus    = "status"
	RequestParamReason    = "reason"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeInvalidText          = "22P02"
	PqErrorCodeUniqueViolation      = "23505"
	PqErrorCodeExclusionViolation   = "23P01"
	PqErrorCodeSerializationFailure = "40001"
)

const (
	DateFormat        = time.RFC3339
	DayFormat         = "2006-01-02"
	LocalMinuteFormat = "2006-01-02T15:04"
	ClockFormat       = "15:04"
	ClockSecFormat    = "15:04:05"
)

// Fallbacks applied when the corresponding BOOKING_* value is unset or invalid.
const (
	DefaultMinLeadTime        = 2 * time.Hour
	DefaultMaxAdvance         = 90 * 24 * time.Hour
	DefaultCancellationWindow = 12 * time.Hour
	DefaultSlotGranularity    = 30 * time.Minute
	DefaultHorizonDays        = 90
	DefaultMaxRangeDays       = 92
	DefaultNotificationQueue  = 100
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelSchedulerScopeName  = "scheduler"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderUserAgent     = "User-Agent"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderAPIKey        = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const ServerEnvDevelopment = "development"

const (
	Asterix = "*"
	Empty   = ""
)
