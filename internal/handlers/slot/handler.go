package slot

import (
	"net/http"

	"studio/infras/otel"
	"studio/internal/domains/slot/model/dto"
	"studio/internal/domains/slot/service"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/shared/timezone"
	"studio/shared/validator"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Slot
	otel    otel.Otel
}

func New(service service.Slot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/slots", handler.GetAvailableSlots)
		routerGroup.Get("/range", handler.GetAvailabilityRange)
		routerGroup.Get("/check", handler.CheckSlot)
	})

	router.Route("/slots", func(routerGroup chi.Router) {
		routerGroup.Post("/block", handler.Block)
		routerGroup.Post("/unblock", handler.Unblock)
	})
}

// GetAvailableSlots
// @Summary Free slots of a day
// @Tags Availability
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailableSlotsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/availability/slots [get]
func (handler *Handler) GetAvailableSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSlots")
	defer scope.End()

	value := request.URL.Query().Get(constant.RequestParamDate)

	if err := validator.ValidateVar(value, "required,day"); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	date, err := timezone.Parse(constant.DayFormat, value)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	slots, err := handler.service.ListAvailable(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", value).Msg("failed to list available slots")

		response.WithError(writer, err)

		return
	}

	res := dto.AvailableSlotsResponse{}
	res.FromTimes(date, slots)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAvailabilityRange
// @Summary Free slots per day over a range
// @Tags Availability
// @Produce json
// @Param start_date query string true "First day (YYYY-MM-DD)"
// @Param end_date query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Router /v1/availability/range [get]
func (handler *Handler) GetAvailabilityRange(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailabilityRange")
	defer scope.End()

	req := dto.AvailabilityRequest{
		StartDate: request.URL.Query().Get(constant.RequestParamStartDate),
		EndDate:   request.URL.Query().Get(constant.RequestParamEndDate),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Availability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability range")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckSlot
// @Summary Whether an instant can still be booked
// @Tags Availability
// @Produce json
// @Param date_time query string true "Instant (RFC3339 or YYYY-MM-DDTHH:MM)"
// @Success 200 {object} response.Data[dto.CheckSlotResponse]
// @Failure 400 {object} response.Error
// @Router /v1/availability/check [get]
func (handler *Handler) CheckSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckSlot")
	defer scope.End()

	value := request.URL.Query().Get(constant.RequestParamDateTime)

	if err := validator.ValidateVar(value, "required,datetime_local"); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	at, err := dto.ParseInstant(value)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	available, err := handler.service.IsOccupiable(ctx, at)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date_time", value).Msg("failed to check slot")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.CheckSlotResponse{
		DateTime:  timezone.Format(at, constant.DateFormat),
		Available: available,
	})
}

// Block
// @Summary Block a slot
// @Tags Slot
// @Accept json
// @Produce json
// @Param request body dto.BlockSlotRequest true "Block Slot Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/slots/block [post]
// @Security BearerAuth
func (handler *Handler) Block(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Block")
	defer scope.End()

	req := dto.BlockSlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Block(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date_time", req.DateTime).Msg("failed to block slot")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Slot blocked successfully")
}

// Unblock
// @Summary Unblock a slot
// @Tags Slot
// @Accept json
// @Produce json
// @Param request body dto.UnblockSlotRequest true "Unblock Slot Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/slots/unblock [post]
// @Security BearerAuth
func (handler *Handler) Unblock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Unblock")
	defer scope.End()

	req := dto.UnblockSlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Unblock(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date_time", req.DateTime).Msg("failed to unblock slot")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Slot unblocked successfully")
}
