package calendar

import (
	"net/http"
	"strconv"

	"studio/infras/otel"
	"studio/internal/domains/calendar/model/dto"
	"studio/internal/domains/calendar/service"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/shared/validator"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/working-days", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetWorkingDays)
		routerGroup.Put("/{day}", handler.UpdateWorkingDay)
	})
}

// GetWorkingDays
// @Summary Weekly opening hours
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Data[dto.GetWorkingDaysResponse]
// @Router /v1/working-days [get]
func (handler *Handler) GetWorkingDays(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWorkingDays")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get working days")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateWorkingDay
// @Summary Change opening hours of a weekday
// @Tags Calendar
// @Accept json
// @Produce json
// @Param day path int true "ISO weekday, 1 is Monday and 7 Sunday"
// @Param request body dto.UpdateWorkingDayRequest true "Update Working Day Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/working-days/{day} [put]
// @Security BearerAuth
func (handler *Handler) UpdateWorkingDay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateWorkingDay")
	defer scope.End()

	day, err := strconv.Atoi(chi.URLParam(request, constant.RequestParamDay))
	if err != nil || day < 1 || day > 7 {
		err = failure.BadRequestFromString("day must be between 1 and 7")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	req := dto.UpdateWorkingDayRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, day); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("day", day).Msg("failed to update working day")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Working day updated successfully")
}
