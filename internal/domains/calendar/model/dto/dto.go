package dto

import (
	"errors"

	"studio/internal/domains/calendar/model"
	gDto "studio/shared/dto"
)

var errOpenAfterClose = errors.New("open_time must be before close_time")

type UpdateWorkingDayRequest struct {
	IsActive  *bool  `db:"is_active"  json:"is_active"  validate:"omitempty"`
	OpenTime  string `db:"open_time"  json:"open_time"  validate:"omitempty,clock"`
	CloseTime string `db:"close_time" json:"close_time" validate:"omitempty,clock"`
}

// Validate checks the resulting window once the request is merged over current.
func (u UpdateWorkingDayRequest) Validate(current model.WorkingDay) error {
	open, closing := current.OpenTime, current.CloseTime
	if u.OpenTime != "" {
		open = u.OpenTime
	}

	if u.CloseTime != "" {
		closing = u.CloseTime
	}

	openAt, err := model.ParseClock(open)
	if err != nil {
		return err
	}

	closeAt, err := model.ParseClock(closing)
	if err != nil {
		return err
	}

	if !openAt.Before(closeAt) {
		return errOpenAfterClose
	}

	return nil
}

type WorkingDayResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	IsActive  bool   `json:"is_active"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	gDto.Metadata
}

func (w *WorkingDayResponse) FromModel(model model.WorkingDay) {
	w.DayOfWeek = model.DayOfWeek
	w.IsActive = model.IsActive
	w.OpenTime = model.OpenTime
	w.CloseTime = model.CloseTime
	w.Metadata.FromModel(model.Metadata)
}

type GetWorkingDaysResponse struct {
	WorkingDays []WorkingDayResponse `json:"working_days"`
}

func (g *GetWorkingDaysResponse) FromModels(models []model.WorkingDay) {
	g.WorkingDays = make([]WorkingDayResponse, len(models))
	for i, mod := range models {
		g.WorkingDays[i].FromModel(mod)
	}
}
