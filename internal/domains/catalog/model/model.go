package model

import (
	"time"

	"studio/shared/model"
)

const (
	TableName  = "massage_services"
	EntityName = "massage_service"

	FieldID              = "id"
	FieldName            = "name"
	FieldCategory        = "category"
	FieldDurationMinutes = "duration_minutes"
	FieldCleanupMinutes  = "cleanup_minutes"
	FieldPrice           = "price"
	FieldActive          = "active"
)

const (
	CategoryDeepTissue  = "DEEP_TISSUE"
	CategoryRelaxing    = "RELAXING"
	CategorySpecialized = "SPECIALIZED"
)

type Service struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Category        string `db:"category"`
	DurationMinutes int    `db:"duration_minutes"`
	CleanupMinutes  int    `db:"cleanup_minutes"`
	Price           string `db:"price"`
	Description     string `db:"description"`
	Active          bool   `db:"active"`
	model.Metadata
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

func (s Service) Cleanup() time.Duration {
	return time.Duration(s.CleanupMinutes) * time.Minute
}

// TotalDuration is how long the room stays taken: the session plus its cleanup buffer.
func (s Service) TotalDuration() time.Duration {
	return s.Duration() + s.Cleanup()
}
