package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/calendar/model"
	gDto "studio/shared/dto"
	gRepo "studio/shared/repository"
)

type WorkingDay interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.WorkingDay, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.WorkingDay, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.WorkingDay]
}

func New(db *postgres.Connection, otel otel.Otel) WorkingDay {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.WorkingDay](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
