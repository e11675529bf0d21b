package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/client/model"
	gDto "studio/shared/dto"
	gRepo "studio/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Client interface {
	InsertBulkIgnoreConflictTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Client) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Client, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Client, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Client]
}

func New(db *postgres.Connection, otel otel.Otel) Client {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Client](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
