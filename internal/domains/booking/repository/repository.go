package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/booking/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	gRepo "studio/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	// FindOverlappingTx locks every BOOKED row whose [start_time, end_time) intersects [start, end).
	FindOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, start, end time.Time) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// OverlapFilter matches BOOKED bookings intersecting the half-open window [start, end).
func OverlapFilter(start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusBooked.String(), Operator: gDto.FilterOperatorEq},
			gDto.Filter{ArgName: "window_end", Field: model.FieldStartTime, Value: end, Operator: gDto.FilterOperatorLess},
			gDto.Filter{ArgName: "window_start", Field: model.FieldEndTime, Value: start, Operator: gDto.FilterOperatorGreater},
		},
	}
}

func (r *repositoryImpl) FindOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, start, end time.Time) (res []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".FindOverlappingTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = r.GetAllForUpdateTx(ctx, sqltx, OverlapFilter(start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return res, nil
}
