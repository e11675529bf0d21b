package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"studio/infras/otel"
	"studio/internal/domains/client/model"
	"studio/internal/domains/client/model/dto"
	"studio/internal/domains/client/repository"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	ErrClientNotFound   = &failure.Failure{Code: http.StatusNotFound, Message: "client not found"}
	ErrClientIdentity   = &failure.Failure{Code: http.StatusBadRequest, Message: "a phone number or a signed-in user is required"}
	errClientUnresolved = errors.New("client could not be resolved")
)

type Clients interface {
	// ResolveTx finds or creates the client inside tx, so a rolled back admission leaves no row behind.
	ResolveTx(ctx context.Context, tx *sqlx.Tx, req dto.ResolveRequest) (model.Client, error)
	FindByUserID(ctx context.Context, userID string) (model.Client, error)
	Get(ctx context.Context, id string) (model.Client, error)
}

type serviceImpl struct {
	repo repository.Client
	otel otel.Otel
}

func New(repo repository.Client, otel otel.Otel) Clients {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func filterBy(field, value string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq},
		},
	}
}

func (s *serviceImpl) ResolveTx(ctx context.Context, tx *sqlx.Tx, req dto.ResolveRequest) (res model.Client, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.ResolveTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	candidate := req.ToModel(actor)

	var filter gDto.FilterGroup

	switch {
	case req.ByPhone && candidate.Phone != nil:
		filter = filterBy(model.FieldPhone, *candidate.Phone)
	case !req.ByPhone && candidate.UserID != nil:
		filter = filterBy(model.FieldUserID, *candidate.UserID)
	default:
		return res, ErrClientIdentity
	}

	res, err = s.insertAndGet(ctx, tx, candidate, filter)
	if err != nil {
		return res, err
	}

	// The phone may already belong to a walk-in record; link the login without it.
	if res.ID == constant.Empty && !req.ByPhone && candidate.Phone != nil {
		candidate.Phone = nil

		res, err = s.insertAndGet(ctx, tx, candidate, filter)
		if err != nil {
			return res, err
		}
	}

	if res.ID == constant.Empty {
		return res, errClientUnresolved
	}

	return res, nil
}

func (s *serviceImpl) insertAndGet(ctx context.Context, tx *sqlx.Tx, candidate model.Client, filter gDto.FilterGroup) (model.Client, error) {
	if _, err := s.repo.InsertBulkIgnoreConflictTx(ctx, tx, []model.Client{candidate}); err != nil {
		log.Error().Err(err).Msg("failed to insert client")

		return model.Client{}, fmt.Errorf("failed to insert client: %w", err)
	}

	res, err := s.repo.GetTx(ctx, tx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get client: %w", err)
	}

	return res, nil
}

// FindByUserID returns the zero Client when the user never booked.
func (s *serviceImpl) FindByUserID(ctx context.Context, userID string) (res model.Client, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.FindByUserID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, filterBy(model.FieldUserID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get client by user")

		return res, fmt.Errorf("failed to get client: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res model.Client, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get client: %w", err)
	}

	if res.ID == constant.Empty {
		return res, ErrClientNotFound
	}

	return res, nil
}
