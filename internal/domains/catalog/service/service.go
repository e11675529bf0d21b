package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/catalog/model"
	"studio/internal/domains/catalog/model/dto"
	"studio/internal/domains/catalog/repository"
	"studio/shared"
	"studio/shared/cache"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetService     = "catalog:get"
	cacheGetAllServices = "catalog:gets"
)

var ErrServiceNotFound = &failure.Failure{Code: http.StatusNotFound, Message: "service not found"}

type Catalog interface {
	// Lookup returns an active service or ErrServiceNotFound.
	Lookup(ctx context.Context, id string) (model.Service, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
}

type serviceImpl struct {
	repo  repository.Service
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Service, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Lookup(ctx context.Context, id string) (res model.Service, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Lookup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil && res.ID != constant.Empty {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for service")

		return active(res)
	}

	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if res.ID == constant.Empty {
		return res, ErrServiceNotFound
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return active(res)
}

func active(service model.Service) (model.Service, error) {
	if !service.Active {
		return service, ErrServiceNotFound
	}

	return service, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	service, err := s.Lookup(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(service)

	return res, nil
}

// GetAll lists active services only.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: append([]any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		}, filter.Filters...),
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllServices, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}
