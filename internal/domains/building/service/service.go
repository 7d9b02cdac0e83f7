package service

import (
	"context"
	"fmt"

	"loft/config"
	"loft/infras/otel"
	"loft/internal/domains/building/model"
	"loft/internal/domains/building/model/dto"
	"loft/internal/domains/building/repository"
	"loft/shared"
	"loft/shared/cache"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
	"loft/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBuilding    = "building:get"
	cacheGetAllBuilding = "building:gets"
	cacheCountBuilding  = "building:count"
)

type Building interface {
	Create(ctx context.Context, req dto.CreateBuildingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBuildingsResponse, error)
	Get(ctx context.Context, id string) (dto.BuildingResponse, error)
	Update(ctx context.Context, req dto.UpdateBuildingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Building
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Building, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Building {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBuildingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(actor)); err != nil {
		log.Error().Err(err).Msg("failed to create building")

		return fmt.Errorf("failed to create building: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBuilding)
		shared.InvalidateCaches(c, s.cache, cacheCountBuilding)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBuildingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBuilding, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count buildings")

		return res, fmt.Errorf("failed to count buildings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get buildings")

		return res, fmt.Errorf("failed to get buildings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save buildings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BuildingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBuilding, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	building, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get building")

		return res, fmt.Errorf("failed to get building: %w", err)
	}

	if building.ID == constant.Empty {
		return res, failure.NotFound("building not found") // nolint:wrapcheck
	}

	res.FromModel(building)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save building to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBuildingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check building existence")

		return fmt.Errorf("failed to check building existence: %w", err)
	}

	if !exist {
		return failure.NotFound("building not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update building")

		return fmt.Errorf("failed to update building: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete unregisters the building; rows are never removed.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check building existence")

		return fmt.Errorf("failed to check building existence: %w", err)
	}

	if !exist {
		return failure.NotFound("building not found") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        constant.StatusUnregister,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to unregister building")

		return fmt.Errorf("failed to unregister building: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBuilding, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete building cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBuilding)
		shared.InvalidateCaches(c, s.cache, cacheCountBuilding)
	}()
}
