package service

import (
	"context"
	"fmt"

	"loft/config"
	"loft/infras/otel"
	"loft/internal/domains/member/model"
	"loft/internal/domains/member/model/dto"
	"loft/internal/domains/member/repository"
	"loft/shared"
	"loft/shared/cache"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
	"loft/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetMember    = "member:get"
	cacheGetAllMember = "member:gets"
	cacheCountMember  = "member:count"
)

type Member interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMembersResponse, error)
	Get(ctx context.Context, id string) (dto.MemberResponse, error)
	Update(ctx context.Context, req dto.UpdateMemberRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Member
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Member, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Member {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMembersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMember, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count members")

		return res, fmt.Errorf("failed to count members: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get members")

		return res, fmt.Errorf("failed to get members: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save members to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetMember, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	member, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get member")

		return res, fmt.Errorf("failed to get member: %w", err)
	}

	if member.ID == constant.Empty {
		return res, failure.NotFound("member not found") // nolint:wrapcheck
	}

	res.FromModel(member)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save member to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMemberRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check member existence")

		return fmt.Errorf("failed to check member existence: %w", err)
	}

	if !exist {
		return failure.NotFound("member not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update member")

		return fmt.Errorf("failed to update member: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete unregisters the member; rows are never removed.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check member existence")

		return fmt.Errorf("failed to check member existence: %w", err)
	}

	if !exist {
		return failure.NotFound("member not found") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        constant.StatusUnregister,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to unregister member")

		return fmt.Errorf("failed to unregister member: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetMember, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete member cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllMember)
		shared.InvalidateCaches(c, s.cache, cacheCountMember)
	}()
}
