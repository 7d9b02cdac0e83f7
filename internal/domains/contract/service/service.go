package service

import (
	"context"
	"fmt"

	"loft/config"
	"loft/infras/kafka"
	"loft/infras/otel"
	"loft/internal/domains/contract/model"
	"loft/internal/domains/contract/model/dto"
	"loft/internal/domains/contract/repository"
	roomModel "loft/internal/domains/room/model"
	roomRepository "loft/internal/domains/room/repository"
	tenantModel "loft/internal/domains/tenant/model"
	tenantRepository "loft/internal/domains/tenant/repository"
	"loft/shared"
	"loft/shared/cache"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
	"loft/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetContract    = "contract:get"
	cacheGetAllContract = "contract:gets"
	cacheCountContract  = "contract:count"
)

type Contract interface {
	Create(ctx context.Context, req dto.CreateContractRequest, roomID string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetContractsResponse, error)
	Get(ctx context.Context, id string) (dto.ContractResponse, error)
	Activate(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Contract
	roomRepo   roomRepository.Room
	tenantRepo tenantRepository.Tenant
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	kafka      kafka.Client
}

func New(
	repo repository.Contract,
	roomRepo roomRepository.Room,
	tenantRepo tenantRepository.Tenant,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Contract {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		tenantRepo: tenantRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		kafka:      kafka,
	}
}

// InProgressByRoomFilter matches every active contract of the given room.
func InProgressByRoomFilter(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldContractStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.ContractStatusInProgress,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContractRequest, roomID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)

	roomExist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !roomExist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	tenantExist, err := s.tenantRepo.Exist(ctx, shared.FilterByID(req.TenantID, tenantModel.FieldID, tenantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check tenant existence")

		return fmt.Errorf("failed to check tenant existence: %w", err)
	}

	if !tenantExist {
		return failure.NotFound("tenant not found") // nolint:wrapcheck
	}

	contract, err := req.ToModel(roomID, actor)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse contract dates")

		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if contract.EndDate.Before(contract.StartDate) {
		return failure.BadRequestFromString("end date must not precede start date") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, contract); err != nil {
		log.Error().Err(err).Msg("failed to create contract")

		return fmt.Errorf("failed to create contract: %w", err)
	}

	s.invalidate(ctx, contract.ID)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetContractsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllContract, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contracts")

		return res, fmt.Errorf("failed to count contracts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contracts")

		return res, fmt.Errorf("failed to get contracts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contracts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ContractResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetContract, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	contract, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contract")

		return res, fmt.Errorf("failed to get contract: %w", err)
	}

	if contract.ID == constant.Empty {
		return res, failure.NotFound("contract not found") // nolint:wrapcheck
	}

	res.FromModel(contract)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contract to cache")
		}
	}()

	return res, nil
}

// Activate moves a pending contract into progress. A room may hold at
// most one in-progress contract at a time.
func (s *serviceImpl) Activate(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.ContractStatusInProgress)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.ContractStatusCompleted)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.ContractStatusCanceled)
}

func (s *serviceImpl) transition(ctx context.Context, id, target string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	contract, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contract")

		return fmt.Errorf("failed to get contract: %w", err)
	}

	if contract.ID == constant.Empty {
		return failure.NotFound("contract not found") // nolint:wrapcheck
	}

	if !contract.CanTransitionTo(target) {
		return failure.Conflict(fmt.Sprintf("contract cannot move from %s to %s", contract.ContractStatus, target)) // nolint:wrapcheck
	}

	if target == model.ContractStatusInProgress {
		active, err := s.repo.Count(ctx, InProgressByRoomFilter(contract.RoomID))
		if err != nil {
			log.Error().Err(err).Msg("failed to count in-progress contracts")

			return fmt.Errorf("failed to count in-progress contracts: %w", err)
		}

		if active > 0 {
			return failure.Conflict("room already has an in-progress contract") // nolint:wrapcheck
		}
	}

	fields := map[string]any{
		model.FieldContractStatus: target,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  actor,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update contract status")

		return fmt.Errorf("failed to update contract status: %w", err)
	}

	s.publishStatusChanged(ctx, contract, target, actor)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) publishStatusChanged(ctx context.Context, contract model.Contract, target, actor string) {
	event := dto.StatusChangedEvent{
		ContractID: contract.ID,
		RoomID:     contract.RoomID,
		TenantID:   contract.TenantID,
		FromStatus: contract.ContractStatus,
		ToStatus:   target,
		ChangedBy:  actor,
		ChangedAt:  timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.ContractEvents, kafka.Message{
			Key:   contract.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("contractID", contract.ID).Msg("failed to publish contract status event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetContract, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete contract cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllContract)
		shared.InvalidateCaches(c, s.cache, cacheCountContract)
	}()
}
