package service

import (
	"context"
	"fmt"
	"time"

	"loft/config"
	"loft/infras/kafka"
	"loft/infras/otel"
	contractModel "loft/internal/domains/contract/model"
	contractRepository "loft/internal/domains/contract/repository"
	memberModel "loft/internal/domains/member/model"
	memberRepository "loft/internal/domains/member/repository"
	roomModel "loft/internal/domains/room/model"
	roomRepository "loft/internal/domains/room/repository"
	"loft/internal/domains/score/model"
	"loft/internal/domains/score/model/dto"
	"loft/internal/domains/score/repository"
	"loft/permissions"
	"loft/shared"
	"loft/shared/cache"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
	"loft/shared/period"
	"loft/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetScore    = "score:get"
	cacheGetAllScore = "score:gets"
	cacheCountScore  = "score:count"

	reasonNotEligible      = "member not eligible"
	reasonAlreadyEvaluated = "already evaluated in period"
)

type Score interface {
	Generate(ctx context.Context, req dto.GenerateScoresRequest) (dto.GenerateScoresResponse, error)
	UpdateScore(ctx context.Context, req dto.UpdateScoreRequest, id string) (dto.ScoreResponse, error)
	UpdateBookmark(ctx context.Context, req dto.UpdateBookmarkRequest, id string) (dto.ScoreResponse, error)
	Search(ctx context.Context, req dto.SearchScoresRequest, params gDto.QueryParams) (dto.GetScoresResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetScoresResponse, error)
	Get(ctx context.Context, id string) (dto.ScoreResponse, error)
}

type serviceImpl struct {
	repo         repository.Score
	roomRepo     roomRepository.Room
	contractRepo contractRepository.Contract
	memberRepo   memberRepository.Member
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	kafka        kafka.Client
}

func New(
	repo repository.Score,
	roomRepo roomRepository.Room,
	contractRepo contractRepository.Contract,
	memberRepo memberRepository.Member,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Score {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		contractRepo: contractRepo,
		memberRepo:   memberRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		kafka:        kafka,
	}
}

// ownedRoomFilter matches a registered room owned by the actor inside
// the given building.
func ownedRoomFilter(buildingID, roomID, actor string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				Field:    roomModel.FieldBuildingID,
				Operator: gDto.FilterOperatorEq,
				Value:    buildingID,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				Field:    roomModel.FieldMemberID,
				Operator: gDto.FilterOperatorEq,
				Value:    actor,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				Field:    roomModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.StatusRegister,
				Table:    roomModel.TableName,
			},
		},
	}
}

func inProgressContractFilter(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    contractModel.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    contractModel.TableName,
			},
			gDto.Filter{
				Field:    contractModel.FieldContractStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    contractModel.ContractStatusInProgress,
				Table:    contractModel.TableName,
			},
		},
	}
}

// evaluatedInPeriodFilter matches scores of (member, room, rating type)
// whose last modification falls inside the rating period containing now.
func evaluatedInPeriodFilter(memberID, roomID, ratingType string, now time.Time) gDto.FilterGroup {
	var start, end time.Time

	switch ratingType {
	case model.RatingTypeFacility:
		start, end = period.QuarterRange(now)
	default:
		start, end = period.MonthRange(now)
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMemberID,
				Operator: gDto.FilterOperatorEq,
				Value:    memberID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRatingType,
				Operator: gDto.FilterOperatorEq,
				Value:    ratingType,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "modified_at_from",
				Field:    constant.FieldModifiedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    start,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "modified_at_to",
				Field:    constant.FieldModifiedAt,
				Operator: gDto.FilterOperatorLess,
				Value:    end,
				Table:    model.TableName,
			},
		},
	}
}

// Generate creates one empty evaluation per eligible tenant member of
// the room's active contract. Individual member failures never abort
// the pass; each member's outcome is reported back.
func (s *serviceImpl) Generate(ctx context.Context, req dto.GenerateScoresRequest) (res dto.GenerateScoresResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Generate")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	if !permissions.Allows(permissions.ActionScoreGenerate, role) {
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, ownedRoomFilter(req.BuildingID, req.RoomID, actor))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	contracts, err := s.contractRepo.GetAll(ctx, gDto.QueryParams{}, inProgressContractFilter(room.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get in-progress contracts")

		return res, fmt.Errorf("failed to get in-progress contracts: %w", err)
	}

	switch {
	case len(contracts) == 0:
		return res, failure.Conflict("contract not in progress") // nolint:wrapcheck
	case len(contracts) > 1:
		return res, failure.Conflict("multiple in-progress contracts") // nolint:wrapcheck
	}

	members, err := s.memberRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    memberModel.FieldTenantID,
				Operator: gDto.FilterOperatorEq,
				Value:    contracts[0].TenantID,
				Table:    memberModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tenant members")

		return res, fmt.Errorf("failed to get tenant members: %w", err)
	}

	res.RoomID = room.ID
	res.RatingType = req.RatingType
	res.Outcomes = make([]dto.MemberOutcome, 0, len(members))

	now := timezone.Now()

	for _, member := range members {
		outcome := s.generateForMember(ctx, member, room.ID, req.RatingType, actor, now)

		switch outcome.Outcome {
		case dto.GenerateOutcomeCreated:
			res.Created++
		case dto.GenerateOutcomeSkipped:
			res.Skipped++
		default:
			res.Failed++
		}

		res.Outcomes = append(res.Outcomes, outcome)
	}

	s.publishGenerated(ctx, res)
	s.invalidateLists(ctx)

	return res, nil
}

func (s *serviceImpl) generateForMember(ctx context.Context, member memberModel.Member, roomID, ratingType, actor string, now time.Time) dto.MemberOutcome {
	outcome := dto.MemberOutcome{MemberID: member.ID}

	if member.Role != constant.RoleUser || member.Status != constant.StatusRegister {
		outcome.Outcome = dto.GenerateOutcomeSkipped
		outcome.Reason = reasonNotEligible

		return outcome
	}

	evaluated, err := s.repo.Exist(ctx, evaluatedInPeriodFilter(member.ID, roomID, ratingType, now))
	if err != nil {
		log.Error().Err(err).Str("memberID", member.ID).Msg("failed to check evaluation period")

		outcome.Outcome = dto.GenerateOutcomeFailed
		outcome.Reason = err.Error()

		return outcome
	}

	if evaluated {
		outcome.Outcome = dto.GenerateOutcomeSkipped
		outcome.Reason = reasonAlreadyEvaluated

		return outcome
	}

	if err := s.repo.Insert(ctx, dto.NewScore(roomID, member.ID, ratingType, actor)); err != nil {
		log.Error().Err(err).Str("memberID", member.ID).Msg("failed to insert score")

		outcome.Outcome = dto.GenerateOutcomeFailed
		outcome.Reason = err.Error()

		return outcome
	}

	outcome.Outcome = dto.GenerateOutcomeCreated

	return outcome
}

// UpdateScore submits the member's evaluation. Submission is one-way:
// a completed evaluation can never be re-submitted.
func (s *serviceImpl) UpdateScore(ctx context.Context, req dto.UpdateScoreRequest, id string) (res dto.ScoreResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateScore")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	if !permissions.Allows(permissions.ActionScoreUpdate, role) {
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldMemberID,
				Operator: gDto.FilterOperatorEq,
				Value:    actor,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.StatusRegister,
				Table:    model.TableName,
			},
		},
	}

	score, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get score")

		return res, fmt.Errorf("failed to get score: %w", err)
	}

	if score.ID == constant.Empty {
		return res, failure.NotFound("score not found") // nolint:wrapcheck
	}

	if score.IsCompleted() {
		return res, failure.Conflict("evaluation already completed") // nolint:wrapcheck
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldScore:         req.Score,
		model.FieldComment:       req.Comment,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update score")

		return res, fmt.Errorf("failed to update score: %w", err)
	}

	score.Score = req.Score
	score.Comment = req.Comment
	score.ModifiedAt = now
	score.ModifiedBy = actor

	res.FromModel(score)

	s.invalidate(ctx, id)

	return res, nil
}

// UpdateBookmark flips the owner's bookmark on one evaluation. The
// score's room must belong to the acting owner.
func (s *serviceImpl) UpdateBookmark(ctx context.Context, req dto.UpdateBookmarkRequest, id string) (res dto.ScoreResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBookmark")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	if !permissions.Allows(permissions.ActionScoreBookmark, role) {
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	score, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get score")

		return res, fmt.Errorf("failed to get score: %w", err)
	}

	if score.ID == constant.Empty || score.Status != constant.StatusRegister {
		return res, failure.NotFound("score not found") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(score.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.MemberID != actor {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldBookmark:      *req.Bookmark,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update bookmark")

		return res, fmt.Errorf("failed to update bookmark: %w", err)
	}

	score.Bookmark = *req.Bookmark
	score.ModifiedAt = now
	score.ModifiedBy = actor

	res.FromModel(score)

	s.invalidate(ctx, id)

	return res, nil
}

// Search lists completed evaluations of an owned room. Omitted optional
// parameters contribute no predicate.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchScoresRequest, params gDto.QueryParams) (res dto.GetScoresResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	if !permissions.Allows(permissions.ActionScoreSearch, role) {
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, ownedRoomFilter(req.BuildingID, req.RoomID, actor))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	filter, err := s.searchFilter(req, room.ID)
	if err != nil {
		return res, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count scores")

		return res, fmt.Errorf("failed to count scores: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search scores")

		return res, fmt.Errorf("failed to search scores: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) searchFilter(req dto.SearchScoresRequest, roomID string) (gDto.FilterGroup, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "min_score",
				Field:    model.FieldScore,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    1,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRatingType,
				Operator: gDto.FilterOperatorEq,
				Value:    req.RatingType,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
		},
	}

	if req.From != constant.Empty {
		from, err := timezone.Parse(constant.DateOnlyFormat, req.From)
		if err != nil {
			return filter, failure.BadRequest(err) // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "modified_at_from",
			Field:    constant.FieldModifiedAt,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		})
	}

	if req.To != constant.Empty {
		to, err := timezone.Parse(constant.DateOnlyFormat, req.To)
		if err != nil {
			return filter, failure.BadRequest(err) // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "modified_at_to",
			Field:    constant.FieldModifiedAt,
			Operator: gDto.FilterOperatorLess,
			Value:    to.AddDate(0, 0, 1),
			Table:    model.TableName,
		})
	}

	if req.Bookmark != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldBookmark,
			Operator: gDto.FilterOperatorEq,
			Value:    *req.Bookmark,
			Table:    model.TableName,
		})
	}

	if req.Keyword != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldComment,
			Operator: gDto.FilterOperatorLike,
			Value:    req.Keyword,
			Table:    model.TableName,
		})
	}

	return filter, nil
}

// GetMine lists the acting member's own evaluations.
func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetScoresResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMemberID,
				Operator: gDto.FilterOperatorEq,
				Value:    actor,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.StatusRegister,
				Table:    model.TableName,
			},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count scores")

		return res, fmt.Errorf("failed to count scores: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get scores")

		return res, fmt.Errorf("failed to get scores: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ScoreResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetScore, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	score, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get score")

		return res, fmt.Errorf("failed to get score: %w", err)
	}

	if score.ID == constant.Empty {
		return res, failure.NotFound("score not found") // nolint:wrapcheck
	}

	res.FromModel(score)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save score to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) publishGenerated(ctx context.Context, res dto.GenerateScoresResponse) {
	event := dto.GeneratedEvent{
		RoomID:     res.RoomID,
		RatingType: res.RatingType,
		Created:    res.Created,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.ScoreEvents, kafka.Message{
			Key:   res.RoomID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("roomID", res.RoomID).Msg("failed to publish score generated event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetScore, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete score cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllScore)
		shared.InvalidateCaches(c, s.cache, cacheCountScore)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllScore)
		shared.InvalidateCaches(c, s.cache, cacheCountScore)
	}()
}
