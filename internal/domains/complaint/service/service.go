package service

import (
	"context"
	"fmt"
	"strings"

	"loft/config"
	"loft/infras/otel"
	"loft/infras/s3"
	"loft/internal/domains/complaint/model"
	"loft/internal/domains/complaint/model/dto"
	"loft/internal/domains/complaint/repository"
	roomModel "loft/internal/domains/room/model"
	roomRepository "loft/internal/domains/room/repository"
	"loft/permissions"
	"loft/shared"
	"loft/shared/cache"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
	"loft/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetComplaint    = "complaint:get"
	cacheGetAllComplaint = "complaint:gets"
	cacheCountComplaint  = "complaint:count"

	// Fallback resolution messages when the owner supplies none.
	DefaultCompletedMessage = "Your complaint has been resolved."
	DefaultRejectedMessage  = "Your complaint has been rejected."
)

type Complaint interface {
	Create(ctx context.Context, req dto.CreateComplaintRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetComplaintsResponse, error)
	Get(ctx context.Context, id string) (dto.ComplaintResponse, error)
	Complete(ctx context.Context, req dto.ResolveComplaintRequest, id string) error
	Reject(ctx context.Context, req dto.ResolveComplaintRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Complaint
	roomRepo roomRepository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(
	repo repository.Complaint,
	roomRepo roomRepository.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Complaint {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateComplaintRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	if !permissions.Allows(permissions.ActionComplaintCreate, role) {
		return failure.ForbiddenError // nolint:wrapcheck
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	attachmentURL := constant.Empty
	var uploadedObjectName string
	if req.Attachment != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := uuid.NewString()

		parts := strings.Split(req.Attachment.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.AttachmentFile, req.Attachment, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload attachment to S3")

			return fmt.Errorf("failed to upload attachment: %w", err)
		}
		attachmentURL = url
		uploadedObjectName = filename
	}

	if err = s.repo.Insert(ctx, req.ToModel(actor, attachmentURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		log.Error().Err(err).Msg("failed to create complaint")

		return fmt.Errorf("failed to create complaint: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllComplaint)
		shared.InvalidateCaches(c, s.cache, cacheCountComplaint)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetComplaintsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	// Tenant members only ever see their own complaints.
	if role == constant.RoleUser {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldMemberID,
			Operator: gDto.FilterOperatorEq,
			Value:    actor,
			Table:    model.TableName,
		})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllComplaint, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count complaints")

		return res, fmt.Errorf("failed to count complaints: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get complaints")

		return res, fmt.Errorf("failed to get complaints: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save complaints to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ComplaintResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	complaint, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get complaint")

		return res, fmt.Errorf("failed to get complaint: %w", err)
	}

	if complaint.ID == constant.Empty {
		return res, failure.NotFound("complaint not found") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	if role == constant.RoleUser && complaint.MemberID != actor {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	res.FromModel(complaint)

	return res, nil
}

// Complete resolves the complaint with an optional message.
func (s *serviceImpl) Complete(ctx context.Context, req dto.ResolveComplaintRequest, id string) error {
	return s.resolve(ctx, req, id, model.ComplaintStatusCompleted, DefaultCompletedMessage)
}

// Reject declines the complaint with an optional message.
func (s *serviceImpl) Reject(ctx context.Context, req dto.ResolveComplaintRequest, id string) error {
	return s.resolve(ctx, req, id, model.ComplaintStatusRejected, DefaultRejectedMessage)
}

func (s *serviceImpl) resolve(ctx context.Context, req dto.ResolveComplaintRequest, id, target, defaultMessage string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	if !permissions.Allows(permissions.ActionComplaintResolve, role) {
		return failure.ForbiddenError // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	complaint, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get complaint")

		return fmt.Errorf("failed to get complaint: %w", err)
	}

	if complaint.ID == constant.Empty || complaint.Status != constant.StatusRegister {
		return failure.NotFound("complaint not found") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(complaint.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.MemberID != actor {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	if !complaint.IsResolvable() {
		return failure.Conflict(fmt.Sprintf("complaint already %s", strings.ToLower(complaint.ComplaintStatus))) // nolint:wrapcheck
	}

	message := req.Message
	if message == constant.Empty {
		message = defaultMessage
	}

	fields := map[string]any{
		model.FieldComplaintStatus:  target,
		model.FieldCompletedMessage: message,
		constant.FieldModifiedAt:    timezone.Now(),
		constant.FieldModifiedBy:    actor,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to resolve complaint")

		return fmt.Errorf("failed to resolve complaint: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete withdraws the submitter's own pending complaint. Rows are
// never removed.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyMemberID).(string)
	role, _ := ctx.Value(constant.ContextKeyMemberRole).(string)

	if !permissions.Allows(permissions.ActionComplaintDelete, role) {
		return failure.ForbiddenError // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	complaint, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get complaint")

		return fmt.Errorf("failed to get complaint: %w", err)
	}

	if complaint.ID == constant.Empty || complaint.Status != constant.StatusRegister {
		return failure.NotFound("complaint not found") // nolint:wrapcheck
	}

	if complaint.MemberID != actor {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	if !complaint.IsPossibleToDelete() {
		return failure.Conflict("complaint is already being handled") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        constant.StatusUnregister,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete complaint")

		return fmt.Errorf("failed to delete complaint: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetComplaint, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete complaint cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllComplaint)
		shared.InvalidateCaches(c, s.cache, cacheCountComplaint)
	}()
}
