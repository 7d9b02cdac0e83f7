package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"loft/config"
	"loft/infras/otel/mocks"
	s3Mocks "loft/infras/s3/mocks"
	complaintMocks "loft/internal/domains/complaint/mocks"
	"loft/internal/domains/complaint/model"
	"loft/internal/domains/complaint/model/dto"
	"loft/internal/domains/complaint/service"
	roomMocks "loft/internal/domains/room/mocks"
	roomModel "loft/internal/domains/room/model"
	cacheMocks "loft/shared/cache/mocks"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
	gModel "loft/shared/model"
	"loft/shared/timezone"
)

type complaintMockSet struct {
	repo  *complaintMocks.MockComplaint
	room  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newComplaintService(t *testing.T) (service.Complaint, complaintMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)

	set := complaintMockSet{
		repo:  complaintMocks.NewMockComplaint(ctrl),
		room:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	// Cache writes happen on detached goroutines.
	set.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "loft-test"

	svc := service.New(set.repo, set.room, cfg, set.cache, mocks.NewOtel(), set.s3)

	return svc, set
}

func memberContext(memberID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, memberID)

	return context.WithValue(ctx, constant.ContextKeyMemberRole, role)
}

func pendingComplaint(id, memberID string) model.Complaint {
	now := timezone.Now()

	return model.Complaint{
		ID:              id,
		RoomID:          "room-1",
		MemberID:        memberID,
		Message:         "the heater is broken",
		ComplaintStatus: model.ComplaintStatusPending,
		Status:          constant.StatusRegister,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  memberID,
			ModifiedBy: memberID,
		},
	}
}

func TestComplaintService_Create(t *testing.T) {
	req := dto.CreateComplaintRequest{RoomID: "room-1", Message: "the heater is broken"}

	t.Run("forbidden for owners", func(t *testing.T) {
		svc, _ := newComplaintService(t)

		err := svc.Create(memberContext("owner-1", constant.RoleOwner), req)

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})

	t.Run("room not found", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Create(memberContext("user-1", constant.RoleUser), req)

		assert.True(t, failure.IsCode(err, 404))
	})

	t.Run("without attachment", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, complaint model.Complaint) error {
				assert.Equal(t, "room-1", complaint.RoomID)
				assert.Equal(t, "user-1", complaint.MemberID)
				assert.Equal(t, model.ComplaintStatusPending, complaint.ComplaintStatus)
				assert.Empty(t, complaint.Attachment)

				return nil
			})

		err := svc.Create(memberContext("user-1", constant.RoleUser), req)

		assert.NoError(t, err)
	})

	t.Run("with attachment", func(t *testing.T) {
		svc, set := newComplaintService(t)

		withFile := req
		withFile.Attachment = &multipart.FileHeader{Filename: "heater.png"}

		set.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.s3.EXPECT().UploadFile(gomock.Any(), "loft-test", model.EntityName, gomock.Any(), withFile.Attachment, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
				assert.Contains(t, fileName, ".png")

				return "https://cdn.example.com/complaint/" + fileName, nil
			})
		set.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, complaint model.Complaint) error {
				assert.Contains(t, complaint.Attachment, "https://cdn.example.com/complaint/")

				return nil
			})

		err := svc.Create(memberContext("user-1", constant.RoleUser), withFile)

		assert.NoError(t, err)
	})

	t.Run("uploaded attachment is removed when insert fails", func(t *testing.T) {
		svc, set := newComplaintService(t)

		withFile := req
		withFile.Attachment = &multipart.FileHeader{Filename: "heater.jpg"}

		set.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.s3.EXPECT().UploadFile(gomock.Any(), "loft-test", model.EntityName, gomock.Any(), withFile.Attachment, gomock.Any()).
			Return("https://cdn.example.com/complaint/x.jpg", nil)
		set.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
		set.s3.EXPECT().DeleteFile(gomock.Any(), "loft-test", model.EntityName, gomock.Any()).Return(nil)

		err := svc.Create(memberContext("user-1", constant.RoleUser), withFile)

		assert.Error(t, err)
	})

	t.Run("upload failure aborts creation", func(t *testing.T) {
		svc, set := newComplaintService(t)

		withFile := req
		withFile.Attachment = &multipart.FileHeader{Filename: "heater.png"}

		set.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("upload failed"))

		err := svc.Create(memberContext("user-1", constant.RoleUser), withFile)

		assert.Error(t, err)
	})
}

func TestComplaintService_GetAll(t *testing.T) {
	t.Run("tenant members are scoped to their own complaints", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		set.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "user-1", args[model.FieldMemberID])

				return 1, nil
			})
		set.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Complaint{pendingComplaint("complaint-1", "user-1")}, nil)

		res, err := svc.GetAll(memberContext("user-1", constant.RoleUser), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		require.Len(t, res.Complaints, 1)
		assert.True(t, res.Complaints[0].Deletable)
	})

	t.Run("owners see the unscoped list", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		set.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				_, args := filter.GetWhereClause()
				assert.NotContains(t, args, model.FieldMemberID)

				return 2, nil
			})
		set.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Complaint{
				pendingComplaint("complaint-1", "user-1"),
				pendingComplaint("complaint-2", "user-2"),
			}, nil)

		res, err := svc.GetAll(memberContext("owner-1", constant.RoleOwner), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})
}

func TestComplaintService_Get(t *testing.T) {
	t.Run("submitter reads own complaint", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingComplaint("complaint-1", "user-1"), nil)

		res, err := svc.Get(memberContext("user-1", constant.RoleUser), "complaint-1")

		require.NoError(t, err)
		assert.Equal(t, "complaint-1", res.ID)
	})

	t.Run("other members are restricted", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingComplaint("complaint-1", "user-1"), nil)

		_, err := svc.Get(memberContext("user-2", constant.RoleUser), "complaint-1")

		assert.ErrorIs(t, err, failure.ResourceRestrictedError)
	})

	t.Run("owners read any complaint", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingComplaint("complaint-1", "user-1"), nil)

		_, err := svc.Get(memberContext("owner-1", constant.RoleOwner), "complaint-1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Complaint{}, nil)

		_, err := svc.Get(memberContext("user-1", constant.RoleUser), "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestComplaintService_Resolve(t *testing.T) {
	ownedRoom := roomModel.Room{ID: "room-1", MemberID: "owner-1"}

	t.Run("forbidden for regular members", func(t *testing.T) {
		svc, _ := newComplaintService(t)

		err := svc.Complete(memberContext("user-1", constant.RoleUser), dto.ResolveComplaintRequest{}, "complaint-1")

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})

	t.Run("complete with default message", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingComplaint("complaint-1", "user-1"), nil)
		set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRoom, nil)
		set.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.ComplaintStatusCompleted, fields[model.FieldComplaintStatus])
				assert.Equal(t, service.DefaultCompletedMessage, fields[model.FieldCompletedMessage])

				return nil
			})

		err := svc.Complete(memberContext("owner-1", constant.RoleOwner), dto.ResolveComplaintRequest{}, "complaint-1")

		assert.NoError(t, err)
	})

	t.Run("reject with custom message", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingComplaint("complaint-1", "user-1"), nil)
		set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRoom, nil)
		set.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.ComplaintStatusRejected, fields[model.FieldComplaintStatus])
				assert.Equal(t, "duplicate report", fields[model.FieldCompletedMessage])

				return nil
			})

		err := svc.Reject(memberContext("owner-1", constant.RoleOwner), dto.ResolveComplaintRequest{Message: "duplicate report"}, "complaint-1")

		assert.NoError(t, err)
	})

	t.Run("not the room owner", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingComplaint("complaint-1", "user-1"), nil)
		set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "room-1", MemberID: "owner-2"}, nil)

		err := svc.Complete(memberContext("owner-1", constant.RoleOwner), dto.ResolveComplaintRequest{}, "complaint-1")

		assert.ErrorIs(t, err, failure.ResourceRestrictedError)
	})

	t.Run("already resolved", func(t *testing.T) {
		svc, set := newComplaintService(t)

		resolved := pendingComplaint("complaint-1", "user-1")
		resolved.ComplaintStatus = model.ComplaintStatusCompleted

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(resolved, nil)
		set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRoom, nil)

		err := svc.Reject(memberContext("owner-1", constant.RoleOwner), dto.ResolveComplaintRequest{}, "complaint-1")

		assert.True(t, failure.IsCode(err, 409))
	})

	t.Run("withdrawn complaint treated as missing", func(t *testing.T) {
		svc, set := newComplaintService(t)

		gone := pendingComplaint("complaint-1", "user-1")
		gone.Status = constant.StatusUnregister

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(gone, nil)

		err := svc.Complete(memberContext("owner-1", constant.RoleOwner), dto.ResolveComplaintRequest{}, "complaint-1")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestComplaintService_Delete(t *testing.T) {
	t.Run("forbidden for owners", func(t *testing.T) {
		svc, _ := newComplaintService(t)

		err := svc.Delete(memberContext("owner-1", constant.RoleOwner), "complaint-1")

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})

	t.Run("submitter withdraws a pending complaint", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingComplaint("complaint-1", "user-1"), nil)
		set.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.StatusUnregister, fields[model.FieldStatus])

				return nil
			})

		err := svc.Delete(memberContext("user-1", constant.RoleUser), "complaint-1")

		assert.NoError(t, err)
	})

	t.Run("only the submitter may withdraw", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingComplaint("complaint-1", "user-1"), nil)

		err := svc.Delete(memberContext("user-2", constant.RoleUser), "complaint-1")

		assert.ErrorIs(t, err, failure.ResourceRestrictedError)
	})

	t.Run("handled complaints cannot be withdrawn", func(t *testing.T) {
		svc, set := newComplaintService(t)

		handled := pendingComplaint("complaint-1", "user-1")
		handled.ComplaintStatus = model.ComplaintStatusInProgress

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(handled, nil)

		err := svc.Delete(memberContext("user-1", constant.RoleUser), "complaint-1")

		assert.True(t, failure.IsCode(err, 409))
	})

	t.Run("not found", func(t *testing.T) {
		svc, set := newComplaintService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Complaint{}, nil)

		err := svc.Delete(memberContext("user-1", constant.RoleUser), "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}
