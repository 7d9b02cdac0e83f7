package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"loft/config"
	"loft/infras/otel/mocks"
	buildingMocks "loft/internal/domains/building/mocks"
	roomMocks "loft/internal/domains/room/mocks"
	"loft/internal/domains/room/model"
	"loft/internal/domains/room/model/dto"
	"loft/internal/domains/room/service"
	cacheMocks "loft/shared/cache/mocks"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
)

type roomMockSet struct {
	repo     *roomMocks.MockRoom
	building *buildingMocks.MockBuilding
	cache    *cacheMocks.MockRedisCache
}

func newRoomService(t *testing.T) (service.Room, roomMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)

	set := roomMockSet{
		repo:     roomMocks.NewMockRoom(ctrl),
		building: buildingMocks.NewMockBuilding(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	// Cache writes happen on detached goroutines.
	set.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(set.repo, set.building, cfg, set.cache, mocks.NewOtel())

	return svc, set
}

func TestRoomService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	req := dto.CreateRoomRequest{
		Name:  "Room 501",
		Floor: "5",
		Area:  42.5,
		Usage: model.UsageOffice,
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, set := newRoomService(t)

		set.building.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, "building-1", room.BuildingID)
				assert.Equal(t, "owner-1", room.MemberID)
				assert.Equal(t, constant.StatusRegister, room.Status)

				return nil
			})

		err := svc.Create(ctx, req, "building-1")

		assert.NoError(t, err)
	})

	t.Run("building not found", func(t *testing.T) {
		svc, set := newRoomService(t)

		set.building.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Create(ctx, req, "missing")

		assert.True(t, failure.IsCode(err, 404))
	})

	t.Run("insert failure", func(t *testing.T) {
		svc, set := newRoomService(t)

		set.building.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		err := svc.Create(ctx, req, "building-1")

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found within its building", func(t *testing.T) {
		svc, set := newRoomService(t)

		set.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-1", BuildingID: "building-1", Name: "Room 501"}, nil)

		res, err := svc.Get(context.Background(), "building-1", "room-1")

		require.NoError(t, err)
		assert.Equal(t, "room-1", res.ID)
		assert.Equal(t, "building-1", res.BuildingID)
	})

	t.Run("wrong building yields not found", func(t *testing.T) {
		svc, set := newRoomService(t)

		set.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Room, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "building-2", args[model.FieldBuildingID])

				return model.Room{}, nil
			})

		_, err := svc.Get(context.Background(), "building-2", "room-1")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestRoomService_Update(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	t.Run("only supplied fields are written", func(t *testing.T) {
		svc, set := newRoomService(t)

		area := 55.0
		req := dto.UpdateRoomRequest{Name: "Room 501b", Area: &area}

		set.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Room 501b", fields[model.FieldName])
				assert.Equal(t, &area, fields[model.FieldArea])
				assert.NotContains(t, fields, model.FieldFloor)
				assert.Equal(t, "owner-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(ctx, req, "building-1", "room-1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, set := newRoomService(t)

		set.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(ctx, dto.UpdateRoomRequest{Name: "x"}, "building-1", "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestRoomService_Delete(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	t.Run("room is unregistered, not removed", func(t *testing.T) {
		svc, set := newRoomService(t)

		set.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.StatusUnregister, fields[model.FieldStatus])

				return nil
			})

		err := svc.Delete(ctx, "building-1", "room-1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, set := newRoomService(t)

		set.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(ctx, "building-1", "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestRoomService_GetAll(t *testing.T) {
	svc, set := newRoomService(t)

	set.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	set.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	set.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Room{
			{ID: "room-1", BuildingID: "building-1"},
			{ID: "room-2", BuildingID: "building-1"},
		}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Len(t, res.Rooms, 2)
}
