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
	"loft/internal/domains/building/model"
	"loft/internal/domains/building/model/dto"
	"loft/internal/domains/building/service"
	cacheMocks "loft/shared/cache/mocks"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
)

func newBuildingService(t *testing.T) (service.Building, *buildingMocks.MockBuilding, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := buildingMocks.NewMockBuilding(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	// Cache writes happen on detached goroutines.
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestBuildingService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	req := dto.CreateBuildingRequest{
		Name:    "Harbor Tower",
		Address: "1 Quay Street",
		ZipCode: "10110",
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, mockRepo, _ := newBuildingService(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, building model.Building) error {
				assert.NotEmpty(t, building.ID)
				assert.Equal(t, "Harbor Tower", building.Name)
				assert.Equal(t, constant.StatusRegister, building.Status)
				assert.Equal(t, "owner-1", building.CreatedBy)

				return nil
			})

		err := svc.Create(ctx, req)

		assert.NoError(t, err)
	})

	t.Run("insert failure", func(t *testing.T) {
		svc, mockRepo, _ := newBuildingService(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		err := svc.Create(ctx, req)

		assert.Error(t, err)
	})
}

func TestBuildingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, mockCache := newBuildingService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Building{ID: "building-1", Name: "Harbor Tower", Status: constant.StatusRegister}, nil)

		res, err := svc.Get(context.Background(), "building-1")

		require.NoError(t, err)
		assert.Equal(t, "building-1", res.ID)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		svc, _, mockCache := newBuildingService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.BuildingResponse)
				require.True(t, ok)
				res.ID = "building-1"

				return nil
			})

		res, err := svc.Get(context.Background(), "building-1")

		require.NoError(t, err)
		assert.Equal(t, "building-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newBuildingService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Building{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestBuildingService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newBuildingService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Building{
			{ID: "building-1", Name: "Harbor Tower"},
			{ID: "building-2", Name: "Dock House"},
		}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Len(t, res.Buildings, 2)
}

func TestBuildingService_Update(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	t.Run("only supplied fields are written", func(t *testing.T) {
		svc, mockRepo, _ := newBuildingService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Harbor Tower II", fields[model.FieldName])
				assert.NotContains(t, fields, model.FieldAddress)

				return nil
			})

		err := svc.Update(ctx, dto.UpdateBuildingRequest{Name: "Harbor Tower II"}, "building-1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newBuildingService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(ctx, dto.UpdateBuildingRequest{Name: "x"}, "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestBuildingService_Delete(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	t.Run("building is unregistered, not removed", func(t *testing.T) {
		svc, mockRepo, _ := newBuildingService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.StatusUnregister, fields[model.FieldStatus])

				return nil
			})

		err := svc.Delete(ctx, "building-1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newBuildingService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(ctx, "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}
