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
	tenantMocks "loft/internal/domains/tenant/mocks"
	"loft/internal/domains/tenant/model"
	"loft/internal/domains/tenant/model/dto"
	"loft/internal/domains/tenant/service"
	cacheMocks "loft/shared/cache/mocks"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
)

func newTenantService(t *testing.T) (service.Tenant, *tenantMocks.MockTenant, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := tenantMocks.NewMockTenant(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	// Cache writes happen on detached goroutines.
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestTenantService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	svc, mockRepo, _ := newTenantService(t)

	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tenant model.Tenant) error {
			assert.NotEmpty(t, tenant.ID)
			assert.Equal(t, "Acme Logistics", tenant.Name)
			assert.Equal(t, "KVK-44721", tenant.CompanyNumber)
			assert.Equal(t, constant.StatusRegister, tenant.Status)

			return nil
		})

	err := svc.Create(ctx, dto.CreateTenantRequest{Name: "Acme Logistics", CompanyNumber: "KVK-44721"})

	assert.NoError(t, err)
}

func TestTenantService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, mockCache := newTenantService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Tenant{ID: "tenant-1", Name: "Acme Logistics"}, nil)

		res, err := svc.Get(context.Background(), "tenant-1")

		require.NoError(t, err)
		assert.Equal(t, "tenant-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newTenantService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Tenant{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestTenantService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newTenantService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Tenant{{ID: "tenant-1", Name: "Acme Logistics"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Tenants, 1)
}

func TestTenantService_Update(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	t.Run("only supplied fields are written", func(t *testing.T) {
		svc, mockRepo, _ := newTenantService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Acme Freight", fields[model.FieldName])
				assert.NotContains(t, fields, model.FieldCompanyNumber)

				return nil
			})

		err := svc.Update(ctx, dto.UpdateTenantRequest{Name: "Acme Freight"}, "tenant-1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newTenantService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(ctx, dto.UpdateTenantRequest{Name: "x"}, "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}

func TestTenantService_Delete(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, "owner-1")

	t.Run("tenant is unregistered, not removed", func(t *testing.T) {
		svc, mockRepo, _ := newTenantService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.StatusUnregister, fields[model.FieldStatus])

				return nil
			})

		err := svc.Delete(ctx, "tenant-1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newTenantService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(ctx, "missing")

		assert.True(t, failure.IsCode(err, 404))
	})
}
