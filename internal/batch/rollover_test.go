package batch_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"loft/config"
	"loft/infras/otel/mocks"
	"loft/internal/batch"
	contractMocks "loft/internal/domains/contract/mocks"
	"loft/internal/domains/contract/model"
	serviceMocks "loft/internal/domains/contract/service/mocks"
	"loft/shared/constant"
	"loft/shared/failure"
)

func newRollover(t *testing.T, enabled bool) (*batch.ContractRollover, *contractMocks.MockContract, *serviceMocks.MockContract) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := contractMocks.NewMockContract(ctrl)
	mockService := serviceMocks.NewMockContract(ctrl)

	cfg := &config.Config{}
	cfg.Batch.ContractRollover.Enable = enabled
	cfg.Batch.ContractRollover.IntervalMinutes = 15

	return batch.NewContractRollover(mockRepo, mockService, cfg, mocks.NewOtel()), mockRepo, mockService
}

func TestContractRollover_Run_Disabled(t *testing.T) {
	rollover, _, _ := newRollover(t, false)

	// No repository or service expectations: a disabled batch must
	// return without sweeping.
	rollover.Run(context.Background())
}

func TestContractRollover_Pass(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyMemberID, constant.ContextSystem)

	t.Run("activates due and completes expired", func(t *testing.T) {
		rollover, mockRepo, mockService := newRollover(t, true)

		due := []model.Contract{
			{ID: "contract-1", RoomID: "room-1", ContractStatus: model.ContractStatusPending},
			{ID: "contract-2", RoomID: "room-2", ContractStatus: model.ContractStatusPending},
		}
		expired := []model.Contract{
			{ID: "contract-3", RoomID: "room-3", ContractStatus: model.ContractStatusInProgress},
		}

		gomock.InOrder(
			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(due, nil),
			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(expired, nil),
		)

		mockService.EXPECT().Activate(gomock.Any(), "contract-1").Return(nil)
		mockService.EXPECT().Activate(gomock.Any(), "contract-2").Return(nil)
		mockService.EXPECT().Complete(gomock.Any(), "contract-3").Return(nil)

		rollover.Pass(ctx)
	})

	t.Run("occupied room leaves the contract pending", func(t *testing.T) {
		rollover, mockRepo, mockService := newRollover(t, true)

		due := []model.Contract{
			{ID: "contract-1", RoomID: "room-1", ContractStatus: model.ContractStatusPending},
			{ID: "contract-2", RoomID: "room-1", ContractStatus: model.ContractStatusPending},
		}

		gomock.InOrder(
			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(due, nil),
			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Contract{}, nil),
		)

		mockService.EXPECT().Activate(gomock.Any(), "contract-1").Return(nil)
		mockService.EXPECT().Activate(gomock.Any(), "contract-2").
			Return(failure.Conflict("room already has an in-progress contract"))

		rollover.Pass(ctx)
	})

	t.Run("individual failures never abort the sweep", func(t *testing.T) {
		rollover, mockRepo, mockService := newRollover(t, true)

		due := []model.Contract{
			{ID: "contract-1", RoomID: "room-1", ContractStatus: model.ContractStatusPending},
			{ID: "contract-2", RoomID: "room-2", ContractStatus: model.ContractStatusPending},
		}
		expired := []model.Contract{
			{ID: "contract-3", RoomID: "room-3", ContractStatus: model.ContractStatusInProgress},
			{ID: "contract-4", RoomID: "room-4", ContractStatus: model.ContractStatusInProgress},
		}

		gomock.InOrder(
			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(due, nil),
			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(expired, nil),
		)

		mockService.EXPECT().Activate(gomock.Any(), "contract-1").Return(errors.New("activation failed"))
		mockService.EXPECT().Activate(gomock.Any(), "contract-2").Return(nil)
		mockService.EXPECT().Complete(gomock.Any(), "contract-3").Return(errors.New("completion failed"))
		mockService.EXPECT().Complete(gomock.Any(), "contract-4").Return(nil)

		rollover.Pass(ctx)
	})

	t.Run("listing failure skips the activation phase", func(t *testing.T) {
		rollover, mockRepo, _ := newRollover(t, true)

		gomock.InOrder(
			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("query failed")),
			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Contract{}, nil),
		)

		rollover.Pass(ctx)
	})

	t.Run("nothing due", func(t *testing.T) {
		rollover, mockRepo, _ := newRollover(t, true)

		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Contract{}, nil).Times(2)

		rollover.Pass(ctx)
	})
}
