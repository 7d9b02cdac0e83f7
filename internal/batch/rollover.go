package batch

import (
	"context"
	"net/http"
	"time"

	"loft/config"
	"loft/infras/otel"
	"loft/internal/domains/contract/model"
	"loft/internal/domains/contract/repository"
	"loft/internal/domains/contract/service"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/failure"
	"loft/shared/timezone"

	"github.com/rs/zerolog/log"
)

// ContractRollover periodically walks the contract table and moves
// contracts along their lifecycle based on the calendar: pending
// contracts whose start date has arrived are activated, and in-progress
// contracts whose end date has passed are completed.
type ContractRollover struct {
	repo    repository.Contract
	service service.Contract
	cfg     *config.Config
	otel    otel.Otel
}

func NewContractRollover(
	repo repository.Contract,
	service service.Contract,
	cfg *config.Config,
	otel otel.Otel,
) *ContractRollover {
	return &ContractRollover{
		repo:    repo,
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run blocks until the context is canceled. It performs one pass
// immediately and then one pass per configured interval.
func (b *ContractRollover) Run(ctx context.Context) {
	if !b.cfg.Batch.ContractRollover.Enable {
		log.Info().Msg("Contract rollover batch disabled.")

		return
	}

	ctx = context.WithValue(ctx, constant.ContextKeyMemberID, constant.ContextSystem)

	interval := time.Duration(b.cfg.Batch.ContractRollover.IntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("Contract rollover batch started.")

	b.Pass(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Contract rollover batch stopped.")

			return
		case <-ticker.C:
			b.Pass(ctx)
		}
	}
}

// Pass runs a single rollover sweep. Failures on individual contracts
// are logged and never abort the sweep.
func (b *ContractRollover) Pass(ctx context.Context) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelBatchScopeName, constant.OtelBatchScopeName+".Pass")
	defer scope.End()

	now := timezone.Now()

	b.activateDue(ctx, now)
	b.completeExpired(ctx, now)
}

func (b *ContractRollover) activateDue(ctx context.Context, now time.Time) {
	due, err := b.repo.GetAll(ctx, gDto.QueryParams{}, dueForActivationFilter(now))
	if err != nil {
		log.Error().Err(err).Msg("failed to list contracts due for activation")

		return
	}

	for _, contract := range due {
		err := b.service.Activate(ctx, contract.ID)

		switch {
		case err == nil:
			log.Info().Str("contractID", contract.ID).Str("roomID", contract.RoomID).Msg("Contract activated by rollover.")
		case failure.IsCode(err, http.StatusConflict):
			// Another contract already occupies the room. Leave this one
			// pending and retry it on a later pass.
			log.Warn().Str("contractID", contract.ID).Str("roomID", contract.RoomID).Msg("Contract activation skipped, room occupied.")
		default:
			log.Error().Err(err).Str("contractID", contract.ID).Msg("failed to activate contract")
		}
	}
}

func (b *ContractRollover) completeExpired(ctx context.Context, now time.Time) {
	expired, err := b.repo.GetAll(ctx, gDto.QueryParams{}, expiredFilter(now))
	if err != nil {
		log.Error().Err(err).Msg("failed to list expired contracts")

		return
	}

	for _, contract := range expired {
		if err := b.service.Complete(ctx, contract.ID); err != nil {
			log.Error().Err(err).Str("contractID", contract.ID).Msg("failed to complete contract")

			continue
		}

		log.Info().Str("contractID", contract.ID).Str("roomID", contract.RoomID).Msg("Contract completed by rollover.")
	}
}

func dueForActivationFilter(now time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldContractStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.ContractStatusPending,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    now,
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
}

func expiredFilter(now time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldContractStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.ContractStatusInProgress,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorLess,
				Value:    now,
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
}
