package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"loft/infras/otel"
	"loft/infras/postgres"
	"loft/internal/domains/contract/model"
	gDto "loft/shared/dto"
	gRepo "loft/shared/repository"
)

type Contract interface {
	Insert(ctx context.Context, model model.Contract) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Contract, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Contract, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Contract]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Contract {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Contract](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
