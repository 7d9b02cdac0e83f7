package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"loft/infras/otel"
	"loft/infras/postgres"
	"loft/internal/domains/member/model"
	gDto "loft/shared/dto"
	gRepo "loft/shared/repository"
)

type Member interface {
	Insert(ctx context.Context, model model.Member) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Member, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Member, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Member]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Member {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Member](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
