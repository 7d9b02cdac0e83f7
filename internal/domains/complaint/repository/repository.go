package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"loft/infras/otel"
	"loft/infras/postgres"
	"loft/internal/domains/complaint/model"
	gDto "loft/shared/dto"
	gRepo "loft/shared/repository"
)

type Complaint interface {
	Insert(ctx context.Context, model model.Complaint) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Complaint, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Complaint, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Complaint]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Complaint {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Complaint](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
