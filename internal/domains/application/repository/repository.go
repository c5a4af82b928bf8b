package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"himalayandays/infras/otel"
	"himalayandays/infras/postgres"
	"himalayandays/internal/domains/application/model"
	gDto "himalayandays/shared/dto"
	gRepo "himalayandays/shared/repository"
)

type Application interface {
	Insert(ctx context.Context, model model.Application) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Application, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Application, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Application]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Application {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Application](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
