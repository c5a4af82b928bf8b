package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"himalayandays/infras/otel"
	"himalayandays/infras/postgres"
	"himalayandays/internal/domains/hotel/model"
	gDto "himalayandays/shared/dto"
	gRepo "himalayandays/shared/repository"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type RoomType interface {
	Insert(ctx context.Context, model model.RoomType) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type RoomRate interface {
	Insert(ctx context.Context, model model.RoomRate) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomRate, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomRate, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type hotelRepositoryImpl struct {
	gRepo.Repository[model.Hotel]
	db   *postgres.Connection
	otel otel.Otel
}

func NewHotel(db *postgres.Connection, otel otel.Otel) Hotel {
	return &hotelRepositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.HotelEntityName, model.HotelTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type roomTypeRepositoryImpl struct {
	gRepo.Repository[model.RoomType]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRoomType(db *postgres.Connection, otel otel.Otel) RoomType {
	return &roomTypeRepositoryImpl{
		Repository: gRepo.NewRepository[model.RoomType](model.RoomTypeEntityName, model.RoomTypeTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type roomRateRepositoryImpl struct {
	gRepo.Repository[model.RoomRate]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRoomRate(db *postgres.Connection, otel otel.Otel) RoomRate {
	return &roomRateRepositoryImpl{
		Repository: gRepo.NewRepository[model.RoomRate](model.RoomRateEntityName, model.RoomRateTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
