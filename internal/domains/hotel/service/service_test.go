package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"himalayandays/config"
	"himalayandays/infras/otel/mocks"
	hotelMocks "himalayandays/internal/domains/hotel/mocks"
	"himalayandays/internal/domains/hotel/model"
	"himalayandays/internal/domains/hotel/model/dto"
	"himalayandays/internal/domains/hotel/service"
	cacheMocks "himalayandays/shared/cache/mocks"
	"himalayandays/shared/failure"
	gModel "himalayandays/shared/model"
)

func date(s string) time.Time {
	parsed, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return parsed
}

func datePtr(s string) *time.Time {
	parsed := date(s)

	return &parsed
}

func TestHotelService_CreateRoomRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockRoomRepo := hotelMocks.NewMockRoomType(ctrl)
	mockRateRepo := hotelMocks.NewMockRoomRate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockHotelRepo, mockRoomRepo, mockRateRepo, &config.Config{}, mockCache, mockOtel)

	baseReq := dto.CreateRoomRateRequest{
		RoomTypeID: "room-type-1",
		ValidFrom:  "2026-04-01",
		ValidTo:    "2026-04-30",
		PriceEP:    4500,
		PriceCP:    5200,
	}

	tests := []struct {
		name      string
		req       dto.CreateRoomRateRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  baseReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRateRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRateRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "overlapping window rejected",
			req:  baseReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRateRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "room type does not exist",
			req:  baseReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "valid_from after valid_to",
			req: dto.CreateRoomRateRequest{
				RoomTypeID: "room-type-1",
				ValidFrom:  "2026-05-01",
				ValidTo:    "2026-04-01",
				PriceEP:    4500,
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "invalid date format",
			req: dto.CreateRoomRateRequest{
				RoomTypeID: "room-type-1",
				ValidFrom:  "01-04-2026",
				ValidTo:    "2026-04-30",
				PriceEP:    4500,
			},
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.CreateRoomRate(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHotelService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockRoomRepo := hotelMocks.NewMockRoomType(ctrl)
	mockRateRepo := hotelMocks.NewMockRoomRate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockHotelRepo, mockRoomRepo, mockRateRepo, &config.Config{}, mockCache, mockOtel)

	roomType := model.RoomType{
		ID:           "room-type-1",
		HotelID:      "hotel-1",
		Name:         "Deluxe",
		MaxOccupancy: 3,
	}

	liveHotel := model.Hotel{
		ID:    "hotel-1",
		Name:  "Everest View",
		City:  "Kathmandu",
		Stars: 4,
		Metadata: gModel.Metadata{
			CreatedBy: "system",
		},
	}

	t.Run("stay_from after stay_to", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), "room-type-1", date("2026-04-10"), date("2026-04-05"), date("2026-03-01"))
		assert.Error(t, err)
	})

	t.Run("room type not found", func(t *testing.T) {
		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.RoomType{}, nil)

		_, err := svc.Resolve(context.Background(), "missing", date("2026-04-01"), date("2026-04-05"), date("2026-03-01"))
		assert.Error(t, err)
	})

	t.Run("trashed hotel is treated as missing", func(t *testing.T) {
		trashedHotel := liveHotel
		trashedHotel.DeletedAt = datePtr("2026-02-01")

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		mockHotelRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trashedHotel, nil)

		_, err := svc.Resolve(context.Background(), "room-type-1", date("2026-04-01"), date("2026-04-05"), date("2026-03-01"))
		assert.Error(t, err)
	})

	t.Run("no matching rates is not an error", func(t *testing.T) {
		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		mockHotelRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(liveHotel, nil)

		mockRateRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RoomRate{}, nil)

		res, err := svc.Resolve(context.Background(), "room-type-1", date("2026-04-01"), date("2026-04-05"), date("2026-03-01"))
		assert.NoError(t, err)
		assert.Empty(t, res.Rates)
	})

	t.Run("rates annotated with booking eligibility", func(t *testing.T) {
		openRate := model.RoomRate{
			ID:         "rate-open",
			RoomTypeID: "room-type-1",
			ValidFrom:  date("2026-04-01"),
			ValidTo:    date("2026-04-15"),
			PriceEP:    4500,
		}

		expiredRate := model.RoomRate{
			ID:                "rate-expired",
			RoomTypeID:        "room-type-1",
			ValidFrom:         date("2026-04-16"),
			ValidTo:           date("2026-04-30"),
			BookingValidUntil: datePtr("2026-02-28"),
			PriceEP:           5200,
		}

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		mockHotelRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(liveHotel, nil)

		mockRateRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RoomRate{openRate, expiredRate}, nil)

		res, err := svc.Resolve(context.Background(), "room-type-1", date("2026-04-01"), date("2026-04-30"), date("2026-03-01"))
		assert.NoError(t, err)
		assert.Len(t, res.Rates, 2)
		assert.True(t, res.Rates[0].Bookable)
		assert.False(t, res.Rates[1].Bookable)
	})

	t.Run("hotel-level cutoff gates every rate", func(t *testing.T) {
		gatedHotel := liveHotel
		gatedHotel.RateValidUntil = datePtr("2026-02-01")

		openRate := model.RoomRate{
			ID:         "rate-open",
			RoomTypeID: "room-type-1",
			ValidFrom:  date("2026-04-01"),
			ValidTo:    date("2026-04-15"),
			PriceEP:    4500,
		}

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		mockHotelRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(gatedHotel, nil)

		mockRateRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RoomRate{openRate}, nil)

		res, err := svc.Resolve(context.Background(), "room-type-1", date("2026-04-01"), date("2026-04-30"), date("2026-03-01"))
		assert.NoError(t, err)
		assert.Len(t, res.Rates, 1)
		assert.False(t, res.Rates[0].Bookable)
	})
}

func TestHotelService_TrashLifecycle(t *testing.T) {
	deletedAt := date("2026-03-01")

	live := model.Hotel{
		ID:   "hotel-1",
		Name: "Yak & Yeti",
		City: "Kathmandu",
	}

	trashed := live
	trashed.DeletedAt = &deletedAt

	newFixture := func(t *testing.T) (*hotelMocks.MockHotel, service.Hotel) {
		t.Helper()

		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		repo := hotelMocks.NewMockHotel(ctrl)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		// Cache invalidation runs on a goroutine after the write returns,
		// so its expectations are tolerant of timing.
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		svc := service.New(
			repo,
			hotelMocks.NewMockRoomType(ctrl),
			hotelMocks.NewMockRoomRate(ctrl),
			&config.Config{},
			cache,
			mocks.NewOtel(),
		)

		return repo, svc
	}

	t.Run("trash stamps deleted_at", func(t *testing.T) {
		repo, svc := newFixture(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(live, nil)

		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.NotNil(t, fields[model.FieldDeletedAt])

				return nil
			})

		assert.NoError(t, svc.Trash(context.Background(), "hotel-1"))
	})

	t.Run("trashing twice is a no-op", func(t *testing.T) {
		repo, svc := newFixture(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trashed, nil)

		assert.NoError(t, svc.Trash(context.Background(), "hotel-1"))
	})

	t.Run("restore clears deleted_at", func(t *testing.T) {
		repo, svc := newFixture(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trashed, nil)

		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Contains(t, fields, model.FieldDeletedAt)
				assert.Nil(t, fields[model.FieldDeletedAt])

				return nil
			})

		assert.NoError(t, svc.Restore(context.Background(), "hotel-1"))
	})

	t.Run("restoring an active hotel is a no-op", func(t *testing.T) {
		repo, svc := newFixture(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(live, nil)

		assert.NoError(t, svc.Restore(context.Background(), "hotel-1"))
	})

	t.Run("purge deletes a trashed hotel", func(t *testing.T) {
		repo, svc := newFixture(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trashed, nil)

		repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Purge(context.Background(), "hotel-1"))
	})

	t.Run("purge refuses an untrashed hotel", func(t *testing.T) {
		repo, svc := newFixture(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(live, nil)

		assert.Error(t, svc.Purge(context.Background(), "hotel-1"))
	})

	t.Run("purge of an unknown hotel is not found", func(t *testing.T) {
		repo, svc := newFixture(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{}, nil)

		err := svc.Purge(context.Background(), "missing")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
