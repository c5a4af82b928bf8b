package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"himalayandays/config"
	"himalayandays/infras/otel/mocks"
	tourMocks "himalayandays/internal/domains/tour/mocks"
	"himalayandays/internal/domains/tour/model"
	"himalayandays/internal/domains/tour/model/dto"
	"himalayandays/internal/domains/tour/service"
	cacheMocks "himalayandays/shared/cache/mocks"
	gModel "himalayandays/shared/model"
)

var errCacheMiss = errors.New("cache miss")

func newTourFixture(t *testing.T) (service.Tour, *tourMocks.MockPackage, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := tourMocks.NewMockPackage(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	// Cache invalidation and saves happen on goroutines after the call.
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.App.BaseURL = "https://himalayandays.example.com/"

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestTourService_Create(t *testing.T) {
	req := dto.CreatePackageRequest{
		Title:        "Everest Panorama",
		Slug:         "everest-panorama",
		Destination:  "Khumbu",
		DurationDays: 7,
		Price:        95000,
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, mockRepo, _ := newTourFixture(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("taken slug rejected", func(t *testing.T) {
		svc, mockRepo, _ := newTourFixture(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Create(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestTourService_GetBySlug(t *testing.T) {
	published := model.Package{
		ID:          "pkg-1",
		Title:       "Everest Panorama",
		Slug:        "everest-panorama",
		IsPublished: true,
	}

	t.Run("published package is public", func(t *testing.T) {
		svc, mockRepo, _ := newTourFixture(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(published, nil)

		res, err := svc.GetBySlug(context.Background(), "everest-panorama")
		assert.NoError(t, err)
		assert.Equal(t, "pkg-1", res.ID)
	})

	t.Run("unpublished package reads as missing", func(t *testing.T) {
		svc, mockRepo, _ := newTourFixture(t)

		draft := published
		draft.IsPublished = false

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(draft, nil)

		_, err := svc.GetBySlug(context.Background(), "everest-panorama")
		assert.Error(t, err)
	})

	t.Run("unknown slug", func(t *testing.T) {
		svc, mockRepo, _ := newTourFixture(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		_, err := svc.GetBySlug(context.Background(), "nope")
		assert.Error(t, err)
	})
}

func TestTourService_Sitemap(t *testing.T) {
	modifiedAt := time.Date(2026, 2, 14, 16, 0, 0, 0, time.UTC)

	t.Run("static pages plus published packages", func(t *testing.T) {
		svc, mockRepo, mockCache := newTourFixture(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errCacheMiss)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Package{
				{
					ID:          "pkg-1",
					Slug:        "everest-panorama",
					IsPublished: true,
					Metadata:    gModel.Metadata{ModifiedAt: modifiedAt},
				},
			}, nil)

		res, err := svc.Sitemap(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", res.Xmlns)
		assert.Len(t, res.URLs, 5)
		assert.Equal(t, "https://himalayandays.example.com/", res.URLs[0].Loc)

		last := res.URLs[len(res.URLs)-1]
		assert.Equal(t, "https://himalayandays.example.com/packages/everest-panorama", last.Loc)
		assert.Equal(t, "2026-02-14", last.LastMod)
	})

	t.Run("no published packages still lists static pages", func(t *testing.T) {
		svc, mockRepo, mockCache := newTourFixture(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errCacheMiss)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Package{}, nil)

		res, err := svc.Sitemap(context.Background())
		assert.NoError(t, err)
		assert.Len(t, res.URLs, 4)
	})
}

func TestTourService_Publish(t *testing.T) {
	t.Run("flips the published flag", func(t *testing.T) {
		svc, mockRepo, _ := newTourFixture(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields[model.FieldIsPublished])

				return nil
			})

		err := svc.Publish(context.Background(), dto.PublishPackageRequest{IsPublished: true}, "pkg-1")
		assert.NoError(t, err)
	})

	t.Run("package not found", func(t *testing.T) {
		svc, mockRepo, _ := newTourFixture(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Publish(context.Background(), dto.PublishPackageRequest{IsPublished: true}, "missing")
		assert.Error(t, err)
	})
}
