package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"himalayandays/config"
	kafkaMocks "himalayandays/infras/kafka/mocks"
	"himalayandays/infras/otel/mocks"
	telegramMocks "himalayandays/infras/telegram/mocks"
	inquiryMocks "himalayandays/internal/domains/inquiry/mocks"
	"himalayandays/internal/domains/inquiry/model"
	"himalayandays/internal/domains/inquiry/model/dto"
	"himalayandays/internal/domains/inquiry/service"
	cacheMocks "himalayandays/shared/cache/mocks"
	gModel "himalayandays/shared/model"
)

type inquiryFixture struct {
	repo     *inquiryMocks.MockInquiry
	cache    *cacheMocks.MockRedisCache
	notifier *telegramMocks.MockNotifier
	events   *kafkaMocks.MockClient
	svc      service.Inquiry
}

func newInquiryFixture(t *testing.T, cfg *config.Config) *inquiryFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &inquiryFixture{
		repo:     inquiryMocks.NewMockInquiry(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		notifier: telegramMocks.NewMockNotifier(ctrl),
		events:   kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.notifier, f.events)

	return f
}

// Relay and cache invalidation run on goroutines after Create returns, so
// their expectations are tolerant of timing.
func (f *inquiryFixture) allowAsyncSideEffects() {
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.events.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestInquiryService_Create(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Topics.InquiryCreated = "inquiry.created"

	req := dto.CreateInquiryRequest{
		Name:    "Tashi Sherpa",
		Phone:   "+9779812345678",
		Message: "Looking for a 5-night Pokhara package in April.",
	}

	t.Run("inserts with pending status", func(t *testing.T) {
		f := newInquiryFixture(t, cfg)
		f.allowAsyncSideEffects()

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inquiry model.Inquiry) error {
				assert.Equal(t, model.StatusPending, inquiry.Status)
				assert.Equal(t, model.TypeGeneral, inquiry.Type)
				assert.NotEmpty(t, inquiry.ID)

				return nil
			})

		err := f.svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("insert failure surfaces to the caller", func(t *testing.T) {
		f := newInquiryFixture(t, cfg)
		f.allowAsyncSideEffects()

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("connection refused"))

		err := f.svc.Create(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestInquiryService_UpdateStatus(t *testing.T) {
	pendingInquiry := model.Inquiry{
		ID:     "inq-1",
		Name:   "Tashi Sherpa",
		Phone:  "+9779812345678",
		Type:   model.TypeGeneral,
		Status: model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt: time.Now(),
		},
	}

	t.Run("allowed transition updates the row", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})
		f.allowAsyncSideEffects()

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingInquiry, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusContacted, fields[model.FieldStatus])

				return nil
			})

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusContacted}, "inq-1")
		assert.NoError(t, err)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingInquiry, nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusPending}, "inq-1")
		assert.NoError(t, err)
	})

	t.Run("disallowed transition rejected", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingInquiry, nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusWon}, "inq-1")
		assert.Error(t, err)
	})

	t.Run("inquiry not found", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Inquiry{}, nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusContacted}, "missing")
		assert.Error(t, err)
	})
}

func TestInquiryService_ConvertWon(t *testing.T) {
	base := model.Inquiry{
		ID:     "inq-1",
		Name:   "Tashi Sherpa",
		Status: model.StatusPending,
	}

	t.Run("converts from any live stage", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})
		f.allowAsyncSideEffects()

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(base, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusWon, fields[model.FieldStatus])

				return nil
			})

		err := f.svc.ConvertWon(context.Background(), "inq-1")
		assert.NoError(t, err)
	})

	t.Run("already won is idempotent", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		won := base
		won.Status = model.StatusWon

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(won, nil)

		err := f.svc.ConvertWon(context.Background(), "inq-1")
		assert.NoError(t, err)
	})

	t.Run("lost inquiry cannot be converted", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		lost := base
		lost.Status = model.StatusLost

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(lost, nil)

		err := f.svc.ConvertWon(context.Background(), "inq-1")
		assert.Error(t, err)
	})

	t.Run("trashed inquiry is treated as missing", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		deletedAt := time.Now()
		trashed := base
		trashed.DeletedAt = &deletedAt

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trashed, nil)

		err := f.svc.ConvertWon(context.Background(), "inq-1")
		assert.Error(t, err)
	})
}

func TestInquiryService_CheckForNew(t *testing.T) {
	since := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).UnixMilli()

	t.Run("no new inquiries keeps the cursor", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		res, err := f.svc.CheckForNew(context.Background(), since)
		assert.NoError(t, err)
		assert.False(t, res.HasNew)
		assert.Zero(t, res.Count)
		assert.Equal(t, since, res.NewTimestamp)
	})

	t.Run("advances the cursor to the newest arrival", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		newest := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Inquiry{
				{
					ID:       "inq-9",
					Metadata: gModel.Metadata{CreatedAt: newest},
				},
			}, nil)

		res, err := f.svc.CheckForNew(context.Background(), since)
		assert.NoError(t, err)
		assert.True(t, res.HasNew)
		assert.Equal(t, 2, res.Count)
		assert.Equal(t, newest.UnixMilli(), res.NewTimestamp)
	})

	t.Run("count failure surfaces", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("connection refused"))

		_, err := f.svc.CheckForNew(context.Background(), since)
		assert.Error(t, err)
	})
}

func TestInquiryService_TrashLifecycle(t *testing.T) {
	deletedAt := time.Now()

	live := model.Inquiry{
		ID:     "inq-1",
		Name:   "Tashi Sherpa",
		Status: model.StatusPending,
	}

	trashed := live
	trashed.DeletedAt = &deletedAt

	t.Run("trash stamps deleted_at", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})
		f.allowAsyncSideEffects()

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(live, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.NotNil(t, fields[model.FieldDeletedAt])

				return nil
			})

		err := f.svc.Trash(context.Background(), "inq-1")
		assert.NoError(t, err)
	})

	t.Run("trashing twice is a no-op", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trashed, nil)

		err := f.svc.Trash(context.Background(), "inq-1")
		assert.NoError(t, err)
	})

	t.Run("restore clears deleted_at", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})
		f.allowAsyncSideEffects()

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trashed, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Contains(t, fields, model.FieldDeletedAt)
				assert.Nil(t, fields[model.FieldDeletedAt])

				return nil
			})

		err := f.svc.Restore(context.Background(), "inq-1")
		assert.NoError(t, err)
	})

	t.Run("restoring an active inquiry is a no-op", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(live, nil)

		err := f.svc.Restore(context.Background(), "inq-1")
		assert.NoError(t, err)
	})

	t.Run("purge deletes a trashed inquiry", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})
		f.allowAsyncSideEffects()

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trashed, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Purge(context.Background(), "inq-1")
		assert.NoError(t, err)
	})

	t.Run("purge refuses an untrashed inquiry", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(live, nil)

		err := f.svc.Purge(context.Background(), "inq-1")
		assert.Error(t, err)
	})

	t.Run("trash then restore rejoins the active list", func(t *testing.T) {
		f := newInquiryFixture(t, &config.Config{})
		f.allowAsyncSideEffects()

		gomock.InOrder(
			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(live, nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil),
			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(trashed, nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					assert.Nil(t, fields[model.FieldDeletedAt])

					return nil
				}),
		)

		assert.NoError(t, f.svc.Trash(context.Background(), "inq-1"))
		assert.NoError(t, f.svc.Restore(context.Background(), "inq-1"))
	})
}
