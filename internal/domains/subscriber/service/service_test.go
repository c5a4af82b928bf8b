package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"himalayandays/config"
	"himalayandays/infras/otel/mocks"
	subscriberMocks "himalayandays/internal/domains/subscriber/mocks"
	"himalayandays/internal/domains/subscriber/model"
	"himalayandays/internal/domains/subscriber/model/dto"
	"himalayandays/internal/domains/subscriber/service"
	cacheMocks "himalayandays/shared/cache/mocks"
)

func newSubscriberService(t *testing.T) (service.Subscriber, *subscriberMocks.MockSubscriber) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := subscriberMocks.NewMockSubscriber(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	// Cache invalidation happens on a goroutine after writes.
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	return svc, mockRepo
}

func TestSubscriberService_Subscribe(t *testing.T) {
	req := dto.SubscribeRequest{Email: "traveler@example.com"}

	t.Run("new email", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Subscribe(gomock.Any(), gomock.Any()).
			Return(model.OutcomeCreated, nil)

		res, err := svc.Subscribe(context.Background(), req)
		assert.NoError(t, err)
		assert.Equal(t, req.Email, res.Email)
		assert.False(t, res.Reactivated)
	})

	t.Run("previously unsubscribed email is reactivated", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Subscribe(gomock.Any(), gomock.Any()).
			Return(model.OutcomeReactivated, nil)

		res, err := svc.Subscribe(context.Background(), req)
		assert.NoError(t, err)
		assert.True(t, res.Reactivated)
	})

	t.Run("already active email conflicts", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Subscribe(gomock.Any(), gomock.Any()).
			Return(model.OutcomeAlreadyActive, nil)

		_, err := svc.Subscribe(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Subscribe(gomock.Any(), gomock.Any()).
			Return(model.SubscribeOutcome(""), errors.New("connection refused"))

		_, err := svc.Subscribe(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestSubscriberService_Unsubscribe(t *testing.T) {
	req := dto.UnsubscribeRequest{Email: "traveler@example.com"}

	t.Run("deactivates an active subscriber", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Subscriber{ID: "sub-1", Email: req.Email, IsActive: true}, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, false, fields[model.FieldIsActive])
				assert.NotNil(t, fields[model.FieldUnsubscribedAt])

				return nil
			})

		err := svc.Unsubscribe(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("already inactive is a no-op", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Subscriber{ID: "sub-1", Email: req.Email, IsActive: false}, nil)

		err := svc.Unsubscribe(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Subscriber{}, nil)

		err := svc.Unsubscribe(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestSubscriberService_Delete(t *testing.T) {
	t.Run("deletes an existing subscriber", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), "sub-1")
		assert.NoError(t, err)
	})

	t.Run("subscriber not found", func(t *testing.T) {
		svc, mockRepo := newSubscriberService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "missing")
		assert.Error(t, err)
	})
}
