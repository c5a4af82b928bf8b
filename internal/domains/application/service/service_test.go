package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"himalayandays/config"
	"himalayandays/infras/otel/mocks"
	"himalayandays/infras/s3"
	s3Mocks "himalayandays/infras/s3/mocks"
	applicationMocks "himalayandays/internal/domains/application/mocks"
	"himalayandays/internal/domains/application/model"
	"himalayandays/internal/domains/application/service"
	"himalayandays/shared/failure"
)

func newApplicationService(t *testing.T) (service.Application, *applicationMocks.MockApplication, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := applicationMocks.NewMockApplication(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "himalayandays-uploads"

	svc := service.New(mockRepo, cfg, mocks.NewOtel(), mockS3)

	return svc, mockRepo, mockS3
}

func TestApplicationService_Resume(t *testing.T) {
	stored := model.Application{
		ID:         "app-1",
		Name:       "Pema Gurung",
		Position:   "Tour Coordinator",
		ResumeKey:  "resumes/9b2d7c.pdf",
		ResumeName: "pema-gurung-cv.pdf",
		ResumeType: "application/pdf",
	}

	t.Run("returns the stored blob", func(t *testing.T) {
		svc, mockRepo, mockS3 := newApplicationService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		mockS3.EXPECT().
			DownloadFile(gomock.Any(), "himalayandays-uploads", stored.ResumeKey).
			Return([]byte("%PDF-1.7"), "application/pdf", nil)

		res, err := svc.Resume(context.Background(), "app-1")
		assert.NoError(t, err)
		assert.Equal(t, stored.ResumeName, res.FileName)
		assert.Equal(t, "application/pdf", res.ContentType)
		assert.Equal(t, []byte("%PDF-1.7"), res.Data)
	})

	t.Run("falls back to the stored content type", func(t *testing.T) {
		svc, mockRepo, mockS3 := newApplicationService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		mockS3.EXPECT().
			DownloadFile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte("%PDF-1.7"), "", nil)

		res, err := svc.Resume(context.Background(), "app-1")
		assert.NoError(t, err)
		assert.Equal(t, stored.ResumeType, res.ContentType)
	})

	t.Run("application not found", func(t *testing.T) {
		svc, mockRepo, _ := newApplicationService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Application{}, nil)

		_, err := svc.Resume(context.Background(), "missing")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("missing blob reads as not found", func(t *testing.T) {
		svc, mockRepo, mockS3 := newApplicationService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		mockS3.EXPECT().
			DownloadFile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, "", s3.ErrObjectNotFound)

		_, err := svc.Resume(context.Background(), "app-1")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("other storage failures are not masked", func(t *testing.T) {
		svc, mockRepo, mockS3 := newApplicationService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		mockS3.EXPECT().
			DownloadFile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, "", errors.New("access denied"))

		_, err := svc.Resume(context.Background(), "app-1")
		assert.Error(t, err)
		assert.NotEqual(t, 404, failure.GetCode(err))
	})
}

func TestApplicationService_Delete(t *testing.T) {
	stored := model.Application{
		ID:        "app-1",
		ResumeKey: "resumes/9b2d7c.pdf",
	}

	t.Run("removes the row and the blob", func(t *testing.T) {
		svc, mockRepo, mockS3 := newApplicationService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "himalayandays-uploads", model.ResumeDirectory, "9b2d7c.pdf").
			Return(nil)

		err := svc.Delete(context.Background(), "app-1")
		assert.NoError(t, err)
	})

	t.Run("orphaned blob does not fail the delete", func(t *testing.T) {
		svc, mockRepo, mockS3 := newApplicationService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockS3.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("access denied"))

		err := svc.Delete(context.Background(), "app-1")
		assert.NoError(t, err)
	})

	t.Run("application not found", func(t *testing.T) {
		svc, mockRepo, _ := newApplicationService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Application{}, nil)

		err := svc.Delete(context.Background(), "missing")
		assert.Error(t, err)
	})
}
