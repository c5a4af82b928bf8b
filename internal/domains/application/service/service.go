package service

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"himalayandays/config"
	"himalayandays/infras/otel"
	"himalayandays/infras/s3"
	"himalayandays/internal/domains/application/model"
	"himalayandays/internal/domains/application/model/dto"
	"himalayandays/internal/domains/application/repository"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/failure"
	gModel "himalayandays/shared/model"
	"himalayandays/shared/timezone"
)

type Application interface {
	Create(ctx context.Context, req dto.CreateApplicationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetApplicationsResponse, error)
	Get(ctx context.Context, id string) (dto.ApplicationResponse, error)
	Resume(ctx context.Context, id string) (dto.ResumeResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Application
	cfg  *config.Config
	otel otel.Otel
	s3   s3.S3
}

func New(repo repository.Application, cfg *config.Config, otel otel.Otel, s3 s3.S3) Application {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
		s3:   s3,
	}
}

// Create stores the resume blob first, then the application row pointing at
// it. A failed upload means no row is written.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateApplicationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := s.cfg.External.S3.BucketName

	// Object names are random so two applicants named resume.pdf never
	// clobber each other.
	fileName := uuid.NewString() + path.Ext(req.Resume.Filename)

	if _, err = s.s3.UploadFile(ctx, bucketName, model.ResumeDirectory, req.ResumeFile, req.Resume, fileName); err != nil {
		log.Error().Err(err).Msg("failed to upload resume to S3")

		return fmt.Errorf("failed to upload resume to S3: %w", err)
	}

	application := model.Application{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Position:    req.Position,
		CoverLetter: req.CoverLetter,
		ResumeKey:   path.Join(model.ResumeDirectory, fileName),
		ResumeName:  req.Resume.Filename,
		ResumeType:  req.Resume.Header.Get(constant.RequestHeaderContentType),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	if err = s.repo.Insert(ctx, application); err != nil {
		log.Error().Err(err).Msg("failed to create job application")

		return fmt.Errorf("failed to create job application: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetApplicationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count job applications")

		return res, fmt.Errorf("failed to count job applications: %w", err)
	}

	applications, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get job applications")

		return res, fmt.Errorf("failed to get job applications: %w", err)
	}

	res.FromModels(applications, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ApplicationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	application, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get job application")

		return res, fmt.Errorf("failed to get job application: %w", err)
	}

	if application.ID == constant.Empty {
		return res, failure.NotFound("job application not found") //nolint:wrapcheck
	}

	res.FromModel(application)

	return res, nil
}

// Resume fetches the stored resume blob. A missing S3 object is reported the
// same way as a missing application.
func (s *serviceImpl) Resume(ctx context.Context, id string) (res dto.ResumeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resume")
	defer scope.End()
	defer scope.TraceIfError(err)

	application, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get job application: %w", err)
	}

	if application.ID == constant.Empty {
		return res, failure.NotFound("job application not found") //nolint:wrapcheck
	}

	data, contentType, err := s.s3.DownloadFile(ctx, s.cfg.External.S3.BucketName, application.ResumeKey)
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) {
			return res, failure.NotFound("resume not found") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to download resume from S3")

		return res, fmt.Errorf("failed to download resume from S3: %w", err)
	}

	if contentType == constant.Empty {
		contentType = application.ResumeType
	}

	res.FileName = application.ResumeName
	res.ContentType = contentType
	res.Data = data

	return res, nil
}

// Delete removes the application row and its resume blob.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	application, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get job application: %w", err)
	}

	if application.ID == constant.Empty {
		return failure.NotFound("job application not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete job application")

		return fmt.Errorf("failed to delete job application: %w", err)
	}

	objectName := path.Base(application.ResumeKey)
	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.ResumeDirectory, objectName); err != nil {
		// The row is already gone; an orphaned blob is logged, not fatal.
		log.Error().Err(err).Str("resume_key", application.ResumeKey).Msg("failed to delete resume from S3")
	}

	return nil
}
