package service

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"himalayandays/config"
	"himalayandays/infras/otel"
	"himalayandays/infras/s3"
	"himalayandays/internal/domains/media/model/dto"
	"himalayandays/shared/constant"
)

// UploadDirectory is the object-key prefix for admin media uploads.
const UploadDirectory = "uploads"

type Media interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (dto.UploadResponse, error)
}

type serviceImpl struct {
	cfg  *config.Config
	s3   s3.S3
	otel otel.Otel
}

func New(cfg *config.Config, s3 s3.S3, otel otel.Otel) Media {
	return &serviceImpl{
		cfg:  cfg,
		s3:   s3,
		otel: otel,
	}
}

// Upload stores a raw binary payload in blob storage under a generated key.
// The original file name only contributes its extension; the key itself is
// a UUID so uploads never collide or overwrite each other.
func (s *serviceImpl) Upload(ctx context.Context, fileName, contentType string, data []byte) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	if contentType == constant.Empty {
		contentType = http.DetectContentType(data)
	}

	objectName := uuid.NewString() + path.Ext(fileName)

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, UploadDirectory, objectName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload media")

		return res, fmt.Errorf("failed to upload media: %w", err)
	}

	res = dto.UploadResponse{
		URL:         url,
		Key:         path.Join(UploadDirectory, objectName),
		Size:        int64(len(data)),
		ContentType: contentType,
	}

	return res, nil
}
