package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/config"
	"github.com/tartil-app/recital-service/internal/models"
)

// Presigner is the slice of the audio store the upload flow needs.
type Presigner interface {
	PresignedUpload(ctx context.Context, key string, expiry time.Duration) (string, error)
	PublicURL(key string) string
}

type UploadService interface {
	CreateUploadURL(ctx context.Context, req *models.UploadURLRequest) (*models.UploadURLResponse, error)
}

type uploadService struct {
	store  Presigner
	cfg    config.UploadConfig
	logger zerolog.Logger
}

func NewUploadService(store Presigner, cfg config.UploadConfig, logger zerolog.Logger) UploadService {
	return &uploadService{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// CreateUploadURL issues a presigned PUT URL for a single object key. The
// client uploads the recording straight to storage and then registers the
// submission with the returned file URL.
func (s *uploadService) CreateUploadURL(ctx context.Context, req *models.UploadURLRequest) (*models.UploadURLResponse, error) {
	if !s.isAllowedType(req.FileType) {
		return nil, ErrInvalidFileType
	}

	key := fmt.Sprintf("%s/%d-%s", s.cfg.KeyPrefix, time.Now().UnixMilli(), sanitizeFileName(req.FileName))

	uploadURL, err := s.store.PresignedUpload(ctx, key, s.cfg.URLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	s.logger.Info().
		Str("key", key).
		Str("file_type", req.FileType).
		Msg("Upload URL issued")

	return &models.UploadURLResponse{
		UploadURL: uploadURL,
		FileURL:   s.store.PublicURL(key),
		Key:       key,
	}, nil
}

func (s *uploadService) isAllowedType(fileType string) bool {
	for _, allowed := range s.cfg.AllowedTypes {
		if strings.HasPrefix(fileType, allowed) {
			return true
		}
	}
	return false
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")
	return name
}
