package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/config"
)

// AudioStore wraps the MinIO client for the audio bucket. Uploads never pass
// through this process: clients PUT directly against presigned URLs.
type AudioStore struct {
	client         *minio.Client
	bucket         string
	region         string
	publicEndpoint string
	logger         zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

func NewAudioStore(cfg config.StorageConfig, logger zerolog.Logger) (*AudioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &AudioStore{
		client:         client,
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		publicEndpoint: strings.TrimRight(cfg.PublicEndpoint, "/"),
		logger:         logger,
	}

	// Best-effort bootstrap: do not fail startup when MinIO is not ready yet,
	// e.g. while the rest of docker-compose is still coming up.
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := store.ensureBucket(ctx); err != nil {
		logger.Error().Err(err).
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Msg("MinIO not ready during startup; will retry on demand")
	} else {
		logger.Info().
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Bool("ssl", cfg.UseSSL).
			Msg("Connected to MinIO")
	}

	return store, nil
}

func (s *AudioStore) ensureBucket(ctx context.Context) error {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	if s.bucketEnsured {
		return nil
	}

	backoff := 500 * time.Millisecond
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("minio not ready: %w", err)
		}

		if s.tryEnsureBucket(ctx) {
			s.bucketEnsured = true
			return nil
		}

		time.Sleep(backoff)
		if backoff < 8*time.Second {
			backoff *= 2
		}
	}
}

func (s *AudioStore) tryEnsureBucket(ctx context.Context) bool {
	if _, err := s.client.ListBuckets(ctx); err != nil {
		return false
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return false
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return false
		}
		s.logger.Info().Str("bucket", s.bucket).Msg("Created new bucket")
	}

	return true
}

// PresignedUpload returns a time-limited URL allowing a single PUT of the
// given object key.
func (s *AudioStore) PresignedUpload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}

	s.logger.Debug().
		Str("bucket", s.bucket).
		Str("key", key).
		Dur("expiry", expiry).
		Msg("Presigned upload URL issued")

	return u.String(), nil
}

// PublicURL returns the stable URL a stored object is readable at.
func (s *AudioStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicEndpoint, s.bucket, key)
}
