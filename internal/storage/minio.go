// Package storage archives accepted resume uploads in S3-compatible object
// storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// KeyPrefix is prepended to every archived object name.
const KeyPrefix = "resumes/"

// Config holds the object storage connection settings.
type Config struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	UseSSL          bool   `json:"use_ssl" yaml:"use_ssl"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	Region          string `json:"region" yaml:"region"`
}

// Enabled reports whether an endpoint is configured.
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}

// ResumeArchive stores resume images in a single bucket.
type ResumeArchive struct {
	client *minio.Client
	bucket string
	log    zerolog.Logger
}

// NewResumeArchive connects to the endpoint and creates the bucket if needed.
func NewResumeArchive(ctx context.Context, cfg Config, log zerolog.Logger) (*ResumeArchive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	a := &ResumeArchive{client: client, bucket: cfg.Bucket, log: log}
	if err := a.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *ResumeArchive) ensureBucket(ctx context.Context, region string) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	a.log.Info().Str("bucket", a.bucket).Msg("created resume bucket")
	return nil
}

// Store uploads data under a fresh key and returns that key.
func (a *ResumeArchive) Store(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := ObjectKey(uuid.New(), filename, contentType)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", a.bucket, key, err)
	}
	a.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("archived resume")
	return key, nil
}

// Fetch downloads an archived object.
func (a *ResumeArchive) Fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", a.bucket, key, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", a.bucket, key, err)
	}
	return buf.Bytes(), nil
}

// Ping checks that the bucket is reachable.
func (a *ResumeArchive) Ping(ctx context.Context) error {
	_, err := a.client.BucketExists(ctx, a.bucket)
	return err
}

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/webp": ".webp",
}

// ObjectKey builds "resumes/<id><ext>". The extension comes from the
// filename, falling back to the content type.
func ObjectKey(id uuid.UUID, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 6 {
		ext = extByType[strings.ToLower(contentType)]
	}
	return KeyPrefix + id.String() + ext
}
