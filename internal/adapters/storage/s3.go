package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"campusevents/internal/domain"
)

// MaxPictureSize is the maximum allowed profile picture upload (5MB).
const MaxPictureSize = 5 * 1024 * 1024

// allowedPictureTypes maps accepted MIME types to their stored extension.
var allowedPictureTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// S3Config holds S3 client configuration for picture storage.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

type s3Storage struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

// NewS3 creates a PictureStorage backed by S3. Credentials fall back to the
// default AWS chain when not set explicitly.
func NewS3(ctx context.Context, cfg S3Config) (domain.PictureStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &s3Storage{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
	}, nil
}

func (s *s3Storage) UploadPicture(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	if size > MaxPictureSize {
		return "", fmt.Errorf("%w: picture exceeds %d bytes", domain.ErrInvalidInput, MaxPictureSize)
	}
	ext, ok := allowedPictureTypes[strings.ToLower(contentType)]
	if !ok {
		ext = strings.ToLower(path.Ext(filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			return "", fmt.Errorf("%w: unsupported picture type %q", domain.ErrInvalidInput, contentType)
		}
	}
	key := "profiles/" + uuid.NewString() + ext
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload picture: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

type noopStorage struct{}

// NewNoop returns a PictureStorage that discards uploads; deployments without
// object storage keep the existing picture URL.
func NewNoop() domain.PictureStorage {
	return &noopStorage{}
}

func (n *noopStorage) UploadPicture(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	log.Println("[STORAGE] Picture upload skipped (noop)", "filename", filename)
	return "", nil
}
