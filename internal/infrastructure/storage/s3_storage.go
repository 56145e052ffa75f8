package storage

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	documentapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

const (
	defaultRegion            = "us-east-1"
	defaultPresignExpiration = 15 * time.Minute
)

// error codes S3 and MinIO return for a missing bucket or key
var missingCodes = []string{"NotFound", "NoSuchKey", "NoSuchBucket"}

var _ documentapp.ObjectStorage = (*S3ObjectStorage)(nil)

// S3ObjectStorage keeps uploaded files in an S3-compatible bucket (AWS S3, MinIO).
type S3ObjectStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	presignExpiration time.Duration
	logger            *zap.Logger
}

type S3Option func(*S3ObjectStorage)

func WithLogger(logger *zap.Logger) S3Option {
	return func(s *S3ObjectStorage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPresignExpiration overrides the lifetime of generated download URLs
func WithPresignExpiration(d time.Duration) S3Option {
	return func(s *S3ObjectStorage) {
		s.presignExpiration = d
	}
}

func validateS3Config(cfg *config.StorageConfig) error {
	if cfg == nil {
		return errors.New("storage configuration is required")
	}
	var errs []error
	for _, f := range []struct{ value, name string }{
		{cfg.Bucket, "bucket"},
		{cfg.AccessKey, "access key"},
		{cfg.SecretKey, "secret key"},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("storage %s is required", f.name))
		}
	}
	return errors.Join(errs...)
}

// NewS3ObjectStorage builds an S3 client from the storage section of the config.
// Static credentials from the config win over the environment.
func NewS3ObjectStorage(cfg *config.StorageConfig, opts ...S3Option) (*S3ObjectStorage, error) {
	if err := validateS3Config(cfg); err != nil {
		return nil, err
	}
	endpoint, err := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cmp.Or(cfg.Region, defaultRegion)),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3ObjectStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		presignExpiration: cfg.PresignExpiration,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presignExpiration <= 0 {
		s.presignExpiration = defaultPresignExpiration
	}
	return s, nil
}

// normalizeEndpoint adds a scheme to host:port endpoints. An empty endpoint
// means the regional AWS endpoint.
func normalizeEndpoint(endpoint string, useSSL bool) (string, error) {
	if endpoint == "" {
		return "", nil
	}
	if !strings.Contains(endpoint, "://") {
		scheme := "http://"
		if useSSL {
			scheme = "https://"
		}
		endpoint = scheme + endpoint
	}
	if u, err := url.Parse(endpoint); err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid storage endpoint %q", endpoint)
	}
	return endpoint, nil
}

// isMissing reports not-found responses by API error code. HEAD responses
// carry no body, so the typed errors are not always populated.
func isMissing(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return slices.Contains(missingCodes, apiErr.ErrorCode())
	}
	return false
}

func isCode(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}

// EnsureBucket creates the bucket when it is missing. Called once at startup.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	switch {
	case err == nil:
		return nil
	case !isMissing(err):
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil && !isCode(err, "BucketAlreadyOwnedByYou") {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3ObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	s.logger.Debug("Stored object", zap.String("key", key), zap.Int("size", len(data)))
	return nil
}

// GenerateDownloadURL presigns a GET for key. A non-positive expiresIn uses
// the configured default.
func (s *S3ObjectStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}
	signedAt := time.Now()
	req, err := s.presignClient.PresignGetObject(ctx,
		&s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)},
		s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, signedAt.Add(expiresIn), nil
}

// DeleteObject removes key. S3 reports success for keys that do not exist.
func (s *S3ObjectStorage) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil && !isMissing(err) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3ObjectStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	switch {
	case err == nil:
		return true, nil
	case isMissing(err):
		return false, nil
	default:
		return false, fmt.Errorf("head object %s: %w", key, err)
	}
}

func (s *S3ObjectStorage) Bucket() string {
	return s.bucket
}
