// Package storage publishes generated trackers to S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/application"
)

// DefaultPresignExpiry applies when S3Config leaves PresignExpiry unset.
const DefaultPresignExpiry = 15 * time.Minute

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PresignExpiry   time.Duration
}

// S3 uploads trackers and hands out presigned download links.
type S3 struct {
	client   *s3.Client
	presign  *s3.PresignClient
	uploader *manager.Uploader
	cfg      S3Config
	logger   *zap.Logger
	now      func() time.Time
}

var _ application.Publisher = (*S3)(nil)

// NewS3 creates an S3 client. Static credentials come from cfg or from
// AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY; otherwise the default credential chain
// is used.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, eris.New("storage: bucket is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	accessKey := cfg.AccessKeyID
	secretKey := cfg.SecretAccessKey
	if accessKey == "" || secretKey == "" {
		accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
		logger.Info("S3 publisher using static credentials",
			zap.String("region", cfg.Region), zap.String("bucket", cfg.Bucket))
	} else {
		logger.Warn("S3 publisher using the default credential chain")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "storage: load aws config")
	}
	if cfg.Region == "" {
		cfg.Region = awsCfg.Region
	}
	client := s3.NewFromConfig(awsCfg)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
	})
	return &S3{
		client:   client,
		presign:  s3.NewPresignClient(client),
		uploader: uploader,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Bucket returns the target bucket name.
func (s *S3) Bucket() string { return s.cfg.Bucket }

// PresignExpiry returns how long download links stay valid.
func (s *S3) PresignExpiry() time.Duration {
	if s.cfg.PresignExpiry <= 0 {
		return DefaultPresignExpiry
	}
	return s.cfg.PresignExpiry
}

// ObjectURL returns the s3:// location of key.
func (s *S3) ObjectURL(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key)
}

// Publish uploads body under key and returns a presigned GET link to it.
func (s *S3) Publish(ctx context.Context, key, contentType string, body []byte) (application.Publication, error) {
	size := int64(len(body))
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: &size,
	})
	if err != nil {
		return application.Publication{}, eris.Wrapf(err, "storage: upload %s", key)
	}

	url, expires, err := s.PresignedDownloadURL(ctx, key)
	if err != nil {
		return application.Publication{}, err
	}
	s.logger.Debug("tracker uploaded",
		zap.String("bucket", s.cfg.Bucket), zap.String("key", key), zap.Int64("bytes", size))
	return application.Publication{
		Location:    s.ObjectURL(key),
		DownloadURL: url,
		ExpiresAt:   expires,
	}, nil
}

// PresignedDownloadURL returns a presigned GET URL for key and its expiry instant.
func (s *S3) PresignedDownloadURL(ctx context.Context, key string) (string, time.Time, error) {
	expiry := s.PresignExpiry()
	issued := s.now()
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", time.Time{}, eris.Wrapf(err, "storage: presign %s", key)
	}
	return req.URL, issued.Add(expiry), nil
}
