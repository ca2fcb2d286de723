package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Uploader implements Uploader on top of an S3 bucket with public reads.
type s3Uploader struct {
	client *s3.Client
	bucket string
	region string
	logger zerolog.Logger
}

// NewS3Uploader creates an S3-backed image uploader.
func NewS3Uploader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Uploader, error) {
	logger = logger.With().Str("component", "s3-uploader").Logger()

	// Load AWS configuration
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 uploader initialised")

	return &s3Uploader{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}, nil
}

// Upload stores the blob under key and returns its public URL. A failed
// upload returns an error and nothing is persisted; callers must not fall
// back to an empty URL.
func (u *s3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	u.logger.Info().
		Str("bucket", u.bucket).
		Str("key", key).
		Msg("uploading image to S3")

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to upload image to S3 (bucket=%s, key=%s): %w", u.bucket, key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)

	u.logger.Info().
		Str("key", key).
		Str("url", url).
		Msg("image uploaded to S3")

	return url, nil
}
