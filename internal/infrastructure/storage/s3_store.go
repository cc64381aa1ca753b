// Package storage provides the durable stores for rendered invoice documents.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	infraconfig "github.com/pharmaledger/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// S3DocumentStore stores invoice documents in S3 or any S3-compatible
// backend (MinIO and friends via a custom endpoint).
type S3DocumentStore struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3DocumentStore creates an S3-backed document store from configuration.
// Credentials come from the environment through the default AWS chain unless
// accessKey and secretKey are set.
func NewS3DocumentStore(cfg *infraconfig.StorageConfig, accessKey, secretKey string, logger *zap.Logger) (*S3DocumentStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3DocumentStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Store uploads the document and returns its s3:// location
func (s *S3DocumentStore) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	location := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	s.logger.Debug("document stored", zap.String("location", location))
	return location, nil
}
