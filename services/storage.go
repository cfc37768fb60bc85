package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/foodgram-app/backend/config"
	"github.com/foodgram-app/backend/logger"
)

// MediaStorage stores uploaded media files and resolves their public
// URLs. Keys are paths relative to the media root, e.g.
// "recipes/3f2a.png".
type MediaStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// S3Storage is an S3-compatible MediaStorage implementation.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	endpoint  string
	mediaRoot string
}

func NewS3Storage(cfg config.StorageConfig) (*S3Storage, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: cfg.Endpoint,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	return &S3Storage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		mediaRoot: strings.Trim(cfg.MediaRoot, "/"),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	start := time.Now()
	path := s.objectPath(key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	logger.LogStorage("upload", path, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	start := time.Now()
	path := s.objectPath(key)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	logger.LogStorage("delete", path, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *S3Storage) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, s.objectPath(key))
}

func (s *S3Storage) objectPath(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.mediaRoot == "" {
		return key
	}
	return s.mediaRoot + "/" + key
}
