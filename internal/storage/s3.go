package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const s3Region = "us-east-1"

// s3Backend targets any S3-compatible endpoint; in practice that is MinIO.
type s3Backend struct {
	client   *s3.Client
	cfg      S3Config
	endpoint string
	logger   *zap.Logger

	bucketMu    sync.Mutex
	bucketReady bool
}

func newS3Backend(cfg S3Config, logger *zap.Logger) (*s3Backend, error) {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	endpoint := fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	if cfg.Port > 0 {
		endpoint = fmt.Sprintf("%s:%d", endpoint, cfg.Port)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &s3Backend{
		client:   client,
		cfg:      cfg,
		endpoint: endpoint,
		logger:   logger,
	}, nil
}

func (b *s3Backend) Name() string { return "s3" }

// ensureBucket lazily creates the bucket on first upload. Only success is
// remembered; a failed check is retried on the next upload.
func (b *s3Backend) ensureBucket(ctx context.Context) error {
	b.bucketMu.Lock()
	defer b.bucketMu.Unlock()
	if b.bucketReady {
		return nil
	}

	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.cfg.Bucket),
	})
	if err == nil {
		b.bucketReady = true
		return nil
	}

	_, err = b.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(b.cfg.Bucket),
	})
	if err != nil && !strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
		return fmt.Errorf("create bucket %s: %w", b.cfg.Bucket, err)
	}
	b.logger.Info("bucket created", zap.String("bucket", b.cfg.Bucket))
	b.bucketReady = true
	return nil
}

func (b *s3Backend) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	if err := b.ensureBucket(ctx); err != nil {
		return "", err
	}

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return b.PublicURL(key), nil
}

func (b *s3Backend) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", b.endpoint, b.cfg.Bucket, key)
}
