package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultImageExpiry is how long a presigned recipe image link stays valid.
const DefaultImageExpiry = time.Hour

// S3Config holds S3 client and bucket info for recipe images
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Expiry     time.Duration
	presign    func(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// NewS3Config initializes the S3 client from the AWS default credential chain.
// It returns nil without error when no bucket is configured.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if cfg.S3BucketName == "" {
		return nil, nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	s := &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: cfg.S3BucketName,
		Expiry:     DefaultImageExpiry,
	}
	s.presign = s.presignGet
	return s, nil
}

func (s *S3Config) presignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.Client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// ResolveImage turns a stored image reference into a URL a client can load.
// Absolute http(s) URLs pass through; anything else is treated as an object
// key in the bucket, optionally written as s3://bucket/key.
func (s *S3Config) ResolveImage(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	if s == nil || s.presign == nil {
		return "", nil
	}
	key := strings.TrimPrefix(ref, "s3://"+s.BucketName+"/")
	key = strings.TrimPrefix(key, "/")
	expiry := s.Expiry
	if expiry <= 0 {
		expiry = DefaultImageExpiry
	}
	return s.presign(ctx, key, expiry)
}
