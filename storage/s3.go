package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/media-blog/api-go/config"
)

// S3Storage keeps media in a bucket under the "media/" prefix.
type S3Storage struct {
	Client *s3.Client
	Config *config.S3Config
}

const s3Prefix = "media/"

func NewS3Storage(cfg *config.S3Config) *S3Storage {
	opts := s3.Options{
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Storage{
		Client: s3.New(opts),
		Config: cfg,
	}
}

func (s *S3Storage) URL(key string) string {
	return joinURL(s.Config.PublicURL, key)
}

func (s *S3Storage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ValidateUpload(folder, filename); err != nil {
		return "", err
	}

	// Request signing needs a seekable body.
	body, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read media file: %w", err)
		}
		body = bytes.NewReader(data)
	}

	key := generateKey(folder, filename)
	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.Config.BucketName),
		Key:          aws.String(s3Prefix + key),
		Body:         body,
		CacheControl: aws.String("max-age=86400"),
	}
	if contentType := mime.TypeByExtension(filepath.Ext(filename)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.Config.BucketName),
		Key:    aws.String(s3Prefix + key),
	}

	_, err := s.Client.DeleteObject(ctx, input)
	return err
}

func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(s.Config.BucketName),
		Key:    aws.String(s3Prefix + key),
	}

	_, err := s.Client.HeadObject(ctx, input)
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, err
}
