package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

// S3Config locates the bucket uploads are written to
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PublicBaseURL, when set, is used instead of the object location
	PublicBaseURL string
}

// S3MediaStorage stores section media in an S3 compatible bucket
type S3MediaStorage struct {
	uploader      s3manageriface.UploaderAPI
	bucket        string
	publicBaseURL string
}

// NewS3MediaStorage creates a session from cfg
func NewS3MediaStorage(cfg S3Config) (*S3MediaStorage, error) {
	if cfg.Bucket == "" {
		return nil, domain.NewConfigurationError("storage bucket is required")
	}
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}
	return NewS3MediaStorageWithUploader(s3manager.NewUploader(sess), cfg.Bucket, cfg.PublicBaseURL), nil
}

// NewS3MediaStorageWithUploader wraps an existing uploader
func NewS3MediaStorageWithUploader(uploader s3manageriface.UploaderAPI, bucket, publicBaseURL string) *S3MediaStorage {
	return &S3MediaStorage{
		uploader:      uploader,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *S3MediaStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return out.Location, nil
}
