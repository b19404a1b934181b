package repository

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

type fakeUploader struct {
	s3manageriface.UploaderAPI
	input *s3manager.UploadInput
	body  string
	err   error
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.input = input
	data, _ := io.ReadAll(input.Body)
	f.body = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return &s3manager.UploadOutput{Location: "https://bucket.s3.amazonaws.com/" + aws.StringValue(input.Key)}, nil
}

func TestS3MediaStorage_Upload(t *testing.T) {
	t.Run("public base url", func(t *testing.T) {
		up := &fakeUploader{}
		storage := NewS3MediaStorageWithUploader(up, "media", "https://cdn.example.com/")

		url, err := storage.Upload(context.Background(), "templates/tpl1/a.png", "image/png", strings.NewReader("png"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/templates/tpl1/a.png", url)
		assert.Equal(t, "media", aws.StringValue(up.input.Bucket))
		assert.Equal(t, "image/png", aws.StringValue(up.input.ContentType))
		assert.Equal(t, "png", up.body)
	})

	t.Run("object location", func(t *testing.T) {
		up := &fakeUploader{}
		storage := NewS3MediaStorageWithUploader(up, "media", "")

		url, err := storage.Upload(context.Background(), "k.pdf", "application/pdf", strings.NewReader("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "https://bucket.s3.amazonaws.com/k.pdf", url)
	})

	t.Run("upload failure", func(t *testing.T) {
		up := &fakeUploader{err: errors.New("access denied")}
		storage := NewS3MediaStorageWithUploader(up, "media", "")

		_, err := storage.Upload(context.Background(), "k.pdf", "application/pdf", strings.NewReader("%PDF"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload k.pdf")
	})
}

func TestNewS3MediaStorage(t *testing.T) {
	_, err := NewS3MediaStorage(S3Config{})
	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	storage, err := NewS3MediaStorage(S3Config{
		Bucket:    "media",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "media", storage.bucket)
}
