// Package storage persists uploaded application files to the configured
// S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"hackportal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Uploader interface {
	// Upload stores the file and returns its object key.
	Upload(ctx context.Context, userID, field, filename, mimeType string, content []byte) (string, error)
}

type s3Uploader struct {
	client *s3.Client
	bucket string
	log    *logger.Logger
}

func NewS3Uploader(client *s3.Client, bucket string, log *logger.Logger) Uploader {
	return &s3Uploader{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

// Upload keys objects as applications/<uid>/<field><ext>. Re-uploads for
// the same question overwrite the previous file.
func (u *s3Uploader) Upload(ctx context.Context, userID, field, filename, mimeType string, content []byte) (string, error) {
	key := fmt.Sprintf("applications/%s/%s%s", userID, field, path.Ext(filename))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	u.log.Info("File uploaded", "key", key, "size_bytes", len(content), "mime_type", mimeType)
	return key, nil
}
