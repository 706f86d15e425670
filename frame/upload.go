package frame

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// Maximum time allowed for a single upload.
const UploadTimeout = 2 * time.Minute

var ErrMissingBucket = errors.New("frame: no S3 bucket configured")

// S3 connection settings.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Uploader publishes encoded frames to an S3 compatible object store.
type Uploader struct {
	client s3iface.S3API
	bucket string
}

// Create an uploader for the configured bucket. Path style addressing is
// used so that self-hosted S3 compatible stores work too.
func NewUploader(cfg S3Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}

	awsCfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("frame: could not create S3 session: %w", err)
	}

	return newUploader(s3.New(sess), cfg.Bucket), nil
}

func newUploader(client s3iface.S3API, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket}
}

// Upload the data under key. The content type is derived from the key's
// file extension.
func (u *Uploader) Upload(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType(key)),
	})
	if err != nil {
		return fmt.Errorf("frame: failed to upload %s: %w", key, err)
	}
	return nil
}

// Bucket returns the target bucket name.
func (u *Uploader) Bucket() string {
	return u.bucket
}
