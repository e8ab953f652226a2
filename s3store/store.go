// Package s3store implements the object-store contract against S3 and
// S3-compatible services (B2, MinIO) using the AWS SDK. The client is
// created lazily on first use and memoized for the store's lifetime.
package s3store

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/mlevkov/s3templates"
)

// Ensures Store implements s3templates.ObjectStore.
var _ s3templates.ObjectStore = (*Store)(nil)

const defaultRegion = "us-east-1"

// Config carries the connection parameters for an S3-compatible store.
// Empty credentials fall back to the SDK's default chain (env, shared
// config, instance role).
type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // optional, for S3-compatible services
	Region    string
}

// Store talks to one S3 endpoint. Safe for concurrent use.
type Store struct {
	cfg  Config
	once sync.Once
	api  *s3.S3
	err  error
}

// New creates a Store from cfg. No connection is made until the first call.
func New(cfg Config) *Store {
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	return &Store{cfg: cfg}
}

// client creates the S3 client on first use and returns the memoized
// instance afterwards.
func (s *Store) client() (*s3.S3, error) {
	s.once.Do(func() {
		awsCfg := &aws.Config{
			Region:           aws.String(s.cfg.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		if s.cfg.AccessKey != "" || s.cfg.SecretKey != "" {
			awsCfg.Credentials = credentials.NewStaticCredentials(s.cfg.AccessKey, s.cfg.SecretKey, "")
		}
		if s.cfg.Endpoint != "" {
			awsCfg.Endpoint = aws.String(s.cfg.Endpoint)
		}
		sess, err := session.NewSession(awsCfg)
		if err != nil {
			s.err = err
			return
		}
		s.api = s3.New(sess)
	})
	return s.api, s.err
}

// ListObjects drains the paginated bucket listing, calling fn per page.
func (s *Store) ListObjects(ctx context.Context, bucket string, fn func(objects []s3templates.ObjectInfo, lastPage bool) bool) error {
	api, err := s.client()
	if err != nil {
		return err
	}
	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	return api.ListObjectsV2PagesWithContext(ctx, input, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		objects := make([]s3templates.ObjectInfo, 0, len(page.Contents))
		for _, item := range page.Contents {
			objects = append(objects, s3templates.ObjectInfo{
				Key:          aws.StringValue(item.Key),
				Size:         aws.Int64Value(item.Size),
				LastModified: aws.TimeValue(item.LastModified),
			})
		}
		return fn(objects, lastPage)
	})
}

// GetObjectBytes fetches the full content of one object.
func (s *Store) GetObjectBytes(ctx context.Context, bucket, key string) ([]byte, error) {
	api, err := s.client()
	if err != nil {
		return nil, err
	}
	out, err := api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// ObjectExists reports whether key addresses a stored object, via HeadObject.
func (s *Store) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	api, err := s.client()
	if err != nil {
		return false, err
	}
	_, err = api.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// isNotFound reports whether err is the SDK's missing-object error.
// HeadObject reports 404 as code "NotFound" rather than NoSuchKey.
func isNotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}
