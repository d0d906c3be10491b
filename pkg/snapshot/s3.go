package snapshot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/reconcile/internal/errors"
)

// ObjectPutter is the part of *s3.Client that S3Store uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads snapshots to a bucket.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := snapshot.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "snapshots/")
type S3Store struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Store creates a store writing to bucket under prefix.
func NewS3Store(client ObjectPutter, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads name.html and returns its s3:// URI.
func (s *S3Store) Put(ctx context.Context, name string, html []byte) (string, error) {
	if !validName(name) {
		return "", ErrInvalidName
	}
	key := s.prefix + fileName(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(html),
		ContentLength: aws.Int64(int64(len(html))),
		ContentType:   aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return "", errors.New("E182").Wrap(err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
