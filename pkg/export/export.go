// Package export uploads rendered document snapshots to S3.
package export

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
	"github.com/vango-dev/storefront/pkg/dom"
)

// Uploader is the part of *s3.Client used here.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewClient builds an S3 client from the default AWS configuration chain.
// An empty region uses the configured default.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, storeerrors.New("E301").
			WithDetail("Could not load AWS configuration.").
			Wrap(err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Page is a captured document.
type Page struct {
	Title     string
	HTML      []byte
	Mutations uint64
	Captured  time.Time
}

// Capture renders doc. Call it on the goroutine that owns doc.
func Capture(doc *dom.Document) Page {
	return Page{
		Title:     doc.Title(),
		HTML:      []byte(doc.HTML()),
		Mutations: doc.Mutations(),
		Captured:  time.Now().UTC(),
	}
}

// DefaultKey returns the object key used when none is given.
func DefaultKey(p Page) string {
	return "snapshots/" + p.Captured.Format("20060102T150405Z") + ".html"
}

// Upload stores p under bucket/key. An empty key uses DefaultKey.
func Upload(ctx context.Context, up Uploader, bucket, key string, p Page) (string, error) {
	if key == "" {
		key = DefaultKey(p)
	}
	_, err := up.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(p.HTML),
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
		Metadata: map[string]string{
			"title":     p.Title,
			"mutations": strconv.FormatUint(p.Mutations, 10),
			"captured":  p.Captured.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", storeerrors.New("E301").
			With("bucket", bucket).
			With("key", key).
			Wrap(err)
	}
	return key, nil
}

// Snapshot captures doc and uploads it. It returns the object key.
func Snapshot(ctx context.Context, up Uploader, bucket, key string, doc *dom.Document) (string, error) {
	return Upload(ctx, up, bucket, key, Capture(doc))
}
