package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	famstorage "github.com/dtroode/famgram/internal/storage"
)

// publicRead lets anonymous clients read an object so issued URLs resolve.
var publicRead = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}

// gcsAPI is the subset of the SDK used by Client, so tests can run without
// Google Cloud.
type gcsAPI interface {
	BucketAttrs(ctx context.Context, bucket string) (*storage.BucketAttrs, error)
	CreateBucket(ctx context.Context, bucket, projectID string, attrs *storage.BucketAttrs) error
	NewWriter(ctx context.Context, bucket, key string, attrs storage.ObjectAttrs) io.WriteCloser
	DeleteObject(ctx context.Context, bucket, key string) error
	Close() error
}

var (
	_ famstorage.ObjectStorage = (*Client)(nil)
	_ gcsAPI                   = sdkAPI{}
)

// Client stores objects in one Google Cloud Storage bucket.
type Client struct {
	api       gcsAPI
	bucket    string
	projectID string
}

// NewClient constructs a GCS client. It does not contact the service; call
// EnsureBucket to create the bucket when missing.
func NewClient(ctx context.Context, bucket, projectID, credentialsFile string) (*Client, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(credentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}

	return NewClientWithAPI(sdkAPI{client: client}, bucket, projectID), nil
}

// NewClientWithAPI allows injecting a fake SDK (used in tests).
func NewClientWithAPI(api gcsAPI, bucket, projectID string) *Client {
	return &Client{
		api:       api,
		bucket:    bucket,
		projectID: projectID,
	}
}

// EnsureBucket creates the bucket with publicly readable default object
// ACLs if it does not exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.api.BucketAttrs(ctx, c.bucket)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if strings.TrimSpace(c.projectID) == "" {
		return errors.New("gcs project id is required to create bucket")
	}

	attrs := &storage.BucketAttrs{DefaultObjectACL: publicRead}
	if err := c.api.CreateBucket(ctx, c.bucket, c.projectID, attrs); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Put uploads a publicly readable object to the configured bucket.
func (c *Client) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) error {
	attrs := storage.ObjectAttrs{ACL: publicRead}
	if strings.TrimSpace(contentType) != "" {
		attrs.ContentType = contentType
	}

	writer := c.api.NewWriter(ctx, c.bucket, key, attrs)
	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to upload object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Delete removes an object; a missing object is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.api.DeleteObject(ctx, c.bucket, key)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// Close releases the SDK client.
func (c *Client) Close() error {
	return c.api.Close()
}

type sdkAPI struct {
	client *storage.Client
}

func (a sdkAPI) BucketAttrs(ctx context.Context, bucket string) (*storage.BucketAttrs, error) {
	return a.client.Bucket(bucket).Attrs(ctx)
}

func (a sdkAPI) CreateBucket(ctx context.Context, bucket, projectID string, attrs *storage.BucketAttrs) error {
	return a.client.Bucket(bucket).Create(ctx, projectID, attrs)
}

func (a sdkAPI) NewWriter(ctx context.Context, bucket, key string, attrs storage.ObjectAttrs) io.WriteCloser {
	w := a.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = attrs.ContentType
	w.ACL = attrs.ACL
	return w
}

func (a sdkAPI) DeleteObject(ctx context.Context, bucket, key string) error {
	return a.client.Bucket(bucket).Object(key).Delete(ctx)
}

func (a sdkAPI) Close() error {
	return a.client.Close()
}
