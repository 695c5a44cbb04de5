package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	policy    string
	policyErr error

	putKey         string
	putContentType string
	putErr         error

	removeErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = f.makeBucketErr == nil
	return f.makeBucketErr
}
func (f *fakeMinio) SetBucketPolicy(_ context.Context, _ string, policy string) error {
	f.policy = policy
	return f.policyErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, _ io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putKey = key
	f.putContentType = opts.ContentType
	return minioLib.UploadInfo{Key: key}, f.putErr
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(ctx, api, "images")
	require.NoError(t, err)
	assert.Equal(t, "images", c.Bucket())
	assert.False(t, api.madeBucket)
	assert.Empty(t, api.policy)
}

func TestNewClientWithAPI_CreatesPublicBucket(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false}
	c, err := NewClientWithAPI(ctx, api, "images")
	require.NoError(t, err)
	assert.Equal(t, "images", c.bucket)
	assert.True(t, api.madeBucket)
	assert.Contains(t, api.policy, "arn:aws:s3:::images/*")
	assert.Contains(t, api.policy, "s3:GetObject")
}

func TestNewClientWithAPI_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		api     *fakeMinio
		wantMsg string
	}{
		{
			name:    "bucket exists error",
			api:     &fakeMinio{bucketExistsErr: errors.New("boom")},
			wantMsg: "failed to check bucket existence",
		},
		{
			name:    "make bucket error",
			api:     &fakeMinio{makeBucketErr: errors.New("fail")},
			wantMsg: "failed to create bucket",
		},
		{
			name:    "policy error",
			api:     &fakeMinio{policyErr: errors.New("denied")},
			wantMsg: "failed to set bucket policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClientWithAPI(ctx, tt.api, "bucket")
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to ensure bucket exists")
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_EnsureBucketLater(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExistsErr: errors.New("connection refused")}
	c := newClient(api, "images")

	err := c.EnsureBucket(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	api.bucketExistsErr = nil
	require.NoError(t, c.EnsureBucket(ctx))
	assert.True(t, api.madeBucket)
}

func TestNew_DoesNotContactServer(t *testing.T) {
	client, err := minioLib.New("127.0.0.1:1", &minioLib.Options{})
	require.NoError(t, err)

	c := New(client, "images")
	assert.Equal(t, "images", c.Bucket())
}

func TestClient_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		err := c.Put(ctx, "k.png", bytes.NewReader([]byte("data")), 4, "image/png")
		assert.NoError(t, err)
		assert.Equal(t, "k.png", api.putKey)
		assert.Equal(t, "image/png", api.putContentType)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{putErr: errors.New("put-fail")}
		c := &Client{api: api, bucket: "b"}
		err := c.Put(ctx, "k", bytes.NewReader([]byte("data")), 4, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		err := c.Delete(ctx, "k")
		assert.NoError(t, err)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{removeErr: errors.New("remove-fail")}
		c := &Client{api: api, bucket: "b"}
		err := c.Delete(ctx, "k")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}
