// Package storage stores post and avatar images in an object bucket and maps
// object keys to public URLs and back.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/famgram/internal/model"
)

var _ model.Storage = (*Images)(nil)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Images names uploaded objects and resolves their public URLs.
type Images struct {
	backend    ObjectStorage
	publicBase string
}

// NewImages wraps backend. Public URLs have the form
// <publicBaseURL>/<bucket>/<key>.
func NewImages(backend ObjectStorage, publicBaseURL string) *Images {
	return &Images{
		backend:    backend,
		publicBase: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Upload stores the image under a freshly generated key that keeps only the
// extension of originalName, and returns its public URL.
func (i *Images) Upload(ctx context.Context, originalName string, reader io.Reader, size int64, contentType string) (string, error) {
	key := uuid.NewString() + extension(originalName, contentType)

	if err := i.backend.Put(ctx, key, reader, size, contentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return i.PublicURL(key), nil
}

// PublicURL returns the public URL of the object stored under key.
func (i *Images) PublicURL(key string) string {
	return i.prefix() + key
}

// KeyFromURL recovers the object key from a URL issued by PublicURL.
func (i *Images) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, i.prefix())
	if !ok || key == "" {
		return "", false
	}
	if idx := strings.IndexByte(key, '?'); idx >= 0 {
		key = key[:idx]
	}
	return key, key != ""
}

// Remove deletes every key and reports all failures together.
func (i *Images) Remove(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := i.backend.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (i *Images) prefix() string {
	return i.publicBase + "/" + i.backend.Bucket() + "/"
}

func extension(name, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" && ext != "." {
		return ext
	}
	if contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	return ""
}
