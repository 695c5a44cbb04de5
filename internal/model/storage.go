package model

import (
	"context"
	"io"
)

// Storage stores binary images and hands out public URLs for them.
type Storage interface {
	Upload(ctx context.Context, originalName string, reader io.Reader, size int64, contentType string) (string, error)
	KeyFromURL(url string) (string, bool)
	Remove(ctx context.Context, keys ...string) error
}
