package service

import (
	"net/url"
	"strconv"
	"strings"
)

const placeholderAvatarBase = "https://ui-avatars.com/api/"

// PlaceholderAvatar returns a generated avatar URL for a user without a
// picture.
func PlaceholderAvatar(fullName string) string {
	return placeholderAvatarBase + "?name=" + url.QueryEscape(fullName) + "&background=random"
}

// WithCacheBuster appends a version query to rawURL for display so a
// freshly uploaded avatar is not served from a stale cache. URLs that
// already carry a query are returned unchanged. The result must never be
// persisted.
func WithCacheBuster(rawURL string, token int64) string {
	if rawURL == "" || strings.Contains(rawURL, "?") {
		return rawURL
	}
	return rawURL + "?v=" + strconv.FormatInt(token, 10)
}
