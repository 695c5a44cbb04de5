package model

import "context"

// MembershipKind names a (post, user) membership table.
type MembershipKind string

const (
	// MembershipLike marks a user liking a post.
	MembershipLike MembershipKind = "post_likes"
	// MembershipSave marks a user saving a post.
	MembershipSave MembershipKind = "saved_posts"
	// MembershipTag marks a user tagged on a post.
	MembershipTag MembershipKind = "post_tags"
)

// MembershipStore persists unique (post, user) pairs of a single kind.
type MembershipStore interface {
	Exists(ctx context.Context, postID, userID string) (bool, error)
	Add(ctx context.Context, postID, userID string) error
	Remove(ctx context.Context, postID, userID string) error
	PostIDsByUser(ctx context.Context, userID string) ([]string, error)
	DeleteByUser(ctx context.Context, userID string) error
}
