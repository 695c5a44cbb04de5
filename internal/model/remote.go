package model

import (
	"context"
	"io"
)

// RemoteStore is the domain-shaped surface of the hosted backend.
//
// Lookups return a nil pointer and a nil error when the entity does not
// exist. Every other failure wraps ErrRemoteUnavailable.
type RemoteStore interface {
	GetUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, userID string) error
	FollowUser(ctx context.Context, followerID, targetID string) error
	UnfollowUser(ctx context.Context, followerID, targetID string) error

	GetPosts(ctx context.Context) ([]Post, error)
	GetPostByID(ctx context.Context, id string) (*Post, error)
	CreatePost(ctx context.Context, post Post) error
	DeletePost(ctx context.Context, postID, imageURL string) error
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)

	AddComment(ctx context.Context, comment Comment) error
	GetCommentByID(ctx context.Context, id string) (*Comment, error)
	DeleteComment(ctx context.Context, id string) error

	GetSavedPostIDs(ctx context.Context, userID string) ([]string, error)
	ToggleSave(ctx context.Context, userID, postID string) (bool, error)
	GetTaggedPostIDs(ctx context.Context, userID string) ([]string, error)
	TagUser(ctx context.Context, postID, userID string) error
	UntagUser(ctx context.Context, postID, userID string) error

	UploadImage(ctx context.Context, originalName string, reader io.Reader, size int64, contentType string) (string, error)
}
