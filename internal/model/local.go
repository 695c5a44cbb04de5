package model

import "context"

// LocalStore is the on-device cache of users, posts and the session user.
// Every mutation rewrites the whole affected collection.
type LocalStore interface {
	GetUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, userID string) error
	FollowUser(ctx context.Context, followerID, targetID string) error
	UnfollowUser(ctx context.Context, followerID, targetID string) error

	GetPosts(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, post Post) error
	DeletePost(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID, userID string) ([]Post, error)
	AddComment(ctx context.Context, postID string, comment Comment) ([]Post, error)
	DeleteComment(ctx context.Context, commentID string) error

	GetCurrentUser(ctx context.Context) (*User, error)
	SetCurrentUser(ctx context.Context, user *User) error
}
