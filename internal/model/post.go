package model

import (
	"context"
	"slices"
)

// PostStore defines persistence operations for posts in the remote database.
type PostStore interface {
	// List returns every post joined with its author, comments and likes,
	// newest first.
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id string) (Post, error)
	ImageURLsByUser(ctx context.Context, userID string) ([]string, error)
	Create(ctx context.Context, post Post) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// CommentStore defines persistence operations for comments.
type CommentStore interface {
	Create(ctx context.Context, comment Comment) error
	GetByID(ctx context.Context, id string) (Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// Post is a shared photo. UserID, Username and UserAvatar are a snapshot
// of the author taken when the post is read.
type Post struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	UserAvatar string    `json:"userAvatar,omitempty"`
	ImageURL   string    `json:"imageUrl"`
	Caption    string    `json:"caption"`
	Likes      []string  `json:"likes"`
	Comments   []Comment `json:"comments"`
	CreatedAt  int64     `json:"createdAt"`
}

// LikedBy reports whether the user with the given id liked the post.
func (p Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// Comment is a single comment on a post, in chronological order.
type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}
