package model

import (
	"context"
	"slices"
)

// Role is an authorization level of a user.
type Role string

const (
	// RoleUser is the default role.
	RoleUser Role = "user"
	// RoleAdmin can moderate users and content.
	RoleAdmin Role = "admin"
)

// UserStore defines persistence operations for users in the remote database.
type UserStore interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, user User) error
	Upsert(ctx context.Context, user User) error
	SetFollowing(ctx context.Context, id string, following []string) error
	SetFollowers(ctx context.Context, id string, followers []string) error
	Delete(ctx context.Context, id string) error
}

// User represents an account. Followers and Following hold user ids and are
// kept as mirror images of each other across users.
type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Password  string   `json:"password,omitempty"`
	FullName  string   `json:"fullName"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Role      Role     `json:"role,omitempty"`
	Followers []string `json:"followers,omitempty"`
	Following []string `json:"following,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsFollowing reports whether the user follows the user with the given id.
func (u User) IsFollowing(id string) bool {
	return slices.Contains(u.Following, id)
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	u.Followers = slices.Clone(u.Followers)
	u.Following = slices.Clone(u.Following)
	return u
}
