// Package remote adapts the hosted database and blob bucket to the domain
// surface used by the services.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/dtroode/famgram/internal/logger"
	"github.com/dtroode/famgram/internal/model"
)

var _ model.RemoteStore = (*Adapter)(nil)

// Repositories groups the table-level stores composed by Adapter.
type Repositories struct {
	Users    model.UserStore
	Posts    model.PostStore
	Comments model.CommentStore
	Likes    model.MembershipStore
	Saves    model.MembershipStore
	Tags     model.MembershipStore
}

// Adapter implements model.RemoteStore on top of repositories and an image
// bucket. Absent entities are reported as nil results; every backend
// failure is logged here and wrapped with model.ErrRemoteUnavailable.
type Adapter struct {
	users    model.UserStore
	posts    model.PostStore
	comments model.CommentStore
	likes    model.MembershipStore
	saves    model.MembershipStore
	tags     model.MembershipStore
	images   model.Storage
	logger   *logger.Logger
}

func NewAdapter(repos Repositories, images model.Storage, logger *logger.Logger) *Adapter {
	return &Adapter{
		users:    repos.Users,
		posts:    repos.Posts,
		comments: repos.Comments,
		likes:    repos.Likes,
		saves:    repos.Saves,
		tags:     repos.Tags,
		images:   images,
		logger:   logger,
	}
}

func (a *Adapter) unavailable(op string, err error, args ...any) error {
	a.logger.Error("Remote adapter: failed to "+op, append(args, "error", err)...)
	return fmt.Errorf("failed to %s: %w: %w", op, model.ErrRemoteUnavailable, err)
}

func (a *Adapter) GetUsers(ctx context.Context) ([]model.User, error) {
	users, err := a.users.List(ctx)
	if err != nil {
		return nil, a.unavailable("fetch users", err)
	}
	return users, nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := a.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, a.unavailable("fetch user by id", err, "user_id", id)
	}
	return &user, nil
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, a.unavailable("fetch user by username", err, "username", username)
	}
	return &user, nil
}

func (a *Adapter) CreateUser(ctx context.Context, user model.User) error {
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if err := a.users.Create(ctx, user); err != nil {
		return a.unavailable("create user", err, "user_id", user.ID)
	}
	return nil
}

func (a *Adapter) UpdateUser(ctx context.Context, user model.User) error {
	if err := a.users.Upsert(ctx, user); err != nil {
		return a.unavailable("update user", err, "user_id", user.ID)
	}
	return nil
}

// DeleteUser removes the user's comments, likes, saves and tags, then their
// posts, then the user, then the images of the removed posts. It stops at
// the first failing step; earlier steps stay applied.
func (a *Adapter) DeleteUser(ctx context.Context, userID string) error {
	imageURLs, err := a.posts.ImageURLsByUser(ctx, userID)
	if err != nil {
		return a.unavailable("fetch user posts before delete", err, "user_id", userID)
	}

	steps := []struct {
		op  string
		run func(context.Context, string) error
	}{
		{"delete user comments", a.comments.DeleteByUser},
		{"delete user likes", a.likes.DeleteByUser},
		{"delete user saved posts", a.saves.DeleteByUser},
		{"delete user tags", a.tags.DeleteByUser},
		{"delete user posts", a.posts.DeleteByUser},
		{"delete user", a.users.Delete},
	}
	for _, step := range steps {
		if err := step.run(ctx, userID); err != nil {
			return a.unavailable(step.op, err, "user_id", userID)
		}
	}

	keys := a.imageKeys(imageURLs)
	if len(keys) == 0 {
		return nil
	}
	if err := a.images.Remove(ctx, keys...); err != nil {
		return a.unavailable("delete user images", err, "user_id", userID, "images", len(keys))
	}
	return nil
}

func (a *Adapter) imageKeys(urls []string) []string {
	keys := make([]string, 0, len(urls))
	for _, url := range urls {
		if key, ok := a.images.KeyFromURL(url); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// FollowUser adds the follow edge to both users, skipping sides that
// already hold it.
func (a *Adapter) FollowUser(ctx context.Context, followerID, targetID string) error {
	follower, target, err := a.edgeEnds(ctx, followerID, targetID)
	if err != nil {
		return err
	}

	if !follower.IsFollowing(targetID) {
		following := append(follower.Following, targetID)
		if err := a.users.SetFollowing(ctx, followerID, following); err != nil {
			return a.unavailable("follow user (following update)", err, "user_id", followerID, "target_id", targetID)
		}
	}
	if !slices.Contains(target.Followers, followerID) {
		followers := append(target.Followers, followerID)
		if err := a.users.SetFollowers(ctx, targetID, followers); err != nil {
			return a.unavailable("follow user (followers update)", err, "user_id", followerID, "target_id", targetID)
		}
	}
	return nil
}

// UnfollowUser removes the follow edge from both users.
func (a *Adapter) UnfollowUser(ctx context.Context, followerID, targetID string) error {
	follower, target, err := a.edgeEnds(ctx, followerID, targetID)
	if err != nil {
		return err
	}

	if err := a.users.SetFollowing(ctx, followerID, without(follower.Following, targetID)); err != nil {
		return a.unavailable("unfollow user (following update)", err, "user_id", followerID, "target_id", targetID)
	}
	if err := a.users.SetFollowers(ctx, targetID, without(target.Followers, followerID)); err != nil {
		return a.unavailable("unfollow user (followers update)", err, "user_id", followerID, "target_id", targetID)
	}
	return nil
}

func (a *Adapter) edgeEnds(ctx context.Context, followerID, targetID string) (*model.User, *model.User, error) {
	follower, err := a.GetUserByID(ctx, followerID)
	if err != nil {
		return nil, nil, err
	}
	target, err := a.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}
	if follower == nil || target == nil {
		return nil, nil, fmt.Errorf("failed to resolve follow edge %s -> %s: %w", followerID, targetID, model.ErrNotFound)
	}
	return follower, target, nil
}

// GetPosts returns every post, newest first.
func (a *Adapter) GetPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := a.posts.List(ctx)
	if err != nil {
		return nil, a.unavailable("fetch posts", err)
	}
	return posts, nil
}

func (a *Adapter) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	post, err := a.posts.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, a.unavailable("fetch post", err, "post_id", id)
	}
	return &post, nil
}

func (a *Adapter) CreatePost(ctx context.Context, post model.Post) error {
	if err := a.posts.Create(ctx, post); err != nil {
		return a.unavailable("create post", err, "post_id", post.ID, "user_id", post.UserID)
	}
	return nil
}

// DeletePost removes the post image when imageURL points into the bucket,
// then the post row. A failing image removal is logged and does not stop
// the row removal.
func (a *Adapter) DeletePost(ctx context.Context, postID, imageURL string) error {
	if key, ok := a.images.KeyFromURL(imageURL); ok {
		if err := a.images.Remove(ctx, key); err != nil {
			a.logger.Warn("Remote adapter: failed to delete image from storage",
				"post_id", postID,
				"key", key,
				"error", err)
		}
	}

	if err := a.posts.Delete(ctx, postID); err != nil {
		return a.unavailable("delete post", err, "post_id", postID)
	}
	return nil
}

// ToggleLike removes the like when present and adds it otherwise. It
// reports whether the post is liked afterwards.
func (a *Adapter) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	return a.toggle(ctx, a.likes, "like", postID, userID)
}

func (a *Adapter) toggle(ctx context.Context, store model.MembershipStore, what, postID, userID string) (bool, error) {
	exists, err := store.Exists(ctx, postID, userID)
	if err != nil {
		return false, a.unavailable("check "+what, err, "post_id", postID, "user_id", userID)
	}

	if exists {
		if err := store.Remove(ctx, postID, userID); err != nil {
			return true, a.unavailable("remove "+what, err, "post_id", postID, "user_id", userID)
		}
		return false, nil
	}

	if err := store.Add(ctx, postID, userID); err != nil {
		return false, a.unavailable("add "+what, err, "post_id", postID, "user_id", userID)
	}
	return true, nil
}

func (a *Adapter) AddComment(ctx context.Context, comment model.Comment) error {
	if err := a.comments.Create(ctx, comment); err != nil {
		return a.unavailable("add comment", err, "post_id", comment.PostID, "comment_id", comment.ID)
	}
	return nil
}

func (a *Adapter) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := a.comments.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, a.unavailable("fetch comment", err, "comment_id", id)
	}
	return &comment, nil
}

func (a *Adapter) DeleteComment(ctx context.Context, id string) error {
	if err := a.comments.Delete(ctx, id); err != nil {
		return a.unavailable("delete comment", err, "comment_id", id)
	}
	return nil
}

func (a *Adapter) GetSavedPostIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := a.saves.PostIDsByUser(ctx, userID)
	if err != nil {
		return nil, a.unavailable("fetch saved posts", err, "user_id", userID)
	}
	return ids, nil
}

// ToggleSave reports whether the post is saved afterwards.
func (a *Adapter) ToggleSave(ctx context.Context, userID, postID string) (bool, error) {
	return a.toggle(ctx, a.saves, "save", postID, userID)
}

func (a *Adapter) GetTaggedPostIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := a.tags.PostIDsByUser(ctx, userID)
	if err != nil {
		return nil, a.unavailable("fetch tagged posts", err, "user_id", userID)
	}
	return ids, nil
}

func (a *Adapter) TagUser(ctx context.Context, postID, userID string) error {
	if err := a.tags.Add(ctx, postID, userID); err != nil {
		return a.unavailable("tag user on post", err, "post_id", postID, "user_id", userID)
	}
	return nil
}

func (a *Adapter) UntagUser(ctx context.Context, postID, userID string) error {
	if err := a.tags.Remove(ctx, postID, userID); err != nil {
		return a.unavailable("untag user on post", err, "post_id", postID, "user_id", userID)
	}
	return nil
}

// UploadImage stores the image under a generated name and returns its
// public URL.
func (a *Adapter) UploadImage(ctx context.Context, originalName string, reader io.Reader, size int64, contentType string) (string, error) {
	url, err := a.images.Upload(ctx, originalName, reader, size, contentType)
	if err != nil {
		return "", a.unavailable("upload image", err, "name", originalName)
	}
	return url, nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
