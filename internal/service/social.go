package service

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/dtroode/famgram/internal/apierrors"
	"github.com/dtroode/famgram/internal/idgen"
	"github.com/dtroode/famgram/internal/logger"
	"github.com/dtroode/famgram/internal/model"
	"github.com/dtroode/famgram/internal/reconcile"
)

const adminCreatedBio = "New Member"

// Image is an uploaded picture.
type Image struct {
	Name        string
	Reader      io.Reader
	Size        int64
	ContentType string
}

// NewPost describes a post to publish. Image takes precedence over
// ImageURL.
type NewPost struct {
	Caption  string
	Image    *Image
	ImageURL string
}

// NewUser describes an account created by an administrator.
type NewUser struct {
	Username string
	Password string
	FullName string
	Role     model.Role
}

// ProfileUpdate lists the profile fields to change; nil fields are kept.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
}

// Social reconciles feed, profile, engagement and moderation operations
// across the remote and local stores.
//
// Durable content writes must succeed remotely before they are mirrored
// locally. Engagement writes (likes, comments, follows) are attempted
// remotely and always applied locally.
type Social struct {
	remote    model.RemoteStore
	local     model.LocalStore
	directory userDirectory
	ids       *idgen.Generator
	session   sessionReloader
	logger    *logger.Logger
}

type sessionReloader interface {
	Reload(ctx context.Context) error
}

func NewSocial(
	remote model.RemoteStore,
	local model.LocalStore,
	ids *idgen.Generator,
	logger *logger.Logger,
) *Social {
	return &Social{
		remote: remote,
		local:  local,
		directory: userDirectory{
			remote: remote,
			local:  local,
			logger: logger,
			prefix: "Social service",
		},
		ids:    ids,
		logger: logger,
	}
}

// AttachSession keeps session in step with profile and follow changes made
// through s.
func (s *Social) AttachSession(session *Session) {
	if session == nil {
		s.session = nil
		return
	}
	s.session = session
}

// syncSession reloads the attached session after a local write that may
// have rewritten the persisted current user.
func (s *Social) syncSession(ctx context.Context) {
	if s.session == nil {
		return
	}
	if err := s.session.Reload(ctx); err != nil {
		s.logger.Warn("Social service: failed to reload session", "error", err)
	}
}

// ListUsers returns the remote users, or the cached users when the remote
// store fails.
func (s *Social) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.remote.GetUsers(ctx)
	if err == nil {
		return users, nil
	}
	s.logger.Warn("Social service: falling back to cached users", "error", err)

	users, err = s.local.GetUsers(ctx)
	if err != nil {
		return nil, apierrors.NewErrBackendUnavailable("list users", err)
	}
	return users, nil
}

// ListPosts returns the remote feed, or the cached posts when the remote
// store fails. Posts are newest first.
func (s *Social) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.remote.GetPosts(ctx)
	if err != nil {
		s.logger.Warn("Social service: falling back to cached posts", "error", err)

		posts, err = s.local.GetPosts(ctx)
		if err != nil {
			return nil, apierrors.NewErrBackendUnavailable("list posts", err)
		}
	}
	reconcile.SortPostsByRecency(posts)
	return posts, nil
}

// AdminUsers lists the users of both sources merged by username.
func (s *Social) AdminUsers(ctx context.Context, actor model.User) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, apierrors.NewErrForbidden("list all users")
	}

	remoteUsers, err := s.remote.GetUsers(ctx)
	if err != nil {
		s.logger.Warn("Social service: remote users unavailable for admin view", "error", err)
	}
	localUsers, err := s.local.GetUsers(ctx)
	if err != nil {
		s.logger.Warn("Social service: local users unavailable for admin view", "error", err)
	}
	return reconcile.MergeUsersByUsername(localUsers, remoteUsers), nil
}

// AdminPosts lists the posts of both sources merged by id, newest first.
func (s *Social) AdminPosts(ctx context.Context, actor model.User) ([]model.Post, error) {
	if !actor.IsAdmin() {
		return nil, apierrors.NewErrForbidden("list all posts")
	}

	remotePosts, err := s.remote.GetPosts(ctx)
	if err != nil {
		s.logger.Warn("Social service: remote posts unavailable for admin view", "error", err)
	}
	localPosts, err := s.local.GetPosts(ctx)
	if err != nil {
		s.logger.Warn("Social service: local posts unavailable for admin view", "error", err)
	}
	return reconcile.MergePostsByID(localPosts, remotePosts), nil
}

// ResolveUser looks username up in both sources and merges the copies.
// It returns nil when neither source knows the user.
func (s *Social) ResolveUser(ctx context.Context, username string) (*model.User, error) {
	remoteUser, remoteErr := s.remote.GetUserByUsername(ctx, username)
	if remoteErr != nil {
		s.logger.Warn("Social service: remote lookup failed", "username", username, "error", remoteErr)
	}
	localUser, localErr := s.local.GetUserByUsername(ctx, username)
	if localErr != nil {
		s.logger.Warn("Social service: local lookup failed", "username", username, "error", localErr)
	}
	if remoteErr != nil && localErr != nil {
		return nil, apierrors.NewErrBackendUnavailable("resolve user", remoteErr)
	}

	return reconcile.MergeUser(localUser, remoteUser), nil
}

// UserPosts returns the posts written by userID, newest first.
func (s *Social) UserPosts(ctx context.Context, userID string) ([]model.Post, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.FilterPosts(posts, reconcile.ByAuthor(userID)), nil
}

// SavedPosts returns the posts saved by userID. Saves live only remotely,
// so any remote failure yields an empty list.
func (s *Social) SavedPosts(ctx context.Context, userID string) []model.Post {
	return s.membershipPosts(ctx, userID, "saved", s.remote.GetSavedPostIDs)
}

// TaggedPosts returns the posts userID is tagged on, or an empty list when
// the remote store fails.
func (s *Social) TaggedPosts(ctx context.Context, userID string) []model.Post {
	return s.membershipPosts(ctx, userID, "tagged", s.remote.GetTaggedPostIDs)
}

func (s *Social) membershipPosts(
	ctx context.Context,
	userID, what string,
	ids func(context.Context, string) ([]string, error),
) []model.Post {
	posts, err := s.remote.GetPosts(ctx)
	if err != nil {
		s.logger.Warn("Social service: "+what+" posts unavailable", "user_id", userID, "error", err)
		return []model.Post{}
	}
	postIDs, err := ids(ctx, userID)
	if err != nil {
		s.logger.Warn("Social service: "+what+" posts unavailable", "user_id", userID, "error", err)
		return []model.Post{}
	}
	return reconcile.FilterPosts(posts, reconcile.ByIDs(postIDs))
}

// UploadImage stores an image remotely and returns its public URL.
func (s *Social) UploadImage(ctx context.Context, image Image) (string, error) {
	url, err := s.remote.UploadImage(ctx, image.Name, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return "", apierrors.NewErrBackendUnavailable("upload image", err)
	}
	return url, nil
}

// CreatePost publishes a post authored by actor.
func (s *Social) CreatePost(ctx context.Context, actor model.User, params NewPost) (*model.Post, error) {
	imageURL := params.ImageURL
	if params.Image != nil {
		url, err := s.UploadImage(ctx, *params.Image)
		if err != nil {
			s.logger.Error("Social service: failed to upload post image", "user_id", actor.ID, "error", err)
			return nil, err
		}
		imageURL = url
	}
	if imageURL == "" {
		return nil, apierrors.NewErrInvalidArgument("post image is required")
	}

	post := model.Post{
		ID:         s.ids.PostID(),
		UserID:     actor.ID,
		Username:   actor.Username,
		UserAvatar: actor.AvatarURL,
		ImageURL:   imageURL,
		Caption:    strings.TrimSpace(params.Caption),
		Likes:      []string{},
		Comments:   []model.Comment{},
		CreatedAt:  s.ids.Millis(),
	}

	if err := s.remote.CreatePost(ctx, post); err != nil {
		s.logger.Error("Social service: failed to create post", "user_id", actor.ID, "error", err)
		return nil, apierrors.NewErrBackendUnavailable("create post", err)
	}
	if err := s.local.CreatePost(ctx, post); err != nil {
		s.logger.Warn("Social service: failed to cache post", "post_id", post.ID, "error", err)
	}

	s.logger.Info("Social service: post created", "post_id", post.ID, "user_id", actor.ID)
	return &post, nil
}

// DeletePost removes a post owned by actor, or any post when actor is an
// administrator.
func (s *Social) DeletePost(ctx context.Context, actor model.User, postID string) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return apierrors.NewErrForbidden("delete this post")
	}

	if err := s.remote.DeletePost(ctx, post.ID, post.ImageURL); err != nil {
		s.logger.Error("Social service: failed to delete post", "post_id", postID, "error", err)
		return apierrors.NewErrBackendUnavailable("delete post", err)
	}
	if err := s.local.DeletePost(ctx, post.ID); err != nil {
		s.logger.Warn("Social service: failed to remove cached post", "post_id", postID, "error", err)
	}

	s.logger.Info("Social service: post deleted", "post_id", postID, "user_id", actor.ID)
	return nil
}

// findPost looks the post up remotely, then in the cache.
func (s *Social) findPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.remote.GetPostByID(ctx, postID)
	if err != nil {
		return nil, apierrors.NewErrBackendUnavailable("find post", err)
	}
	if post != nil {
		return post, nil
	}

	cached, err := s.local.GetPosts(ctx)
	if err != nil {
		return nil, apierrors.NewErrBackendUnavailable("find post", err)
	}
	if i := slices.IndexFunc(cached, func(p model.Post) bool { return p.ID == postID }); i >= 0 {
		return &cached[i], nil
	}
	return nil, apierrors.NewErrPostNotFound(postID)
}

// DeleteComment removes a comment written by actor, or any comment when
// actor is an administrator.
func (s *Social) DeleteComment(ctx context.Context, actor model.User, commentID string) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !actor.IsAdmin() {
		return apierrors.NewErrForbidden("delete this comment")
	}

	if err := s.remote.DeleteComment(ctx, commentID); err != nil {
		s.logger.Error("Social service: failed to delete comment", "comment_id", commentID, "error", err)
		return apierrors.NewErrBackendUnavailable("delete comment", err)
	}
	if err := s.local.DeleteComment(ctx, commentID); err != nil {
		s.logger.Warn("Social service: failed to remove cached comment", "comment_id", commentID, "error", err)
	}

	return nil
}

func (s *Social) findComment(ctx context.Context, commentID string) (*model.Comment, error) {
	comment, err := s.remote.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, apierrors.NewErrBackendUnavailable("find comment", err)
	}
	if comment != nil {
		return comment, nil
	}

	cached, err := s.local.GetPosts(ctx)
	if err != nil {
		return nil, apierrors.NewErrBackendUnavailable("find comment", err)
	}
	for _, p := range cached {
		for _, c := range p.Comments {
			if c.ID == commentID {
				return &c, nil
			}
		}
	}
	return nil, apierrors.NewErrCommentNotFound(commentID)
}

// CreateUser adds an account on behalf of an administrator.
func (s *Social) CreateUser(ctx context.Context, actor model.User, params NewUser) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, apierrors.NewErrForbidden("create users")
	}

	username := strings.TrimSpace(params.Username)
	fullName := strings.TrimSpace(params.FullName)
	if err := validateNewUser(username, params.Password, fullName); err != nil {
		return nil, err
	}
	role := params.Role
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, apierrors.NewErrInvalidArgument("unknown role " + string(role))
	}

	if err := s.directory.ensureAvailable(ctx, username); err != nil {
		return nil, err
	}

	user := model.User{
		ID:        s.ids.UserID(),
		Username:  username,
		Password:  params.Password,
		FullName:  fullName,
		AvatarURL: PlaceholderAvatar(fullName),
		Bio:       adminCreatedBio,
		Role:      role,
		Followers: []string{},
		Following: []string{},
	}

	if err := s.remote.CreateUser(ctx, user); err != nil {
		s.logger.Error("Social service: failed to create user", "username", username, "error", err)
		return nil, apierrors.NewErrBackendUnavailable("create user", err)
	}
	if err := s.local.CreateUser(ctx, user); err != nil {
		s.logger.Warn("Social service: failed to cache created user", "user_id", user.ID, "error", err)
	}

	s.logger.Info("Social service: user created", "user_id", user.ID, "by", actor.ID)
	return &user, nil
}

// DeleteUser removes an account and everything it owns. Administrators
// cannot delete themselves.
func (s *Social) DeleteUser(ctx context.Context, actor model.User, userID string) error {
	if !actor.IsAdmin() {
		return apierrors.NewErrForbidden("delete users")
	}
	if userID == actor.ID {
		return apierrors.NewErrSelfDeletion()
	}

	if err := s.remote.DeleteUser(ctx, userID); err != nil {
		s.logger.Error("Social service: failed to delete user", "user_id", userID, "error", err)
		return apierrors.NewErrBackendUnavailable("delete user", err)
	}
	if err := s.local.DeleteUser(ctx, userID); err != nil {
		s.logger.Warn("Social service: failed to remove cached user", "user_id", userID, "error", err)
	}

	s.logger.Info("Social service: user deleted", "user_id", userID, "by", actor.ID)
	return nil
}

// UpdateProfile changes actor's profile fields and returns the new record.
func (s *Social) UpdateProfile(ctx context.Context, actor model.User, params ProfileUpdate) (*model.User, error) {
	updated := actor.Clone()
	if params.FullName != nil {
		name := strings.TrimSpace(*params.FullName)
		if name == "" {
			return nil, apierrors.NewErrInvalidArgument("full name is required")
		}
		updated.FullName = name
	}
	if params.Bio != nil {
		updated.Bio = strings.TrimSpace(*params.Bio)
	}

	return s.saveProfile(ctx, updated)
}

// ChangeAvatar uploads image and makes it actor's avatar.
func (s *Social) ChangeAvatar(ctx context.Context, actor model.User, image Image) (*model.User, error) {
	url, err := s.UploadImage(ctx, image)
	if err != nil {
		s.logger.Error("Social service: failed to upload avatar", "user_id", actor.ID, "error", err)
		return nil, err
	}

	updated := actor.Clone()
	updated.AvatarURL = url
	return s.saveProfile(ctx, updated)
}

func (s *Social) saveProfile(ctx context.Context, user model.User) (*model.User, error) {
	if err := s.remote.UpdateUser(ctx, user); err != nil {
		s.logger.Error("Social service: failed to update profile", "user_id", user.ID, "error", err)
		return nil, apierrors.NewErrBackendUnavailable("update profile", err)
	}
	if err := s.local.UpdateUser(ctx, user); err != nil {
		s.logger.Warn("Social service: failed to cache profile", "user_id", user.ID, "error", err)
	}
	s.syncSession(ctx)
	return &user, nil
}

// Follow makes actor follow targetID.
func (s *Social) Follow(ctx context.Context, actor model.User, targetID string) error {
	if targetID == actor.ID {
		return apierrors.NewErrInvalidArgument("cannot follow yourself")
	}

	if err := s.remote.FollowUser(ctx, actor.ID, targetID); err != nil {
		s.logger.Warn("Social service: remote follow failed, applying locally",
			"user_id", actor.ID,
			"target_id", targetID,
			"error", err)
	}
	if err := s.local.FollowUser(ctx, actor.ID, targetID); err != nil {
		return apierrors.NewErrBackendUnavailable("follow user", err)
	}
	s.syncSession(ctx)
	return nil
}

// Unfollow removes the follow edge from actor to targetID.
func (s *Social) Unfollow(ctx context.Context, actor model.User, targetID string) error {
	if err := s.remote.UnfollowUser(ctx, actor.ID, targetID); err != nil {
		s.logger.Warn("Social service: remote unfollow failed, applying locally",
			"user_id", actor.ID,
			"target_id", targetID,
			"error", err)
	}
	if err := s.local.UnfollowUser(ctx, actor.ID, targetID); err != nil {
		return apierrors.NewErrBackendUnavailable("unfollow user", err)
	}
	s.syncSession(ctx)
	return nil
}

// ToggleLike flips actor's like on the post and returns the cached feed.
func (s *Social) ToggleLike(ctx context.Context, actor model.User, postID string) ([]model.Post, error) {
	if _, err := s.remote.ToggleLike(ctx, postID, actor.ID); err != nil {
		s.logger.Warn("Social service: remote like failed, applying locally",
			"post_id", postID,
			"user_id", actor.ID,
			"error", err)
	}

	posts, err := s.local.ToggleLike(ctx, postID, actor.ID)
	if err != nil {
		return nil, apierrors.NewErrBackendUnavailable("toggle like", err)
	}
	return posts, nil
}

// AddComment appends a comment by actor to the post.
func (s *Social) AddComment(ctx context.Context, actor model.User, postID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apierrors.NewErrInvalidArgument("comment text is required")
	}

	comment := model.Comment{
		ID:        s.ids.CommentID(),
		PostID:    postID,
		UserID:    actor.ID,
		Username:  actor.Username,
		AvatarURL: actor.AvatarURL,
		Text:      text,
		CreatedAt: s.ids.Millis(),
	}

	if err := s.remote.AddComment(ctx, comment); err != nil {
		s.logger.Warn("Social service: remote comment failed, applying locally",
			"post_id", postID,
			"user_id", actor.ID,
			"error", err)
	}
	if _, err := s.local.AddComment(ctx, postID, comment); err != nil {
		return nil, apierrors.NewErrBackendUnavailable("add comment", err)
	}
	return &comment, nil
}

// ToggleSave flips actor's bookmark on the post and reports whether it is
// saved afterwards.
func (s *Social) ToggleSave(ctx context.Context, actor model.User, postID string) (bool, error) {
	saved, err := s.remote.ToggleSave(ctx, actor.ID, postID)
	if err != nil {
		return false, apierrors.NewErrBackendUnavailable("toggle save", err)
	}
	return saved, nil
}

// TagUser tags the user named username on the post.
func (s *Social) TagUser(ctx context.Context, postID, username string) error {
	target, err := s.tagTarget(ctx, username)
	if err != nil {
		return err
	}
	if err := s.remote.TagUser(ctx, postID, target.ID); err != nil {
		return apierrors.NewErrBackendUnavailable("tag user", err)
	}
	return nil
}

// UntagUser removes the tag of the user named username from the post.
func (s *Social) UntagUser(ctx context.Context, postID, username string) error {
	target, err := s.tagTarget(ctx, username)
	if err != nil {
		return err
	}
	if err := s.remote.UntagUser(ctx, postID, target.ID); err != nil {
		return apierrors.NewErrBackendUnavailable("untag user", err)
	}
	return nil
}

func (s *Social) tagTarget(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, apierrors.NewErrInvalidArgument("username is required")
	}
	target, err := s.remote.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, apierrors.NewErrBackendUnavailable("find tagged user", err)
	}
	if target == nil {
		return nil, apierrors.NewErrUserNotFound(username)
	}
	return target, nil
}
