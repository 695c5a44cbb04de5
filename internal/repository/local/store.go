// Package local implements the on-device cache of users, posts and the
// session user on top of a key-value store.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/dtroode/famgram/internal/kv"
	"github.com/dtroode/famgram/internal/model"
)

var _ model.LocalStore = (*Store)(nil)

const (
	usersSlot   = "users"
	postsSlot   = "posts"
	sessionSlot = "current_user"
)

// Store keeps three JSON slots: the users collection, the posts collection
// and the current session user.
//
// Each slot is guarded by its own mutex. Operations spanning several slots
// lock them in the order users, posts, session.
type Store struct {
	kv     kv.Store
	prefix string

	usersMu   sync.Mutex
	postsMu   sync.Mutex
	sessionMu sync.Mutex
}

// NewStore creates a Store whose slot keys are prefixed with prefix.
func NewStore(store kv.Store, prefix string) *Store {
	return &Store{
		kv:     store,
		prefix: prefix,
	}
}

// Users

func (s *Store) GetUsers(ctx context.Context) ([]model.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	return s.loadUsers(ctx)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	users, err := s.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	return findUser(users, func(u model.User) bool { return u.ID == id }), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := s.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	return findUser(users, func(u model.User) bool { return u.Username == username }), nil
}

// CreateUser appends user, defaulting its role to user.
func (s *Store) CreateUser(ctx context.Context, user model.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	return s.saveUsers(ctx, append(users, user.Clone()))
}

// UpdateUser replaces the user with the same id, appending it when absent.
// The session copy is replaced too when it holds the same user.
func (s *Store) UpdateUser(ctx context.Context, user model.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	if i := slices.IndexFunc(users, func(u model.User) bool { return u.ID == user.ID }); i >= 0 {
		users[i] = user.Clone()
	} else {
		users = append(users, user.Clone())
	}
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}

	return s.syncSession(ctx, func(current *model.User) bool {
		if current.ID != user.ID {
			return false
		}
		*current = user.Clone()
		return true
	})
}

// DeleteUser removes the user together with the posts they authored.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.postsMu.Lock()
	defer s.postsMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	users = slices.DeleteFunc(users, func(u model.User) bool { return u.ID == userID })
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}

	posts, err := s.loadPosts(ctx)
	if err != nil {
		return err
	}
	posts = slices.DeleteFunc(posts, func(p model.Post) bool { return p.UserID == userID })
	return s.savePosts(ctx, posts)
}

// FollowUser records that followerID follows targetID on both users.
func (s *Store) FollowUser(ctx context.Context, followerID, targetID string) error {
	return s.updateEdge(ctx, followerID, targetID, addID)
}

// UnfollowUser removes the follow edge from both users.
func (s *Store) UnfollowUser(ctx context.Context, followerID, targetID string) error {
	return s.updateEdge(ctx, followerID, targetID, removeID)
}

func (s *Store) updateEdge(ctx context.Context, followerID, targetID string, apply func([]string, string) []string) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == followerID {
			users[i].Following = apply(users[i].Following, targetID)
		}
		if users[i].ID == targetID {
			users[i].Followers = apply(users[i].Followers, followerID)
		}
	}
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}

	return s.syncSession(ctx, func(current *model.User) bool {
		switch current.ID {
		case followerID:
			current.Following = apply(current.Following, targetID)
		case targetID:
			current.Followers = apply(current.Followers, followerID)
		default:
			return false
		}
		return true
	})
}

// Bootstrap adds every user whose username is not cached yet.
func (s *Store) Bootstrap(ctx context.Context, seed ...model.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	changed := false
	for _, u := range seed {
		if findUser(users, func(existing model.User) bool { return existing.Username == u.Username }) != nil {
			continue
		}
		if u.Role == "" {
			u.Role = model.RoleUser
		}
		users = append(users, u.Clone())
		changed = true
	}
	if !changed {
		return nil
	}
	return s.saveUsers(ctx, users)
}

// Posts

func (s *Store) GetPosts(ctx context.Context) ([]model.Post, error) {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()

	return s.loadPosts(ctx)
}

// CreatePost puts post at the front of the collection.
func (s *Store) CreatePost(ctx context.Context, post model.Post) error {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()

	posts, err := s.loadPosts(ctx)
	if err != nil {
		return err
	}
	return s.savePosts(ctx, slices.Insert(posts, 0, post))
}

func (s *Store) DeletePost(ctx context.Context, postID string) error {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()

	posts, err := s.loadPosts(ctx)
	if err != nil {
		return err
	}
	return s.savePosts(ctx, slices.DeleteFunc(posts, func(p model.Post) bool { return p.ID == postID }))
}

// ToggleLike flips the like of userID on the post and returns the updated
// collection. An unknown post leaves the collection untouched.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) ([]model.Post, error) {
	return s.updatePost(ctx, postID, func(p *model.Post) {
		if p.LikedBy(userID) {
			p.Likes = removeID(p.Likes, userID)
		} else {
			p.Likes = append(p.Likes, userID)
		}
	})
}

// AddComment appends comment to the post and returns the updated collection.
func (s *Store) AddComment(ctx context.Context, postID string, comment model.Comment) ([]model.Post, error) {
	return s.updatePost(ctx, postID, func(p *model.Post) {
		p.Comments = append(p.Comments, comment)
	})
}

func (s *Store) DeleteComment(ctx context.Context, commentID string) error {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()

	posts, err := s.loadPosts(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Comments = slices.DeleteFunc(posts[i].Comments, func(c model.Comment) bool { return c.ID == commentID })
	}
	return s.savePosts(ctx, posts)
}

func (s *Store) updatePost(ctx context.Context, postID string, apply func(*model.Post)) ([]model.Post, error) {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()

	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(posts, func(p model.Post) bool { return p.ID == postID })
	if i < 0 {
		return posts, nil
	}
	apply(&posts[i])
	if err := s.savePosts(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Session

func (s *Store) GetCurrentUser(ctx context.Context) (*model.User, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	return s.loadSession(ctx)
}

// SetCurrentUser persists user as the session user; nil clears the slot.
func (s *Store) SetCurrentUser(ctx context.Context, user *model.User) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	return s.saveSession(ctx, user)
}

// syncSession applies update to the persisted session user, if any, and
// writes it back when update reports a change. Callers hold usersMu.
func (s *Store) syncSession(ctx context.Context, update func(*model.User) bool) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	current, err := s.loadSession(ctx)
	if err != nil || current == nil {
		return err
	}
	if !update(current) {
		return nil
	}
	return s.saveSession(ctx, current)
}

func (s *Store) loadUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if _, err := s.load(ctx, usersSlot, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) saveUsers(ctx context.Context, users []model.User) error {
	return s.save(ctx, usersSlot, users)
}

func (s *Store) loadPosts(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	if _, err := s.load(ctx, postsSlot, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Likes == nil {
			posts[i].Likes = []string{}
		}
		if posts[i].Comments == nil {
			posts[i].Comments = []model.Comment{}
		}
	}
	return posts, nil
}

func (s *Store) savePosts(ctx context.Context, posts []model.Post) error {
	return s.save(ctx, postsSlot, posts)
}

func (s *Store) loadSession(ctx context.Context) (*model.User, error) {
	var user model.User
	ok, err := s.load(ctx, sessionSlot, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

func (s *Store) saveSession(ctx context.Context, user *model.User) error {
	if user == nil {
		if err := s.kv.Delete(ctx, s.prefix+sessionSlot); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}
	return s.save(ctx, sessionSlot, user)
}

func (s *Store) load(ctx context.Context, slot string, dst any) (bool, error) {
	data, ok, err := s.kv.Get(ctx, s.prefix+slot)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", slot, err)
	}
	if !ok || len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", slot, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, slot string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", slot, err)
	}
	if err := s.kv.Set(ctx, s.prefix+slot, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", slot, err)
	}
	return nil
}

func findUser(users []model.User, match func(model.User) bool) *model.User {
	if i := slices.IndexFunc(users, match); i >= 0 {
		u := users[i].Clone()
		return &u
	}
	return nil
}

func addID(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(existing string) bool { return existing == id })
}
