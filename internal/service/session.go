package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dtroode/famgram/internal/apierrors"
	"github.com/dtroode/famgram/internal/idgen"
	"github.com/dtroode/famgram/internal/logger"
	"github.com/dtroode/famgram/internal/model"
	"github.com/dtroode/famgram/internal/reconcile"
)

// State is a phase of the session lifecycle.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const signupBio = "New family member"

// Session owns the single signed-in user slot. Every mutation is written
// to the local store before the in-memory copy changes, so both copies
// agree once a call returns.
type Session struct {
	mu    sync.Mutex
	state State
	user  *model.User

	remote    model.RemoteStore
	local     model.LocalStore
	directory userDirectory
	ids       *idgen.Generator
	logger    *logger.Logger
}

func NewSession(
	remote model.RemoteStore,
	local model.LocalStore,
	ids *idgen.Generator,
	logger *logger.Logger,
) *Session {
	return &Session{
		state:  StateLoading,
		remote: remote,
		local:  local,
		directory: userDirectory{
			remote: remote,
			local:  local,
			logger: logger,
			prefix: "Session service",
		},
		ids:    ids,
		logger: logger,
	}
}

// Init restores the persisted session and refreshes it from the remote
// store when possible. Init always leaves the Loading state.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.local.GetCurrentUser(ctx)
	if err != nil {
		s.logger.Error("Session service: failed to read persisted session", "error", err)
		s.setLocked(nil)
		return fmt.Errorf("failed to read persisted session: %w", err)
	}
	if stored == nil {
		s.logger.Debug("Session service: no persisted session")
		s.setLocked(nil)
		return nil
	}

	s.setLocked(stored)

	fresh, err := s.remote.GetUserByID(ctx, stored.ID)
	if err != nil {
		s.logger.Warn("Session service: keeping persisted session, remote refresh failed",
			"user_id", stored.ID,
			"error", err)
		return nil
	}
	if fresh == nil {
		s.logger.Debug("Session service: keeping persisted session, user unknown remotely",
			"user_id", stored.ID)
		return nil
	}

	if err := s.local.SetCurrentUser(ctx, fresh); err != nil {
		s.logger.Warn("Session service: failed to persist refreshed session",
			"user_id", stored.ID,
			"error", err)
		return nil
	}
	s.setLocked(fresh)

	s.logger.Info("Session service: session restored", "user_id", fresh.ID)
	return nil
}

// Login signs in with a username and plaintext password checked against
// both user sources, remote entries taking precedence.
func (s *Session) Login(ctx context.Context, username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("Session service: starting login", "username", username)

	user, ok := reconcile.FindCredentials(s.directory.table(ctx), username, password)
	if !ok {
		s.logger.Info("Session service: invalid credentials", "username", username)
		return nil, apierrors.NewErrInvalidCredentials()
	}

	if err := s.local.SetCurrentUser(ctx, user); err != nil {
		s.logger.Error("Session service: failed to persist session",
			"user_id", user.ID,
			"error", err)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	s.setLocked(user)

	s.logger.Info("Session service: login completed", "user_id", user.ID)
	return clone(user), nil
}

// Signup registers a new account. The remote store must accept the account
// before it is cached locally and signed in.
func (s *Session) Signup(ctx context.Context, username, password, fullName string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if err := validateNewUser(username, password, fullName); err != nil {
		return nil, err
	}

	s.logger.Debug("Session service: starting signup", "username", username)

	if err := s.directory.ensureAvailable(ctx, username); err != nil {
		s.logger.Info("Session service: username already taken", "username", username)
		return nil, err
	}

	user := model.User{
		ID:        s.ids.UserID(),
		Username:  username,
		Password:  password,
		FullName:  fullName,
		AvatarURL: PlaceholderAvatar(fullName),
		Bio:       signupBio,
		Role:      model.RoleUser,
		Followers: []string{},
		Following: []string{},
	}

	if err := s.remote.CreateUser(ctx, user); err != nil {
		s.logger.Error("Session service: failed to create user remotely",
			"username", username,
			"error", err)
		return nil, apierrors.NewErrBackendUnavailable("signup", err)
	}

	if err := s.local.CreateUser(ctx, user); err != nil {
		s.logger.Warn("Session service: failed to cache new user",
			"user_id", user.ID,
			"error", err)
	}

	if err := s.local.SetCurrentUser(ctx, &user); err != nil {
		s.logger.Error("Session service: failed to persist session",
			"user_id", user.ID,
			"error", err)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	s.setLocked(&user)

	s.logger.Info("Session service: signup completed", "user_id", user.ID)
	return clone(&user), nil
}

// Logout clears the session. When the persisted copy cannot be cleared the
// session stays signed in and the error is returned.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.local.SetCurrentUser(ctx, nil); err != nil {
		s.logger.Error("Session service: failed to clear persisted session", "error", err)
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	s.setLocked(nil)

	s.logger.Info("Session service: logged out")
	return nil
}

// Reload replaces the in-memory session with the persisted copy. Local
// store writes that touch the current user rewrite that copy.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoading {
		return nil
	}
	stored, err := s.local.GetCurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to read persisted session: %w", err)
	}
	s.setLocked(stored)
	return nil
}

// RefreshUser pulls the current user's record from the remote store and
// replaces the session and the cached user with it. Without a remote
// record the session is left unchanged.
func (s *Session) RefreshUser(ctx context.Context) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.local.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read persisted session: %w", err)
	}
	if stored == nil {
		return clone(s.user), nil
	}

	fresh, err := s.remote.GetUserByID(ctx, stored.ID)
	if err != nil {
		s.logger.Warn("Session service: refresh failed, keeping session",
			"user_id", stored.ID,
			"error", err)
		return clone(s.user), nil
	}
	if fresh == nil {
		return clone(s.user), nil
	}

	// UpdateUser rewrites the session slot as well.
	if err := s.local.UpdateUser(ctx, *fresh); err != nil {
		s.logger.Error("Session service: failed to persist refreshed user",
			"user_id", fresh.ID,
			"error", err)
		return nil, fmt.Errorf("failed to persist refreshed user: %w", err)
	}
	s.setLocked(fresh)

	s.logger.Debug("Session service: user refreshed", "user_id", fresh.ID)
	return clone(fresh), nil
}

// Current returns a copy of the signed-in user, or nil.
func (s *Session) Current() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clone(s.user)
}

// RequireUser returns the signed-in user or an unauthenticated error.
func (s *Session) RequireUser() (*model.User, error) {
	user := s.Current()
	if user == nil {
		return nil, apierrors.NewErrUnauthenticated()
	}
	return user, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) setLocked(user *model.User) {
	s.user = clone(user)
	if user == nil {
		s.state = StateUnauthenticated
		return
	}
	s.state = StateAuthenticated
}

func clone(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := u.Clone()
	return &c
}
