package service

import (
	"context"
	"slices"
	"strings"

	"github.com/dtroode/famgram/internal/apierrors"
	"github.com/dtroode/famgram/internal/logger"
	"github.com/dtroode/famgram/internal/model"
	"github.com/dtroode/famgram/internal/reconcile"
)

// userDirectory builds username-keyed views over both user sources.
type userDirectory struct {
	remote model.RemoteStore
	local  model.LocalStore
	logger *logger.Logger
	prefix string
}

// table returns the login table. A failing source contributes no users.
func (d userDirectory) table(ctx context.Context) map[string]model.User {
	remoteUsers, err := d.remote.GetUsers(ctx)
	if err != nil {
		d.logger.Warn(d.prefix+": remote users unavailable, using local users only", "error", err)
		remoteUsers = nil
	}
	localUsers, err := d.local.GetUsers(ctx)
	if err != nil {
		d.logger.Warn(d.prefix+": local users unavailable", "error", err)
		localUsers = nil
	}
	return reconcile.LoginTable(localUsers, remoteUsers)
}

// ensureAvailable fails with a username taken error when username is
// already registered. Remote users are authoritative; local users are
// consulted only when the remote collection is empty or unreachable.
func (d userDirectory) ensureAvailable(ctx context.Context, username string) error {
	users, err := d.remote.GetUsers(ctx)
	if err != nil {
		d.logger.Warn(d.prefix+": remote users unavailable, checking local users", "error", err)
	}
	if len(users) == 0 {
		users, err = d.local.GetUsers(ctx)
		if err != nil {
			return apierrors.NewErrBackendUnavailable("check username", err)
		}
	}

	if slices.ContainsFunc(users, func(u model.User) bool { return u.Username == username }) {
		return apierrors.NewErrUsernameTaken(username)
	}
	return nil
}

func validateNewUser(username, password, fullName string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return apierrors.NewErrInvalidArgument("username is required")
	case password == "":
		return apierrors.NewErrInvalidArgument("password is required")
	case strings.TrimSpace(fullName) == "":
		return apierrors.NewErrInvalidArgument("full name is required")
	}
	return nil
}
