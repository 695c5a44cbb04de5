package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/famgram/internal/apierrors"
	"github.com/dtroode/famgram/internal/mocks"
	"github.com/dtroode/famgram/internal/model"
	"github.com/dtroode/famgram/internal/repository/local"
	"github.com/dtroode/famgram/internal/testutil"
)

var (
	admin = model.User{ID: "u0", Username: "admin", Role: model.RoleAdmin}
	alice = model.User{ID: "u1", Username: "a", AvatarURL: "a.png"}
	bob   = model.User{ID: "u2", Username: "b"}
)

func newSocial(t *testing.T) (*Social, *mocks.RemoteStore, *local.Store) {
	t.Helper()
	remote := mocks.NewRemoteStore(t)
	store := newLocal(t)
	return NewSocial(remote, store, fixedIDs(), testutil.MakeNoopLogger()), remote, store
}

func TestSocial_ListPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("remote is authoritative", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreatePost(ctx, model.Post{ID: "local-only"}))
		remote.On("GetPosts", mock.Anything).Return([]model.Post{{ID: "p2", CreatedAt: 2}, {ID: "p1", CreatedAt: 1}}, nil)

		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "p2", posts[0].ID)
	})

	t.Run("falls back to cache", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreatePost(ctx, model.Post{ID: "old", CreatedAt: 1}))
		require.NoError(t, store.CreatePost(ctx, model.Post{ID: "older", CreatedAt: 0}))
		remote.On("GetPosts", mock.Anything).Return(nil, remoteDown)

		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "old", posts[0].ID)
	})
}

func TestSocial_ListUsersFallsBack(t *testing.T) {
	ctx := context.Background()
	s, remote, store := newSocial(t)
	require.NoError(t, store.CreateUser(ctx, alice))
	remote.On("GetUsers", mock.Anything).Return(nil, remoteDown)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a", users[0].Username)
}

func TestSocial_ResolveUser(t *testing.T) {
	ctx := context.Background()

	t.Run("remote bio wins and relationships are unioned", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, model.User{ID: "u2", Username: "b", Bio: "local", Followers: []string{"u3"}}))
		remote.On("GetUserByUsername", mock.Anything, "b").
			Return(&model.User{ID: "u2", Username: "b", Bio: "remote", Followers: []string{"u1", "u3"}}, nil)

		u, err := s.ResolveUser(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "remote", u.Bio)
		assert.ElementsMatch(t, []string{"u3", "u1"}, u.Followers)
	})

	t.Run("follow scenario with no local record", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetUserByUsername", mock.Anything, "b").
			Return(&model.User{ID: "u2", Username: "b", Followers: []string{"u1"}}, nil)

		u, err := s.ResolveUser(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, u.Followers)
	})

	t.Run("remote down uses local", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, bob))
		remote.On("GetUserByUsername", mock.Anything, "b").Return(nil, remoteDown)

		u, err := s.ResolveUser(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "u2", u.ID)
	})

	t.Run("unknown everywhere", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, nil)

		u, err := s.ResolveUser(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestSocial_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("remote and local", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, alice))
		remote.On("FollowUser", mock.Anything, "u1", "u2").Return(nil)

		require.NoError(t, s.Follow(ctx, alice, "u2"))
		a, _ := store.GetUserByID(ctx, "u1")
		assert.Equal(t, []string{"u2"}, a.Following)
	})

	t.Run("remote failure still applies locally", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, alice))
		require.NoError(t, store.CreateUser(ctx, bob))
		remote.On("FollowUser", mock.Anything, "u1", "u2").Return(remoteDown)

		require.NoError(t, s.Follow(ctx, alice, "u2"))
		b, _ := store.GetUserByID(ctx, "u2")
		assert.Equal(t, []string{"u1"}, b.Followers)

		remote.On("UnfollowUser", mock.Anything, "u1", "u2").Return(remoteDown)
		require.NoError(t, s.Unfollow(ctx, alice, "u2"))
		b, _ = store.GetUserByID(ctx, "u2")
		assert.Empty(t, b.Followers)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		s, _, _ := newSocial(t)
		err := s.Follow(ctx, alice, "u1")
		assert.True(t, apierrors.Is(err, apierrors.ReasonInvalidArgument))
	})
}

func TestSocial_ToggleLike(t *testing.T) {
	ctx := context.Background()
	s, remote, store := newSocial(t)
	require.NoError(t, store.CreatePost(ctx, model.Post{ID: "p1"}))
	remote.On("ToggleLike", mock.Anything, "p1", "u1").Return(false, remoteDown).Once()
	remote.On("ToggleLike", mock.Anything, "p1", "u1").Return(false, nil).Once()

	posts, err := s.ToggleLike(ctx, alice, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, posts[0].Likes)

	posts, err = s.ToggleLike(ctx, alice, "p1")
	require.NoError(t, err)
	assert.Empty(t, posts[0].Likes)
}

func TestSocial_AddComment(t *testing.T) {
	ctx := context.Background()
	s, remote, store := newSocial(t)
	require.NoError(t, store.CreatePost(ctx, model.Post{ID: "p1"}))
	remote.On("AddComment", mock.Anything, mock.MatchedBy(func(c model.Comment) bool {
		return c.PostID == "p1" && c.Text == "So cute!" && c.Username == "a" && c.AvatarURL == "a.png"
	})).Return(remoteDown)

	c, err := s.AddComment(ctx, alice, "p1", "  So cute!  ")
	require.NoError(t, err)
	assert.Equal(t, "c1735689600000", c.ID)

	posts, err := store.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "So cute!", posts[0].Comments[0].Text)

	_, err = s.AddComment(ctx, alice, "p1", "   ")
	assert.True(t, apierrors.Is(err, apierrors.ReasonInvalidArgument))
}

func TestSocial_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads image then writes remote then local", func(t *testing.T) {
		s, remote, store := newSocial(t)
		img := Image{Name: "cat.jpg", Reader: strings.NewReader("jpg"), Size: 3, ContentType: "image/jpeg"}
		remote.On("UploadImage", mock.Anything, "cat.jpg", img.Reader, int64(3), "image/jpeg").Return("http://cdn/images/x.jpg", nil)
		remote.On("CreatePost", mock.Anything, mock.MatchedBy(func(p model.Post) bool {
			return p.ImageURL == "http://cdn/images/x.jpg" && p.UserID == "u1" && p.Caption == "hello"
		})).Return(nil)

		post, err := s.CreatePost(ctx, alice, NewPost{Caption: " hello ", Image: &img})
		require.NoError(t, err)
		assert.Equal(t, "a.png", post.UserAvatar)
		assert.Equal(t, int64(1735689600000), post.CreatedAt)

		posts, err := store.GetPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, post.ID, posts[0].ID)
	})

	t.Run("remote write failure leaves cache untouched", func(t *testing.T) {
		s, remote, store := newSocial(t)
		remote.On("CreatePost", mock.Anything, mock.Anything).Return(remoteDown)

		_, err := s.CreatePost(ctx, alice, NewPost{ImageURL: "http://x/y.png"})
		assert.True(t, apierrors.Is(err, apierrors.ReasonBackendUnavailable))

		posts, err := store.GetPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("upload failure fails the post", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", remoteDown)

		_, err := s.CreatePost(ctx, alice, NewPost{Image: &Image{Name: "x.png"}})
		assert.True(t, apierrors.Is(err, apierrors.ReasonBackendUnavailable))
		remote.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})

	t.Run("image required", func(t *testing.T) {
		s, _, _ := newSocial(t)
		_, err := s.CreatePost(ctx, alice, NewPost{Caption: "no image"})
		assert.True(t, apierrors.Is(err, apierrors.ReasonInvalidArgument))
	})
}

func TestSocial_DeletePost(t *testing.T) {
	ctx := context.Background()
	post := &model.Post{ID: "p1", UserID: "u1", ImageURL: "http://cdn/images/p1.png"}

	t.Run("owner deletes from both sources", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreatePost(ctx, *post))
		remote.On("GetPostByID", mock.Anything, "p1").Return(post, nil)
		remote.On("DeletePost", mock.Anything, "p1", post.ImageURL).Return(nil)
		remote.On("GetPosts", mock.Anything).Return([]model.Post{}, nil)

		require.NoError(t, s.DeletePost(ctx, alice, "p1"))

		cached, err := store.GetPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, cached)
		feed, err := s.ListPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, feed)
	})

	t.Run("admin may delete any post", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetPostByID", mock.Anything, "p1").Return(post, nil)
		remote.On("DeletePost", mock.Anything, "p1", post.ImageURL).Return(nil)

		require.NoError(t, s.DeletePost(ctx, admin, "p1"))
	})

	t.Run("others are forbidden", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetPostByID", mock.Anything, "p1").Return(post, nil)

		err := s.DeletePost(ctx, bob, "p1")
		assert.True(t, apierrors.Is(err, apierrors.ReasonForbidden))
	})

	t.Run("remote failure keeps cache", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreatePost(ctx, *post))
		remote.On("GetPostByID", mock.Anything, "p1").Return(post, nil)
		remote.On("DeletePost", mock.Anything, "p1", post.ImageURL).Return(remoteDown)

		err := s.DeletePost(ctx, alice, "p1")
		assert.True(t, apierrors.Is(err, apierrors.ReasonBackendUnavailable))
		cached, _ := store.GetPosts(ctx)
		assert.Len(t, cached, 1)
	})

	t.Run("cache only post", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreatePost(ctx, model.Post{ID: "p9", UserID: "u1"}))
		remote.On("GetPostByID", mock.Anything, "p9").Return(nil, nil)
		remote.On("DeletePost", mock.Anything, "p9", "").Return(nil)

		require.NoError(t, s.DeletePost(ctx, alice, "p9"))
	})

	t.Run("unknown post", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetPostByID", mock.Anything, "nope").Return(nil, nil)

		err := s.DeletePost(ctx, alice, "nope")
		assert.True(t, apierrors.Is(err, apierrors.ReasonPostNotFound))
	})
}

func TestSocial_DeleteComment(t *testing.T) {
	ctx := context.Background()
	comment := &model.Comment{ID: "c1", PostID: "p1", UserID: "u2"}

	t.Run("author deletes", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreatePost(ctx, model.Post{ID: "p1"}))
		_, err := store.AddComment(ctx, "p1", *comment)
		require.NoError(t, err)
		remote.On("GetCommentByID", mock.Anything, "c1").Return(comment, nil)
		remote.On("DeleteComment", mock.Anything, "c1").Return(nil)

		require.NoError(t, s.DeleteComment(ctx, bob, "c1"))
		posts, _ := store.GetPosts(ctx)
		assert.Empty(t, posts[0].Comments)
	})

	t.Run("non author forbidden", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetCommentByID", mock.Anything, "c1").Return(comment, nil)

		err := s.DeleteComment(ctx, alice, "c1")
		assert.True(t, apierrors.Is(err, apierrors.ReasonForbidden))
	})

	t.Run("unknown comment", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetCommentByID", mock.Anything, "c9").Return(nil, nil)

		err := s.DeleteComment(ctx, admin, "c9")
		assert.True(t, apierrors.Is(err, apierrors.ReasonCommentNotFound))
	})
}

func TestSocial_AdminUsersAndPosts(t *testing.T) {
	ctx := context.Background()
	s, remote, store := newSocial(t)
	require.NoError(t, store.CreateUser(ctx, admin))
	require.NoError(t, store.CreateUser(ctx, model.User{ID: "u1", Username: "a", Bio: "local"}))
	require.NoError(t, store.CreatePost(ctx, model.Post{ID: "p1", CreatedAt: 1}))
	remote.On("GetUsers", mock.Anything).Return([]model.User{{ID: "u1", Username: "a", Bio: "remote"}, bob}, nil)
	remote.On("GetPosts", mock.Anything).Return([]model.Post{{ID: "p2", CreatedAt: 2}}, nil)

	users, err := s.AdminUsers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "remote", users[1].Bio)

	posts, err := s.AdminPosts(ctx, admin)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)

	_, err = s.AdminUsers(ctx, alice)
	assert.True(t, apierrors.Is(err, apierrors.ReasonForbidden))
	_, err = s.AdminPosts(ctx, alice)
	assert.True(t, apierrors.Is(err, apierrors.ReasonForbidden))
}

func TestSocial_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates", func(t *testing.T) {
		s, remote, store := newSocial(t)
		remote.On("GetUsers", mock.Anything).Return([]model.User{}, nil)
		remote.On("CreateUser", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.Username == "dad" && u.Role == model.RoleAdmin && u.Bio == "New Member"
		})).Return(nil)

		u, err := s.CreateUser(ctx, admin, NewUser{Username: "dad", Password: "pw", FullName: "Dad", Role: model.RoleAdmin})
		require.NoError(t, err)
		cached, err := store.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, cached)
	})

	t.Run("non admin forbidden", func(t *testing.T) {
		s, _, _ := newSocial(t)
		_, err := s.CreateUser(ctx, alice, NewUser{Username: "x", Password: "pw", FullName: "X"})
		assert.True(t, apierrors.Is(err, apierrors.ReasonForbidden))
	})

	t.Run("collision", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetUsers", mock.Anything).Return([]model.User{bob}, nil)
		_, err := s.CreateUser(ctx, admin, NewUser{Username: "b", Password: "pw", FullName: "B"})
		assert.True(t, apierrors.Is(err, apierrors.ReasonUsernameTaken))
	})

	t.Run("remote failure", func(t *testing.T) {
		s, remote, store := newSocial(t)
		remote.On("GetUsers", mock.Anything).Return([]model.User{}, nil)
		remote.On("CreateUser", mock.Anything, mock.Anything).Return(remoteDown)

		_, err := s.CreateUser(ctx, admin, NewUser{Username: "dad", Password: "pw", FullName: "Dad"})
		assert.True(t, apierrors.Is(err, apierrors.ReasonBackendUnavailable))
		users, _ := store.GetUsers(ctx)
		assert.Empty(t, users)
	})

	t.Run("unknown role", func(t *testing.T) {
		s, _, _ := newSocial(t)
		_, err := s.CreateUser(ctx, admin, NewUser{Username: "x", Password: "pw", FullName: "X", Role: "root"})
		assert.True(t, apierrors.Is(err, apierrors.ReasonInvalidArgument))
	})
}

func TestSocial_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades locally after remote", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, alice))
		require.NoError(t, store.CreatePost(ctx, model.Post{ID: "p1", UserID: "u1"}))
		remote.On("DeleteUser", mock.Anything, "u1").Return(nil)

		require.NoError(t, s.DeleteUser(ctx, admin, "u1"))
		users, _ := store.GetUsers(ctx)
		posts, _ := store.GetPosts(ctx)
		assert.Empty(t, users)
		assert.Empty(t, posts)
	})

	t.Run("self deletion", func(t *testing.T) {
		s, _, _ := newSocial(t)
		err := s.DeleteUser(ctx, admin, "u0")
		assert.True(t, apierrors.Is(err, apierrors.ReasonSelfDeletion))
	})

	t.Run("partial remote failure is reported and cache kept", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, alice))
		remote.On("DeleteUser", mock.Anything, "u1").Return(remoteDown)

		err := s.DeleteUser(ctx, admin, "u1")
		assert.True(t, apierrors.Is(err, apierrors.ReasonBackendUnavailable))
		users, _ := store.GetUsers(ctx)
		assert.Len(t, users, 1)
	})

	t.Run("non admin forbidden", func(t *testing.T) {
		s, _, _ := newSocial(t)
		err := s.DeleteUser(ctx, alice, "u2")
		assert.True(t, apierrors.Is(err, apierrors.ReasonForbidden))
	})
}

func TestSocial_UpdateProfileAndAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("bio update mirrors to cache and session", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, alice))
		require.NoError(t, store.SetCurrentUser(ctx, &alice))
		remote.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u model.User) bool { return u.Bio == "hello" })).Return(nil)

		bio := " hello "
		u, err := s.UpdateProfile(ctx, alice, ProfileUpdate{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "hello", u.Bio)

		current, _ := store.GetCurrentUser(ctx)
		assert.Equal(t, "hello", current.Bio)
	})

	t.Run("remote failure leaves cache", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, alice))
		remote.On("UpdateUser", mock.Anything, mock.Anything).Return(remoteDown)

		bio := "nope"
		_, err := s.UpdateProfile(ctx, alice, ProfileUpdate{Bio: &bio})
		assert.True(t, apierrors.Is(err, apierrors.ReasonBackendUnavailable))
		cached, _ := store.GetUserByID(ctx, "u1")
		assert.Empty(t, cached.Bio)
	})

	t.Run("avatar", func(t *testing.T) {
		s, remote, store := newSocial(t)
		require.NoError(t, store.CreateUser(ctx, alice))
		remote.On("UploadImage", mock.Anything, "me.png", mock.Anything, int64(2), "image/png").Return("http://cdn/images/me.png", nil)
		remote.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u model.User) bool { return u.AvatarURL == "http://cdn/images/me.png" })).Return(nil)

		u, err := s.ChangeAvatar(ctx, alice, Image{Name: "me.png", Reader: strings.NewReader("hi"), Size: 2, ContentType: "image/png"})
		require.NoError(t, err)
		assert.Equal(t, "http://cdn/images/me.png", u.AvatarURL)
		cached, _ := store.GetUserByID(ctx, "u1")
		assert.Equal(t, "http://cdn/images/me.png", cached.AvatarURL)
	})
}

func TestSocial_SavedAndTaggedPosts(t *testing.T) {
	ctx := context.Background()
	feed := []model.Post{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}

	t.Run("filters the remote feed", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetPosts", mock.Anything).Return(feed, nil)
		remote.On("GetSavedPostIDs", mock.Anything, "u1").Return([]string{"p2"}, nil)
		remote.On("GetTaggedPostIDs", mock.Anything, "u1").Return([]string{"p1", "p3"}, nil)

		saved := s.SavedPosts(ctx, "u1")
		require.Len(t, saved, 1)
		assert.Equal(t, "p2", saved[0].ID)

		tagged := s.TaggedPosts(ctx, "u1")
		assert.Len(t, tagged, 2)
	})

	t.Run("remote failure yields empty", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetPosts", mock.Anything).Return(nil, remoteDown)

		assert.Empty(t, s.SavedPosts(ctx, "u1"))
		assert.Empty(t, s.TaggedPosts(ctx, "u1"))
	})
}

func TestSocial_UserPosts(t *testing.T) {
	ctx := context.Background()
	s, remote, _ := newSocial(t)
	remote.On("GetPosts", mock.Anything).Return([]model.Post{{ID: "p1", UserID: "u1"}, {ID: "p2", UserID: "u2"}}, nil)

	posts, err := s.UserPosts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
}

func TestSocial_ToggleSave(t *testing.T) {
	ctx := context.Background()
	s, remote, _ := newSocial(t)
	remote.On("ToggleSave", mock.Anything, "u1", "p1").Return(true, nil).Once()
	remote.On("ToggleSave", mock.Anything, "u1", "p1").Return(false, remoteDown).Once()

	saved, err := s.ToggleSave(ctx, alice, "p1")
	require.NoError(t, err)
	assert.True(t, saved)

	_, err = s.ToggleSave(ctx, alice, "p1")
	assert.True(t, apierrors.Is(err, apierrors.ReasonBackendUnavailable))
}

func TestSocial_Tagging(t *testing.T) {
	ctx := context.Background()

	t.Run("tag by username", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetUserByUsername", mock.Anything, "b").Return(&bob, nil)
		remote.On("TagUser", mock.Anything, "p1", "u2").Return(nil)
		remote.On("UntagUser", mock.Anything, "p1", "u2").Return(nil)

		require.NoError(t, s.TagUser(ctx, "p1", "@b"))
		require.NoError(t, s.UntagUser(ctx, "p1", "b"))
	})

	t.Run("unknown user", func(t *testing.T) {
		s, remote, _ := newSocial(t)
		remote.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, nil)

		err := s.TagUser(ctx, "p1", "ghost")
		assert.True(t, apierrors.Is(err, apierrors.ReasonUserNotFound))
	})
}

func TestSocial_KeepsAttachedSessionInStep(t *testing.T) {
	ctx := context.Background()
	s, remote, store := newSocial(t)
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.SetCurrentUser(ctx, &alice))

	remote.On("GetUserByID", mock.Anything, "u1").Return(nil, remoteDown)
	session := NewSession(remote, store, fixedIDs(), testutil.MakeNoopLogger())
	require.NoError(t, session.Init(ctx))
	s.AttachSession(session)

	remote.On("FollowUser", mock.Anything, "u1", "u2").Return(nil)
	require.NoError(t, s.Follow(ctx, alice, "u2"))
	assert.Equal(t, []string{"u2"}, session.Current().Following)

	remote.On("UpdateUser", mock.Anything, mock.Anything).Return(nil)
	bio := "new bio"
	_, err := s.UpdateProfile(ctx, *session.Current(), ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "new bio", session.Current().Bio)
	assert.Equal(t, []string{"u2"}, session.Current().Following)

	remote.On("UnfollowUser", mock.Anything, "u1", "u2").Return(remoteDown)
	require.NoError(t, s.Unfollow(ctx, alice, "u2"))
	assert.Empty(t, session.Current().Following)
}
