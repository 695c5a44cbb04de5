// Package reconcile merges the remote and local copies of users and posts.
//
// Every function is pure: it takes the two copies as values and returns a
// new value without touching either source.
package reconcile

import (
	"slices"
	"sort"

	"github.com/dtroode/famgram/internal/model"
)

// MergeUser resolves one user known to either source. When the remote copy
// exists its profile fields win, empty values included; the local password
// is kept only when the remote record carries none. Followers and Following
// are the deduplicated union of both copies.
// MergeUser returns nil when both copies are nil.
func MergeUser(local, remote *model.User) *model.User {
	if local == nil && remote == nil {
		return nil
	}

	var merged model.User
	if local != nil {
		merged = local.Clone()
	}
	if remote != nil {
		overlay(&merged, *remote)
	}

	var localFollowers, localFollowing, remoteFollowers, remoteFollowing []string
	if local != nil {
		localFollowers, localFollowing = local.Followers, local.Following
	}
	if remote != nil {
		remoteFollowers, remoteFollowing = remote.Followers, remote.Following
	}
	merged.Followers = UnionIDs(localFollowers, remoteFollowers)
	merged.Following = UnionIDs(localFollowing, remoteFollowing)

	return &merged
}

func overlay(dst *model.User, src model.User) {
	password := dst.Password
	*dst = src
	if dst.Password == "" {
		dst.Password = password
	}
}

// UnionIDs returns the ids of a followed by the ids of b that are not in a,
// with duplicates removed. The result is never nil.
func UnionIDs(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, ids := range [][]string{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// LoginTable keys users by username. Local users are inserted first and
// remote users replace them, so remote credentials win for accounts known
// to both sources while local-only accounts stay reachable.
func LoginTable(local, remote []model.User) map[string]model.User {
	table := make(map[string]model.User, len(local)+len(remote))
	for _, u := range local {
		table[u.Username] = u
	}
	for _, u := range remote {
		table[u.Username] = u
	}
	return table
}

// FindCredentials returns the user whose username and password both match
// exactly.
func FindCredentials(table map[string]model.User, username, password string) (*model.User, bool) {
	u, ok := table[username]
	if !ok || u.Password != password {
		return nil, false
	}
	u = u.Clone()
	return &u, true
}

// MergeUsersByUsername lists local users overlaid by remote users with the
// same username. Users keep the position of their first appearance, local
// order first.
func MergeUsersByUsername(local, remote []model.User) []model.User {
	return mergeBy(local, remote, func(u model.User) string { return u.Username })
}

// MergePostsByID lists local posts overlaid by remote posts with the same
// id, newest first.
func MergePostsByID(local, remote []model.Post) []model.Post {
	merged := mergeBy(local, remote, func(p model.Post) string { return p.ID })
	SortPostsByRecency(merged)
	return merged
}

func mergeBy[T any](local, remote []T, key func(T) string) []T {
	out := make([]T, 0, len(local)+len(remote))
	index := make(map[string]int, len(local)+len(remote))
	for _, items := range [][]T{local, remote} {
		for _, item := range items {
			k := key(item)
			if i, ok := index[k]; ok {
				out[i] = item
				continue
			}
			index[k] = len(out)
			out = append(out, item)
		}
	}
	return out
}

// SortPostsByRecency orders posts by CreatedAt, newest first. Posts created
// at the same instant keep their relative order.
func SortPostsByRecency(posts []model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
}

// FilterPosts returns the posts for which keep reports true, in order.
func FilterPosts(posts []model.Post, keep func(model.Post) bool) []model.Post {
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// ByAuthor keeps posts written by userID.
func ByAuthor(userID string) func(model.Post) bool {
	return func(p model.Post) bool { return p.UserID == userID }
}

// ByIDs keeps posts whose id is in ids.
func ByIDs(ids []string) func(model.Post) bool {
	return func(p model.Post) bool { return slices.Contains(ids, p.ID) }
}
