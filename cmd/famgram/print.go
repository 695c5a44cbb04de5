package main

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dtroode/famgram/internal/model"
	"github.com/dtroode/famgram/internal/service"
)

func printUser(w io.Writer, u *model.User, avatarToken int64) {
	fmt.Fprintf(w, "@%s (%s)\n", u.Username, u.FullName)
	if u.Bio != "" {
		fmt.Fprintf(w, "  %s\n", u.Bio)
	}
	fmt.Fprintf(w, "  id: %s  role: %s\n", u.ID, roleOf(u))
	fmt.Fprintf(w, "  followers: %d  following: %d\n", len(u.Followers), len(u.Following))
	if u.AvatarURL != "" {
		fmt.Fprintf(w, "  avatar: %s\n", service.WithCacheBuster(u.AvatarURL, avatarToken))
	}
}

func roleOf(u *model.User) model.Role {
	if u.Role == "" {
		return model.RoleUser
	}
	return u.Role
}

func printPosts(w io.Writer, posts []model.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "no posts")
		return
	}
	for _, p := range posts {
		fmt.Fprintf(w, "[%s] @%s  %s\n", p.ID, p.Username, formatMillis(p.CreatedAt))
		if p.Caption != "" {
			fmt.Fprintf(w, "  %s\n", p.Caption)
		}
		fmt.Fprintf(w, "  %s\n", p.ImageURL)
		fmt.Fprintf(w, "  likes: %d  comments: %d\n", len(p.Likes), len(p.Comments))
		for _, c := range p.Comments {
			fmt.Fprintf(w, "    [%s] @%s: %s\n", c.ID, c.Username, c.Text)
		}
	}
}

func printUserTable(w io.Writer, users []model.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.FullName, roleOf(&u))
	}
	return tw.Flush()
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.DateTime)
}

// openImage opens path for upload. The caller closes the returned file.
func openImage(path string) (service.Image, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return service.Image{}, nil, fmt.Errorf("failed to open image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return service.Image{}, nil, fmt.Errorf("failed to stat image: %w", err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return service.Image{
		Name:        filepath.Base(path),
		Reader:      f,
		Size:        info.Size(),
		ContentType: contentType,
	}, f, nil
}
