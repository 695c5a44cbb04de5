package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/famgram/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

// unknownAuthor is shown when a post or comment author row is missing.
const unknownAuthor = "Unknown"

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

type commentRow struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatarUrl"`
	Text      string  `json:"text"`
	CreatedAt int64   `json:"createdAt"`
}

// List fetches posts with author, comments (with their authors) and likes in
// a single query and flattens them into denormalized posts.
func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT p.id, p.user_id, u.username, u.avatar_url, p.image_url, p.caption, p.created_at,
		       COALESCE((SELECT array_agg(l.user_id ORDER BY l.user_id)
		                 FROM post_likes l WHERE l.post_id = p.id), '{}') AS likes,
		       COALESCE((SELECT json_agg(json_build_object(
		                        'id', c.id,
		                        'userId', c.user_id,
		                        'username', cu.username,
		                        'avatarUrl', cu.avatar_url,
		                        'text', c.text,
		                        'createdAt', c.created_at) ORDER BY c.created_at, c.id)
		                 FROM comments c LEFT JOIN users cu ON cu.id = c.user_id
		                 WHERE c.post_id = p.id), '[]') AS comments
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var (
			post        model.Post
			username    *string
			avatar      *string
			rawComments []byte
		)
		err := rows.Scan(
			&post.ID, &post.UserID, &username, &avatar, &post.ImageURL, &post.Caption, &post.CreatedAt,
			&post.Likes, &rawComments,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		post.Username = deref(username, unknownAuthor)
		post.UserAvatar = deref(avatar, "")

		post.Comments, err = flattenComments(post.ID, rawComments)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func flattenComments(postID string, raw []byte) ([]model.Comment, error) {
	var rows []commentRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode comments of post %s: %w", postID, err)
	}

	comments := make([]model.Comment, 0, len(rows))
	for _, c := range rows {
		comments = append(comments, model.Comment{
			ID:        c.ID,
			PostID:    postID,
			UserID:    c.UserID,
			Username:  deref(c.Username, unknownAuthor),
			AvatarURL: deref(c.AvatarURL, ""),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return comments, nil
}

// GetByID returns the bare post row without likes or comments.
func (r *PostRepository) GetByID(ctx context.Context, id string) (model.Post, error) {
	query := `
		SELECT p.id, p.user_id, u.username, u.avatar_url, p.image_url, p.caption, p.created_at
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`

	var (
		post     model.Post
		username *string
		avatar   *string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.UserID, &username, &avatar, &post.ImageURL, &post.Caption, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}
	post.Username = deref(username, unknownAuthor)
	post.UserAvatar = deref(avatar, "")
	post.Likes = []string{}
	post.Comments = []model.Comment{}

	return post, nil
}

func (r *PostRepository) ImageURLsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT image_url FROM posts WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post images: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan post image: %w", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list post images: %w", err)
	}

	return urls, nil
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) error {
	query := `INSERT INTO posts (id, user_id, image_url, caption, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, post.ID, post.UserID, post.ImageURL, post.Caption, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user posts: %w", err)
	}
	return nil
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
