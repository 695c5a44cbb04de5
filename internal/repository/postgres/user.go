package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/famgram/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, password, full_name, avatar_url, bio, role, followers, following`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		user   model.User
		avatar *string
		role   string
	)
	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &user.FullName, &avatar,
		&user.Bio, &role, &user.Followers, &user.Following,
	)
	if err != nil {
		return model.User{}, err
	}
	if avatar != nil {
		user.AvatarURL = *avatar
	}
	user.Role = model.Role(role)
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) error {
	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, NULLIF($5::text, ''), $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query, userArgs(user)...)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Upsert inserts the user or overwrites every column of the row with the same id.
func (r *UserRepository) Upsert(ctx context.Context, user model.User) error {
	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, NULLIF($5::text, ''), $6, $7, $8, $9)
			  ON CONFLICT (id) DO UPDATE SET
				username = EXCLUDED.username,
				password = EXCLUDED.password,
				full_name = EXCLUDED.full_name,
				avatar_url = EXCLUDED.avatar_url,
				bio = EXCLUDED.bio,
				role = EXCLUDED.role,
				followers = EXCLUDED.followers,
				following = EXCLUDED.following`

	_, err := r.db.Exec(ctx, query, userArgs(user)...)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (r *UserRepository) SetFollowing(ctx context.Context, id string, following []string) error {
	return r.setIDs(ctx, `UPDATE users SET following = $2 WHERE id = $1`, id, following)
}

func (r *UserRepository) SetFollowers(ctx context.Context, id string, followers []string) error {
	return r.setIDs(ctx, `UPDATE users SET followers = $2 WHERE id = $1`, id, followers)
}

func (r *UserRepository) setIDs(ctx context.Context, query string, id string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	cmd, err := r.db.Exec(ctx, query, id, ids)
	if err != nil {
		return fmt.Errorf("failed to update follow edges: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func userArgs(user model.User) []any {
	role := user.Role
	if role == "" {
		role = model.RoleUser
	}
	followers := user.Followers
	if followers == nil {
		followers = []string{}
	}
	following := user.Following
	if following == nil {
		following = []string{}
	}
	return []any{
		user.ID, user.Username, user.Password, user.FullName, user.AvatarURL,
		user.Bio, string(role), followers, following,
	}
}
