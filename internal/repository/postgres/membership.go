package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/famgram/internal/model"
)

var _ model.MembershipStore = (*MembershipRepository)(nil)

// MembershipRepository stores (post_id, user_id) pairs of one kind. The table
// name always comes from a model.MembershipKind constant.
type MembershipRepository struct {
	db    *Connection
	table string
}

func NewMembershipRepository(db *Connection, kind model.MembershipKind) (*MembershipRepository, error) {
	switch kind {
	case model.MembershipLike, model.MembershipSave, model.MembershipTag:
	default:
		return nil, fmt.Errorf("unknown membership kind %q", kind)
	}

	return &MembershipRepository{
		db:    db,
		table: string(kind),
	}, nil
}

func (r *MembershipRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ` + r.table + ` WHERE post_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, postID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s membership: %w", r.table, err)
	}

	return exists, nil
}

func (r *MembershipRepository) Add(ctx context.Context, postID, userID string) error {
	query := `INSERT INTO ` + r.table + ` (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to add %s membership: %w", r.table, err)
	}

	return nil
}

func (r *MembershipRepository) Remove(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM ` + r.table + ` WHERE post_id = $1 AND user_id = $2`

	if _, err := r.db.Exec(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to remove %s membership: %w", r.table, err)
	}

	return nil
}

func (r *MembershipRepository) PostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT post_id FROM ` + r.table + ` WHERE user_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s memberships: %w", r.table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s membership: %w", r.table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s memberships: %w", r.table, err)
	}

	return ids, nil
}

func (r *MembershipRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM ` + r.table + ` WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete user %s memberships: %w", r.table, err)
	}

	return nil
}
