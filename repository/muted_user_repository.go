package repository

import (
	"context"
	"fmt"

	"frogbot/database"
)

// MutedUserRepository implements the service.MutedUserRepository interface
type MutedUserRepository struct {
	q queryable
}

// NewMutedUserRepository creates a new muted user repository
func NewMutedUserRepository(db *database.DB) *MutedUserRepository {
	return &MutedUserRepository{q: db.Pool}
}

func newMutedUserRepositoryWithTx(tx queryable) *MutedUserRepository {
	return &MutedUserRepository{q: tx}
}

// IsMuted checks whether a member is on the mute list
func (r *MutedUserRepository) IsMuted(ctx context.Context, discordID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM muted_users WHERE discord_id = $1)`

	var muted bool
	if err := r.q.QueryRow(ctx, query, discordID).Scan(&muted); err != nil {
		return false, fmt.Errorf("failed to check mute for user %d: %w", discordID, err)
	}

	return muted, nil
}

// Add puts a member on the mute list. Returns whether the member was newly
// added (false when already muted).
func (r *MutedUserRepository) Add(ctx context.Context, discordID int64) (bool, error) {
	query := `
		INSERT INTO muted_users (discord_id)
		VALUES ($1)
		ON CONFLICT (discord_id) DO NOTHING
	`

	tag, err := r.q.Exec(ctx, query, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to mute user %d: %w", discordID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// Remove takes a member off the mute list. Returns whether a removal
// occurred.
func (r *MutedUserRepository) Remove(ctx context.Context, discordID int64) (bool, error) {
	query := `DELETE FROM muted_users WHERE discord_id = $1`

	tag, err := r.q.Exec(ctx, query, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to unmute user %d: %w", discordID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetAll returns all muted member IDs
func (r *MutedUserRepository) GetAll(ctx context.Context) ([]int64, error) {
	query := `SELECT discord_id FROM muted_users ORDER BY discord_id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get muted users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan muted user: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate muted users: %w", err)
	}

	return ids, nil
}
