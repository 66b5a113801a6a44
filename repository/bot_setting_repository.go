package repository

import (
	"context"
	"fmt"

	"frogbot/database"
	"frogbot/models"

	"github.com/jackc/pgx/v5"
)

// BotSettingRepository implements the service.BotSettingRepository interface
type BotSettingRepository struct {
	q queryable
}

// NewBotSettingRepository creates a new bot setting repository
func NewBotSettingRepository(db *database.DB) *BotSettingRepository {
	return &BotSettingRepository{q: db.Pool}
}

func newBotSettingRepositoryWithTx(tx queryable) *BotSettingRepository {
	return &BotSettingRepository{q: tx}
}

// Get retrieves a setting by key, or nil when not set
func (r *BotSettingRepository) Get(ctx context.Context, key string) (*models.BotSetting, error) {
	query := `SELECT key, value, updated_at FROM bot_settings WHERE key = $1`

	var setting models.BotSetting
	err := r.q.QueryRow(ctx, query, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %q: %w", key, err)
	}

	return &setting, nil
}

// Set upserts a setting value
func (r *BotSettingRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO bot_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}

	return nil
}

// Delete removes a setting; deleting an absent key is not an error
func (r *BotSettingRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM bot_settings WHERE key = $1`

	if _, err := r.q.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}

	return nil
}
