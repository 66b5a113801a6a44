package repository

import (
	"context"
	"fmt"

	"frogbot/database"
	"frogbot/models"

	"github.com/jackc/pgx/v5"
)

// SheetRepository implements the service.SheetRepository interface
type SheetRepository struct {
	q queryable
}

// NewSheetRepository creates a new sheet repository
func NewSheetRepository(db *database.DB) *SheetRepository {
	return &SheetRepository{q: db.Pool}
}

// newSheetRepositoryWithTx creates a new sheet repository with a transaction
func newSheetRepositoryWithTx(tx queryable) *SheetRepository {
	return &SheetRepository{q: tx}
}

// GetByMessageID retrieves a sheet by its message ID, or nil when absent
func (r *SheetRepository) GetByMessageID(ctx context.Context, messageID int64) (*models.Sheet, error) {
	return r.getByMessageID(ctx, messageID, false)
}

// GetByMessageIDForUpdate retrieves a sheet and takes a row lock on it.
// Reaction events for the same message are dispatched concurrently by the
// gateway, so mutations must serialize on the row to keep the approval
// threshold transition from firing twice.
func (r *SheetRepository) GetByMessageIDForUpdate(ctx context.Context, messageID int64) (*models.Sheet, error) {
	return r.getByMessageID(ctx, messageID, true)
}

func (r *SheetRepository) getByMessageID(ctx context.Context, messageID int64, forUpdate bool) (*models.Sheet, error) {
	query := `
		SELECT message_id, channel_id, owner_id, approvals, created_at, updated_at
		FROM sheets
		WHERE message_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var sheet models.Sheet
	err := r.q.QueryRow(ctx, query, messageID).Scan(
		&sheet.MessageID,
		&sheet.ChannelID,
		&sheet.OwnerID,
		&sheet.Approvals,
		&sheet.CreatedAt,
		&sheet.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet by message ID %d: %w", messageID, err)
	}

	if sheet.Approvals == nil {
		sheet.Approvals = []int64{}
	}

	return &sheet, nil
}

// Upsert inserts or updates a sheet keyed by its message ID
func (r *SheetRepository) Upsert(ctx context.Context, sheet *models.Sheet) error {
	query := `
		INSERT INTO sheets (message_id, channel_id, owner_id, approvals)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (message_id) DO UPDATE
		SET channel_id = EXCLUDED.channel_id,
		    owner_id   = EXCLUDED.owner_id,
		    approvals  = EXCLUDED.approvals,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		sheet.MessageID,
		sheet.ChannelID,
		sheet.OwnerID,
		sheet.Approvals,
	).Scan(&sheet.CreatedAt, &sheet.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert sheet %d: %w", sheet.MessageID, err)
	}

	return nil
}

// Delete removes a sheet by its message ID. Deleting an absent sheet is not
// an error.
func (r *SheetRepository) Delete(ctx context.Context, messageID int64) error {
	query := `DELETE FROM sheets WHERE message_id = $1`

	if _, err := r.q.Exec(ctx, query, messageID); err != nil {
		return fmt.Errorf("failed to delete sheet %d: %w", messageID, err)
	}

	return nil
}

// GetAll returns all persisted sheets, oldest first
func (r *SheetRepository) GetAll(ctx context.Context) ([]*models.Sheet, error) {
	query := `
		SELECT message_id, channel_id, owner_id, approvals, created_at, updated_at
		FROM sheets
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sheets: %w", err)
	}
	defer rows.Close()

	var sheets []*models.Sheet
	for rows.Next() {
		var sheet models.Sheet
		err := rows.Scan(
			&sheet.MessageID,
			&sheet.ChannelID,
			&sheet.OwnerID,
			&sheet.Approvals,
			&sheet.CreatedAt,
			&sheet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sheet: %w", err)
		}
		if sheet.Approvals == nil {
			sheet.Approvals = []int64{}
		}
		sheets = append(sheets, &sheet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheets: %w", err)
	}

	return sheets, nil
}
