package service

import (
	"context"
	"errors"

	"frogbot/events"
	"frogbot/models"
)

// SheetRepository defines the interface for sheet record data access
type SheetRepository interface {
	// GetByMessageID retrieves a sheet by message ID, or nil when absent
	GetByMessageID(ctx context.Context, messageID int64) (*models.Sheet, error)

	// GetByMessageIDForUpdate retrieves a sheet and locks its row for the
	// duration of the transaction
	GetByMessageIDForUpdate(ctx context.Context, messageID int64) (*models.Sheet, error)

	// Upsert inserts or updates a sheet keyed by message ID
	Upsert(ctx context.Context, sheet *models.Sheet) error

	// Delete removes a sheet by message ID
	Delete(ctx context.Context, messageID int64) error

	// GetAll returns all persisted sheets
	GetAll(ctx context.Context) ([]*models.Sheet, error)
}

// BotSettingRepository defines the interface for bot setting data access
type BotSettingRepository interface {
	// Get retrieves a setting by key, or nil when not set
	Get(ctx context.Context, key string) (*models.BotSetting, error)

	// Set upserts a setting value
	Set(ctx context.Context, key, value string) error

	// Delete removes a setting
	Delete(ctx context.Context, key string) error
}

// MutedUserRepository defines the interface for mute list data access
type MutedUserRepository interface {
	// IsMuted checks whether a member is on the mute list
	IsMuted(ctx context.Context, discordID int64) (bool, error)

	// Add puts a member on the mute list; false when already present
	Add(ctx context.Context, discordID int64) (bool, error)

	// Remove takes a member off the mute list; false when absent
	Remove(ctx context.Context, discordID int64) (bool, error)

	// GetAll returns all muted member IDs
	GetAll(ctx context.Context) ([]int64, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// ApprovalOutcome describes what a reaction event did to a sheet record
type ApprovalOutcome string

const (
	// OutcomeNoRecord means no sheet exists for the message
	OutcomeNoRecord ApprovalOutcome = "no_record"
	// OutcomeAlreadyApproved means the sheet is terminal and was left alone
	OutcomeAlreadyApproved ApprovalOutcome = "already_approved"
	// OutcomeNoChange means the mutation was a no-op (self-approval,
	// duplicate, or removing an absent approver)
	OutcomeNoChange ApprovalOutcome = "no_change"
	// OutcomeChanged means the approval list was mutated
	OutcomeChanged ApprovalOutcome = "changed"
	// OutcomeApproved means this mutation carried the sheet over the
	// approval threshold
	OutcomeApproved ApprovalOutcome = "approved"
)

// Prune sentinels distinguishing why a backing message could not be fetched
var (
	// ErrChannelNotFound indicates the sheet's channel no longer resolves
	ErrChannelNotFound = errors.New("channel not found")
	// ErrMessageNotFound indicates the sheet's message was deleted
	ErrMessageNotFound = errors.New("message not found")
)

// MessageFetcher checks that a sheet's backing message still exists. The bot
// layer provides a gateway-backed implementation; Prune only needs the error.
type MessageFetcher interface {
	FetchMessage(channelID, messageID int64) error
}

// ApprovalService defines the interface for the sheet approval workflow
type ApprovalService interface {
	// ValidateSubmission checks submission preconditions: the content must
	// not contain the literal placeholder URL, and the channel must be the
	// configured sheet channel unless the guild is the dev server
	ValidateSubmission(channelID, guildID int64, content string) error

	// CreateSheet persists a new sheet record with no approvals, keyed by
	// the display message that was just posted
	CreateSheet(ctx context.Context, messageID, channelID, ownerID, guildID int64) (*models.Sheet, error)

	// AddApproval records an approval on a sheet. The returned sheet is nil
	// for OutcomeNoRecord.
	AddApproval(ctx context.Context, messageID, approverID, guildID int64) (*models.Sheet, ApprovalOutcome, error)

	// RemoveApproval withdraws an approval from a sheet
	RemoveApproval(ctx context.Context, messageID, memberID int64) (*models.Sheet, ApprovalOutcome, error)

	// GetSheet retrieves a sheet without mutating it
	GetSheet(ctx context.Context, messageID int64) (*models.Sheet, error)

	// Prune deletes all sheets whose backing message no longer exists and
	// returns the number deleted. Sheets whose channel cannot be resolved
	// are left in place.
	Prune(ctx context.Context, fetch MessageFetcher) (int, error)
}

// SettingsService defines the interface for bot settings and the mute list
type SettingsService interface {
	// Status returns the configured custom status, or empty when unset
	Status(ctx context.Context) (string, error)

	// SetStatus persists a custom status
	SetStatus(ctx context.Context, status string) error

	// ClearStatus removes the custom status
	ClearStatus(ctx context.Context) error

	// IsMuted checks whether a member may not use bot commands
	IsMuted(ctx context.Context, discordID int64) (bool, error)

	// Mute bars a member from using bot commands; false when already muted
	Mute(ctx context.Context, discordID int64) (bool, error)

	// Unmute lifts a member's bot mute; false when not muted
	Unmute(ctx context.Context, discordID int64) (bool, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	SheetRepository() SheetRepository
	BotSettingRepository() BotSettingRepository
	MutedUserRepository() MutedUserRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
