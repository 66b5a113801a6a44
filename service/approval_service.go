package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"frogbot/events"
	"frogbot/models"

	log "github.com/sirupsen/logrus"
)

// PlaceholderToken is the literal placeholder users are told to replace with
// their actual sheet URL. Submissions still containing it are rejected.
const PlaceholderToken = "(url)"

// ApprovalConfig holds the configuration the approval workflow needs
type ApprovalConfig struct {
	// SheetChannelID is the only channel accepting sheet submissions
	SheetChannelID int64
	// DevGuildID is an alternate guild where the channel check is skipped
	DevGuildID int64
}

// approvalService implements the ApprovalService interface
type approvalService struct {
	uowFactory UnitOfWorkFactory
	cfg        ApprovalConfig
}

// NewApprovalService creates a new approval service
func NewApprovalService(uowFactory UnitOfWorkFactory, cfg ApprovalConfig) ApprovalService {
	return &approvalService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// ValidateSubmission checks submission preconditions before any message is
// posted or record created
func (s *approvalService) ValidateSubmission(channelID, guildID int64, content string) error {
	if strings.Contains(content, PlaceholderToken) {
		return models.ErrPlaceholderContent
	}
	if channelID != s.cfg.SheetChannelID && guildID != s.cfg.DevGuildID {
		return models.ErrNotSubmissionChannel
	}
	return nil
}

// CreateSheet persists a new sheet record with no approvals
func (s *approvalService) CreateSheet(ctx context.Context, messageID, channelID, ownerID, guildID int64) (*models.Sheet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	sheet := models.NewSheet(messageID, channelID, ownerID)
	if err := uow.SheetRepository().Upsert(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	uow.EventBus().Publish(events.SheetSubmittedEvent{
		MessageID: messageID,
		ChannelID: channelID,
		OwnerID:   ownerID,
		GuildID:   guildID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sheet, nil
}

// AddApproval records an approval on a sheet. The row is locked for the
// duration of the transaction so concurrent reaction events on the same
// message cannot interleave, which keeps the threshold transition single.
func (s *approvalService) AddApproval(ctx context.Context, messageID, approverID, guildID int64) (*models.Sheet, ApprovalOutcome, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, OutcomeNoRecord, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	sheet, err := uow.SheetRepository().GetByMessageIDForUpdate(ctx, messageID)
	if err != nil {
		return nil, OutcomeNoRecord, fmt.Errorf("failed to load sheet: %w", err)
	}
	if sheet == nil {
		return nil, OutcomeNoRecord, nil
	}

	// Approved sheets are terminal for the add path
	if sheet.IsApproved() {
		return sheet, OutcomeAlreadyApproved, nil
	}

	if !sheet.AddApproval(approverID) {
		return sheet, OutcomeNoChange, nil
	}

	outcome := OutcomeChanged
	if sheet.IsApproved() {
		outcome = OutcomeApproved
		uow.EventBus().Publish(events.SheetApprovedEvent{
			MessageID:  sheet.MessageID,
			ChannelID:  sheet.ChannelID,
			OwnerID:    sheet.OwnerID,
			GuildID:    guildID,
			ApproverID: approverID,
		})
	}

	if err := uow.SheetRepository().Upsert(ctx, sheet); err != nil {
		return nil, OutcomeNoRecord, fmt.Errorf("failed to persist sheet: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, OutcomeNoRecord, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sheet, outcome, nil
}

// RemoveApproval withdraws an approval from a sheet
func (s *approvalService) RemoveApproval(ctx context.Context, messageID, memberID int64) (*models.Sheet, ApprovalOutcome, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, OutcomeNoRecord, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	sheet, err := uow.SheetRepository().GetByMessageIDForUpdate(ctx, messageID)
	if err != nil {
		return nil, OutcomeNoRecord, fmt.Errorf("failed to load sheet: %w", err)
	}
	if sheet == nil {
		return nil, OutcomeNoRecord, nil
	}

	if !sheet.RemoveApproval(memberID) {
		return sheet, OutcomeNoChange, nil
	}

	if err := uow.SheetRepository().Upsert(ctx, sheet); err != nil {
		return nil, OutcomeNoRecord, fmt.Errorf("failed to persist sheet: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, OutcomeNoRecord, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sheet, OutcomeChanged, nil
}

// GetSheet retrieves a sheet without mutating it
func (s *approvalService) GetSheet(ctx context.Context, messageID int64) (*models.Sheet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sheet, err := uow.SheetRepository().GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheet: %w", err)
	}

	return sheet, nil
}

// Prune deletes all sheets whose backing message was deleted. Sheets whose
// channel no longer resolves are skipped, as are fetches failing for any
// reason other than a missing message.
func (s *approvalService) Prune(ctx context.Context, fetch MessageFetcher) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	sheets, err := uow.SheetRepository().GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sheets: %w", err)
	}

	count := 0
	for _, sheet := range sheets {
		err := fetch.FetchMessage(sheet.ChannelID, sheet.MessageID)
		if err == nil {
			continue
		}

		if errors.Is(err, ErrChannelNotFound) {
			// Channel gone but message state unknown, leave the record
			continue
		}
		if !errors.Is(err, ErrMessageNotFound) {
			log.WithFields(log.Fields{
				"messageID": sheet.MessageID,
				"channelID": sheet.ChannelID,
			}).Warnf("Skipping sheet during prune, fetch failed: %v", err)
			continue
		}

		if err := uow.SheetRepository().Delete(ctx, sheet.MessageID); err != nil {
			return 0, fmt.Errorf("failed to delete orphaned sheet %d: %w", sheet.MessageID, err)
		}

		uow.EventBus().Publish(events.SheetPrunedEvent{
			MessageID: sheet.MessageID,
			ChannelID: sheet.ChannelID,
			OwnerID:   sheet.OwnerID,
		})
		count++
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return count, nil
}
