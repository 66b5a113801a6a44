package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"frogbot/events"
	"frogbot/models"

	"github.com/ReneKroon/ttlcache/v2"
)

const settingsCacheTTL = 5 * time.Minute

// settingsService implements the SettingsService interface. Reads go through
// a TTL cache in front of the store; every write hits the store first and
// then refreshes the cache entry, so the cache never serves a value the
// store has not accepted.
type settingsService struct {
	uowFactory UnitOfWorkFactory
	cache      *ttlcache.Cache
}

// NewSettingsService creates a new settings service
func NewSettingsService(uowFactory UnitOfWorkFactory) SettingsService {
	cache := ttlcache.NewCache()
	cache.SetTTL(settingsCacheTTL)
	cache.SkipTTLExtensionOnHit(true)

	return &settingsService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func mutedCacheKey(discordID int64) string {
	return "muted:" + strconv.FormatInt(discordID, 10)
}

// Status returns the configured custom status, or empty when unset
func (s *settingsService) Status(ctx context.Context) (string, error) {
	if cached, err := s.cache.Get(models.SettingStatus); err == nil {
		return cached.(string), nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	setting, err := uow.BotSettingRepository().Get(ctx, models.SettingStatus)
	if err != nil {
		return "", fmt.Errorf("failed to get status setting: %w", err)
	}

	status := ""
	if setting != nil {
		status = setting.Value
	}
	s.cache.Set(models.SettingStatus, status)

	return status, nil
}

// SetStatus persists a custom status and refreshes the cache
func (s *settingsService) SetStatus(ctx context.Context, status string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.BotSettingRepository().Set(ctx, models.SettingStatus, status); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}

	uow.EventBus().Publish(events.StatusChangedEvent{Status: status})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Set(models.SettingStatus, status)
	return nil
}

// ClearStatus removes the custom status and refreshes the cache
func (s *settingsService) ClearStatus(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.BotSettingRepository().Delete(ctx, models.SettingStatus); err != nil {
		return fmt.Errorf("failed to clear status: %w", err)
	}

	uow.EventBus().Publish(events.StatusChangedEvent{Status: ""})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Set(models.SettingStatus, "")
	return nil
}

// IsMuted checks whether a member may not use bot commands
func (s *settingsService) IsMuted(ctx context.Context, discordID int64) (bool, error) {
	if cached, err := s.cache.Get(mutedCacheKey(discordID)); err == nil {
		return cached.(bool), nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	muted, err := uow.MutedUserRepository().IsMuted(ctx, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to check mute: %w", err)
	}
	s.cache.Set(mutedCacheKey(discordID), muted)

	return muted, nil
}

// Mute bars a member from using bot commands
func (s *settingsService) Mute(ctx context.Context, discordID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	added, err := uow.MutedUserRepository().Add(ctx, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to mute user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Set(mutedCacheKey(discordID), true)
	return added, nil
}

// Unmute lifts a member's bot mute
func (s *settingsService) Unmute(ctx context.Context, discordID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	removed, err := uow.MutedUserRepository().Remove(ctx, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to unmute user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Set(mutedCacheKey(discordID), false)
	return removed, nil
}
