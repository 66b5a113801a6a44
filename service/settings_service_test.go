package service

import (
	"context"
	"testing"

	"frogbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture() (*MockUnitOfWork, *MockBotSettingRepository, *MockMutedUserRepository, SettingsService) {
	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockSettingRepo := new(MockBotSettingRepository)
	mockMutedRepo := new(MockMutedUserRepository)
	mockPublisher := new(MockEventPublisher)
	mockPublisher.On("Publish", mock.Anything).Return().Maybe()

	mockUoW.SetRepositories(nil, mockSettingRepo, mockMutedRepo, mockPublisher)
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	return mockUoW, mockSettingRepo, mockMutedRepo, NewSettingsService(mockFactory)
}

func TestSettingsService_Status_CachesReads(t *testing.T) {
	ctx := context.Background()
	_, mockSettingRepo, _, svc := newSettingsFixture()

	mockSettingRepo.On("Get", ctx, models.SettingStatus).
		Return(&models.BotSetting{Key: models.SettingStatus, Value: "playing D&D"}, nil).Once()

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "playing D&D", status)

	// Second read is served from the cache
	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "playing D&D", status)

	mockSettingRepo.AssertNumberOfCalls(t, "Get", 1)
}

func TestSettingsService_SetStatus_WritesThrough(t *testing.T) {
	ctx := context.Background()
	_, mockSettingRepo, _, svc := newSettingsFixture()

	mockSettingRepo.On("Set", ctx, models.SettingStatus, "rolling dice").Return(nil)

	err := svc.SetStatus(ctx, "rolling dice")
	require.NoError(t, err)

	// The write refreshed the cache, so the read never hits the store
	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rolling dice", status)

	mockSettingRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestSettingsService_ClearStatus(t *testing.T) {
	ctx := context.Background()
	_, mockSettingRepo, _, svc := newSettingsFixture()

	mockSettingRepo.On("Set", ctx, models.SettingStatus, "old").Return(nil)
	mockSettingRepo.On("Delete", ctx, models.SettingStatus).Return(nil)

	require.NoError(t, svc.SetStatus(ctx, "old"))
	require.NoError(t, svc.ClearStatus(ctx))

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestSettingsService_Mute(t *testing.T) {
	ctx := context.Background()
	_, _, mockMutedRepo, svc := newSettingsFixture()

	mockMutedRepo.On("Add", ctx, int64(555)).Return(true, nil)

	added, err := svc.Mute(ctx, 555)
	require.NoError(t, err)
	assert.True(t, added)

	// Cached by the write, no store lookup
	muted, err := svc.IsMuted(ctx, 555)
	require.NoError(t, err)
	assert.True(t, muted)
	mockMutedRepo.AssertNotCalled(t, "IsMuted", mock.Anything, mock.Anything)
}

func TestSettingsService_Unmute(t *testing.T) {
	ctx := context.Background()
	_, _, mockMutedRepo, svc := newSettingsFixture()

	mockMutedRepo.On("Remove", ctx, int64(555)).Return(true, nil)

	removed, err := svc.Unmute(ctx, 555)
	require.NoError(t, err)
	assert.True(t, removed)

	muted, err := svc.IsMuted(ctx, 555)
	require.NoError(t, err)
	assert.False(t, muted)
}

func TestSettingsService_IsMuted_FallsThroughToStore(t *testing.T) {
	ctx := context.Background()
	_, _, mockMutedRepo, svc := newSettingsFixture()

	mockMutedRepo.On("IsMuted", ctx, int64(777)).Return(true, nil).Once()

	muted, err := svc.IsMuted(ctx, 777)
	require.NoError(t, err)
	assert.True(t, muted)

	// Second check is served from the cache
	muted, err = svc.IsMuted(ctx, 777)
	require.NoError(t, err)
	assert.True(t, muted)
	mockMutedRepo.AssertNumberOfCalls(t, "IsMuted", 1)
}
