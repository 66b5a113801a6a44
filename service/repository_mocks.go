package service

import (
	"context"

	"frogbot/events"
	"frogbot/models"

	"github.com/stretchr/testify/mock"
)

// MockSheetRepository is a mock implementation of SheetRepository
type MockSheetRepository struct {
	mock.Mock
}

func (m *MockSheetRepository) GetByMessageID(ctx context.Context, messageID int64) (*models.Sheet, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sheet), args.Error(1)
}

func (m *MockSheetRepository) GetByMessageIDForUpdate(ctx context.Context, messageID int64) (*models.Sheet, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sheet), args.Error(1)
}

func (m *MockSheetRepository) Upsert(ctx context.Context, sheet *models.Sheet) error {
	args := m.Called(ctx, sheet)
	return args.Error(0)
}

func (m *MockSheetRepository) Delete(ctx context.Context, messageID int64) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *MockSheetRepository) GetAll(ctx context.Context) ([]*models.Sheet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sheet), args.Error(1)
}

// MockBotSettingRepository is a mock implementation of BotSettingRepository
type MockBotSettingRepository struct {
	mock.Mock
}

func (m *MockBotSettingRepository) Get(ctx context.Context, key string) (*models.BotSetting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotSetting), args.Error(1)
}

func (m *MockBotSettingRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockBotSettingRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockMutedUserRepository is a mock implementation of MutedUserRepository
type MockMutedUserRepository struct {
	mock.Mock
}

func (m *MockMutedUserRepository) IsMuted(ctx context.Context, discordID int64) (bool, error) {
	args := m.Called(ctx, discordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMutedUserRepository) Add(ctx context.Context, discordID int64) (bool, error) {
	args := m.Called(ctx, discordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMutedUserRepository) Remove(ctx context.Context, discordID int64) (bool, error) {
	args := m.Called(ctx, discordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMutedUserRepository) GetAll(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher that records
// every published event for inspection
type MockEventPublisher struct {
	mock.Mock
	Published []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Published = append(m.Published, event)
	m.Called(event)
}

// MockMessageFetcher is a mock implementation of MessageFetcher
type MockMessageFetcher struct {
	mock.Mock
}

func (m *MockMessageFetcher) FetchMessage(channelID, messageID int64) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	sheetRepo      SheetRepository
	botSettingRepo BotSettingRepository
	mutedUserRepo  MutedUserRepository
	eventBus       EventPublisher
}

// SetRepositories wires the repositories the unit of work hands out
func (m *MockUnitOfWork) SetRepositories(sheetRepo SheetRepository, botSettingRepo BotSettingRepository, mutedUserRepo MutedUserRepository, eventBus EventPublisher) {
	m.sheetRepo = sheetRepo
	m.botSettingRepo = botSettingRepo
	m.mutedUserRepo = mutedUserRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) SheetRepository() SheetRepository {
	return m.sheetRepo
}

func (m *MockUnitOfWork) BotSettingRepository() BotSettingRepository {
	return m.botSettingRepo
}

func (m *MockUnitOfWork) MutedUserRepository() MutedUserRepository {
	return m.mutedUserRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
