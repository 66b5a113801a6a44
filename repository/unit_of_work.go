package repository

import (
	"context"
	"fmt"

	"frogbot/database"
	"frogbot/events"
	"frogbot/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	sheetRepo        service.SheetRepository
	botSettingRepo   service.BotSettingRepository
	mutedUserRepo    service.MutedUserRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.sheetRepo = newSheetRepositoryWithTx(tx)
	u.botSettingRepo = newBotSettingRepositoryWithTx(tx)
	u.mutedUserRepo = newMutedUserRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events. A no-op
// after Commit, so it is safe to defer.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// SheetRepository returns the sheet repository for this unit of work
func (u *unitOfWork) SheetRepository() service.SheetRepository {
	if u.sheetRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.sheetRepo
}

// BotSettingRepository returns the bot setting repository for this unit of work
func (u *unitOfWork) BotSettingRepository() service.BotSettingRepository {
	if u.botSettingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.botSettingRepo
}

// MutedUserRepository returns the muted user repository for this unit of work
func (u *unitOfWork) MutedUserRepository() service.MutedUserRepository {
	if u.mutedUserRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.mutedUserRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
