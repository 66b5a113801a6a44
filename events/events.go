package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeSheetSubmitted EventType = "sheet_submitted"
	EventTypeSheetApproved  EventType = "sheet_approved"
	EventTypeSheetPruned    EventType = "sheet_pruned"
	EventTypeStatusChanged  EventType = "status_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// SheetSubmittedEvent represents a new sheet submission
type SheetSubmittedEvent struct {
	MessageID int64
	ChannelID int64
	OwnerID   int64
	GuildID   int64
}

func (e SheetSubmittedEvent) Type() EventType {
	return EventTypeSheetSubmitted
}

// SheetApprovedEvent represents a sheet reaching the approval threshold.
// Emitted exactly once per sheet, on the transition into the approved state.
type SheetApprovedEvent struct {
	MessageID  int64
	ChannelID  int64
	OwnerID    int64
	GuildID    int64
	ApproverID int64
}

func (e SheetApprovedEvent) Type() EventType {
	return EventTypeSheetApproved
}

// SheetPrunedEvent represents an orphaned sheet record being deleted
type SheetPrunedEvent struct {
	MessageID int64
	ChannelID int64
	OwnerID   int64
}

func (e SheetPrunedEvent) Type() EventType {
	return EventTypeSheetPruned
}

// StatusChangedEvent represents the bot status setting being updated
type StatusChangedEvent struct {
	Status string
}

func (e StatusChangedEvent) Type() EventType {
	return EventTypeStatusChanged
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run in their
// own goroutines so a slow subscriber cannot block the emitter.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until Flush or Discard
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful DB commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction, so emit with a fresh context rather
	// than one that may already be cancelled.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		log.WithFields(log.Fields{
			"eventType": ev.Type(),
		}).Debug("Flushing pending event to main bus")
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
