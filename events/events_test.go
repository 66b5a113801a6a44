package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEventDelivery tests the complete event flow from TransactionalBus to main Bus
func TestEventDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan SheetApprovedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeSheetApproved, func(ctx context.Context, event Event) {
		defer wg.Done()
		if approvedEvent, ok := event.(SheetApprovedEvent); ok {
			select {
			case eventReceived <- approvedEvent:
			case <-time.After(1 * time.Second):
				t.Error("Timeout sending event to channel")
			}
		} else {
			t.Errorf("Expected SheetApprovedEvent, got %T", event)
		}
	})

	testEvent := SheetApprovedEvent{
		MessageID:  100,
		ChannelID:  200,
		OwnerID:    300,
		GuildID:    400,
		ApproverID: 500,
	}

	// Publish to the transactional bus, then flush as a commit would
	transactionalBus.Publish(testEvent)
	err := transactionalBus.Flush(context.Background())
	assert.NoError(t, err)

	wg.Wait()

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(1 * time.Second):
		t.Fatal("Event was not delivered")
	}
}

func TestTransactionalBus_Discard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	delivered := make(chan Event, 1)
	mainBus.Subscribe(EventTypeSheetSubmitted, func(ctx context.Context, event Event) {
		delivered <- event
	})

	transactionalBus.Publish(SheetSubmittedEvent{MessageID: 100})
	transactionalBus.Discard()

	err := transactionalBus.Flush(context.Background())
	assert.NoError(t, err)

	select {
	case <-delivered:
		t.Fatal("Discarded event should not be delivered")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	count := 0

	handler := func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		count++
		mu.Unlock()
	}

	bus.Subscribe(EventTypeSheetPruned, handler)
	bus.Subscribe(EventTypeSheetPruned, handler)

	bus.Emit(context.Background(), SheetPrunedEvent{MessageID: 100})

	wg.Wait()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, count)
}

func TestBus_UnrelatedEventTypeNotDelivered(t *testing.T) {
	bus := NewBus()

	delivered := make(chan Event, 1)
	bus.Subscribe(EventTypeSheetApproved, func(ctx context.Context, event Event) {
		delivered <- event
	})

	bus.Emit(context.Background(), StatusChangedEvent{Status: "playing D&D"})

	select {
	case <-delivered:
		t.Fatal("Handler should not receive events of other types")
	case <-time.After(100 * time.Millisecond):
	}
}
