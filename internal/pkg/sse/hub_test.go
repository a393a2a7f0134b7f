package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-1", Event{RecipientID: "emp-1", Event: "notification", Data: "hello"})

	select {
	case got := <-ch:
		assert.Equal(t, "notification", got.Event)
		assert.Equal(t, "hello", got.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHubPublishIsScopedToRecipient(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-2", Event{RecipientID: "emp-2", Event: "notification"})

	select {
	case <-ch:
		t.Fatal("event should not reach another recipient")
	default:
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("emp-1")
	require.Equal(t, 1, hub.SubscriberCount("emp-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("emp-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHubFullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	// Channel buffer is 10; the extra events are dropped, not blocked on.
	for i := 0; i < 15; i++ {
		hub.Publish("emp-1", Event{RecipientID: "emp-1", Event: "notification"})
	}

	assert.Len(t, ch, 10)
}
