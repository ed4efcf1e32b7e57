package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/catalog/model"
)

func event(title string) model.BookAddedEvent {
	return model.BookAddedEvent{
		Book: model.BookResponse{Title: title, Author: "Robert Martin", Published: 2008},
	}
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()

	chA, cancelA := hub.Subscribe(4)
	chB, cancelB := hub.Subscribe(4)
	defer cancelA()
	defer cancelB()

	hub.Publish(event("Clean Code"))

	assert.Equal(t, "Clean Code", (<-chA).Book.Title)
	assert.Equal(t, "Clean Code", (<-chB).Book.Title)
}

func TestHubLateSubscriberMissesEvents(t *testing.T) {
	hub := NewHub()

	hub.Publish(event("Clean Code"))

	ch, cancel := hub.Subscribe(4)
	defer cancel()

	// no replay: nothing buffered for the late subscriber
	select {
	case e := <-ch:
		t.Fatalf("expected no event, got %q", e.Book.Title)
	default:
	}
}

func TestHubSlowSubscriberDropped(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(1)
	defer cancel()

	// second publish must not block even though the buffer is full
	hub.Publish(event("first"))
	hub.Publish(event("second"))

	assert.Equal(t, "first", (<-ch).Book.Title)
	select {
	case e := <-ch:
		t.Fatalf("expected dropped event, got %q", e.Book.Title)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(1)
	require.Equal(t, 1, hub.SubscriberCount())

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// cancel is idempotent
	cancel()

	// publishing after the only subscriber left is a no-op
	hub.Publish(event("nobody listens"))
}
