package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
)

type eventMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const eventTypeBookAdded = "BOOK_ADDED"

// Subscribe connects to the event channel and reconciles every pushed
// bookAdded event into the local cache store. onBookAdded, if non-nil,
// runs after each reconciliation.
//
// Blocks until ctx is cancelled or the connection drops. Events
// published before the connection was established are never delivered;
// a client that subscribes late has permanently missed them.
func (c *Client) Subscribe(ctx context.Context, onBookAdded func(Book)) error {
	wsURL, err := websocketURL(c.baseURL)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to event channel: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var msg eventMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("event channel closed: %w", err)
		}

		if msg.Type != eventTypeBookAdded {
			continue
		}

		var book Book
		if err := json.Unmarshal(msg.Data, &book); err != nil {
			continue
		}

		c.store.ApplyBookAdded(book)
		if onBookAdded != nil {
			onBookAdded(book)
		}
	}
}

func websocketURL(baseURL string) (string, error) {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://") + "/api/v1/events", nil
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://") + "/api/v1/events", nil
	default:
		return "", fmt.Errorf("unsupported base URL scheme: %s", baseURL)
	}
}
