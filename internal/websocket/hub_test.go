package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHubBroadcastsOnlyToMatchingRound(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	watcher := &Client{RoundID: "round-1", Send: make(chan []byte, 4)}
	other := &Client{RoundID: "round-2", Send: make(chan []byte, 4)}
	hub.Register(watcher)
	hub.Register(other)

	hub.Broadcast(Event{
		RoundID: "round-1",
		Kind:    EventLeaderboard,
		Payload: map[string]int{"position": 1},
	})

	var ev Event
	require.NoError(t, json.Unmarshal(receive(t, watcher), &ev))
	assert.Equal(t, EventLeaderboard, ev.Kind)
	assert.Equal(t, "round-1", ev.RoundID)

	// The round-2 watcher must not have received anything.
	select {
	case data := <-other.Send:
		t.Fatalf("unexpected message for round-2 watcher: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := &Client{RoundID: "round-1", Send: make(chan []byte, 4)}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, open := <-client.Send:
		assert.False(t, open, "Send must be closed after unregister")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Send to close")
	}

	// Broadcasting to the now-empty round must not panic or block.
	hub.Broadcast(Event{RoundID: "round-1", Kind: EventMatch, Payload: nil})
}
