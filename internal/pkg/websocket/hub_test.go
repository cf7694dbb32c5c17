package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(groupID, userID string, buffer int) *Client {
	return &Client{
		send:    make(chan []byte, buffer),
		userID:  userID,
		groupID: groupID,
		logger:  zerolog.Nop(),
	}
}

// addClients seeds the hub's client map directly so tests do not need a
// live websocket connection behind each client.
func addClients(h *Hub, groupID string, clients ...*Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group := make(map[*Client]bool)
	for _, c := range clients {
		group[c] = true
	}
	h.clients[groupID] = group
}

func waitForClientCount(t *testing.T, h *Hub, groupID string, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.GetClientsCount(groupID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count for %s = %d, want %d", groupID, h.GetClientsCount(groupID), want)
}

func TestBroadcastReachesGroupClients(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	member := newTestClient("group-1", "user-1", 8)
	outsider := newTestClient("group-2", "user-2", 8)
	addClients(h, "group-1", member)
	addClients(h, "group-2", outsider)

	h.BroadcastToGroup("group-1", map[string]string{"content": "hello"})

	select {
	case data := <-member.send:
		var payload map[string]string
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("unmarshal broadcast payload: %v", err)
		}
		if payload["content"] != "hello" {
			t.Fatalf("payload content = %q, want %q", payload["content"], "hello")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("group member never received the broadcast")
	}

	select {
	case <-outsider.send:
		t.Fatal("client in another group received the broadcast")
	default:
	}
}

func TestDeliverDropsSlowClientWithoutStalling(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	// A zero-buffer send channel with no reader models a client whose
	// write pump has stopped draining.
	slow := newTestClient("group-1", "slow-user", 0)
	healthy := newTestClient("group-1", "healthy-user", 8)
	addClients(h, "group-1", slow, healthy)

	h.BroadcastToGroup("group-1", map[string]string{"content": "first"})

	select {
	case <-healthy.send:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy client never received the broadcast")
	}

	waitForClientCount(t, h, "group-1", 1)

	select {
	case _, ok := <-slow.send:
		if ok {
			t.Fatal("slow client send channel still open after eviction")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("slow client send channel was never closed")
	}

	// The hub loop must keep serving broadcasts after the eviction.
	h.BroadcastToGroup("group-1", map[string]string{"content": "second"})

	select {
	case <-healthy.send:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped delivering after evicting a slow client")
	}
}
