package firebase

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

func messageDoc(id, content string) map[string]any {
	return map[string]any{"document": fsDocument{
		Name: "projects/p1/databases/(default)/documents/messages/" + id,
		Fields: map[string]map[string]any{
			"content":    {"stringValue": content},
			"user_id":    {"stringValue": "u1"},
			"created_at": {"timestampValue": "2026-07-01T00:00:00Z"},
		},
	}}
}

func TestSubscribeToMessages_DeliversEachOnce(t *testing.T) {
	var mu sync.Mutex
	docs := []map[string]any{messageDoc("m1", "first")}

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		current := append([]map[string]any(nil), docs...)
		mu.Unlock()
		writeJSON(t, w, current)
	}))
	b.c.watchInterval = 10 * time.Millisecond

	received := make(chan backend.Message, 4)
	unsubscribe, err := b.Database().SubscribeToMessages(func(msg backend.Message) {
		received <- msg
	})
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case msg := <-received:
		assert.Equal(t, "m1", msg.ID, "backlog is delivered on the first poll")
	case <-time.After(2 * time.Second):
		t.Fatal("backlog message never arrived")
	}

	mu.Lock()
	docs = append(docs, messageDoc("m2", "second"))
	mu.Unlock()

	select {
	case msg := <-received:
		assert.Equal(t, "m2", msg.ID, "new inserts are diffed in")
		assert.Equal(t, "second", msg.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("new message never arrived")
	}

	select {
	case msg := <-received:
		t.Fatalf("message %s delivered twice", msg.ID)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribeToMessages_UnsubscribeStopsPolling(t *testing.T) {
	var mu sync.Mutex
	polls := 0

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		polls++
		mu.Unlock()
		writeJSON(t, w, []map[string]any{})
	}))
	b.c.watchInterval = 10 * time.Millisecond

	unsubscribe, err := b.Database().SubscribeToMessages(func(backend.Message) {})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	unsubscribe()

	mu.Lock()
	after := polls
	mu.Unlock()
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	final := polls
	mu.Unlock()
	assert.LessOrEqual(t, final, after+1, "polling must stop after unsubscribe")
}
