package firebase

import (
	"context"
	"sync"
	"time"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// SubscribeToMessages watches the messages collection by polling the query
// endpoint and diffing results against the set of ids already delivered.
// The first poll delivers the full backlog in stored order, matching what a
// listener attached to a live feed would see on connect.
func (d *databaseAPI) SubscribeToMessages(cb backend.MessageFunc) (backend.UnsubscribeFunc, error) {
	done := make(chan struct{})
	var once sync.Once

	go d.watchMessages(done, cb)

	return func() {
		once.Do(func() { close(done) })
	}, nil
}

func (d *databaseAPI) watchMessages(done <-chan struct{}, cb backend.MessageFunc) {
	seen := make(map[string]struct{})
	ticker := time.NewTicker(d.c.watchInterval)
	defer ticker.Stop()

	d.pollMessages(seen, cb)
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			d.pollMessages(seen, cb)
		}
	}
}

func (d *databaseAPI) pollMessages(seen map[string]struct{}, cb backend.MessageFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), d.c.http.Timeout)
	defer cancel()

	msgs, err := d.GetMessages(ctx)
	if err != nil {
		d.c.log.Warn().Err(err).Msg("message poll failed")
		return
	}
	for _, msg := range msgs {
		if _, ok := seen[msg.ID]; ok {
			continue
		}
		seen[msg.ID] = struct{}{}
		cb(msg)
	}
}
