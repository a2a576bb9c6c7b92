package gateway

import (
	"context"
	"sync"

	"github.com/code-100-precent/LingChat/pkg/logger"
	"go.uber.org/zap"
)

// broadcastPresence recomputes the online snapshot and pushes it to every
// open connection. Entries are per-connection; avatar lookups run
// concurrently and the send waits for all of them. A failing lookup only
// loses that entry's avatar, never the whole snapshot. Runs only from the
// presence loop, one snapshot at a time.
func (h *Hub) broadcastPresence() {
	h.mu.RLock()
	targets := make([]*Connection, 0, len(h.conns))
	entries := make([]presenceEntry, 0, len(h.conns))
	for _, conn := range h.conns {
		targets = append(targets, conn)
		if conn.UserID == "" {
			continue
		}
		entries = append(entries, presenceEntry{
			UserID:   conn.UserID,
			Username: conn.DisplayName,
		})
	}
	h.mu.RUnlock()

	var wg sync.WaitGroup
	for i := range entries {
		wg.Add(1)
		go func(e *presenceEntry) {
			defer wg.Done()
			link, err := h.profiles.AvatarLink(context.Background(), e.UserID)
			if err != nil {
				logger.Warn("avatar lookup failed",
					zap.Error(err), zap.String("user", e.UserID))
				return
			}
			e.AvatarLink = link
		}(&entries[i])
	}
	wg.Wait()

	payload, err := marshalFrame(presenceSnapshot{Online: entries})
	if err != nil {
		logger.Error("presence snapshot serialization failed", zap.Error(err))
		return
	}

	for _, conn := range targets {
		h.trySend(conn, payload)
	}
}
