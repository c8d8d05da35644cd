package handlers

import (
	"io"
	"time"

	"realtalk/services/live"

	"github.com/gin-gonic/gin"
)

// LiveHandler streams public snapshots as server-sent events.
type LiveHandler struct {
	Hub       *live.Hub
	KeepAlive time.Duration
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{Hub: hub, KeepAlive: 25 * time.Second}
}

// Stream sends a "snapshot" event for every change and a "ping" comment
// while idle so proxies keep the connection open.
func (h *LiveHandler) Stream(c *gin.Context) {
	updates, unsubscribe := h.Hub.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.KeepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case snap, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}
