package admin

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pharmakit/backoffice/core/logger"
)

const (
	eventWriteTimeout = 10 * time.Second
	pingInterval      = 30 * time.Second
)

var eventsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// streamEvents upgrades the connection and forwards cache invalidation
// events so UI clients know which reads are outdated. Delivery is best
// effort: events published while the subscriber's buffer is full are
// dropped, and a client that cannot keep up with writes is disconnected.
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := eventsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", logger.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	sub := h.cache.Events().Subscribe(ctx)
	defer sub.Close()

	// Drain reads so close frames and pongs are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg, ok := <-sub.Receive(ctx):
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			if err := conn.WriteJSON(msg.Data); err != nil {
				h.log.Debug("event stream write failed", logger.Error(err))
				return
			}
		}
	}
}
