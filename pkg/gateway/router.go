package gateway

import (
	"encoding/json"

	"github.com/code-100-precent/LingChat/pkg/logger"
	"go.uber.org/zap"
)

// handleFrame classifies one inbound frame. A parse failure is logged and
// the frame dropped; the connection stays open. Frames that are neither an
// application ping nor a complete chat message are ignored without error.
func (c *Connection) handleFrame(data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		logger.Warn("malformed frame dropped",
			zap.Error(err), zap.String("conn", c.ID), zap.String("user", c.UserID))
		return
	}

	switch {
	case frame.Type == MessageTypePing:
		c.replyPong()
	case frame.Recipient != "" && frame.Text != "":
		c.hub.routeChat(c, frame.Recipient, frame.Text)
	}
}

// replyPong answers an application-level ping. This is independent of the
// protocol-level heartbeat and does not touch the liveness flag.
func (c *Connection) replyPong() {
	payload, err := marshalFrame(pongFrame{Type: MessageTypePong})
	if err != nil {
		return
	}
	c.hub.trySend(c, payload)
}

func marshalFrame(v any) ([]byte, error) {
	return json.Marshal(v)
}
