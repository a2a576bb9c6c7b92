// Package gateway implements the realtime messaging gateway: handshake
// authentication, the live connection registry, heartbeat-based dead peer
// detection, chat message routing and presence broadcasting over WebSocket
// connections.
package gateway

import (
	"context"
	"time"
)

// Identity is a verified credential payload.
type Identity struct {
	UserID    string
	FirstName string
	LastName  string
}

// DisplayName joins the name fields the way the chat UI shows them.
func (i *Identity) DisplayName() string {
	return i.FirstName + " " + i.LastName
}

// TokenVerifier validates an opaque credential string.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// VerifierFunc adapts a function to the TokenVerifier interface.
type VerifierFunc func(token string) (*Identity, error)

func (f VerifierFunc) Verify(token string) (*Identity, error) {
	return f(token)
}

// StoredMessage is the persisted record of one chat message. The id and
// timestamp are assigned by the store, not by the gateway.
type StoredMessage struct {
	ID        string
	Sender    string
	Recipient string
	Text      string
	CreatedAt time.Time
}

// MessageStore persists chat messages.
type MessageStore interface {
	Create(ctx context.Context, sender, recipient, text string) (*StoredMessage, error)
}

// ProfileResolver resolves a user's avatar link for presence snapshots.
type ProfileResolver interface {
	AvatarLink(ctx context.Context, userID string) (string, error)
}

// inboundFrame is the parsed shape of a client frame. Frames that are
// neither a ping nor carry both recipient and text are ignored.
type inboundFrame struct {
	Type      string `json:"type"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// pongFrame answers an application-level ping.
type pongFrame struct {
	Type string `json:"type"`
}

// deliveredMessage is the wire shape of a routed chat message.
type deliveredMessage struct {
	ID        string    `json:"_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Recipient string    `json:"recipient"`
	CreatedAt time.Time `json:"createdAt"`
}

// presenceEntry is one row of the online snapshot. Entries are
// per-connection: a user with two open connections appears twice.
type presenceEntry struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	AvatarLink string `json:"avatarLink,omitempty"`
}

// presenceSnapshot is pushed to every open connection on membership change.
type presenceSnapshot struct {
	Online []presenceEntry `json:"online"`
}
