// Package store implements the persistence layer behind the gateway and the
// HTTP handlers on top of gorm.
package store

import (
	"context"

	"github.com/code-100-precent/LingChat/internal/models"
	"github.com/code-100-precent/LingChat/pkg/gateway"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Messages persists and queries chat messages.
type Messages struct {
	db *gorm.DB
}

func NewMessages(db *gorm.DB) *Messages {
	return &Messages{db: db}
}

// Create stores one chat message. The message id and the timestamp are
// assigned here, not by the caller.
func (s *Messages) Create(ctx context.Context, sender, recipient, text string) (*gateway.StoredMessage, error) {
	rec := &models.Message{
		MsgID:     uuid.NewString(),
		Sender:    sender,
		Recipient: recipient,
		Text:      text,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return &gateway.StoredMessage{
		ID:        rec.MsgID,
		Sender:    rec.Sender,
		Recipient: rec.Recipient,
		Text:      rec.Text,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// Conversation returns the message history between two users in both
// directions, oldest first, capped at limit.
func (s *Messages) Conversation(ctx context.Context, userID, peerID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var items []models.Message
	result := s.db.WithContext(ctx).
		Where("sender = ? AND recipient = ?", userID, peerID).
		Or("sender = ? AND recipient = ?", peerID, userID).
		Order("created_at").
		Limit(limit).
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}
