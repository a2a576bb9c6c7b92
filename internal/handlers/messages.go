package handlers

import (
	"net/http"
	"strconv"

	"github.com/code-100-precent/LingChat/pkg/middleware"
	"github.com/code-100-precent/LingChat/pkg/utils/response"
	"github.com/gin-gonic/gin"
)

type historyEntry struct {
	ID        string `json:"_id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// handleMessageHistory returns the stored conversation between the
// authenticated user and one peer, oldest first. Entries use the same wire
// shape as realtime delivery.
func (h *Handlers) handleMessageHistory(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	peer := c.Param("peer")
	if peer == "" {
		response.Fail(c, http.StatusBadRequest, "peer required")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.messages.Conversation(c.Request.Context(), claims.UserID, peer, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "history lookup failed")
		return
	}

	entries := make([]historyEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, historyEntry{
			ID:        item.MsgID,
			Sender:    item.Sender,
			Recipient: item.Recipient,
			Text:      item.Text,
			CreatedAt: item.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}

	response.Success(c, "success", entries)
}
