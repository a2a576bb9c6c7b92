package handlers

import (
	"net/http"
	"time"

	"github.com/code-100-precent/LingChat/internal/models"
	"github.com/code-100-precent/LingChat/pkg/utils/response"
	"github.com/gin-gonic/gin"
)

// handleVerifyEmail consumes an email verification token. Tokens are single
// use: the row is cleared on success.
func (h *Handlers) handleVerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Fail(c, http.StatusBadRequest, "verification token required")
		return
	}

	var user models.User
	if err := h.db.Where("email_verify_token", token).Take(&user).Error; err != nil {
		response.Fail(c, http.StatusNotFound, "invalid verification token")
		return
	}
	if user.EmailVerifyExpires != nil && user.EmailVerifyExpires.Before(time.Now()) {
		response.Fail(c, http.StatusGone, "verification token expired")
		return
	}

	updates := map[string]any{
		"email_verified":       true,
		"email_verify_token":   "",
		"email_verify_expires": nil,
	}
	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		response.Fail(c, http.StatusInternalServerError, "verification failed")
		return
	}

	response.Success(c, "email verified", nil)
}
