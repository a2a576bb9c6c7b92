package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/code-100-precent/LingChat/internal/models"
	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/code-100-precent/LingChat/pkg/middleware"
	"github.com/code-100-precent/LingChat/pkg/utils"
	"github.com/code-100-precent/LingChat/pkg/utils/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxAvatarSize = 5 << 20 // 5 MiB

var allowedAvatarExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// handleAvatarUpload stores a new avatar and updates the profile link. The
// cached avatar entry is invalidated so the next presence snapshot shows
// the new image.
func (h *Handlers) handleAvatarUpload(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	user, err := models.GetUserByUID(h.db, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, utils.ErrUserNotExists.Error())
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "avatar file required")
		return
	}
	if file.Size > maxAvatarSize {
		response.Fail(c, http.StatusRequestEntityTooLarge, "avatar too large")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExts[ext] {
		response.Fail(c, http.StatusBadRequest, "unsupported image type")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "unreadable upload")
		return
	}
	defer src.Close()

	key := fmt.Sprintf("avatars/%s%s", user.UID, ext)
	if err := h.media.Write(key, src); err != nil {
		logger.Error("avatar write failed", zap.Error(err), zap.String("user", user.UID))
		response.Fail(c, http.StatusInternalServerError, "avatar upload failed")
		return
	}

	link := h.media.PublicURL(key)
	if err := h.db.Model(user).Update("avatar_link", link).Error; err != nil {
		logger.Error("avatar link update failed", zap.Error(err), zap.String("user", user.UID))
		response.Fail(c, http.StatusInternalServerError, "avatar upload failed")
		return
	}
	user.AvatarLink = link
	h.profiles.Invalidate(user.UID)

	response.Success(c, "avatar updated", gin.H{"avatarLink": link})
}
