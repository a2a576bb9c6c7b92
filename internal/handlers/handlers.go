// Package handlers wires the REST API: account signup and login, email
// verification, profile and avatar management, message history and the
// public contact form. The realtime endpoint itself lives in pkg/gateway.
package handlers

import (
	"github.com/code-100-precent/LingChat/internal/store"
	"github.com/code-100-precent/LingChat/pkg/auth"
	"github.com/code-100-precent/LingChat/pkg/config"
	"github.com/code-100-precent/LingChat/pkg/middleware"
	"github.com/code-100-precent/LingChat/pkg/notification"
	stores "github.com/code-100-precent/LingChat/pkg/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handlers struct {
	db       *gorm.DB
	jwt      *auth.JWTManager
	messages *store.Messages
	profiles *store.Profiles
	media    stores.Store
	mailer   notification.Mailer
}

func NewHandlers(db *gorm.DB, jwt *auth.JWTManager, messages *store.Messages, profiles *store.Profiles, media stores.Store, mailer notification.Mailer) *Handlers {
	return &Handlers{
		db:       db,
		jwt:      jwt,
		messages: messages,
		profiles: profiles,
		media:    media,
		mailer:   mailer,
	}
}

func (h *Handlers) Register(engine *gin.Engine) {
	r := engine.Group(config.GlobalConfig.APIPrefix)

	r.POST("/auth/signup", h.handleSignup)
	r.POST("/auth/login", h.handleLogin)
	r.GET("/auth/logout", h.handleLogout)
	r.GET("/auth/verify", h.handleVerifyEmail)
	r.POST("/contact", h.handleContact)

	authed := r.Group("", middleware.AuthRequired(h.jwt))
	authed.GET("/user/me", h.handleUserInfo)
	authed.POST("/user/avatar", h.handleAvatarUpload)
	authed.GET("/messages/:peer", h.handleMessageHistory)
}
