package handlers

import (
	"net/http"
	"time"

	"github.com/code-100-precent/LingChat/internal/models"
	"github.com/code-100-precent/LingChat/pkg/config"
	"github.com/code-100-precent/LingChat/pkg/gateway"
	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/code-100-precent/LingChat/pkg/middleware"
	"github.com/code-100-precent/LingChat/pkg/utils"
	"github.com/code-100-precent/LingChat/pkg/utils/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authCookieMaxAge  = 7 * 24 * 3600
	verifyTokenExpiry = 48 * time.Hour
)

type signupForm struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginForm struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleSignup creates an account and immediately issues an identity token,
// so a fresh client can open the realtime connection without a second login
// round trip.
func (h *Handlers) handleSignup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := models.GetUserByEmail(h.db, form.Email); err == nil {
		response.Fail(c, http.StatusConflict, utils.ErrEmailExists.Error())
		return
	}

	user := &models.User{
		UID:       uuid.NewString(),
		Email:     form.Email,
		Password:  utils.HashPassword(form.Password),
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}
	if h.mailer != nil {
		user.EmailVerifyToken = utils.RandText(32)
		expires := time.Now().Add(verifyTokenExpiry)
		user.EmailVerifyExpires = &expires
	}

	if err := h.db.Create(user).Error; err != nil {
		logger.Error("user creation failed", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "signup failed")
		return
	}

	if h.mailer != nil {
		verifyURL := config.GlobalConfig.ServerUrl + config.GlobalConfig.APIPrefix +
			"/auth/verify?token=" + user.EmailVerifyToken
		go func(to, name, url string) {
			if err := h.mailer.SendVerificationEmail(to, name, url); err != nil {
				logger.Warn("verification email failed", zap.Error(err), zap.String("to", to))
			}
		}(user.Email, user.DisplayName(), verifyURL)
	}

	h.issueToken(c, user)
	response.Success(c, "signup success", user)
}

// handleLogin verifies credentials and issues an identity token.
func (h *Handlers) handleLogin(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := models.GetUserByEmail(h.db, form.Email)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, utils.ErrInvalidCredentials.Error())
		return
	}
	if !utils.CheckPassword(user.Password, form.Password) {
		response.Fail(c, http.StatusUnauthorized, utils.ErrInvalidCredentials.Error())
		return
	}
	if !user.Enabled {
		response.Fail(c, http.StatusForbidden, utils.ErrNotActivated.Error())
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := h.db.Model(user).Update("last_login", &now).Error; err != nil {
		logger.Warn("last login update failed", zap.Error(err), zap.String("user", user.UID))
	}

	h.issueToken(c, user)
	response.Success(c, "login success", user)
}

// handleLogout clears the auth cookie. The token itself stays valid until
// it expires; there is no server side revocation list.
func (h *Handlers) handleLogout(c *gin.Context) {
	c.SetCookie(gateway.AuthCookieName, "", -1, "/", "", false, true)
	response.Success(c, "logout success", nil)
}

// handleUserInfo returns the authenticated user's profile.
func (h *Handlers) handleUserInfo(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	user, err := models.GetUserByUID(h.db, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, utils.ErrUserNotExists.Error())
		return
	}
	response.Success(c, "success", user)
}

// issueToken signs an identity token for the user, attaches it to the
// response body and mirrors it into the auth cookie the gateway falls back
// to during the WebSocket handshake.
func (h *Handlers) issueToken(c *gin.Context, user *models.User) {
	token, err := h.jwt.GenerateToken(user.UID, user.FirstName, user.LastName)
	if err != nil {
		logger.Error("token generation failed", zap.Error(err), zap.String("user", user.UID))
		return
	}
	user.AuthToken = token
	c.SetCookie(gateway.AuthCookieName, token, authCookieMaxAge, "/", "", false, true)
}
