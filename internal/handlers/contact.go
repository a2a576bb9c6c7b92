package handlers

import (
	"net/http"

	"github.com/code-100-precent/LingChat/internal/models"
	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/code-100-precent/LingChat/pkg/utils/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contactForm struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// handleContact stores a contact form submission and sends a best-effort
// acknowledgement mail.
func (h *Handlers) handleContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	contact := &models.Contact{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Body:    form.Body,
	}
	if err := h.db.Create(contact).Error; err != nil {
		logger.Error("contact save failed", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "contact submission failed")
		return
	}

	if h.mailer != nil {
		go func(to, name string) {
			err := h.mailer.SendPlain(to, "We received your message",
				"Hi "+name+",\n\nThanks for reaching out. We will get back to you soon.\n")
			if err != nil {
				logger.Warn("contact acknowledgement failed", zap.Error(err), zap.String("to", to))
			}
		}(contact.Email, contact.Name)
	}

	response.Success(c, "message received", nil)
}
