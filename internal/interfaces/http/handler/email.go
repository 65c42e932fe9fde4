package handler

import (
	emailapp "github.com/fintrack/backend/internal/application/email"
	"github.com/gin-gonic/gin"
)

// EmailHandler sends plain-text emails through the configured relay
type EmailHandler struct {
	BaseHandler
	emailService *emailapp.EmailService
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(base BaseHandler, emailService *emailapp.EmailService) *EmailHandler {
	return &EmailHandler{BaseHandler: base, emailService: emailService}
}

// Send godoc
// @Summary      Send an email
// @Description  With email disabled the message is only logged and dry_run is true
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        request body emailapp.SendRequest true "Message"
// @Success      200 {object} dto.Response{data=emailapp.SendResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /emails/send [post]
func (h *EmailHandler) Send(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req emailapp.SendRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.emailService.Send(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
