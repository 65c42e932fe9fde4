package handler

import (
	whatsappapp "github.com/fintrack/backend/internal/application/whatsapp"
	"github.com/gin-gonic/gin"
)

// WhatsAppHandler handles WhatsApp subscription endpoints
type WhatsAppHandler struct {
	BaseHandler
	subscriptionService *whatsappapp.SubscriptionService
}

// NewWhatsAppHandler creates a new WhatsAppHandler
func NewWhatsAppHandler(base BaseHandler, subscriptionService *whatsappapp.SubscriptionService) *WhatsAppHandler {
	return &WhatsAppHandler{BaseHandler: base, subscriptionService: subscriptionService}
}

// List godoc
// @Summary      List WhatsApp subscriptions
// @Tags         whatsapp
// @Produce      json
// @Param        is_active query bool false "Active filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]whatsappapp.SubscriptionResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /whatsapp/subscriptions [get]
func (h *WhatsAppHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q whatsappapp.SubscriptionListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.subscriptionService.List(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// Create godoc
// @Summary      Create a WhatsApp subscription
// @Description  end_date may not precede start_date
// @Tags         whatsapp
// @Accept       json
// @Produce      json
// @Param        request body whatsappapp.CreateSubscriptionRequest true "Subscription"
// @Success      201 {object} dto.Response{data=whatsappapp.SubscriptionResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /whatsapp/subscriptions [post]
func (h *WhatsAppHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req whatsappapp.CreateSubscriptionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sub)
}

// GetByID godoc
// @Summary      Get a WhatsApp subscription
// @Tags         whatsapp
// @Produce      json
// @Param        id path string true "Subscription ID" format(uuid)
// @Success      200 {object} dto.Response{data=whatsappapp.SubscriptionResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /whatsapp/subscriptions/{id} [get]
func (h *WhatsAppHandler) GetByID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sub)
}

// Update godoc
// @Summary      Update a WhatsApp subscription
// @Tags         whatsapp
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID" format(uuid)
// @Param        request body whatsappapp.UpdateSubscriptionRequest true "Changes"
// @Success      200 {object} dto.Response{data=whatsappapp.SubscriptionResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /whatsapp/subscriptions/{id} [put]
func (h *WhatsAppHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req whatsappapp.UpdateSubscriptionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sub)
}

// Delete godoc
// @Summary      Delete a WhatsApp subscription
// @Tags         whatsapp
// @Param        id path string true "Subscription ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /whatsapp/subscriptions/{id} [delete]
func (h *WhatsAppHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.subscriptionService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Subscription deleted successfully")
}
