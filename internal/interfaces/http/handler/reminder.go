package handler

import (
	reminderapp "github.com/fintrack/backend/internal/application/reminder"
	"github.com/gin-gonic/gin"
)

// ReminderHandler handles reminder endpoints
type ReminderHandler struct {
	BaseHandler
	reminderService *reminderapp.ReminderService
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(base BaseHandler, reminderService *reminderapp.ReminderService) *ReminderHandler {
	return &ReminderHandler{BaseHandler: base, reminderService: reminderService}
}

// List godoc
// @Summary      List reminders
// @Description  Ordered by due date. upcoming=true returns the open reminders due within the next days.
// @Tags         reminders
// @Produce      json
// @Param        is_done query bool false "Done filter"
// @Param        upcoming query bool false "Only upcoming open reminders"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]reminderapp.ReminderResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q reminderapp.ReminderListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.reminderService.List(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// Create godoc
// @Summary      Create a reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        request body reminderapp.CreateReminderRequest true "Reminder"
// @Success      201 {object} dto.Response{data=reminderapp.ReminderResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req reminderapp.CreateReminderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.reminderService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// GetByID godoc
// @Summary      Get a reminder
// @Tags         reminders
// @Produce      json
// @Param        id path string true "Reminder ID" format(uuid)
// @Success      200 {object} dto.Response{data=reminderapp.ReminderResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reminders/{id} [get]
func (h *ReminderHandler) GetByID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.reminderService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Update godoc
// @Summary      Update a reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        id path string true "Reminder ID" format(uuid)
// @Param        request body reminderapp.UpdateReminderRequest true "Changes"
// @Success      200 {object} dto.Response{data=reminderapp.ReminderResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reminders/{id} [put]
func (h *ReminderHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req reminderapp.UpdateReminderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.reminderService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// ToggleDone godoc
// @Summary      Toggle a reminder's done flag
// @Tags         reminders
// @Produce      json
// @Param        id path string true "Reminder ID" format(uuid)
// @Success      200 {object} dto.Response{data=reminderapp.ReminderResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reminders/{id}/done [post]
func (h *ReminderHandler) ToggleDone(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.reminderService.ToggleDone(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Delete godoc
// @Summary      Delete a reminder
// @Tags         reminders
// @Param        id path string true "Reminder ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reminderService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Reminder deleted successfully")
}
