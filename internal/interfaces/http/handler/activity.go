package handler

import (
	activityapp "github.com/fintrack/backend/internal/application/activity"
	"github.com/gin-gonic/gin"
)

// ActivityHandler handles the activity log, mounted on /activity and /activity-log
type ActivityHandler struct {
	BaseHandler
	activityService *activityapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(base BaseHandler, activityService *activityapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{BaseHandler: base, activityService: activityService}
}

// List godoc
// @Summary      List activity log entries
// @Description  Newest first. Dates filter on created_at; camelCase aliases are accepted.
// @Tags         activity
// @Produce      json
// @Param        action query string false "Action filter"
// @Param        entity_type query string false "Entity type filter"
// @Param        entityType query string false "Entity type filter (alias)"
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        startDate query string false "From date (alias)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Param        endDate query string false "To date (alias)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]activityapp.EntryResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /activity-log [get]
// @Router       /activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q activityapp.EntryQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.activityService.List(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// Create godoc
// @Summary      Append an activity log entry
// @Tags         activity
// @Accept       json
// @Produce      json
// @Param        request body activityapp.CreateEntryRequest true "Entry"
// @Success      201 {object} dto.Response{data=activityapp.EntryResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /activity-log [post]
// @Router       /activity [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req activityapp.CreateEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.activityService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Delete godoc
// @Summary      Delete an activity log entry
// @Tags         activity
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /activity-log/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Activity entry deleted successfully")
}

// Clear godoc
// @Summary      Clear the activity log
// @Description  Deletes the entries matching the list filters and reports how many went
// @Tags         activity
// @Produce      json
// @Param        action query string false "Action filter"
// @Param        entity_type query string false "Entity type filter"
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=activityapp.ClearResult}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /activity-log [delete]
func (h *ActivityHandler) Clear(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q activityapp.EntryQuery
	if !h.bindQuery(c, &q) {
		return
	}

	result, err := h.activityService.Clear(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
