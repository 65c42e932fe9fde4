package handler

import (
	financeapp "github.com/fintrack/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// GoalHandler handles financial goal endpoints
type GoalHandler struct {
	BaseHandler
	goalService *financeapp.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(base BaseHandler, goalService *financeapp.GoalService) *GoalHandler {
	return &GoalHandler{BaseHandler: base, goalService: goalService}
}

// List godoc
// @Summary      List goals
// @Description  All goals ordered by deadline, not paginated
// @Tags         goals
// @Produce      json
// @Success      200 {object} dto.Response{data=[]financeapp.GoalResponse}
// @Security     BearerAuth
// @Router       /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, goals)
}

// Create godoc
// @Summary      Create a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateGoalRequest true "Goal"
// @Success      201 {object} dto.Response{data=financeapp.GoalResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req financeapp.CreateGoalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, goal)
}

// GetByID godoc
// @Summary      Get a goal
// @Tags         goals
// @Produce      json
// @Param        id path string true "Goal ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.GoalResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /goals/{id} [get]
func (h *GoalHandler) GetByID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	goal, err := h.goalService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, goal)
}

// Update godoc
// @Summary      Update a goal
// @Description  current_amount cannot be lowered; use add-amount to grow it
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        id path string true "Goal ID" format(uuid)
// @Param        request body financeapp.UpdateGoalRequest true "Changes"
// @Success      200 {object} dto.Response{data=financeapp.GoalResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdateGoalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, goal)
}

// AddAmount godoc
// @Summary      Add to a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        id path string true "Goal ID" format(uuid)
// @Param        request body financeapp.AddAmountRequest true "Amount to add"
// @Success      200 {object} dto.Response{data=financeapp.GoalResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /goals/{id}/add-amount [post]
func (h *GoalHandler) AddAmount(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.AddAmountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.AddAmount(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, goal)
}

// Delete godoc
// @Summary      Delete a goal
// @Tags         goals
// @Param        id path string true "Goal ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Goal deleted successfully")
}
