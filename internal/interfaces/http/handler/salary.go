package handler

import (
	financeapp "github.com/fintrack/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// SalaryHandler handles salary endpoints
type SalaryHandler struct {
	BaseHandler
	salaryService *financeapp.SalaryService
}

// NewSalaryHandler creates a new SalaryHandler
func NewSalaryHandler(base BaseHandler, salaryService *financeapp.SalaryService) *SalaryHandler {
	return &SalaryHandler{BaseHandler: base, salaryService: salaryService}
}

// List godoc
// @Summary      List salaries
// @Tags         salaries
// @Produce      json
// @Param        from query string false "Received from (YYYY-MM-DD)"
// @Param        to query string false "Received to (YYYY-MM-DD)"
// @Param        is_recurring query bool false "Only recurring templates"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]financeapp.SalaryResponse,meta=dto.Meta}
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /salaries [get]
func (h *SalaryHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q financeapp.SalaryListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.salaryService.List(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// Create godoc
// @Summary      Record a salary
// @Description  Recurring templates take a day_of_month; one-off salaries need received_date
// @Tags         salaries
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateSalaryRequest true "Salary"
// @Success      201 {object} dto.Response{data=financeapp.SalaryResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /salaries [post]
func (h *SalaryHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req financeapp.CreateSalaryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	salary, err := h.salaryService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, salary)
}

// GetByID godoc
// @Summary      Get a salary
// @Tags         salaries
// @Produce      json
// @Param        id path string true "Salary ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.SalaryResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /salaries/{id} [get]
func (h *SalaryHandler) GetByID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	salary, err := h.salaryService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, salary)
}

// Update godoc
// @Summary      Update a salary
// @Tags         salaries
// @Accept       json
// @Produce      json
// @Param        id path string true "Salary ID" format(uuid)
// @Param        request body financeapp.UpdateSalaryRequest true "Changes"
// @Success      200 {object} dto.Response{data=financeapp.SalaryResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /salaries/{id} [put]
func (h *SalaryHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdateSalaryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	salary, err := h.salaryService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, salary)
}

// Delete godoc
// @Summary      Delete a salary
// @Tags         salaries
// @Param        id path string true "Salary ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /salaries/{id} [delete]
func (h *SalaryHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.salaryService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Salary deleted successfully")
}
