package handler

import (
	financeapp "github.com/fintrack/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// RecurringHandler triggers generation of recurring expenses and salaries
type RecurringHandler struct {
	BaseHandler
	recurringService *financeapp.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(base BaseHandler, recurringService *financeapp.RecurringService) *RecurringHandler {
	return &RecurringHandler{BaseHandler: base, recurringService: recurringService}
}

// Generate godoc
// @Summary      Generate recurring records
// @Description  Materialise monthly auto-add expenses and recurring salaries for a period (default: current month). Safe to re-run.
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Param        request body financeapp.GenerateRequest false "Period (YYYY-MM)"
// @Success      200 {object} dto.Response{data=financeapp.GenerateResult}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recurring/generate [post]
func (h *RecurringHandler) Generate(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req financeapp.GenerateRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	result, err := h.recurringService.Generate(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
