package handler

import (
	financeapp "github.com/fintrack/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles expense category endpoints. They are mounted on
// both /expense-categories and /categories.
type CategoryHandler struct {
	BaseHandler
	categoryService *financeapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(base BaseHandler, categoryService *financeapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, categoryService: categoryService}
}

// List godoc
// @Summary      List expense categories
// @Description  All categories of the user ordered by name
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Response{data=[]financeapp.CategoryResponse}
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expense-categories [get]
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Create godoc
// @Summary      Create an expense category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateCategoryRequest true "Category"
// @Success      201 {object} dto.Response{data=financeapp.CategoryResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expense-categories [post]
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req financeapp.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Delete godoc
// @Summary      Delete an expense category
// @Description  Expenses in the category keep existing without a category
// @Tags         categories
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expense-categories/{id} [delete]
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Category deleted successfully")
}
