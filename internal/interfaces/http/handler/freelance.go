package handler

import (
	freelanceapp "github.com/fintrack/backend/internal/application/freelance"
	"github.com/gin-gonic/gin"
)

// FreelanceHandler handles freelance revenues and the payments received on them
type FreelanceHandler struct {
	BaseHandler
	freelanceService *freelanceapp.FreelanceService
}

// NewFreelanceHandler creates a new FreelanceHandler
func NewFreelanceHandler(base BaseHandler, freelanceService *freelanceapp.FreelanceService) *FreelanceHandler {
	return &FreelanceHandler{BaseHandler: base, freelanceService: freelanceService}
}

// ListRevenues godoc
// @Summary      List freelance revenues
// @Tags         freelance
// @Produce      json
// @Param        client query string false "Client filter"
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Param        search query string false "Title search"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]freelanceapp.RevenueResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /freelance/revenues [get]
func (h *FreelanceHandler) ListRevenues(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q freelanceapp.RevenueListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.freelanceService.ListRevenues(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// CreateRevenue godoc
// @Summary      Record a freelance revenue
// @Tags         freelance
// @Accept       json
// @Produce      json
// @Param        request body freelanceapp.CreateRevenueRequest true "Revenue"
// @Success      201 {object} dto.Response{data=freelanceapp.RevenueResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /freelance/revenues [post]
func (h *FreelanceHandler) CreateRevenue(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req freelanceapp.CreateRevenueRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rev, err := h.freelanceService.CreateRevenue(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rev)
}

// GetRevenue godoc
// @Summary      Get a freelance revenue
// @Tags         freelance
// @Produce      json
// @Param        id path string true "Revenue ID" format(uuid)
// @Success      200 {object} dto.Response{data=freelanceapp.RevenueResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /freelance/revenues/{id} [get]
func (h *FreelanceHandler) GetRevenue(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	rev, err := h.freelanceService.GetRevenue(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rev)
}

// UpdateRevenue godoc
// @Summary      Update a freelance revenue
// @Tags         freelance
// @Accept       json
// @Produce      json
// @Param        id path string true "Revenue ID" format(uuid)
// @Param        request body freelanceapp.UpdateRevenueRequest true "Changes"
// @Success      200 {object} dto.Response{data=freelanceapp.RevenueResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /freelance/revenues/{id} [put]
func (h *FreelanceHandler) UpdateRevenue(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req freelanceapp.UpdateRevenueRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rev, err := h.freelanceService.UpdateRevenue(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rev)
}

// DeleteRevenue godoc
// @Summary      Delete a freelance revenue
// @Description  Its payments are deleted with it
// @Tags         freelance
// @Param        id path string true "Revenue ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /freelance/revenues/{id} [delete]
func (h *FreelanceHandler) DeleteRevenue(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.freelanceService.DeleteRevenue(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Revenue deleted successfully")
}

// ListPayments godoc
// @Summary      List freelance payments
// @Tags         freelance
// @Produce      json
// @Param        revenue_id query string false "Revenue ID" format(uuid)
// @Param        revenueId query string false "Revenue ID (alias)" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]freelanceapp.PaymentResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /freelance/payments [get]
func (h *FreelanceHandler) ListPayments(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q freelanceapp.PaymentListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.freelanceService.ListPayments(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// CreatePayment godoc
// @Summary      Record a payment against a revenue
// @Tags         freelance
// @Accept       json
// @Produce      json
// @Param        request body freelanceapp.CreatePaymentRequest true "Payment"
// @Success      201 {object} dto.Response{data=freelanceapp.PaymentResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /freelance/payments [post]
func (h *FreelanceHandler) CreatePayment(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req freelanceapp.CreatePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.freelanceService.CreatePayment(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// GetPayment godoc
// @Summary      Get a freelance payment
// @Tags         freelance
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} dto.Response{data=freelanceapp.PaymentResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /freelance/payments/{id} [get]
func (h *FreelanceHandler) GetPayment(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.freelanceService.GetPayment(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// DeletePayment godoc
// @Summary      Delete a freelance payment
// @Tags         freelance
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /freelance/payments/{id} [delete]
func (h *FreelanceHandler) DeletePayment(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.freelanceService.DeletePayment(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Payment deleted successfully")
}
