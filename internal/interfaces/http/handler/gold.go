package handler

import (
	goldapp "github.com/fintrack/backend/internal/application/gold"
	"github.com/gin-gonic/gin"
)

// GoldHandler handles gold purchases, sales and the holding summary
type GoldHandler struct {
	BaseHandler
	goldService *goldapp.GoldService
}

// NewGoldHandler creates a new GoldHandler
func NewGoldHandler(base BaseHandler, goldService *goldapp.GoldService) *GoldHandler {
	return &GoldHandler{BaseHandler: base, goldService: goldService}
}

// ListPurchases godoc
// @Summary      List gold purchases
// @Tags         gold
// @Produce      json
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]goldapp.PurchaseResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /gold/purchases [get]
func (h *GoldHandler) ListPurchases(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q goldapp.PurchaseListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.goldService.ListPurchases(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// CreatePurchase godoc
// @Summary      Record a gold purchase
// @Description  invoice_value defaults to grams * price_per_gram
// @Tags         gold
// @Accept       json
// @Produce      json
// @Param        request body goldapp.CreatePurchaseRequest true "Purchase"
// @Success      201 {object} dto.Response{data=goldapp.PurchaseResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /gold/purchases [post]
func (h *GoldHandler) CreatePurchase(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req goldapp.CreatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.goldService.CreatePurchase(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// GetPurchase godoc
// @Summary      Get a gold purchase
// @Tags         gold
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} dto.Response{data=goldapp.PurchaseResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /gold/purchases/{id} [get]
func (h *GoldHandler) GetPurchase(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.goldService.GetPurchase(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// UpdatePurchase godoc
// @Summary      Update a gold purchase
// @Description  grams cannot drop below what has already been sold
// @Tags         gold
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Param        request body goldapp.UpdatePurchaseRequest true "Changes"
// @Success      200 {object} dto.Response{data=goldapp.PurchaseResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /gold/purchases/{id} [put]
func (h *GoldHandler) UpdatePurchase(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req goldapp.UpdatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.goldService.UpdatePurchase(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// DeletePurchase godoc
// @Summary      Delete a gold purchase
// @Description  Linked sales are kept and lose their purchase link
// @Tags         gold
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /gold/purchases/{id} [delete]
func (h *GoldHandler) DeletePurchase(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.goldService.DeletePurchase(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Gold purchase deleted successfully")
}

// ListSales godoc
// @Summary      List gold sales
// @Tags         gold
// @Produce      json
// @Param        purchase_id query string false "Purchase ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]goldapp.SaleResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /gold/sales [get]
func (h *GoldHandler) ListSales(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q goldapp.SaleListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.goldService.ListSales(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// CreateSale godoc
// @Summary      Record a gold sale
// @Description  A sale linked to a purchase computes its profit and is rejected with INSUFFICIENT_GOLD when it oversells
// @Tags         gold
// @Accept       json
// @Produce      json
// @Param        request body goldapp.CreateSaleRequest true "Sale"
// @Success      201 {object} dto.Response{data=goldapp.SaleResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /gold/sales [post]
func (h *GoldHandler) CreateSale(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req goldapp.CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.goldService.CreateSale(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetSale godoc
// @Summary      Get a gold sale
// @Tags         gold
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=goldapp.SaleResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /gold/sales/{id} [get]
func (h *GoldHandler) GetSale(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	sale, err := h.goldService.GetSale(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// DeleteSale godoc
// @Summary      Delete a gold sale
// @Tags         gold
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /gold/sales/{id} [delete]
func (h *GoldHandler) DeleteSale(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.goldService.DeleteSale(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Gold sale deleted successfully")
}

// Summary godoc
// @Summary      Gold holding summary
// @Tags         gold
// @Produce      json
// @Success      200 {object} dto.Response{data=goldapp.SummaryResponse}
// @Security     BearerAuth
// @Router       /gold/summary [get]
func (h *GoldHandler) Summary(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	summary, err := h.goldService.Summary(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
