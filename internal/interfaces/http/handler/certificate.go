package handler

import (
	certificateapp "github.com/fintrack/backend/internal/application/certificate"
	"github.com/gin-gonic/gin"
)

// CertificateHandler handles bank certificates and their withdrawals
type CertificateHandler struct {
	BaseHandler
	certificateService *certificateapp.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler
func NewCertificateHandler(base BaseHandler, certificateService *certificateapp.CertificateService) *CertificateHandler {
	return &CertificateHandler{BaseHandler: base, certificateService: certificateService}
}

// List godoc
// @Summary      List certificates
// @Description  Each certificate embeds its withdrawal limit, remaining amount and dangerous withdrawals
// @Tags         certificates
// @Produce      json
// @Param        bank_name query string false "Bank name filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]certificateapp.CertificateResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /certificates [get]
func (h *CertificateHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q certificateapp.CertificateListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.certificateService.List(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// Create godoc
// @Summary      Create a certificate
// @Description  max_withdrawal_limit defaults to amount and may not exceed it
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        request body certificateapp.CreateCertificateRequest true "Certificate"
// @Success      201 {object} dto.Response{data=certificateapp.CertificateResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /certificates [post]
func (h *CertificateHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req certificateapp.CreateCertificateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	cert, err := h.certificateService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cert)
}

// GetByID godoc
// @Summary      Get a certificate
// @Tags         certificates
// @Produce      json
// @Param        id path string true "Certificate ID" format(uuid)
// @Success      200 {object} dto.Response{data=certificateapp.CertificateResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /certificates/{id} [get]
func (h *CertificateHandler) GetByID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	cert, err := h.certificateService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cert)
}

// Update godoc
// @Summary      Update a certificate
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        id path string true "Certificate ID" format(uuid)
// @Param        request body certificateapp.UpdateCertificateRequest true "Changes"
// @Success      200 {object} dto.Response{data=certificateapp.CertificateResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /certificates/{id} [put]
func (h *CertificateHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req certificateapp.UpdateCertificateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	cert, err := h.certificateService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cert)
}

// Delete godoc
// @Summary      Delete a certificate
// @Description  Its withdrawals are deleted with it
// @Tags         certificates
// @Param        id path string true "Certificate ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /certificates/{id} [delete]
func (h *CertificateHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.certificateService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Certificate deleted successfully")
}

// ListWithdrawals godoc
// @Summary      List withdrawals of a certificate
// @Tags         withdrawals
// @Produce      json
// @Param        id path string true "Certificate ID" format(uuid)
// @Param        is_repaid query bool false "Repaid filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]certificateapp.WithdrawalResponse,meta=dto.Meta}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /certificates/{id}/withdrawals [get]
func (h *CertificateHandler) ListWithdrawals(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var q certificateapp.WithdrawalListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.paging(&q.ListQuery)

	items, total, err := h.certificateService.ListWithdrawals(c.Request.Context(), userID, id, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// CreateWithdrawal godoc
// @Summary      Withdraw from a certificate
// @Description  Rejected with WITHDRAWAL_LIMIT_EXCEEDED when the unpaid total would pass the limit. Non-installment withdrawals are due 55 days after their date.
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Param        id path string true "Certificate ID" format(uuid)
// @Param        request body certificateapp.CreateWithdrawalRequest true "Withdrawal"
// @Success      201 {object} dto.Response{data=certificateapp.WithdrawalResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /certificates/{id}/withdrawals [post]
func (h *CertificateHandler) CreateWithdrawal(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req certificateapp.CreateWithdrawalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	w, err := h.certificateService.CreateWithdrawal(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, w)
}

// GetWithdrawal godoc
// @Summary      Get a withdrawal
// @Tags         withdrawals
// @Produce      json
// @Param        id path string true "Withdrawal ID" format(uuid)
// @Success      200 {object} dto.Response{data=certificateapp.WithdrawalResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /certificate-withdrawals/{id} [get]
func (h *CertificateHandler) GetWithdrawal(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	w, err := h.certificateService.GetWithdrawal(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

// DeleteWithdrawal godoc
// @Summary      Delete a withdrawal
// @Tags         withdrawals
// @Param        id path string true "Withdrawal ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /certificate-withdrawals/{id} [delete]
func (h *CertificateHandler) DeleteWithdrawal(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.certificateService.DeleteWithdrawal(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Withdrawal deleted successfully")
}

// Repay godoc
// @Summary      Repay a withdrawal
// @Description  Marks the withdrawal repaid today; an already repaid withdrawal gives INVALID_STATE
// @Tags         withdrawals
// @Produce      json
// @Param        id path string true "Withdrawal ID" format(uuid)
// @Success      200 {object} dto.Response{data=certificateapp.WithdrawalResponse}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /withdrawals/{id}/repay [post]
// @Router       /certificate-withdrawals/{id}/repay [post]
func (h *CertificateHandler) Repay(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	w, err := h.certificateService.Repay(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

// PayInstallment godoc
// @Summary      Pay one installment
// @Description  The last installment marks the withdrawal repaid
// @Tags         withdrawals
// @Produce      json
// @Param        id path string true "Withdrawal ID" format(uuid)
// @Success      200 {object} dto.Response{data=certificateapp.WithdrawalResponse}
// @Failure      400 {object} ErrorResponse "NOT_INSTALLMENT"
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "INSTALLMENTS_COMPLETE"
// @Security     BearerAuth
// @Router       /withdrawals/{id}/pay-installment [post]
func (h *CertificateHandler) PayInstallment(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	w, err := h.certificateService.PayInstallment(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}
