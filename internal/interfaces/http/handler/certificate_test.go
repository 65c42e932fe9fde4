package handler

import (
	"net/http"
	"testing"

	certificateapp "github.com/fintrack/backend/internal/application/certificate"
	"github.com/fintrack/backend/internal/infrastructure/persistence"
	"github.com/fintrack/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCertificateRoutes(env *testEnv) {
	h := NewCertificateHandler(env.base, certificateapp.NewCertificateService(
		persistence.NewGormCertificateRepository(env.db),
		persistence.NewGormWithdrawalRepository(env.db),
	))
	env.api.POST("/certificates", h.Create)
	env.api.GET("/certificates/:id", h.GetByID)
	env.api.GET("/certificates/:id/withdrawals", h.ListWithdrawals)
	env.api.POST("/certificates/:id/withdrawals", h.CreateWithdrawal)
	env.api.POST("/withdrawals/:id/repay", h.Repay)
	env.api.POST("/withdrawals/:id/pay-installment", h.PayInstallment)
}

func TestCertificateHandler_WithdrawAndRepay(t *testing.T) {
	env := newTestEnv(t)
	setupCertificateRoutes(env)
	user := uuid.New()

	status, resp := env.do(http.MethodPost, "/api/v1/certificates", user, map[string]any{
		"bank_name":            "NBE",
		"certificate_name":     "Platinum",
		"amount":               "200000",
		"max_withdrawal_limit": "50000",
	})
	require.Equal(t, http.StatusCreated, status)
	certID := testutil.DataMap(t, resp)["id"].(string)
	certPath := "/api/v1/certificates/" + certID

	status, resp = env.do(http.MethodPost, certPath+"/withdrawals", user, map[string]any{
		"amount": "10000", "date": "2026-10-01",
	})
	require.Equal(t, http.StatusCreated, status)
	withdrawal := testutil.DataMap(t, resp)
	assert.Equal(t, "2026-11-25", withdrawal["due_date"])
	withdrawalID := withdrawal["id"].(string)

	status, resp = env.do(http.MethodGet, certPath, user, nil)
	require.Equal(t, http.StatusOK, status)
	cert := testutil.DataMap(t, resp)
	testutil.RequireDecimal(t, "50000", cert["withdrawal_limit"])
	testutil.RequireDecimal(t, "40000", cert["remaining_amount"])
	testutil.RequireDecimal(t, "10000", cert["total_unpaid"])

	status, resp = env.do(http.MethodPost, certPath+"/withdrawals", user, map[string]any{
		"amount": "40001", "date": "2026-10-02",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "WITHDRAWAL_LIMIT_EXCEEDED", resp.Error.Code)

	status, _ = env.do(http.MethodPost, "/api/v1/withdrawals/"+withdrawalID+"/pay-installment", user, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = env.do(http.MethodPost, "/api/v1/withdrawals/"+withdrawalID+"/repay", user, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, testutil.DataMap(t, resp)["is_repaid"])

	status, resp = env.do(http.MethodPost, "/api/v1/withdrawals/"+withdrawalID+"/repay", user, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", resp.Error.Code)

	status, resp = env.do(http.MethodGet, certPath, user, nil)
	require.Equal(t, http.StatusOK, status)
	cert = testutil.DataMap(t, resp)
	testutil.RequireDecimal(t, "50000", cert["remaining_amount"])
	testutil.RequireDecimal(t, "10000", cert["total_repaid"])
}

func TestCertificateHandler_Installments(t *testing.T) {
	env := newTestEnv(t)
	setupCertificateRoutes(env)
	user := uuid.New()

	status, resp := env.do(http.MethodPost, "/api/v1/certificates", user, map[string]any{
		"bank_name": "CIB", "certificate_name": "Gold", "amount": "100000",
	})
	require.Equal(t, http.StatusCreated, status)
	certPath := "/api/v1/certificates/" + testutil.DataMap(t, resp)["id"].(string)

	status, resp = env.do(http.MethodPost, certPath+"/withdrawals", user, map[string]any{
		"amount": "3000", "date": "2026-10-01", "is_installment": true, "installment_count": 2,
	})
	require.Equal(t, http.StatusCreated, status)
	payPath := "/api/v1/withdrawals/" + testutil.DataMap(t, resp)["id"].(string) + "/pay-installment"

	status, resp = env.do(http.MethodPost, payPath, user, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, testutil.DataMap(t, resp)["paid_installments"])

	status, resp = env.do(http.MethodPost, payPath, user, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, testutil.DataMap(t, resp)["paid_installments"])

	status, resp = env.do(http.MethodPost, payPath, user, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSTALLMENTS_COMPLETE", resp.Error.Code)

	status, resp = env.do(http.MethodGet, certPath+"/withdrawals", uuid.New(), nil)
	assert.Equal(t, http.StatusForbidden, status)
}
