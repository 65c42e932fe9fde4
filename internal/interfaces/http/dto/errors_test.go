package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusConflict},
		{ErrCodeInstallmentsComplete, http.StatusConflict},
		{ErrCodeNotInstallment, http.StatusBadRequest},
		{ErrCodeWithdrawalLimitExceeded, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientGold, http.StatusUnprocessableEntity},
		{ErrCodeEmailDeliveryFailed, http.StatusBadGateway},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Unlisted field errors
		{"INVALID_AMOUNT", http.StatusBadRequest},
		{"INVALID_DAY_OF_MONTH", http.StatusBadRequest},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestFail_WithRequestID(t *testing.T) {
	base := Fail(ErrCodeNotFound, "Expense not found")
	resp := base.WithRequestID("req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Empty(t, base.Error.RequestID, "the original envelope is not modified")
	assert.Nil(t, resp.Data)

	ok := OK("x").WithRequestID("req-1")
	assert.Nil(t, ok.Error)
}

func TestInvalid_JSON(t *testing.T) {
	resp := Invalid("Request validation failed",
		ValidationDetail{Field: "amount", Message: "This field is required"},
	).WithRequestID("req-789")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")
	errObj := body["error"].(map[string]any)
	assert.Equal(t, ErrCodeValidation, errObj["code"])
	assert.Equal(t, "req-789", errObj["request_id"])
	assert.Len(t, errObj["details"], 1)
}

func TestPage_Meta(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		pages    int
	}{
		{101, 50, 3},
		{100, 50, 2},
		{0, 50, 0},
		{7, 0, 7},
	}
	for _, tt := range tests {
		resp := Page([]int{}, tt.total, 1, tt.pageSize)
		require.NotNil(t, resp.Meta)
		assert.True(t, resp.Success)
		assert.Equal(t, tt.total, resp.Meta.Total)
		assert.Equal(t, tt.pages, resp.Meta.TotalPages, "total=%d size=%d", tt.total, tt.pageSize)
	}
}

func TestInfo(t *testing.T) {
	resp := Info("Backup export is not available")
	assert.True(t, resp.Success)
	assert.Equal(t, "Backup export is not available", resp.Message)
}
