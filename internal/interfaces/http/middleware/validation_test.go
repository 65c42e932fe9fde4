package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type budgetInput struct {
	Name   string           `json:"name" binding:"required,max=10"`
	Color  string           `json:"color" binding:"omitempty,hexcolor"`
	Period string           `json:"period" binding:"omitempty,period"`
	Amount *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
}

func validationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	r := gin.New()
	r.POST("/test", func(c *gin.Context) {
		var in budgetInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(in))
	})
	return r
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDKey, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleValidationError_FieldDetails(t *testing.T) {
	w := postJSON(validationRouter(), `{"name":"","color":"blue","period":"2024-13","amount":"-5.50"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-42", resp.Error.RequestID)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", fields["name"])
	assert.Contains(t, fields["color"], "hex color")
	assert.Equal(t, "Must be a month in the format YYYY-MM", fields["period"])
	assert.Equal(t, "Must be greater than 0", fields["amount"])
}

func TestHandleValidationError_MalformedBody(t *testing.T) {
	w := postJSON(validationRouter(), `{"name":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "body", resp.Error.Details[0].Field)
}

func TestHandleValidationError_ValidInput(t *testing.T) {
	w := postJSON(validationRouter(), `{"name":"Rent","color":"#22c55e","period":"2024-03","amount":"0.01"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
