package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// SetupValidator teaches gin's validator the FinTrack request conventions:
// errors name fields by their JSON key, decimal amounts compare numerically
// under gt/gte/lt/lte, and "period" accepts a YYYY-MM month.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		_, err := shared.ParsePeriod(fl.Field().String())
		return err == nil
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		name, _, _ = strings.Cut(fld.Tag.Get("form"), ",")
	}
	return name
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

const validationFailed = "Request validation failed"

// FormatValidationErrors turns binding errors into the VALIDATION_ERROR
// envelope. Malformed JSON yields a single "body" detail.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return dto.Invalid(validationFailed,
			dto.ValidationDetail{Field: "body", Message: "Malformed request body"}).WithRequestID(requestID)
	}

	details := make([]dto.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return dto.Invalid(validationFailed, details...).WithRequestID(requestID)
}

// HandleValidationError writes a 400 validation envelope for err
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestIDOf(c)))
}

func requestIDOf(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

var comparisonWords = map[string]string{
	"gt":  "greater than",
	"gte": "greater than or equal to",
	"lt":  "less than",
	"lte": "less than or equal to",
}

func validationMessage(fe validator.FieldError) string {
	param := fe.Param()
	isText := fe.Kind() == reflect.String

	switch tag := fe.Tag(); tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "eqfield":
		return "Must match " + strings.ToLower(param)
	case "min", "max":
		bound := map[string]string{"min": "at least", "max": "at most"}[tag]
		if isText {
			return "Must be " + bound + " " + param + " characters"
		}
		return "Must be " + bound + " " + param
	case "gt", "gte", "lt", "lte":
		return "Must be " + comparisonWords[tag] + " " + param
	case "oneof":
		return "Must be one of: " + param
	case "uuid":
		return "Invalid UUID format"
	case "period":
		return "Must be a month in the format YYYY-MM"
	case "datetime":
		return "Must be a date in the format " + param
	case "hexcolor":
		return "Must be a hex color such as #22c55e"
	default:
		return "Invalid value"
	}
}
