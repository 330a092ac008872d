package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxMoney bounds amounts to what fits in NUMERIC(12,2).
var maxMoney = decimal.New(1, 10)

// maxBodyBytes caps request bodies before they reach the JSON decoder.
const maxBodyBytes = 64 << 10

var validate = newValidator()

type defaulter interface {
	ApplyDefaults()
}

func newValidator() *validator.Validate {
	// required on decimal.Decimal fails only for the zero struct, i.e. a missing value.
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("money", validateMoney)
	return v
}

// validateMoney accepts positive amounts with at most two decimal places.
func validateMoney(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return validMoney(d)
}

// validMoney checks exponent and coefficient size before comparing, so a value
// like 1e3000000 is rejected without being expanded.
func validMoney(d decimal.Decimal) bool {
	if !d.IsPositive() {
		return false
	}
	if exp := d.Exponent(); exp < -2 || exp > 10 {
		return false
	}
	if !d.Coefficient().IsInt64() {
		return false
	}
	return d.LessThan(maxMoney)
}

// ValidateStruct runs the tag rules on payload.
func ValidateStruct(payload interface{}) error {
	return validate.Struct(payload)
}

// ValidateAndDecode decodes the JSON body into payload, applies its defaults and
// checks its validate tags. Unparseable bodies are 400, shape failures 422.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(payload); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.Is(err, io.EOF) || errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return NewAppError(http.StatusBadRequest, "Invalid request body", err)
		}
		return NewAppError(http.StatusUnprocessableEntity, "Invalid request body", err).
			WithDetails(map[string]interface{}{"body": err.Error()})
	}

	if d, ok := payload.(defaulter); ok {
		d.ApplyDefaults()
	}

	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return NewAppError(http.StatusInternalServerError, "Could not validate request", err)
		}
		details := make(map[string]interface{}, len(validationErrors))
		for _, fe := range validationErrors {
			details[fe.Field()] = describe(fe)
		}
		return NewAppError(http.StatusUnprocessableEntity, "Request validation failed", nil).WithDetails(details)
	}

	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "money":
		return "must be a positive amount with at most 2 decimal places"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
