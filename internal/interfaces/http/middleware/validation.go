package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes validation errors report JSON field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	if name == "" {
		name = fld.Name
	}
	return name
}

// ValidationDetails converts a binding error into per-field details. It
// returns nil when err is not a validation or JSON type error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]dto.ValidationDetail, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []dto.ValidationDetail{{
			Field:   field,
			Message: fmt.Sprintf("%s must be of type %s", field, typeErr.Type.String()),
		}}
	}
	return nil
}

// HandleBindError answers 400 for a failed ShouldBind call: field details
// for validation errors, BAD_REQUEST for unreadable bodies.
func HandleBindError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	if details := ValidationDetails(err); len(details) > 0 {
		c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeValidation), dto.NewValidationErrorResponse(details, requestID))
		return
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		abortWithError(c, dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size")
		return
	}

	message := "Invalid request body: " + err.Error()
	if errors.Is(err, io.EOF) {
		message = "Request body is required"
	}
	c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeBadRequest), dto.NewErrorResponse(dto.ErrCodeBadRequest, message, requestID))
}

// getValidationMessage returns a message that names the rejected field
func getValidationMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, e.Param())
	case "uuid":
		return field + " must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, e.Param())
	case "url":
		return field + " must be a valid URL"
	case "numeric":
		return field + " must be numeric"
	default:
		return field + " is invalid"
	}
}
