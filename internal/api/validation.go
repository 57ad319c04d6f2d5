package api

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/szabmik/slim/internal/api/middleware"
	"github.com/szabmik/slim/internal/api/shared"
)

// ValidationErrorItems converts struct validation failures into field
// errors, coded the same way as schema validation failures. Errors that are
// not validator.ValidationErrors yield a single plain VALIDATION_ERROR.
func ValidationErrorItems(err error) []shared.ErrorItem {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []shared.ErrorItem{
			shared.NewError(shared.ErrorTypeValidationError, shared.WithDescription("Validation error")),
		}
	}

	items := make([]shared.ErrorItem, 0, len(verrs))
	for _, fe := range verrs {
		items = append(items, shared.NewFieldError(
			shared.ErrorTypeValidationError,
			fe.Field(),
			middleware.GenerateCode(fe.Field(), fe.Tag()),
			shared.WithDescription(fmt.Sprintf("Invalid %s: %s", fe.Field(), tagMessage(fe.Tag()))),
		))
	}
	return items
}

// tagMessage maps validation tags to user-friendly error messages
func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
