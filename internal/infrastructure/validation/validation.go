package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"delitrack/internal/domain"
	apperrors "delitrack/internal/errors"
)

// New returns a validator with the project's custom tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return domain.IsKnownOrderStatus(fl.Field().String())
	})
	return v
}

// Struct validates obj and converts failures into an *apperrors.ValidationError.
func Struct(v *validator.Validate, obj any, message string) error {
	err := v.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return apperrors.NewInternalError("validating "+message, err)
	}

	details := make([]apperrors.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apperrors.ValidationDetail{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
		})
	}
	return apperrors.NewValidationError(message, details...)
}

func fieldName(fe validator.FieldError) string {
	field := fe.Field()
	if len(field) > 0 {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	return field
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldName(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "order_status":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(domain.OrderStatuses, ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
