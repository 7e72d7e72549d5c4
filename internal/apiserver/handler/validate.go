package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingFieldErrors maps a gin binding error to a field -> message-id
// map for RespondWithFieldErrors. Non-validation errors (malformed JSON)
// collapse to a single body error.
func bindingFieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "ErrorBadRequest"}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		fields[field] = fieldErrorMessageID(fe)
	}
	return fields
}

func fieldErrorMessageID(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "ErrorFieldRequired"
	case "email":
		return "ErrorFieldEmail"
	case "min":
		return "ErrorFieldTooShort"
	case "max":
		return "ErrorFieldTooLong"
	case "gt":
		return "ErrorFieldNotPositive"
	default:
		return "ErrorFieldInvalid"
	}
}
