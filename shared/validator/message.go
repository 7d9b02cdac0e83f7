package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// Human-readable templates for the validation tags the request DTOs
// actually use. Unlisted tags fall back to the library message.
var messages = map[string]string{
	"required": "{field} is required",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"email":    "{field} must be a valid email address",
	"uuid4":    "{field} must be a valid UUID",
	"datetime": "{field} must match the format {param}",
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template := messages[valErr.Tag()]
		if template == "" {
			continue
		}

		template = strings.ReplaceAll(template, "{field}", valErr.Field())

		return strings.ReplaceAll(template, "{param}", valErr.Param())
	}

	return valErrors.Error()
}
