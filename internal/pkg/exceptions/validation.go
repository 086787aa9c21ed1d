package exceptions

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return formatFieldError(validationErrors[0])
	}
	return constvars.ErrDevInvalidInput
}

func formatFieldError(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		param := fieldErr.Param()
		switch tag {
		case "oneof":
			param = strings.Join(strings.Fields(param), ", ")
		case "required_without":
			param = strings.ToLower(param)
		}
		customMessage = strings.Replace(customMessage, "%s", param, 1)
	}
	return fieldErr.Field() + " " + customMessage
}
