package core

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldErrors maps form field names to user-facing messages. A nil FieldErrors means valid.
type FieldErrors map[string]string

func newValidator() *validator.Validate {
	var validate = validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank) // whitespace-only counts as empty
	// report form field names instead of struct field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// ValidateForm checks a form struct against its "validate" tags.
// It returns nil if the form is valid. Errors which are not about fields are returned as error.
func (req *Request) ValidateForm(form interface{}) (FieldErrors, error) {

	err := req.db.validate.Struct(form)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}

	var fieldErrors = make(FieldErrors, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required", "notblank":
			fieldErrors[fe.Field()] = req.Messages.Get("field-required")
		default:
			fieldErrors[fe.Field()] = fe.Error()
		}
	}
	return fieldErrors, nil
}
