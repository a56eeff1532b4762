package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Trove classifiers are " :: " separated paths, e.g. "Topic :: Scientific/Engineering".
	_ = v.RegisterValidation("classifier", func(fl validator.FieldLevel) bool {
		parts := strings.Split(fl.Field().String(), " :: ")
		if len(parts) < 2 {
			return false
		}
		for _, p := range parts {
			if strings.TrimSpace(p) == "" || strings.TrimSpace(p) != p {
				return false
			}
		}
		return true
	})
	return v
}

// Validate checks the metadata against the rules a package index enforces.
func (m *Metadata) Validate() error {
	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, formatFieldError(e))
		}
		return fmt.Errorf("%w:\n  %s", ErrInvalidMetadata, strings.Join(msgs, "\n  "))
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "classifier":
		return fmt.Sprintf("%s %q is not a trove classifier", field, e.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}
