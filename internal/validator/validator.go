package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// Validator checks decoded descriptions against their struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the "param" rule registered.
// Field paths in errors use the json key names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("param", validateParam)
	return &Validator{validate: v}
}

// validateParam accepts "name:type" entries.
func validateParam(fl validator.FieldLevel) bool {
	return domain.ValidParam(fl.Field().String())
}

// Struct validates s and returns an *AggregateError listing every failure.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrMalformedDescription, err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		ve := &ValidationError{
			Key:    fieldPath(fe.Namespace()),
			Reason: reason(fe),
		}
		if fe.Tag() != "required" {
			ve.Value = fe.Value()
		}
		errs = append(errs, ve)
	}
	return &AggregateError{Errors: errs}
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "unique":
		return fmt.Sprintf("%s must be unique", fe.Param())
	case "param":
		return "must be written as name:type"
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
