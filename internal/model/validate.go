package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// looseEmailPattern accepts anything shaped like local@domain.tld. Magento
// performs the authoritative check when the email is set on the cart.
var looseEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	return v
}

// LooksLikeEmail reports whether s passes the storefront's email shape check.
func LooksLikeEmail(s string) bool {
	return validate.Var(s, "required,looseemail") == nil
}

// Validate checks v against its `validate` struct tags and returns a
// VALIDATION_ERROR naming the first failing field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		return NewValidationError(fe.Field(), validationMessage(fe))
	}
	return NewValidationError("request", err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be %s characters", fe.Param())
	case "uppercase":
		return "must be uppercase"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "looseemail":
		return "must be a valid email"
	}
	return "is invalid"
}
