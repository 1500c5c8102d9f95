package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9+][0-9\-\s]{6,19}$`)

// RegisterValidations installs the custom binding rules used by the API
// DTOs. Call once at startup before any request binding happens.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("paise", validatePaise); err != nil {
		return err
	}
	return v.RegisterValidation("phone", validatePhone)
}

// validatePaise accepts non-negative integer money amounts
func validatePaise(fl validator.FieldLevel) bool {
	return fl.Field().Int() >= 0
}

// validatePhone accepts digits with optional leading +, dashes and spaces
func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
