// ABOUTME: Struct-tag validation of loaded configuration
// ABOUTME: Uses go-playground/validator and reports the first failing field

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate = validator.New()

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
// Field values are left out so secrets never reach the logs.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		if e.Param() != "" {
			return fmt.Errorf("%s: validation failed on '%s=%s'", e.Namespace(), e.Tag(), e.Param())
		}
		return fmt.Errorf("%s: validation failed on '%s'", e.Namespace(), e.Tag())
	}
	return err
}
