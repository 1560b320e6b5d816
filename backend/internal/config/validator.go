package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return err
		}
		var validationErrors []string
		for _, err := range fieldErrors {
			validationErrors = append(validationErrors, fmt.Sprintf(
				"field '%s' failed validation: %s",
				err.Namespace(),
				err.Tag(),
			))
		}
		return fmt.Errorf("validation errors: %s", strings.Join(validationErrors, ", "))
	}

	return nil
}
