package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; building a validator is expensive and it is safe for
// concurrent use.
var validate = validator.New()

// Validate checks cfg and returns a *ConfigurationErrorCollection describing
// every invalid field, or nil.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate configuration: %w", err)
	}

	collection := &ConfigurationErrorCollection{}
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		collection.Add(ConfigurationError{
			Source:      "config",
			Field:       field,
			ErrorType:   "validation",
			Message:     validationMessage(fe),
			Suggestions: validationSuggestions(field, fe),
		})
	}
	return collection
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "oneof":
		return fmt.Sprintf("value %q must be one of: %s", fmt.Sprint(fe.Value()), fe.Param())
	case "url":
		return fmt.Sprintf("value %q is not a valid URL", fmt.Sprint(fe.Value()))
	case "min", "max":
		return fmt.Sprintf("value %v violates %s=%s", fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func validationSuggestions(field string, fe validator.FieldError) []string {
	switch fe.Tag() {
	case "oneof":
		return []string{fmt.Sprintf("Set %s to one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))}
	case "url":
		return []string{"Use an absolute URL including the scheme, e.g. https://example.com"}
	case "required":
		return []string{fmt.Sprintf("Set %s in config.yaml or through the matching CAPGATE_ environment variable", field)}
	}
	return nil
}
