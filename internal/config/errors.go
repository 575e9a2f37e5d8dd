package config

import (
	"fmt"
	"strings"
)

// ConfigurationError represents a structured error that occurs during configuration loading
type ConfigurationError struct {
	FilePath    string   `json:"filePath"`    // Full path to the file that caused the error
	Source      string   `json:"source"`      // "file", "env" or "defaults"
	Field       string   `json:"field"`       // Dotted path of the offending field, if any
	ErrorType   string   `json:"errorType"`   // Type of error (parse, validation, io, env)
	Message     string   `json:"message"`     // Human-readable error message
	Suggestions []string `json:"suggestions"` // Actionable suggestions to fix the error
}

// Error implements the error interface
func (ce ConfigurationError) Error() string {
	if ce.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", ce.Source, ce.Field, ce.Message)
	}
	return fmt.Sprintf("[%s] %s", ce.Source, ce.Message)
}

// DetailedError returns a detailed error message with all context
func (ce ConfigurationError) DetailedError() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Configuration error (%s)", ce.ErrorType))
	if ce.FilePath != "" {
		parts = append(parts, fmt.Sprintf("  File: %s", ce.FilePath))
	}
	if ce.Field != "" {
		parts = append(parts, fmt.Sprintf("  Field: %s", ce.Field))
	}
	parts = append(parts, fmt.Sprintf("  Error: %s", ce.Message))

	if len(ce.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range ce.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}

	return strings.Join(parts, "\n")
}

// ConfigurationErrorCollection holds multiple configuration errors
type ConfigurationErrorCollection struct {
	Errors []ConfigurationError `json:"errors"`
}

// Error implements the error interface
func (c *ConfigurationErrorCollection) Error() string {
	if len(c.Errors) == 1 {
		return c.Errors[0].Error()
	}
	msgs := make([]string, 0, len(c.Errors))
	for _, e := range c.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d configuration errors: %s", len(c.Errors), strings.Join(msgs, "; "))
}

// DetailedError returns the detailed message of every collected error.
func (c *ConfigurationErrorCollection) DetailedError() string {
	parts := make([]string, 0, len(c.Errors))
	for _, e := range c.Errors {
		parts = append(parts, e.DetailedError())
	}
	return strings.Join(parts, "\n\n")
}

// Add appends an error to the collection.
func (c *ConfigurationErrorCollection) Add(err ConfigurationError) {
	c.Errors = append(c.Errors, err)
}

// HasErrors reports whether any error was collected.
func (c *ConfigurationErrorCollection) HasErrors() bool {
	return len(c.Errors) > 0
}
