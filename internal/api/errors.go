package api

import (
	"errors"
	"fmt"
)

// UnknownCategoryError is returned when a category key is not registered.
type UnknownCategoryError struct {
	Category string
}

// Error implements the error interface.
func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q", e.Category)
}

// NewUnknownCategoryError creates an UnknownCategoryError for key.
func NewUnknownCategoryError(key string) *UnknownCategoryError {
	return &UnknownCategoryError{Category: key}
}

// IsUnknownCategory reports whether err is or wraps an UnknownCategoryError.
func IsUnknownCategory(err error) bool {
	var target *UnknownCategoryError
	return errors.As(err, &target)
}

// UnknownOperationError is returned when an operation name is not registered.
type UnknownOperationError struct {
	Operation string
}

// Error implements the error interface.
func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Operation)
}

// NewUnknownOperationError creates an UnknownOperationError for name.
func NewUnknownOperationError(name string) *UnknownOperationError {
	return &UnknownOperationError{Operation: name}
}

// IsUnknownOperation reports whether err is or wraps an UnknownOperationError.
func IsUnknownOperation(err error) bool {
	var target *UnknownOperationError
	return errors.As(err, &target)
}

// OperationDisabledError is returned when an operation exists but its
// category is currently disabled. Category names the toggle to flip.
type OperationDisabledError struct {
	Operation string
	Category  string
}

// Error implements the error interface.
func (e *OperationDisabledError) Error() string {
	return fmt.Sprintf("operation %q is disabled; enable category %q first", e.Operation, e.Category)
}

// NewOperationDisabledError creates an OperationDisabledError.
func NewOperationDisabledError(name, category string) *OperationDisabledError {
	return &OperationDisabledError{Operation: name, Category: category}
}

// IsOperationDisabled reports whether err is or wraps an OperationDisabledError.
func IsOperationDisabled(err error) bool {
	var target *OperationDisabledError
	return errors.As(err, &target)
}

// Adapter contract parts reported by AdapterContractError.Missing.
const (
	ContractList     = "list"
	ContractDispatch = "dispatch"
)

// AdapterContractError reports a domain module that exposes no recognised
// list or dispatch method. It is an integration bug: the module is skipped
// at registration, the rest of the registry keeps working.
type AdapterContractError struct {
	// Module is the category key the module was registered under.
	Module string
	// Missing is ContractList or ContractDispatch.
	Missing string
	// Operation is set when the error surfaces on invocation.
	Operation string
}

// Error implements the error interface.
func (e *AdapterContractError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("module %q has no %s method, cannot invoke operation %q", e.Module, e.Missing, e.Operation)
	}
	return fmt.Sprintf("module %q has no recognised %s method", e.Module, e.Missing)
}

// IsAdapterContract reports whether err is or wraps an AdapterContractError.
func IsAdapterContract(err error) bool {
	var target *AdapterContractError
	return errors.As(err, &target)
}

// DuplicateRegistrationWarning records an operation name that was offered a
// second time. It is never returned as a failure; the registry logs it and
// reports it in the registration result.
type DuplicateRegistrationWarning struct {
	Operation        string
	Category         string
	ExistingCategory string
}

// Error implements the error interface.
func (w *DuplicateRegistrationWarning) Error() string {
	return fmt.Sprintf("operation %q from category %q already registered by category %q; keeping the first registration",
		w.Operation, w.Category, w.ExistingCategory)
}
