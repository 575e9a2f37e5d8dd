package registry

import "capgate/internal/api"

// categoryRecord is one registered category. enabled is the only field that
// changes after registration.
type categoryRecord struct {
	key         string
	description string
	enabled     bool
	operations  []string // member operation names in registration order
}

// operationRecord wraps one definition. enabled mirrors the owning
// category's flag and is updated together with it.
type operationRecord struct {
	definition api.OperationDefinition
	category   *categoryRecord
	enabled    bool
	invoker    api.Invoker
}

// RegistrationResult reports the outcome of RegisterCategory.
type RegistrationResult struct {
	Category   string
	Registered []string
	Duplicates []*api.DuplicateRegistrationWarning
}

// ToggleResult reports the outcome of EnableCategory or DisableCategory.
type ToggleResult struct {
	Category string
	// Enabled is the category state after the call.
	Enabled bool
	// Changed is false when the category was already in the requested state.
	Changed bool
	// Operations lists the category's operation names.
	Operations []string
}

// EnableAllResult reports the outcome of EnableAll.
type EnableAllResult struct {
	CategoriesEnabled int
	OperationsEnabled int
	TotalCategories   int
	TotalOperations   int
	Categories        []string
}

// CategoryInfo is a read-only view of a category.
type CategoryInfo struct {
	Key            string   `json:"key"`
	Description    string   `json:"description"`
	Enabled        bool     `json:"enabled"`
	OperationCount int      `json:"operationCount"`
	Operations     []string `json:"operations"`
}

// OperationInfo is a read-only view of an operation, used for lookups and
// search matches.
type OperationInfo struct {
	Definition api.OperationDefinition `json:"definition"`
	Category   string                  `json:"category"`
	Enabled    bool                    `json:"enabled"`
}
