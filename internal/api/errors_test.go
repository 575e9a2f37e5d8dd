package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates_MatchWrapped(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"unknown category", NewUnknownCategoryError("billing"), IsUnknownCategory},
		{"unknown operation", NewUnknownOperationError("create_invoice"), IsUnknownOperation},
		{"operation disabled", NewOperationDisabledError("create_invoice", "billing"), IsOperationDisabled},
		{"adapter contract", &AdapterContractError{Module: "billing", Missing: ContractList}, IsAdapterContract},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", tt.err)))
			assert.False(t, tt.check(errors.New(tt.err.Error())))
		})
	}
}

func TestOperationDisabledError_NamesCategory(t *testing.T) {
	err := NewOperationDisabledError("create_invoice", "billing")
	assert.Contains(t, err.Error(), `"billing"`)
	assert.Contains(t, err.Error(), `"create_invoice"`)
}

func TestAdapterContractError_Message(t *testing.T) {
	atRegistration := &AdapterContractError{Module: "contacts", Missing: ContractDispatch}
	assert.Equal(t, `module "contacts" has no recognised dispatch method`, atRegistration.Error())

	atInvoke := &AdapterContractError{Module: "contacts", Missing: ContractDispatch, Operation: "get_contact"}
	assert.Contains(t, atInvoke.Error(), `"get_contact"`)
}

func TestResultHelpers(t *testing.T) {
	ok := TextResult("done")
	assert.False(t, ok.IsError)
	assert.Equal(t, "done", FirstText(ok))

	failed := ErrorResult("nope")
	assert.True(t, failed.IsError)
	assert.Equal(t, "nope", FirstText(failed))

	structured := &CallToolResult{Content: []interface{}{map[string]interface{}{"a": 1}, "later text"}}
	assert.Equal(t, "later text", FirstText(structured))
	assert.Equal(t, "", FirstText(nil))
}
