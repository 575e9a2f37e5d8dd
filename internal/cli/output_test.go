package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"capgate/internal/api"
	"capgate/internal/registry"
	"capgate/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []registry.CategoryInfo{
	{Key: "contacts", Description: "Contact management", Enabled: true, OperationCount: 2, Operations: []string{"create_contact", "get_contact"}},
	{Key: "billing", Description: "Invoices", Enabled: false, OperationCount: 1, Operations: []string{"create_invoice"}},
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputFormatTable, false},
		{"table", OutputFormatTable, false},
		{"WIDE", OutputFormatWide, false},
		{"json", OutputFormatJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinter_CategoriesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, OutputFormatTable, true).Categories(testCategories))

	out := buf.String()
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "contacts")
	assert.Contains(t, out, "Contact management")
	assert.Contains(t, out, "disabled")
	assert.NotContains(t, out, "create_contact")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrinter_CategoriesWide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, OutputFormatWide, true).Categories(testCategories))
	assert.Contains(t, buf.String(), "create_contact, get_contact")
}

func TestPrinter_CategoriesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, OutputFormatJSON, false).Categories(testCategories))

	var decoded []registry.CategoryInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testCategories, decoded)
}

func TestPrinter_Search(t *testing.T) {
	matches := []registry.OperationInfo{{
		Definition: api.OperationDefinition{
			Name:        "create_invoice",
			Description: "Create a new invoice",
			Metadata:    map[string]string{api.MetadataAccess: "write", api.MetadataMethod: "POST"},
		},
		Category: "billing",
	}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, OutputFormatWide, true).Search("invoice", matches))
	out := buf.String()
	assert.Contains(t, out, "create_invoice")
	assert.Contains(t, out, "billing")
	assert.Contains(t, out, "POST")

	buf.Reset()
	require.NoError(t, NewPrinter(&buf, OutputFormatTable, true).Search("rocket", nil))
	assert.Equal(t, "No operations match \"rocket\".\n", buf.String())
}

func TestPrinter_Health(t *testing.T) {
	var buf bytes.Buffer
	h := server.Health{Status: "ok", Mode: "dynamic", Categories: 6, TotalOperations: 36, EnabledOperations: 8, ExposedTools: 15}
	require.NoError(t, NewPrinter(&buf, OutputFormatTable, true).Health("http://localhost:8090/healthz", h))
	assert.Contains(t, buf.String(), "dynamic")
	assert.Contains(t, buf.String(), "36")
}
