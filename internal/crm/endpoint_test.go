package crm

import (
	"context"
	"net/http"
	"testing"

	"capgate/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testArgs struct {
	LocationID string   `json:"locationId"`
	ItemID     string   `json:"itemId"`
	Limit      int      `json:"limit,omitempty" jsonschema:"minimum=1,maximum=10"`
	Tags       []string `json:"tags,omitempty"`
	Note       string   `json:"note,omitempty"`
}

var testEndpoints = []Endpoint{
	{Name: "get_item", Description: "Get an item", Method: http.MethodGet, Path: "/items/{itemId}", Args: testArgs{}},
	{Name: "update_item", Description: "Update an item", Method: http.MethodPut, Path: "/items/{itemId}", Query: []string{"locationId"}, Args: testArgs{}},
	{Name: "ping", Description: "Ping", Method: http.MethodGet, Path: "/ping"},
}

func TestNewEndpointSet_Definitions(t *testing.T) {
	set, err := newEndpointSet(newTestClient(t, "https://crm.example.com"), "items", testEndpoints)
	require.NoError(t, err)

	defs := set.definitions()
	require.Len(t, defs, 3)

	get := defs[0]
	assert.Equal(t, "get_item", get.Name)
	assert.Equal(t, "items", get.Metadata[api.MetadataCategory])
	assert.Equal(t, "read", get.Metadata[api.MetadataAccess])
	assert.Equal(t, http.MethodGet, get.Metadata[api.MetadataMethod])
	assert.Equal(t, "object", get.InputSchema["type"])
	assert.NotContains(t, get.InputSchema, "$schema")
	assert.ElementsMatch(t, []interface{}{"locationId", "itemId"}, get.InputSchema["required"])

	props := get.InputSchema["properties"].(map[string]interface{})
	assert.Contains(t, props, "limit")
	assert.Contains(t, props, "tags")

	assert.Equal(t, "write", defs[1].Metadata[api.MetadataAccess])
	assert.Equal(t, map[string]interface{}{}, defs[2].InputSchema["properties"])
}

func TestNewEndpointSet_DuplicateName(t *testing.T) {
	_, err := newEndpointSet(nil, "items", []Endpoint{
		{Name: "a", Method: http.MethodGet, Path: "/a"},
		{Name: "a", Method: http.MethodGet, Path: "/b"},
	})
	assert.Error(t, err)
}

func TestEndpointSet_Execute_GetUsesQuery(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, "application/json", `{}`)
	set, err := newEndpointSet(newTestClient(t, srv.URL), "items", testEndpoints)
	require.NoError(t, err)

	_, err = set.execute(context.Background(), "get_item", map[string]interface{}{
		"itemId": "it/1",
		"limit":  5,
		"tags":   []string{"a", "b"},
	})
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/items/it/1", req.Path)
	assert.Equal(t, []string{"loc-1"}, req.Query["locationId"])
	assert.Equal(t, []string{"5"}, req.Query["limit"])
	assert.Equal(t, []string{"a", "b"}, req.Query["tags"])
	assert.Nil(t, req.Body)
}

func TestEndpointSet_Execute_PutSplitsBodyAndQuery(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, "application/json", `{}`)
	set, err := newEndpointSet(newTestClient(t, srv.URL), "items", testEndpoints)
	require.NoError(t, err)

	_, err = set.execute(context.Background(), "update_item", map[string]interface{}{
		"itemId":     "42",
		"locationId": "loc-override",
		"note":       "hello",
	})
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, "/items/42", req.Path)
	assert.Equal(t, []string{"loc-override"}, req.Query["locationId"])
	assert.Equal(t, map[string]interface{}{"note": "hello"}, req.Body)
}

func TestEndpointSet_Execute_InvalidArguments(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, "", "")
	set, err := newEndpointSet(newTestClient(t, srv.URL), "items", testEndpoints)
	require.NoError(t, err)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing required", map[string]interface{}{}},
		{"out of range", map[string]interface{}{"itemId": "1", "limit": 50}},
		{"wrong type", map[string]interface{}{"itemId": 1}},
		{"unknown property", map[string]interface{}{"itemId": "1", "colour": "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := set.execute(context.Background(), "get_item", tt.args)
			require.Error(t, err)
			assert.True(t, IsInvalidArguments(err))
		})
	}
	assert.Empty(t, *captured)
}

func TestEndpointSet_Execute_UnknownOperation(t *testing.T) {
	set, err := newEndpointSet(newTestClient(t, "https://crm.example.com"), "items", testEndpoints)
	require.NoError(t, err)

	_, err = set.execute(context.Background(), "nope", nil)
	assert.True(t, api.IsUnknownOperation(err))
}

func TestEndpointSet_Execute_DoesNotMutateArgs(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "", "")
	set, err := newEndpointSet(newTestClient(t, srv.URL), "items", testEndpoints)
	require.NoError(t, err)

	args := map[string]interface{}{"itemId": "1"}
	_, err = set.execute(context.Background(), "get_item", args)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"itemId": "1"}, args)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1000000", formatValue(float64(1000000)))
	assert.Equal(t, "1.5", formatValue(1.5))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, "x", formatValue("x"))
}
