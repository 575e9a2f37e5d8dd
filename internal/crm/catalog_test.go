package crm

import (
	"context"
	"net/http"
	"testing"

	"capgate/internal/adapter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_EveryModuleAdapts(t *testing.T) {
	entries, err := Catalog(newTestClient(t, "https://crm.example.com"))
	require.NoError(t, err)

	var keys []string
	seen := map[string]string{}
	dispatch := map[string]string{}
	for _, entry := range entries {
		keys = append(keys, entry.Key)
		assert.NotEmpty(t, entry.Description)

		a, err := adapter.New(entry.Key, entry.Module)
		require.NoError(t, err, entry.Key)
		_, d := a.Conventions()
		dispatch[entry.Key] = d

		ops := a.ListOperations()
		assert.NotEmpty(t, ops, entry.Key)
		for _, op := range ops {
			prev, dup := seen[op.Name]
			assert.False(t, dup, "%s declared in %s and %s", op.Name, prev, entry.Key)
			seen[op.Name] = entry.Key
			assert.Equal(t, entry.Key, op.Metadata["category"])
			assert.NotEmpty(t, op.Description)
		}
	}

	assert.Equal(t, []string{"contacts", "billing", "calendars", "opportunities", "conversations", "locations"}, keys)
	assert.Equal(t, "ExecuteTool", dispatch["contacts"])
	assert.Equal(t, "Execute", dispatch["billing"])
	assert.Equal(t, "Invoke", dispatch["calendars"])
	assert.Equal(t, "Invoke", dispatch["opportunities"])
	assert.Equal(t, "Dispatcher", dispatch["conversations"])
	assert.Equal(t, "ExecuteTool", dispatch["locations"])
}

func TestCatalog_InvokeThroughAdapter(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, "application/json", `{"messageId":"m1"}`)
	entries, err := Catalog(newTestClient(t, srv.URL))
	require.NoError(t, err)

	var conversations interface{}
	for _, e := range entries {
		if e.Key == "conversations" {
			conversations = e.Module
		}
	}
	a, err := adapter.New("conversations", conversations)
	require.NoError(t, err)

	result, err := a.Invoke(context.Background(), "send_message", map[string]interface{}{
		"type":      "SMS",
		"contactId": "c1",
		"message":   "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"messageId": "m1"}, result.Content[0])

	req := (*captured)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/conversations/messages", req.Path)
	assert.Equal(t, "SMS", req.Body["type"])
}
