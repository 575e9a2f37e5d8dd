package crm

import (
	"context"
	"net/http"

	"capgate/internal/api"
)

const locationsKey = "locations"

type locationArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
}

type customFieldsArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	Model      string `json:"model,omitempty" jsonschema:"enum=contact,enum=opportunity,enum=all"`
}

type createTagArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	Name       string `json:"name" jsonschema:"minLength=1"`
}

var locationEndpoints = []Endpoint{
	{
		Name:        "get_location",
		Description: "Get the settings and address of a location",
		Method:      http.MethodGet,
		Path:        "/locations/{locationId}",
		Args:        locationArgs{},
	},
	{
		Name:        "list_custom_fields",
		Description: "List the custom fields defined in a location",
		Method:      http.MethodGet,
		Path:        "/locations/{locationId}/customFields",
		Args:        customFieldsArgs{},
	},
	{
		Name:        "list_location_tags",
		Description: "List the tags defined in a location",
		Method:      http.MethodGet,
		Path:        "/locations/{locationId}/tags",
		Args:        locationArgs{},
	},
	{
		Name:        "create_location_tag",
		Description: "Create a tag in a location",
		Method:      http.MethodPost,
		Path:        "/locations/{locationId}/tags",
		Args:        createTagArgs{},
	},
	{
		Name:        "list_users",
		Description: "List the users with access to a location",
		Method:      http.MethodGet,
		Path:        "/users/",
		Args:        locationArgs{},
	},
}

// Locations covers sub-account settings. It exposes
// ListOperations/ExecuteTool.
type Locations struct {
	set *endpointSet
}

// NewLocations creates the locations module.
func NewLocations(client *Client) (*Locations, error) {
	set, err := newEndpointSet(client, locationsKey, locationEndpoints)
	if err != nil {
		return nil, err
	}
	return &Locations{set: set}, nil
}

func (l *Locations) ListOperations() []api.OperationDefinition {
	return l.set.definitions()
}

func (l *Locations) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	return l.set.execute(ctx, toolName, args)
}
