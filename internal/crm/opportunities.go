package crm

import (
	"context"
	"net/http"

	"capgate/internal/api"
)

const opportunitiesKey = "opportunities"

type searchOpportunitiesArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	PipelineID string `json:"pipelineId,omitempty"`
	Status     string `json:"status,omitempty" jsonschema:"enum=open,enum=won,enum=lost,enum=abandoned,enum=all"`
	Query      string `json:"q,omitempty"`
	Limit      int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100"`
}

type pipelinesArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
}

type opportunityIDArgs struct {
	ID string `json:"id"`
}

type createOpportunityArgs struct {
	LocationID      string  `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	PipelineID      string  `json:"pipelineId"`
	PipelineStageID string  `json:"pipelineStageId,omitempty"`
	ContactID       string  `json:"contactId"`
	Name            string  `json:"name"`
	Status          string  `json:"status" jsonschema:"enum=open,enum=won,enum=lost,enum=abandoned"`
	MonetaryValue   float64 `json:"monetaryValue,omitempty" jsonschema:"minimum=0"`
}

type opportunityStatusArgs struct {
	ID     string `json:"id"`
	Status string `json:"status" jsonschema:"enum=open,enum=won,enum=lost,enum=abandoned"`
}

var opportunityEndpoints = []Endpoint{
	{
		Name:        "search_opportunities",
		Description: "Search opportunities in a location by pipeline, status or text",
		Method:      http.MethodGet,
		Path:        "/opportunities/search",
		Args:        searchOpportunitiesArgs{},
	},
	{
		Name:        "get_pipelines",
		Description: "List sales pipelines and their stages",
		Method:      http.MethodGet,
		Path:        "/opportunities/pipelines",
		Args:        pipelinesArgs{},
	},
	{
		Name:        "get_opportunity",
		Description: "Get an opportunity by ID",
		Method:      http.MethodGet,
		Path:        "/opportunities/{id}",
		Args:        opportunityIDArgs{},
	},
	{
		Name:        "create_opportunity",
		Description: "Create a new opportunity in a pipeline",
		Method:      http.MethodPost,
		Path:        "/opportunities/",
		Args:        createOpportunityArgs{},
	},
	{
		Name:        "update_opportunity_status",
		Description: "Mark an opportunity open, won, lost or abandoned",
		Method:      http.MethodPut,
		Path:        "/opportunities/{id}/status",
		Args:        opportunityStatusArgs{},
	},
	{
		Name:        "delete_opportunity",
		Description: "Delete an opportunity",
		Method:      http.MethodDelete,
		Path:        "/opportunities/{id}",
		Args:        opportunityIDArgs{},
	},
}

// Opportunities covers pipelines and deals. Its methods use module-specific
// names, so it is registered through adapter.FromFuncs.
type Opportunities struct {
	set *endpointSet
}

// NewOpportunities creates the opportunities module.
func NewOpportunities(client *Client) (*Opportunities, error) {
	set, err := newEndpointSet(client, opportunitiesKey, opportunityEndpoints)
	if err != nil {
		return nil, err
	}
	return &Opportunities{set: set}, nil
}

// OpportunityTools returns the opportunity operations.
func (o *Opportunities) OpportunityTools() []api.OperationDefinition {
	return o.set.definitions()
}

// ExecuteOpportunityTool runs an opportunity operation.
func (o *Opportunities) ExecuteOpportunityTool(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return o.set.execute(ctx, name, args)
}
