package crm

import (
	"context"
	"net/http"

	"capgate/internal/api"
)

const contactsKey = "contacts"

type searchContactsArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	Query      string `json:"query,omitempty" jsonschema_description:"Free-text search over name, email and phone."`
	Limit      int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100"`
}

type contactIDArgs struct {
	ContactID string `json:"contactId" jsonschema_description:"ID of the contact."`
}

type createContactArgs struct {
	LocationID string   `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	FirstName  string   `json:"firstName,omitempty"`
	LastName   string   `json:"lastName,omitempty"`
	Email      string   `json:"email,omitempty" jsonschema:"format=email"`
	Phone      string   `json:"phone,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type updateContactArgs struct {
	ContactID string   `json:"contactId"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Email     string   `json:"email,omitempty" jsonschema:"format=email"`
	Phone     string   `json:"phone,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type contactTagsArgs struct {
	ContactID string   `json:"contactId"`
	Tags      []string `json:"tags" jsonschema:"minItems=1"`
}

type contactNoteArgs struct {
	ContactID string `json:"contactId"`
	Body      string `json:"body" jsonschema:"minLength=1"`
}

var contactEndpoints = []Endpoint{
	{
		Name:        "search_contacts",
		Description: "Search contacts in a location by name, email or phone",
		Method:      http.MethodGet,
		Path:        "/contacts/",
		Args:        searchContactsArgs{},
	},
	{
		Name:        "get_contact",
		Description: "Get a contact by ID",
		Method:      http.MethodGet,
		Path:        "/contacts/{contactId}",
		Args:        contactIDArgs{},
	},
	{
		Name:        "create_contact",
		Description: "Create a new contact",
		Method:      http.MethodPost,
		Path:        "/contacts/",
		Args:        createContactArgs{},
	},
	{
		Name:        "update_contact",
		Description: "Update fields of an existing contact",
		Method:      http.MethodPut,
		Path:        "/contacts/{contactId}",
		Args:        updateContactArgs{},
	},
	{
		Name:        "delete_contact",
		Description: "Delete a contact permanently",
		Method:      http.MethodDelete,
		Path:        "/contacts/{contactId}",
		Args:        contactIDArgs{},
	},
	{
		Name:        "add_contact_tags",
		Description: "Add tags to a contact",
		Method:      http.MethodPost,
		Path:        "/contacts/{contactId}/tags",
		Args:        contactTagsArgs{},
	},
	{
		Name:        "create_contact_note",
		Description: "Attach a note to a contact",
		Method:      http.MethodPost,
		Path:        "/contacts/{contactId}/notes",
		Args:        contactNoteArgs{},
	},
	{
		Name:        "list_contact_tasks",
		Description: "List the tasks assigned to a contact",
		Method:      http.MethodGet,
		Path:        "/contacts/{contactId}/tasks",
		Args:        contactIDArgs{},
	},
}

// Contacts manages people records. It exposes GetTools/ExecuteTool.
type Contacts struct {
	set *endpointSet
}

// NewContacts creates the contacts module.
func NewContacts(client *Client) (*Contacts, error) {
	set, err := newEndpointSet(client, contactsKey, contactEndpoints)
	if err != nil {
		return nil, err
	}
	return &Contacts{set: set}, nil
}

// GetTools returns the contact operations.
func (c *Contacts) GetTools() []api.OperationDefinition {
	return c.set.definitions()
}

// ExecuteTool runs a contact operation.
func (c *Contacts) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	return c.set.execute(ctx, toolName, args)
}
