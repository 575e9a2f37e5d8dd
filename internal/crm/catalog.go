package crm

import (
	"fmt"

	"capgate/internal/adapter"
)

// Entry is one module of the catalog, ready to be adapted and registered.
type Entry struct {
	Key         string
	Description string
	// Module implements one list and one dispatch convention understood by
	// adapter.New.
	Module interface{}
}

// Catalog builds every CRM module against client, in registration order.
func Catalog(client *Client) ([]Entry, error) {
	contacts, err := NewContacts(client)
	if err != nil {
		return nil, err
	}
	billing, err := NewBilling(client)
	if err != nil {
		return nil, err
	}
	calendars, err := NewCalendars(client)
	if err != nil {
		return nil, err
	}
	opportunities, err := NewOpportunities(client)
	if err != nil {
		return nil, err
	}
	opportunitiesAdapter, err := adapter.FromFuncs(opportunitiesKey, opportunities.OpportunityTools, opportunities.ExecuteOpportunityTool)
	if err != nil {
		return nil, fmt.Errorf("adapt opportunities: %w", err)
	}
	conversations, err := NewConversations(client)
	if err != nil {
		return nil, err
	}
	locations, err := NewLocations(client)
	if err != nil {
		return nil, err
	}

	return []Entry{
		{Key: contactsKey, Description: "Create, find and update contacts, their tags, notes and tasks", Module: contacts},
		{Key: billingKey, Description: "Invoices and payment transactions", Module: billing},
		{Key: calendarsKey, Description: "Calendars, free slots and appointments", Module: calendars},
		{Key: opportunitiesKey, Description: "Sales pipelines and opportunities", Module: opportunitiesAdapter},
		{Key: conversationsKey, Description: "Conversations and messages across SMS, email and chat", Module: conversations},
		{Key: locationsKey, Description: "Location settings, custom fields, tags and users", Module: locations},
	}, nil
}
