package crm

import (
	"context"
	"net/http"

	"capgate/internal/api"
)

const billingKey = "billing"

type listInvoicesArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	Status     string `json:"status,omitempty" jsonschema:"enum=draft,enum=sent,enum=paid,enum=void,enum=partially_paid"`
	Limit      int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100"`
	Offset     int    `json:"offset,omitempty" jsonschema:"minimum=0"`
}

type invoiceIDArgs struct {
	InvoiceID string `json:"invoiceId"`
}

type invoiceItem struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount" jsonschema:"minimum=0"`
	Quantity int     `json:"qty" jsonschema:"minimum=1"`
	Currency string  `json:"currency,omitempty"`
}

type createInvoiceArgs struct {
	LocationID string        `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	ContactID  string        `json:"contactId"`
	Name       string        `json:"name"`
	Currency   string        `json:"currency" jsonschema:"minLength=3,maxLength=3"`
	DueDate    string        `json:"dueDate,omitempty" jsonschema:"format=date"`
	Items      []invoiceItem `json:"items" jsonschema:"minItems=1"`
}

type sendInvoiceArgs struct {
	InvoiceID string `json:"invoiceId"`
	Action    string `json:"action" jsonschema:"enum=email,enum=sms,enum=sms_and_email"`
}

type listTransactionsArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	ContactID  string `json:"contactId,omitempty"`
	StartAt    string `json:"startAt,omitempty" jsonschema:"format=date"`
	EndAt      string `json:"endAt,omitempty" jsonschema:"format=date"`
	Limit      int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100"`
}

var billingEndpoints = []Endpoint{
	{
		Name:        "list_invoices",
		Description: "List invoices of a location, optionally filtered by status",
		Method:      http.MethodGet,
		Path:        "/invoices/",
		Args:        listInvoicesArgs{},
	},
	{
		Name:        "get_invoice",
		Description: "Get an invoice by ID",
		Method:      http.MethodGet,
		Path:        "/invoices/{invoiceId}",
		Args:        invoiceIDArgs{},
	},
	{
		Name:        "create_invoice",
		Description: "Create a new draft invoice for a contact",
		Method:      http.MethodPost,
		Path:        "/invoices/",
		Args:        createInvoiceArgs{},
	},
	{
		Name:        "send_invoice",
		Description: "Send an invoice to its contact by email or SMS",
		Method:      http.MethodPost,
		Path:        "/invoices/{invoiceId}/send",
		Args:        sendInvoiceArgs{},
	},
	{
		Name:        "void_invoice",
		Description: "Void an invoice so it can no longer be paid",
		Method:      http.MethodPost,
		Path:        "/invoices/{invoiceId}/void",
		Args:        invoiceIDArgs{},
	},
	{
		Name:        "list_transactions",
		Description: "List payment transactions of a location",
		Method:      http.MethodGet,
		Path:        "/payments/transactions",
		Args:        listTransactionsArgs{},
	},
}

// Billing covers invoices and payments. It exposes ListOperations/Execute.
type Billing struct {
	set *endpointSet
}

// NewBilling creates the billing module.
func NewBilling(client *Client) (*Billing, error) {
	set, err := newEndpointSet(client, billingKey, billingEndpoints)
	if err != nil {
		return nil, err
	}
	return &Billing{set: set}, nil
}

func (b *Billing) ListOperations() []api.OperationDefinition {
	return b.set.definitions()
}

func (b *Billing) Execute(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return b.set.execute(ctx, name, args)
}
