package crm

import (
	"context"
	"net/http"

	"capgate/internal/api"
)

const conversationsKey = "conversations"

type searchConversationsArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	ContactID  string `json:"contactId,omitempty"`
	Status     string `json:"status,omitempty" jsonschema:"enum=all,enum=read,enum=unread,enum=starred"`
	Limit      int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100"`
}

type conversationIDArgs struct {
	ConversationID string `json:"conversationId"`
}

type getMessagesArgs struct {
	ConversationID string `json:"conversationId"`
	LastMessageID  string `json:"lastMessageId,omitempty" jsonschema_description:"Return messages older than this message for paging."`
	Limit          int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100"`
}

type sendMessageArgs struct {
	Type      string `json:"type" jsonschema:"enum=SMS,enum=Email,enum=WhatsApp,enum=Live_Chat"`
	ContactID string `json:"contactId"`
	Message   string `json:"message,omitempty"`
	Subject   string `json:"subject,omitempty" jsonschema_description:"Email subject; ignored for other channels."`
	HTML      string `json:"html,omitempty"`
}

type updateConversationArgs struct {
	ConversationID string `json:"conversationId"`
	UnreadCount    *int   `json:"unreadCount,omitempty" jsonschema:"minimum=0"`
	Starred        *bool  `json:"starred,omitempty"`
}

var conversationEndpoints = []Endpoint{
	{
		Name:        "search_conversations",
		Description: "Search conversations of a location",
		Method:      http.MethodGet,
		Path:        "/conversations/search",
		Args:        searchConversationsArgs{},
	},
	{
		Name:        "get_conversation",
		Description: "Get a conversation by ID",
		Method:      http.MethodGet,
		Path:        "/conversations/{conversationId}",
		Args:        conversationIDArgs{},
	},
	{
		Name:        "get_messages",
		Description: "List the messages of a conversation",
		Method:      http.MethodGet,
		Path:        "/conversations/{conversationId}/messages",
		Args:        getMessagesArgs{},
	},
	{
		Name:        "send_message",
		Description: "Send an SMS, email, WhatsApp or live chat message to a contact",
		Method:      http.MethodPost,
		Path:        "/conversations/messages",
		Args:        sendMessageArgs{},
	},
	{
		Name:        "update_conversation",
		Description: "Mark a conversation read, unread or starred",
		Method:      http.MethodPut,
		Path:        "/conversations/{conversationId}",
		Args:        updateConversationArgs{},
	},
}

// Conversations covers the unified inbox. It lists with GetTools and names
// its dispatch method through Dispatcher.
type Conversations struct {
	set *endpointSet
}

// NewConversations creates the conversations module.
func NewConversations(client *Client) (*Conversations, error) {
	set, err := newEndpointSet(client, conversationsKey, conversationEndpoints)
	if err != nil {
		return nil, err
	}
	return &Conversations{set: set}, nil
}

// GetTools returns the conversation operations.
func (c *Conversations) GetTools() []api.OperationDefinition {
	return c.set.definitions()
}

// Dispatcher returns SendConversationOp.
func (c *Conversations) Dispatcher() api.InvokerFunc {
	return c.SendConversationOp
}

// SendConversationOp runs a conversation operation.
func (c *Conversations) SendConversationOp(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return c.set.execute(ctx, name, args)
}
