package crm

import (
	"context"
	"net/http"

	"capgate/internal/api"
)

const calendarsKey = "calendars"

type listCalendarsArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	GroupID    string `json:"groupId,omitempty"`
}

type calendarIDArgs struct {
	CalendarID string `json:"calendarId"`
}

type freeSlotsArgs struct {
	CalendarID string `json:"calendarId"`
	StartDate  int64  `json:"startDate" jsonschema_description:"Range start as a Unix timestamp in milliseconds."`
	EndDate    int64  `json:"endDate" jsonschema_description:"Range end as a Unix timestamp in milliseconds."`
	Timezone   string `json:"timezone,omitempty" jsonschema:"example=Europe/Berlin"`
}

type createAppointmentArgs struct {
	LocationID string `json:"locationId" jsonschema_description:"Sub-account ID. Defaults to the configured location."`
	CalendarID string `json:"calendarId"`
	ContactID  string `json:"contactId"`
	StartTime  string `json:"startTime" jsonschema:"format=date-time"`
	EndTime    string `json:"endTime,omitempty" jsonschema:"format=date-time"`
	Title      string `json:"title,omitempty"`
}

type updateAppointmentArgs struct {
	EventID   string `json:"eventId"`
	StartTime string `json:"startTime,omitempty" jsonschema:"format=date-time"`
	EndTime   string `json:"endTime,omitempty" jsonschema:"format=date-time"`
	Title     string `json:"title,omitempty"`
	Status    string `json:"appointmentStatus,omitempty" jsonschema:"enum=new,enum=confirmed,enum=cancelled,enum=showed,enum=noshow"`
}

type eventIDArgs struct {
	EventID string `json:"eventId"`
}

var calendarEndpoints = []Endpoint{
	{
		Name:        "list_calendars",
		Description: "List the calendars of a location",
		Method:      http.MethodGet,
		Path:        "/calendars/",
		Args:        listCalendarsArgs{},
	},
	{
		Name:        "get_calendar",
		Description: "Get a calendar by ID",
		Method:      http.MethodGet,
		Path:        "/calendars/{calendarId}",
		Args:        calendarIDArgs{},
	},
	{
		Name:        "get_free_slots",
		Description: "Get bookable free slots of a calendar in a time range",
		Method:      http.MethodGet,
		Path:        "/calendars/{calendarId}/free-slots",
		Args:        freeSlotsArgs{},
	},
	{
		Name:        "create_appointment",
		Description: "Book an appointment for a contact",
		Method:      http.MethodPost,
		Path:        "/calendars/events/appointments",
		Args:        createAppointmentArgs{},
	},
	{
		Name:        "update_appointment",
		Description: "Reschedule or change the status of an appointment",
		Method:      http.MethodPut,
		Path:        "/calendars/events/appointments/{eventId}",
		Args:        updateAppointmentArgs{},
	},
	{
		Name:        "delete_calendar_event",
		Description: "Delete a calendar event or appointment",
		Method:      http.MethodDelete,
		Path:        "/calendars/events/{eventId}",
		Args:        eventIDArgs{},
	},
}

// Calendars covers calendars and appointments. It exposes
// Definitions/Invoke.
type Calendars struct {
	set *endpointSet
}

// NewCalendars creates the calendars module.
func NewCalendars(client *Client) (*Calendars, error) {
	set, err := newEndpointSet(client, calendarsKey, calendarEndpoints)
	if err != nil {
		return nil, err
	}
	return &Calendars{set: set}, nil
}

// Definitions returns the calendar operations.
func (c *Calendars) Definitions() []api.OperationDefinition {
	return c.set.definitions()
}

// Invoke runs a calendar operation.
func (c *Calendars) Invoke(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return c.set.execute(ctx, name, args)
}
