package crm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"capgate/internal/api"

	schemavalidator "github.com/santhosh-tekuri/jsonschema/v5"
)

// Access is the side-effect class of an endpoint.
type Access string

const (
	AccessRead  Access = "read"
	AccessWrite Access = "write"
)

// locationArg is filled from the client's default location when omitted.
const locationArg = "locationId"

var pathParamPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Endpoint declares one CRM operation.
type Endpoint struct {
	Name        string
	Description string
	Method      string
	// Path may contain {param} placeholders filled from arguments.
	Path string
	// Query names arguments sent as query parameters. For methods without a
	// body every argument not used in the path is sent as a query parameter.
	Query []string
	// Args is a zero value of the arguments struct; its JSON Schema is the
	// operation's input schema.
	Args   interface{}
	Access Access
}

// InvalidArgumentsError is returned when arguments fail schema validation.
type InvalidArgumentsError struct {
	Operation string
	Err       error
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Operation, e.Err)
}

func (e *InvalidArgumentsError) Unwrap() error {
	return e.Err
}

// IsInvalidArguments checks if an error is an InvalidArgumentsError.
func IsInvalidArguments(err error) bool {
	var argErr *InvalidArgumentsError
	return errors.As(err, &argErr)
}

type operation struct {
	endpoint    Endpoint
	definition  api.OperationDefinition
	pathParams  []string
	validator   *schemavalidator.Schema
	hasLocation bool
}

// endpointSet is the shared engine behind every module: it owns the
// compiled operations of one category and executes them through the client.
type endpointSet struct {
	category string
	client   *Client
	ops      []*operation
	byName   map[string]*operation
}

func newEndpointSet(client *Client, category string, endpoints []Endpoint) (*endpointSet, error) {
	set := &endpointSet{
		category: category,
		client:   client,
		byName:   make(map[string]*operation, len(endpoints)),
	}

	for _, ep := range endpoints {
		if _, exists := set.byName[ep.Name]; exists {
			return nil, fmt.Errorf("endpoint %s declared twice in %s", ep.Name, category)
		}

		schema, raw, err := reflectSchema(ep.Args)
		if err != nil {
			return nil, fmt.Errorf("endpoint %s: %w", ep.Name, err)
		}
		validator, err := compileSchema(ep.Name, raw)
		if err != nil {
			return nil, err
		}

		access := ep.Access
		if access == "" {
			access = AccessRead
			if ep.Method != http.MethodGet {
				access = AccessWrite
			}
		}

		op := &operation{
			endpoint: ep,
			definition: api.OperationDefinition{
				Name:        ep.Name,
				Description: ep.Description,
				InputSchema: schema,
				Metadata: map[string]string{
					api.MetadataCategory: category,
					api.MetadataAccess:   string(access),
					api.MetadataMethod:   ep.Method,
				},
			},
			validator: validator,
		}
		for _, m := range pathParamPattern.FindAllStringSubmatch(ep.Path, -1) {
			op.pathParams = append(op.pathParams, m[1])
		}
		if props, ok := schema["properties"].(map[string]interface{}); ok {
			_, op.hasLocation = props[locationArg]
		}

		set.ops = append(set.ops, op)
		set.byName[ep.Name] = op
	}
	return set, nil
}

func (s *endpointSet) definitions() []api.OperationDefinition {
	defs := make([]api.OperationDefinition, 0, len(s.ops))
	for _, op := range s.ops {
		defs = append(defs, op.definition)
	}
	return defs
}

func (s *endpointSet) execute(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	op, ok := s.byName[name]
	if !ok {
		return nil, api.NewUnknownOperationError(name)
	}

	normalized, err := normalizeArgs(args)
	if err != nil {
		return nil, &InvalidArgumentsError{Operation: name, Err: err}
	}
	if op.hasLocation && s.client.LocationID() != "" {
		if _, set := normalized[locationArg]; !set {
			normalized[locationArg] = s.client.LocationID()
		}
	}
	if op.validator != nil {
		if err := op.validator.Validate(normalized); err != nil {
			return nil, &InvalidArgumentsError{Operation: name, Err: err}
		}
	}

	req, err := op.buildRequest(normalized)
	if err != nil {
		return nil, &InvalidArgumentsError{Operation: name, Err: err}
	}
	return s.client.Do(ctx, req)
}

// buildRequest splits args into path, query and body parts.
func (op *operation) buildRequest(args map[string]interface{}) (Request, error) {
	remaining := make(map[string]interface{}, len(args))
	for k, v := range args {
		remaining[k] = v
	}

	path := op.endpoint.Path
	for _, param := range op.pathParams {
		v, ok := remaining[param]
		if !ok || formatValue(v) == "" {
			return Request{}, fmt.Errorf("missing path parameter %q", param)
		}
		path = strings.ReplaceAll(path, "{"+param+"}", url.PathEscape(formatValue(v)))
		delete(remaining, param)
	}

	query := url.Values{}
	for _, name := range op.endpoint.Query {
		if v, ok := remaining[name]; ok {
			addQuery(query, name, v)
			delete(remaining, name)
		}
	}

	req := Request{
		Operation: op.endpoint.Name,
		Method:    op.endpoint.Method,
		Path:      path,
	}
	if hasBody(op.endpoint.Method) {
		if len(remaining) > 0 {
			req.Body = remaining
		}
	} else {
		for name, v := range remaining {
			addQuery(query, name, v)
		}
	}
	if len(query) > 0 {
		req.Query = query
	}
	return req, nil
}

func addQuery(query url.Values, name string, v interface{}) {
	if list, ok := v.([]interface{}); ok {
		for _, item := range list {
			query.Add(name, formatValue(item))
		}
		return
	}
	query.Set(name, formatValue(v))
}

// formatValue renders JSON-decoded scalars for URLs; float64 is written
// without an exponent so IDs and limits survive.
func formatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
