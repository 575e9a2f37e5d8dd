package config

import "time"

const (
	// MCPTransportStreamableHTTP is the streamable HTTP transport.
	MCPTransportStreamableHTTP = "streamable-http"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
	// MCPTransportStdio is the standard I/O transport.
	MCPTransportStdio = "stdio"
)

const (
	// ModeDynamic exposes enabled operations as tools and notifies the
	// client when the set changes.
	ModeDynamic = "dynamic"
	// ModeProxy exposes only the discovery tools and execute_tool.
	ModeProxy = "proxy"
)

// Config is the top-level configuration structure for capgate.
type Config struct {
	Server     ServerConfig     `yaml:"server" envPrefix:"SERVER_"`
	CRM        CRMConfig        `yaml:"crm" envPrefix:"CRM_"`
	Categories CategoriesConfig `yaml:"categories" envPrefix:"CATEGORIES_"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envPrefix:"TELEMETRY_"`
	LogLevel   string           `yaml:"logLevel,omitempty" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
}

// ServerConfig defines how the MCP server is exposed.
type ServerConfig struct {
	Host      string `yaml:"host,omitempty" env:"HOST" validate:"required"`                                  // Host to bind to (default: localhost)
	Port      int    `yaml:"port,omitempty" env:"PORT" validate:"min=1,max=65535"`                           // Port for HTTP transports (default: 8090)
	Transport string `yaml:"transport,omitempty" env:"TRANSPORT" validate:"oneof=streamable-http sse stdio"` // Transport to use (default: streamable-http)
	Mode      string `yaml:"mode,omitempty" env:"MODE" validate:"oneof=dynamic proxy"`                       // Execution mode (default: dynamic)
}

// CRMConfig defines how the CRM API is reached.
type CRMConfig struct {
	BaseURL    string        `yaml:"baseURL,omitempty" env:"BASE_URL" validate:"required,url"`
	APIKey     string        `yaml:"apiKey,omitempty" env:"API_KEY"`
	LocationID string        `yaml:"locationID,omitempty" env:"LOCATION_ID"`
	APIVersion string        `yaml:"apiVersion,omitempty" env:"API_VERSION" validate:"required"`
	Timeout    time.Duration `yaml:"timeout,omitempty" env:"TIMEOUT" validate:"min=0"`
}

// CategoriesConfig controls which categories are registered and which start
// enabled.
type CategoriesConfig struct {
	// Enabled lists category keys enabled right after registration.
	Enabled []string `yaml:"enabled,omitempty" env:"ENABLED" envSeparator:","`
	// Excluded lists module keys that are not registered at all.
	Excluded []string `yaml:"excluded,omitempty" env:"EXCLUDED" envSeparator:","`
}

// TelemetryConfig enables OpenTelemetry tracing when Endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint,omitempty" env:"ENDPOINT" validate:"omitempty,url"`
	ServiceName string `yaml:"serviceName,omitempty" env:"SERVICE_NAME"`
}

// IsExcluded reports whether a module key is excluded from registration.
func (c CategoriesConfig) IsExcluded(key string) bool {
	for _, k := range c.Excluded {
		if k == key {
			return true
		}
	}
	return false
}
