package config

import "time"

const (
	// DefaultCRMBaseURL is the public CRM API endpoint.
	DefaultCRMBaseURL = "https://services.leadconnectorhq.com"

	// DefaultCRMAPIVersion is sent as the Version header on every CRM call.
	DefaultCRMAPIVersion = "2021-07-28"

	// DefaultCRMTimeout bounds a single outbound CRM call.
	DefaultCRMTimeout = 30 * time.Second

	// DefaultServiceName identifies capgate in traces.
	DefaultServiceName = "capgate"
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:      "localhost",
			Port:      8090,
			Transport: MCPTransportStreamableHTTP,
			Mode:      ModeDynamic,
		},
		CRM: CRMConfig{
			BaseURL:    DefaultCRMBaseURL,
			APIVersion: DefaultCRMAPIVersion,
			Timeout:    DefaultCRMTimeout,
		},
		Telemetry: TelemetryConfig{
			ServiceName: DefaultServiceName,
		},
		LogLevel: "info",
	}
}
