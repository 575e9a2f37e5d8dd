package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ConnectionErrorType categorizes why a capgate server could not be reached.
type ConnectionErrorType int

const (
	ConnectionErrorUnknown ConnectionErrorType = iota
	ConnectionErrorTLS
	ConnectionErrorNetwork
	ConnectionErrorTimeout
	ConnectionErrorDNS
)

var connectionErrorNames = map[ConnectionErrorType]string{
	ConnectionErrorTLS:     "TLS certificate error",
	ConnectionErrorNetwork: "Network error",
	ConnectionErrorTimeout: "Connection timeout",
	ConnectionErrorDNS:     "DNS resolution error",
}

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	if name, ok := connectionErrorNames[t]; ok {
		return name
	}
	return "Connection error"
}

// ConnectionError reports a failed request to a capgate endpoint.
type ConnectionError struct {
	// Endpoint is the URL that could not be reached.
	Endpoint string
	Type     ConnectionErrorType
	// Reason is the underlying transport error.
	Reason error
}

// Message fragments used when the error carries no typed cause.
var (
	tlsMarkers     = []string{"x509:", "certificate", "tls:", "TLS handshake"}
	timeoutMarkers = []string{"timeout", "deadline exceeded"}
	networkMarkers = []string{"connection refused", "connection reset", "network is unreachable", "no route to host", "dial tcp", "connect:"}
)

// ClassifyConnectionError wraps err in a ConnectionError for endpoint.
// It returns nil for a nil err.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}
	return &ConnectionError{Endpoint: endpoint, Type: classify(err), Reason: err}
}

func classify(err error) ConnectionErrorType {
	var (
		hostErr      x509.HostnameError
		authorityErr x509.UnknownAuthorityError
		invalidErr   x509.CertificateInvalidError
		dnsErr       *net.DNSError
		netErr       net.Error
	)
	msg := err.Error()

	switch {
	case errors.As(err, &hostErr), errors.As(err, &authorityErr), errors.As(err, &invalidErr),
		containsAny(msg, tlsMarkers):
		return ConnectionErrorTLS
	case errors.As(err, &dnsErr):
		return ConnectionErrorDNS
	case errors.As(err, &netErr) && netErr.Timeout(), containsAny(msg, timeoutMarkers):
		return ConnectionErrorTimeout
	case containsAny(msg, networkMarkers):
		return ConnectionErrorNetwork
	default:
		return ConnectionErrorUnknown
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Error returns a user-friendly message with guidance for the error type.
func (e *ConnectionError) Error() string {
	switch e.Type {
	case ConnectionErrorTLS:
		return fmt.Sprintf("TLS certificate verification failed for %s: %v\n\nSelf-signed certificates are not trusted; check the server certificate.", e.Endpoint, e.Reason)
	case ConnectionErrorTimeout:
		return fmt.Sprintf("Connection to %s timed out: %v", e.Endpoint, e.Reason)
	case ConnectionErrorDNS:
		return fmt.Sprintf("DNS resolution failed for %s: %v", e.Endpoint, e.Reason)
	case ConnectionErrorNetwork:
		return fmt.Sprintf("Connection failed to %s: %v\n\nServer is not running? Start it with: capgate serve", e.Endpoint, e.Reason)
	default:
		return fmt.Sprintf("Connection failed to %s: %v", e.Endpoint, e.Reason)
	}
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// Is matches any *ConnectionError, so errors.Is works through wrapping.
func (e *ConnectionError) Is(target error) bool {
	_, ok := target.(*ConnectionError)
	return ok
}
