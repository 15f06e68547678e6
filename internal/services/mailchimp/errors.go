package mailchimp

import "fmt"

// ConfigError indicates a missing or malformed credential.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mailchimp config error: %s", e.Reason)
}

// NotFoundError indicates a local file that should be uploaded does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// TransportError wraps a network-level failure (DNS, TLS, timeout,
// connection refused). The underlying error is preserved unmodified.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mailchimp transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError indicates the response body was not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mailchimp response decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
