// Package apierror holds the error envelopes the mobile app and the KDS
// screens parse. Every 4xx/5xx body goes through here so clients see one
// shape and internals (SQL, stack traces) never leak.
package apierror

// APIError carries a single human-readable message, in the same Spanish the
// waiters read on screen.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError adds the per-field breakdown the order form highlights.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
