// Package errors provides structured error handling for bot operations.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeValidation indicates malformed user input for the current dialog state.
	CodeValidation Code = "VALIDATION"

	// CodeStorage indicates the durable store failed or is unreachable.
	CodeStorage Code = "STORAGE"

	// CodeTransport indicates a chat transport delivery failure.
	CodeTransport Code = "TRANSPORT"
)
