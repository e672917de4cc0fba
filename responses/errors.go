package responses

import "fmt"

// ParseError reports a response payload that could not be decoded:
// malformed XML, a missing required element or an unparseable value
type ParseError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *ParseError) Unwrap() error { return e.Err }

// parseErrorf builds a ParseError with a formatted message
func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// ServerError reports a SOAP fault returned by the AEAT endpoint
type ServerError struct {
	Fault string
}

// Error implements the error interface
func (e *ServerError) Error() string {
	return fmt.Sprintf("aeat server error: %s", e.Fault)
}
