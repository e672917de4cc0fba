package aeat

import "fmt"

// TransportError reports an HTTP, TLS or timeout failure while talking
// to the AEAT endpoint. The outcome of the submission is unknown; the
// caller reconciles by querying the period.
type TransportError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *TransportError) Unwrap() error { return e.Err }

// CertificateError reports a credential that could not be read,
// decrypted or converted
type CertificateError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *CertificateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *CertificateError) Unwrap() error { return e.Err }
