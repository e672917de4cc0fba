package records

import (
	"fmt"
	"strings"
)

// FieldError represents a single validation error
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidRecordError aggregates every validation error found in a record
type InvalidRecordError struct {
	Errors []FieldError `json:"errors"`
}

// Error implements the error interface
func (e *InvalidRecordError) Error() string {
	if len(e.Errors) == 0 {
		return "invalid record"
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("invalid record: %s", strings.Join(msgs, "; "))
}

// add appends a validation error to the list
func (e *InvalidRecordError) add(field, code, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Code: code, Message: message})
}

// addf appends a validation error with a formatted message
func (e *InvalidRecordError) addf(field, code, format string, args ...any) {
	e.add(field, code, fmt.Sprintf(format, args...))
}

// merge copies the errors of a nested model's validation result, prefixing
// field names with the parent field
func (e *InvalidRecordError) merge(prefix string, err error) {
	if err == nil {
		return
	}
	if nested, ok := err.(*InvalidRecordError); ok {
		for _, fe := range nested.Errors {
			e.add(prefix+"."+fe.Field, fe.Code, fe.Message)
		}
		return
	}
	e.add(prefix, "invalid", err.Error())
}

// indexedField names the i-th element of a list field, e.g. "breakdown[2]"
func indexedField(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

// orNil returns the error when at least one validation error was recorded
func (e *InvalidRecordError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
