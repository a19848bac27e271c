package errors

import (
	"encoding/json"
	"fmt"
)

// Severity represents the severity level of an error
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Severity
func (s *Severity) UnmarshalJSON(data []byte) error {
	// Remove quotes
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	switch str {
	case "info":
		*s = Info
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	case "fatal":
		*s = Fatal
	default:
		*s = Error // Default to Error if unknown
	}
	return nil
}

// SourceRef points at the piece of metadata that caused an error
type SourceRef struct {
	File  string `json:"file"`
	Line  int    `json:"line"`  // 1-based; 0 when the line is unknown
	Field string `json:"field"` // offending column or key, if any
}

// ConvertError represents a comprehensive conversion error
type ConvertError struct {
	Phase    string         // "reader", "emitter", "assembler"
	Code     string         // "E001", "E002", etc.
	Message  string         // Human-readable message
	Source   SourceRef      // File, line, field
	Severity Severity       // Error, Warning, Info
	Hint     string         // Optional remediation hint
	Related  []ConvertError // Cascading errors
	Cause    error          // Underlying error, if any
}

// Error implements the error interface
func (e ConvertError) Error() string {
	if e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s",
			e.Source.File,
			e.Source.Line,
			e.Code,
			e.Message)
	}
	return fmt.Sprintf("%s: %s: %s",
		e.Source.File,
		e.Code,
		e.Message)
}

// NewConvertError creates a new ConvertError
func NewConvertError(phase, code, message string, source SourceRef, severity Severity) ConvertError {
	return ConvertError{
		Phase:    phase,
		Code:     code,
		Message:  message,
		Source:   source,
		Severity: severity,
		Hint:     "",
		Related:  []ConvertError{},
	}
}

// WithHint adds a remediation hint to the error
func (e ConvertError) WithHint(hint string) ConvertError {
	e.Hint = hint
	return e
}

// WithCause attaches the underlying error
func (e ConvertError) WithCause(cause error) ConvertError {
	e.Cause = cause
	return e
}

// Unwrap returns the underlying error so errors.Is and errors.As
// see through a ConvertError
func (e ConvertError) Unwrap() error {
	return e.Cause
}

// WithRelated adds a related error
func (e ConvertError) WithRelated(related ConvertError) ConvertError {
	e.Related = append(e.Related, related)
	return e
}

// MarshalJSON implements json.Marshaler
func (e ConvertError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Phase    string         `json:"phase"`
		Code     string         `json:"code"`
		Message  string         `json:"message"`
		Severity Severity       `json:"severity"`
		Source   SourceRef      `json:"source"`
		Hint     string         `json:"hint,omitempty"`
		Related  []ConvertError `json:"related_errors"`
	}{
		Phase:    e.Phase,
		Code:     e.Code,
		Message:  e.Message,
		Severity: e.Severity,
		Source:   e.Source,
		Hint:     e.Hint,
		Related:  e.Related,
	})
}

// IsError returns true if the error is at Error or Fatal severity
func (e ConvertError) IsError() bool {
	return e.Severity == Error || e.Severity == Fatal
}

// IsWarning returns true if the error is at Warning severity
func (e ConvertError) IsWarning() bool {
	return e.Severity == Warning
}

// IsInfo returns true if the error is at Info severity
func (e ConvertError) IsInfo() bool {
	return e.Severity == Info
}

// IsFatal returns true if the error is at Fatal severity
func (e ConvertError) IsFatal() bool {
	return e.Severity == Fatal
}
