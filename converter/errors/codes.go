package errors

// Error code constants organized by phase
// E001-E099: Reader errors
// E100-E199: Shape emission errors
// E200-E299: Assembly errors

const (
	// Reader errors (E001-E099)
	ErrUnsupportedFormat  = "E001"
	ErrMissingField       = "E002"
	ErrEmptyField         = "E003"
	ErrInvalidDatatype    = "E004"
	ErrMalformedSource    = "E005"
	ErrUnreadableSource   = "E006"
	ErrUnclassifiableRole = "E007"

	// Shape emission errors (E100-E199)
	ErrInvalidShapeIRI  = "E100"
	ErrInvalidNamespace = "E101"

	// Assembly errors (E200-E299)
	ErrMalformedDocument = "E200"
	ErrSerializeFailed   = "E201"
	ErrWriteFailed       = "E202"
)

// ErrorMessages maps error codes to their default messages
var ErrorMessages = map[string]string{
	// Reader errors
	ErrUnsupportedFormat:  "Unsupported metadata format",
	ErrMissingField:       "Missing required field",
	ErrEmptyField:         "Required field is empty",
	ErrInvalidDatatype:    "Invalid datatype IRI",
	ErrMalformedSource:    "Malformed metadata source",
	ErrUnreadableSource:   "Cannot read metadata source",
	ErrUnclassifiableRole: "Cannot classify file as input or output",

	// Shape emission errors
	ErrInvalidShapeIRI:  "Cannot mint shape IRI",
	ErrInvalidNamespace: "Invalid namespace IRI",

	// Assembly errors
	ErrMalformedDocument: "Assembled document is not valid Turtle",
	ErrSerializeFailed:   "Cannot serialize shapes graph",
	ErrWriteFailed:       "Cannot write shapes document",
}

// GetErrorMessage returns the default message for an error code
func GetErrorMessage(code string) string {
	if msg, ok := ErrorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}

// GetPhaseForCode returns the phase name for an error code
func GetPhaseForCode(code string) string {
	if len(code) < 2 {
		return "unknown"
	}

	// Extract the numeric part
	if code[0] != 'E' {
		return "unknown"
	}

	// Determine phase based on error code range
	switch {
	case code >= "E001" && code <= "E099":
		return "reader"
	case code >= "E100" && code <= "E199":
		return "emitter"
	case code >= "E200" && code <= "E299":
		return "assembler"
	default:
		return "unknown"
	}
}
