package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knakk/rdf"

	"github.com/shaclmaker/shaclmaker/converter/errors"
)

// Format identifies the structural shape of a metadata source.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat maps a source path to its format by extension. Both .yml
// and .yaml name hierarchical documents.
func DetectFormat(path string) Format {
	switch filepath.Ext(path) {
	case ".csv":
		return FormatCSV
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// Read parses the metadata source at path into records. Flat tabular
// sources carry the role classified from the source name; hierarchical
// sources carry the roles of their sections. Any failure aborts the whole
// source: no partial record sequence is returned.
func Read(path string) ([]Record, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, errors.NewConvertError("reader", errors.ErrUnsupportedFormat,
			fmt.Sprintf("Unsupported metadata format %q", filepath.Ext(path)),
			errors.SourceRef{File: path}, errors.Error).
			WithHint("supported extensions are .csv, .yml and .yaml")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewConvertError("reader", errors.ErrUnreadableSource,
			fmt.Sprintf("Cannot read metadata source: %v", err),
			errors.SourceRef{File: path}, errors.Error).WithCause(err)
	}
	defer f.Close()

	if format == FormatCSV {
		return parseCSV(path, f)
	}
	return parseYAML(path, f)
}

// validateRecord enforces the record invariants at the reader boundary.
// File-only records skip the variable checks; everything else must carry a
// variable name and a syntactically valid datatype IRI.
func validateRecord(rec Record, src errors.SourceRef, at string, allowFileOnly bool) error {
	if rec.FilePath == "" {
		return emptyField(src, "file_relative_path", at)
	}
	if rec.IsFileOnly() {
		if allowFileOnly {
			return nil
		}
		return emptyField(src, "variable_name", at)
	}
	if rec.VariableType == "" {
		return emptyField(src, "variable_type", at)
	}
	if _, err := rdf.NewIRI(rec.VariableType); err != nil {
		src.Field = "variable_type"
		message := fmt.Sprintf("Invalid datatype IRI %q: %v", rec.VariableType, err)
		if at != "" {
			message += " in " + at
		}
		return errors.NewConvertError("reader", errors.ErrInvalidDatatype, message, src, errors.Error).
			WithCause(err).
			WithHint("variable_type must be a full datatype IRI such as http://www.w3.org/2001/XMLSchema#string")
	}
	return nil
}

func emptyField(src errors.SourceRef, field, at string) error {
	src.Field = field
	message := fmt.Sprintf("Required field '%s' is empty", field)
	if at != "" {
		message += " in " + at
	}
	return errors.NewConvertError("reader", errors.ErrEmptyField, message, src, errors.Error)
}
