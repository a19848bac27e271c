package metadata

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/shaclmaker/shaclmaker/converter/errors"
)

// requiredColumns are the columns a flat tabular source must carry, in any
// order. Extra columns are ignored.
var requiredColumns = []string{
	"file_relative_path",
	"file_description",
	"variable_name",
	"variable_alternative_labels",
	"variable_description",
	"variable_value_example",
	"variable_type",
}

// parseCSV reads a flat tabular source: one variable declaration per row.
// Every row carries the role classified from the source name. A missing
// column fails before any row is read.
func parseCSV(name string, r io.Reader) ([]Record, error) {
	role := ClassifyRole(name)

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewConvertError("reader", errors.ErrMalformedSource,
			"Metadata source is empty",
			errors.SourceRef{File: name, Line: 1}, errors.Error)
	}
	if err != nil {
		return nil, csvError(name, err)
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		if _, ok := columns[col]; !ok {
			columns[col] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewConvertError("reader", errors.ErrMissingField,
			fmt.Sprintf("Missing required column(s): %s", strings.Join(missing, ", ")),
			errors.SourceRef{File: name, Line: 1, Field: missing[0]}, errors.Error)
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, csvError(name, err)
		}

		rec := Record{
			FilePath:            row[columns["file_relative_path"]],
			FileDescription:     row[columns["file_description"]],
			VariableName:        row[columns["variable_name"]],
			AlternativeLabels:   AltLabelsFromDelimited(row[columns["variable_alternative_labels"]]),
			VariableDescription: row[columns["variable_description"]],
			ValueExample:        row[columns["variable_value_example"]],
			VariableType:        row[columns["variable_type"]],
			Role:                role,
		}
		if err := validateRecord(rec, errors.SourceRef{File: name, Line: line}, "", false); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// csvError wraps a csv parse failure as a structural source error. Rows
// with a wrong field count land here via csv.ErrFieldCount.
func csvError(name string, err error) error {
	src := errors.SourceRef{File: name}
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		src.Line = parseErr.Line
	}
	return errors.NewConvertError("reader", errors.ErrMalformedSource,
		fmt.Sprintf("Malformed metadata source: %v", err), src, errors.Error).WithCause(err)
}
