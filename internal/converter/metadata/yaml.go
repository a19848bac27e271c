package metadata

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shaclmaker/shaclmaker/converter/errors"
)

// Pointer fields distinguish an absent key from a present-but-empty value;
// MissingField errors fire only on true absence.

type yamlDocument struct {
	Input  *[]yamlFile `yaml:"data-input"`
	Output *[]yamlFile `yaml:"data-output"`
}

type yamlFile struct {
	Path        *string         `yaml:"file_relative_path"`
	Description *string         `yaml:"file_description"`
	Variables   *[]yamlVariable `yaml:"variables"`
}

type yamlVariable struct {
	Name        *string    `yaml:"variable_name"`
	AltLabels   *AltLabels `yaml:"variable_alternative_labels"`
	Description *string    `yaml:"variable_description"`
	Example     *string    `yaml:"variable_value_example"`
	Type        *string    `yaml:"variable_type"`
}

// parseYAML reads a hierarchical source: the data-input and data-output
// sections each hold file entries with nested variable entries. A file
// entry whose variable sequence is present but empty yields one file-only
// record, so the file still gets a node shape.
func parseYAML(name string, r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewConvertError("reader", errors.ErrUnreadableSource,
			fmt.Sprintf("Cannot read metadata source: %v", err),
			errors.SourceRef{File: name}, errors.Error).WithCause(err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewConvertError("reader", errors.ErrMalformedSource,
			fmt.Sprintf("Malformed metadata source: %v", err),
			errors.SourceRef{File: name}, errors.Error).WithCause(err)
	}

	if doc.Input == nil {
		return nil, missingKey(name, "data-input", "")
	}
	if doc.Output == nil {
		return nil, missingKey(name, "data-output", "")
	}

	records, err := sectionRecords(name, "data-input", *doc.Input, RoleInput)
	if err != nil {
		return nil, err
	}

	output, err := sectionRecords(name, "data-output", *doc.Output, RoleOutput)
	if err != nil {
		return nil, err
	}

	return append(records, output...), nil
}

// sectionRecords expands one section's file entries into records tagged
// with the section's role.
func sectionRecords(name, section string, files []yamlFile, role Role) ([]Record, error) {
	var records []Record
	for i, file := range files {
		entry := fmt.Sprintf("%s entry %d", section, i+1)
		if file.Path == nil {
			return nil, missingKey(name, "file_relative_path", entry)
		}
		if file.Description == nil {
			return nil, missingKey(name, "file_description", entry)
		}
		if file.Variables == nil {
			return nil, missingKey(name, "variables", entry)
		}

		if len(*file.Variables) == 0 {
			rec := Record{
				FilePath:        *file.Path,
				FileDescription: *file.Description,
				Role:            role,
			}
			if err := validateRecord(rec, errors.SourceRef{File: name}, entry, true); err != nil {
				return nil, err
			}
			records = append(records, rec)
			continue
		}

		for j, variable := range *file.Variables {
			at := fmt.Sprintf("%s, variable %d", entry, j+1)
			if variable.Name == nil {
				return nil, missingKey(name, "variable_name", at)
			}
			if variable.AltLabels == nil {
				return nil, missingKey(name, "variable_alternative_labels", at)
			}
			if variable.Description == nil {
				return nil, missingKey(name, "variable_description", at)
			}
			if variable.Example == nil {
				return nil, missingKey(name, "variable_value_example", at)
			}
			if variable.Type == nil {
				return nil, missingKey(name, "variable_type", at)
			}

			rec := Record{
				FilePath:            *file.Path,
				FileDescription:     *file.Description,
				VariableName:        *variable.Name,
				AlternativeLabels:   *variable.AltLabels,
				VariableDescription: *variable.Description,
				ValueExample:        *variable.Example,
				VariableType:        *variable.Type,
				Role:                role,
			}
			if err := validateRecord(rec, errors.SourceRef{File: name}, at, false); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// missingKey builds the structural error for an absent required key.
func missingKey(name, key, at string) error {
	message := fmt.Sprintf("Missing required key '%s'", key)
	if at != "" {
		message += " in " + at
	}
	return errors.NewConvertError("reader", errors.ErrMissingField, message,
		errors.SourceRef{File: name, Field: key}, errors.Error)
}
