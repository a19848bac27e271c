// Package metadata parses tabular and hierarchical metadata sources into a
// normalized sequence of records, one variable declaration per record.
package metadata

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role classifies a record as describing an input or an output artifact.
type Role int

const (
	RoleUnclassified Role = iota
	RoleInput
	RoleOutput
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	case RoleUnclassified:
		return "unclassified"
	default:
		return "unknown"
	}
}

// ClassifyRole classifies a metadata source by scanning its base name for
// the case-sensitive substrings "input" then "output". Neither substring
// yields RoleUnclassified; callers decide how to route that.
func ClassifyRole(name string) Role {
	base := filepath.Base(name)
	switch {
	case strings.Contains(base, "input"):
		return RoleInput
	case strings.Contains(base, "output"):
		return RoleOutput
	default:
		return RoleUnclassified
	}
}

// AltLabels is the normalized ordered sequence of alternative labels for a
// variable. Upstream sources supply either a comma-delimited cell or a YAML
// sequence; both normalize to this type at the parse boundary.
type AltLabels []string

// AltLabelsFromDelimited splits a comma-delimited cell into labels. An
// empty cell yields zero labels. Substrings are kept verbatim, including
// any surrounding whitespace.
func AltLabelsFromDelimited(cell string) AltLabels {
	if cell == "" {
		return nil
	}
	return AltLabels(strings.Split(cell, ","))
}

// UnmarshalYAML implements yaml.Unmarshaler. A sequence yields its elements
// verbatim; a scalar yields one label holding the whole string, or zero
// labels when the scalar is empty.
func (a *AltLabels) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*a = nil
			return nil
		}
		*a = AltLabels{s}
		return nil
	case yaml.SequenceNode:
		var labels []string
		if err := value.Decode(&labels); err != nil {
			return err
		}
		*a = AltLabels(labels)
		return nil
	default:
		return fmt.Errorf("line %d: variable_alternative_labels must be a string or a sequence", value.Line)
	}
}

// Record is one normalized metadata record: one variable declared for one
// file. A record with an empty VariableName describes a file with no
// variables; only hierarchical sources produce those, for file entries
// whose variable sequence is present but empty.
type Record struct {
	FilePath            string
	FileDescription     string
	VariableName        string
	AlternativeLabels   AltLabels
	VariableDescription string
	ValueExample        string
	VariableType        string // datatype IRI, kept verbatim
	Role                Role
}

// IsFileOnly reports whether the record declares a file without variables.
func (r Record) IsFileOnly() bool {
	return r.VariableName == ""
}
