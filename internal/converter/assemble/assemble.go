// Package assemble writes a role's statement graph plus its conjunction
// constraints into a final Turtle document.
//
// The serialization is two-pass: the graph is serialized to an
// intermediate file, the conjunction statements are appended textually,
// and the combined text is re-parsed and re-serialized into the final
// document. The triple codec cannot construct the AND-of-blank-nodes
// collection through its programmatic API, so the textual form is
// hand-assembled and round-tripped through the full parser, which
// guarantees the final output is syntactically valid.
package assemble

import (
	"fmt"
	"os"
	"strings"

	"github.com/knakk/rdf"

	"github.com/shaclmaker/shaclmaker/converter/errors"
	"github.com/shaclmaker/shaclmaker/internal/converter/shapes"
)

// Options control document assembly.
type Options struct {
	// KeepIntermediate retains the pass-one file next to the final
	// document instead of removing it after the final parse.
	KeepIntermediate bool
}

// IntermediatePath returns the pass-one file path for a final document.
func IntermediatePath(path string) string {
	return path + ".tmp"
}

// Write serializes the graph and the conjunction statements into the
// document at path. The statements are written as N-Triples lines, a
// subset of Turtle, so the appended conjunctions can reference IRIs
// without prefix declarations. On a re-parse failure the intermediate
// file stays behind so the malformed text can be inspected.
func Write(graph *shapes.Graph, conjunctions []string, path string, opts Options) error {
	var doc strings.Builder
	for _, t := range graph.Triples() {
		doc.WriteString(strings.TrimRight(t.Serialize(rdf.NTriples), "\n"))
		doc.WriteByte('\n')
	}
	for _, statement := range conjunctions {
		doc.WriteString(statement)
		doc.WriteByte('\n')
	}

	intermediate := IntermediatePath(path)
	if err := os.WriteFile(intermediate, []byte(doc.String()), 0644); err != nil {
		return errors.NewConvertError("assembler", errors.ErrSerializeFailed,
			fmt.Sprintf("Cannot serialize shapes graph: %v", err),
			errors.SourceRef{File: intermediate}, errors.Error).WithCause(err)
	}

	dec := rdf.NewTripleDecoder(strings.NewReader(doc.String()), rdf.Turtle)
	triples, err := dec.DecodeAll()
	if err != nil {
		return errors.NewConvertError("assembler", errors.ErrMalformedDocument,
			fmt.Sprintf("Assembled document is not valid Turtle: %v", err),
			errors.SourceRef{File: intermediate}, errors.Error).WithCause(err)
	}

	if !opts.KeepIntermediate {
		defer os.Remove(intermediate)
	}

	var final strings.Builder
	for _, t := range triples {
		final.WriteString(strings.TrimRight(t.Serialize(rdf.NTriples), "\n"))
		final.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(final.String()), 0644); err != nil {
		return errors.NewConvertError("assembler", errors.ErrWriteFailed,
			fmt.Sprintf("Cannot write shapes document: %v", err),
			errors.SourceRef{File: path}, errors.Error).WithCause(err)
	}

	return nil
}
