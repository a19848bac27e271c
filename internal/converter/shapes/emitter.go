package shapes

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/knakk/rdf"

	"github.com/shaclmaker/shaclmaker/converter/errors"
	"github.com/shaclmaker/shaclmaker/internal/converter/metadata"
	"github.com/shaclmaker/shaclmaker/internal/converter/vocab"
)

// Emitter derives shape identifiers for each record and appends node and
// property shape statements into its graph, building the variable index as
// records stream through. One emitter exists per role and owns its graph
// and index for the duration of a run.
type Emitter struct {
	dataNS string
	class  rdf.IRI
	graph  *Graph
	index  *FileVariableIndex
}

// NewEmitter returns an emitter minting IRIs under dataNS, categorizing
// node shapes by role.
func NewEmitter(dataNS string, role metadata.Role) (*Emitter, error) {
	if err := ValidateNamespace(dataNS); err != nil {
		return nil, err
	}

	class := vocab.ClassFile
	switch role {
	case metadata.RoleInput:
		class = vocab.ClassInputFile
	case metadata.RoleOutput:
		class = vocab.ClassOutputFile
	}
	classIRI, err := rdf.NewIRI(dataNS + class)
	if err != nil {
		return nil, errors.NewConvertError("emitter", errors.ErrInvalidNamespace,
			fmt.Sprintf("Invalid namespace IRI %q: %v", dataNS, err),
			errors.SourceRef{File: "<config>"}, errors.Error).WithCause(err)
	}

	return &Emitter{
		dataNS: dataNS,
		class:  classIRI,
		graph:  NewGraph(),
		index:  NewFileVariableIndex(),
	}, nil
}

// Graph returns the statement graph the emitter appends to.
func (e *Emitter) Graph() *Graph {
	return e.graph
}

// Index returns the variable index built from the emitted records.
func (e *Emitter) Index() *FileVariableIndex {
	return e.index
}

// Emit appends the record's node shape and, unless the record is
// file-only, its property shape. Re-processing an identical record is a
// no-op through the graph's set semantics.
func (e *Emitter) Emit(rec metadata.Record) error {
	fileIRI, err := e.mint(e.dataNS+EncodePath(rec.FilePath), "file shape", rec.FilePath, "file_relative_path")
	if err != nil {
		return err
	}

	e.graph.Add(rdf.Triple{Subj: fileIRI, Pred: vocab.TermType, Obj: vocab.TermNodeShape})
	e.graph.Add(rdf.Triple{Subj: fileIRI, Pred: vocab.TermSubClassOf, Obj: e.class})
	e.graph.Add(rdf.Triple{Subj: fileIRI, Pred: vocab.TermTargetNode, Obj: fileIRI})
	e.graph.Add(rdf.Triple{Subj: fileIRI, Pred: vocab.TermDescription, Obj: vocab.String(rec.FileDescription)})

	if rec.IsFileOnly() {
		e.index.AddFile(rec.FilePath)
		return nil
	}

	varIRI, err := e.mint(e.dataNS+rec.VariableName+vocab.ShapeSuffix, "variable shape", rec.FilePath, "variable_name")
	if err != nil {
		return err
	}
	pathIRI, err := e.mint(e.dataNS+rec.VariableName, "variable path", rec.FilePath, "variable_name")
	if err != nil {
		return err
	}
	datatype, err := e.mint(rec.VariableType, "datatype", rec.FilePath, "variable_type")
	if err != nil {
		return err
	}

	e.graph.Add(rdf.Triple{Subj: varIRI, Pred: vocab.TermType, Obj: vocab.TermPropertyShape})
	e.graph.Add(rdf.Triple{Subj: varIRI, Pred: vocab.TermDatatype, Obj: datatype})
	e.graph.Add(rdf.Triple{Subj: varIRI, Pred: vocab.TermDescription, Obj: vocab.String(rec.VariableDescription)})
	e.graph.Add(rdf.Triple{Subj: varIRI, Pred: vocab.TermName, Obj: vocab.String(rec.VariableName)})
	e.graph.Add(rdf.Triple{Subj: varIRI, Pred: vocab.TermPath, Obj: pathIRI})
	e.graph.Add(rdf.Triple{Subj: varIRI, Pred: vocab.TermExample, Obj: vocab.String(rec.ValueExample)})
	for _, label := range rec.AlternativeLabels {
		e.graph.Add(rdf.Triple{Subj: varIRI, Pred: vocab.TermAltLabel, Obj: vocab.String(label)})
	}

	e.index.AddVariable(rec.FilePath, rec.VariableName)
	return nil
}

func (e *Emitter) mint(s, what, file, field string) (rdf.IRI, error) {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		return rdf.IRI{}, errors.NewConvertError("emitter", errors.ErrInvalidShapeIRI,
			fmt.Sprintf("Cannot mint %s IRI %q: %v", what, s, err),
			errors.SourceRef{File: file, Field: field}, errors.Error).WithCause(err)
	}
	return iri, nil
}

// EncodePath percent-encodes a relative file path for use in an IRI,
// escaping each path segment while keeping the '/' separators.
func EncodePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// ValidateNamespace checks that ns is a syntactically valid IRI ending in
// '/' or '#', so appending a local name yields another valid IRI.
func ValidateNamespace(ns string) error {
	if _, err := rdf.NewIRI(ns); err != nil {
		return errors.NewConvertError("emitter", errors.ErrInvalidNamespace,
			fmt.Sprintf("Invalid namespace IRI %q: %v", ns, err),
			errors.SourceRef{File: "<config>"}, errors.Error).WithCause(err)
	}
	if !strings.HasSuffix(ns, "/") && !strings.HasSuffix(ns, "#") {
		return errors.NewConvertError("emitter", errors.ErrInvalidNamespace,
			fmt.Sprintf("Namespace %q must end in '/' or '#'", ns),
			errors.SourceRef{File: "<config>"}, errors.Error)
	}
	return nil
}
