// Package vocab defines the RDF vocabulary used in emitted shapes graphs.
package vocab

import "github.com/knakk/rdf"

// DataNamespace is the default base IRI under which file and variable
// shapes are minted.
const DataNamespace = "https://odtp.example.org/components/data/"

// SchemaNamespace is the default base IRI for schema predicates.
const SchemaNamespace = "https://w3id.org/okn/o/sd#"

// W3C namespace prefixes.
const (
	SHACL = "http://www.w3.org/ns/shacl#"
	RDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS  = "http://www.w3.org/2000/01/rdf-schema#"
	SKOS  = "http://www.w3.org/2004/02/skos/core#"
	XSD   = "http://www.w3.org/2001/XMLSchema#"
)

// SHACL term IRIs carried by emitted shapes.
const (
	ShNodeShape     = SHACL + "NodeShape"
	ShPropertyShape = SHACL + "PropertyShape"
	ShTargetNode    = SHACL + "targetNode"
	ShDescription   = SHACL + "description"
	ShDatatype      = SHACL + "datatype"
	ShName          = SHACL + "name"
	ShPath          = SHACL + "path"
	ShAnd           = SHACL + "and"
	ShHasValue      = SHACL + "hasValue"
)

// Companion vocabulary terms.
const (
	RDFType        = RDF + "type"
	RDFSSubClassOf = RDFS + "subClassOf"
	SKOSExample    = SKOS + "example"
	SKOSAltLabel   = SKOS + "altLabel"
	XSDString      = XSD + "string"
)

// Local names minted under the data namespace.
const (
	// ClassInputFile is the superclass of node shapes for files a
	// component consumes.
	ClassInputFile = "InputFile"

	// ClassOutputFile is the superclass of node shapes for files a
	// component produces.
	ClassOutputFile = "OutputFile"

	// ClassFile is the superclass used when a file's role cannot be
	// classified from its name.
	ClassFile = "File"

	// ShapeSuffix is appended to variable names when minting property
	// shape IRIs.
	ShapeSuffix = "Shape"

	// HasParameter is the schema-namespace predicate linking a file
	// shape to the variable shapes it requires.
	HasParameter = "hasParameter"
)

// Prebuilt terms for graph construction.
var (
	TermType          = mustIRI(RDFType)
	TermSubClassOf    = mustIRI(RDFSSubClassOf)
	TermNodeShape     = mustIRI(ShNodeShape)
	TermPropertyShape = mustIRI(ShPropertyShape)
	TermTargetNode    = mustIRI(ShTargetNode)
	TermDescription   = mustIRI(ShDescription)
	TermDatatype      = mustIRI(ShDatatype)
	TermName          = mustIRI(ShName)
	TermPath          = mustIRI(ShPath)
	TermExample       = mustIRI(SKOSExample)
	TermAltLabel      = mustIRI(SKOSAltLabel)
	TermXSDString     = mustIRI(XSDString)
)

// String returns an xsd:string literal for the given value.
func String(v string) rdf.Literal {
	return rdf.NewTypedLiteral(v, TermXSDString)
}

func mustIRI(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		panic("vocab: invalid IRI " + s + ": " + err.Error())
	}
	return iri
}
