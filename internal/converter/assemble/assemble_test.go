package assemble

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaclmaker/shaclmaker/converter/errors"
	"github.com/shaclmaker/shaclmaker/internal/converter/metadata"
	"github.com/shaclmaker/shaclmaker/internal/converter/shapes"
	"github.com/shaclmaker/shaclmaker/internal/converter/vocab"
)

func buildFixture(t *testing.T) (*shapes.Graph, []string) {
	t.Helper()
	e, err := shapes.NewEmitter(vocab.DataNamespace, metadata.RoleInput)
	require.NoError(t, err)

	require.NoError(t, e.Emit(metadata.Record{
		FilePath:            "data/x.csv",
		FileDescription:     "Weather observations",
		VariableName:        "temp",
		AlternativeLabels:   metadata.AltLabels{"t", "T"},
		VariableDescription: "Air temperature",
		ValueExample:        "21.3",
		VariableType:        vocab.XSD + "float",
		Role:                metadata.RoleInput,
	}))

	conjunctions := shapes.BuildConjunctions(e.Index(), vocab.DataNamespace, vocab.SchemaNamespace)
	require.Len(t, conjunctions, 1)
	return e.Graph(), conjunctions
}

func decodeFile(t *testing.T, path string) []rdf.Triple {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	triples, err := rdf.NewTripleDecoder(strings.NewReader(string(content)), rdf.Turtle).DecodeAll()
	require.NoError(t, err, "final document must be parseable Turtle")
	return triples
}

func TestWrite_RoundTrip(t *testing.T) {
	graph, conjunctions := buildFixture(t)
	path := filepath.Join(t.TempDir(), "input.ttl")

	err := Write(graph, conjunctions, path, Options{})
	require.NoError(t, err)

	triples := decodeFile(t, path)
	assert.Greater(t, len(triples), graph.Len(),
		"conjunction must expand into additional statements")

	foundAnd := false
	for _, tr := range triples {
		if tr.Pred.String() == vocab.ShAnd {
			foundAnd = true
		}
	}
	assert.True(t, foundAnd, "final document must carry the sh:and statement")

	_, err = os.Stat(IntermediatePath(path))
	assert.True(t, os.IsNotExist(err), "intermediate file should be removed on success")
}

func TestWrite_GraphOnly(t *testing.T) {
	graph, _ := buildFixture(t)
	path := filepath.Join(t.TempDir(), "input.ttl")

	err := Write(graph, nil, path, Options{})
	require.NoError(t, err)

	triples := decodeFile(t, path)
	assert.Equal(t, graph.Len(), len(triples))
}

func TestWrite_KeepIntermediate(t *testing.T) {
	graph, conjunctions := buildFixture(t)
	path := filepath.Join(t.TempDir(), "input.ttl")

	err := Write(graph, conjunctions, path, Options{KeepIntermediate: true})
	require.NoError(t, err)

	_, err = os.Stat(IntermediatePath(path))
	assert.NoError(t, err, "intermediate file should stay behind when requested")

	content, err := os.ReadFile(IntermediatePath(path))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<"+vocab.ShAnd+">",
		"intermediate should hold the raw appended statement")
}

func TestWrite_MalformedConjunction(t *testing.T) {
	graph, _ := buildFixture(t)
	path := filepath.Join(t.TempDir(), "input.ttl")

	err := Write(graph, []string{"this is not turtle"}, path, Options{})
	require.Error(t, err)

	ce, ok := err.(errors.ConvertError)
	require.True(t, ok, "expected errors.ConvertError, got %T", err)
	assert.Equal(t, errors.ErrMalformedDocument, ce.Code)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no final document on parse failure")

	_, statErr = os.Stat(IntermediatePath(path))
	assert.NoError(t, statErr, "intermediate file retained for inspection on parse failure")
}

func TestWrite_MissingDirectory(t *testing.T) {
	graph, conjunctions := buildFixture(t)
	path := filepath.Join(t.TempDir(), "no-such-dir", "input.ttl")

	err := Write(graph, conjunctions, path, Options{})
	require.Error(t, err)

	ce, ok := err.(errors.ConvertError)
	require.True(t, ok, "expected errors.ConvertError, got %T", err)
	assert.Equal(t, errors.ErrSerializeFailed, ce.Code)
}

func TestIntermediatePath(t *testing.T) {
	assert.Equal(t, "out/input.ttl.tmp", IntermediatePath("out/input.ttl"))
}
