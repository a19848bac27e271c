package converter

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaclmaker/shaclmaker/converter/errors"
	"github.com/shaclmaker/shaclmaker/internal/converter/metadata"
	"github.com/shaclmaker/shaclmaker/internal/converter/vocab"
)

const csvHeader = "file_relative_path,file_description,variable_name,variable_alternative_labels,variable_description,variable_value_example,variable_type\n"

const weatherRow = `data/x.csv,Weather observations,temp,"t,T",Air temperature,21.3,http://www.w3.org/2001/XMLSchema#float` + "\n"

const weatherYAML = `data-input:
  - file_relative_path: data/x.csv
    file_description: Weather observations
    variables:
      - variable_name: temp
        variable_alternative_labels: [t, T]
        variable_description: Air temperature
        variable_value_example: "21.3"
        variable_type: http://www.w3.org/2001/XMLSchema#float
data-output: []
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	p, err := New(opts, nil)
	require.NoError(t, err)
	return p
}

func decodeDocument(t *testing.T, path string) []rdf.Triple {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	triples, err := rdf.NewTripleDecoder(strings.NewReader(string(content)), rdf.Turtle).DecodeAll()
	require.NoError(t, err, "document %s must be parseable Turtle", path)
	return triples
}

func TestRun_CSVEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := writeFixture(t, dir, "input.csv", csvHeader+weatherRow)

	result, err := newTestPipeline(t, Options{}).Run(src)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)

	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, metadata.RoleInput, doc.Role)
	assert.Equal(t, filepath.Join(dir, "input.ttl"), doc.Path)
	assert.Equal(t, 1, doc.Files)
	assert.Equal(t, 1, doc.Variables)

	triples := decodeDocument(t, doc.Path)
	require.NotEmpty(t, triples)

	var nodeShape, propertyShape, conjunction, altLabels bool
	for _, tr := range triples {
		switch {
		case tr.Pred.String() == vocab.RDFType && tr.Obj.String() == vocab.ShNodeShape:
			nodeShape = true
		case tr.Pred.String() == vocab.RDFType && tr.Obj.String() == vocab.ShPropertyShape:
			propertyShape = true
		case tr.Pred.String() == vocab.ShAnd:
			conjunction = true
		case tr.Pred.String() == vocab.SKOSAltLabel:
			altLabels = true
		}
	}
	assert.True(t, nodeShape, "missing node shape declaration")
	assert.True(t, propertyShape, "missing property shape declaration")
	assert.True(t, conjunction, "missing conjunction constraint")
	assert.True(t, altLabels, "missing alternative labels")
}

func TestRun_DirectoryOnlyOutput(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "output.csv", csvHeader+weatherRow)
	writeFixture(t, dir, "notes.txt", "not metadata\n")

	result, err := newTestPipeline(t, Options{}).Run(dir)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, metadata.RoleOutput, result.Documents[0].Role)
	assert.Equal(t, filepath.Join(dir, "output.ttl"), result.Documents[0].Path)

	_, statErr := os.Stat(filepath.Join(dir, "input.ttl"))
	assert.True(t, os.IsNotExist(statErr), "no input document without input records")

	assert.Contains(t, result.Skipped, "notes.txt")
}

func TestRun_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "readme.md", "nothing here\n")

	result, err := newTestPipeline(t, Options{}).Run(dir)
	require.NoError(t, err)
	assert.Empty(t, result.Documents)
	assert.Contains(t, result.Skipped, "readme.md")
	assert.Empty(t, result.Warnings)
}

func TestRun_MergeAcrossSources(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.yml", weatherYAML)
	writeFixture(t, dir, "b.yml", weatherYAML)

	result, err := newTestPipeline(t, Options{}).Run(dir)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, 1, result.Documents[0].Files)
	assert.Equal(t, 1, result.Documents[0].Variables)

	// Both sources declare temp for the same file; the conjunction must
	// hold a single membership.
	memberships := 0
	for _, tr := range decodeDocument(t, result.Documents[0].Path) {
		if tr.Pred.String() == vocab.ShHasValue && tr.Obj.String() == vocab.DataNamespace+"temp" {
			memberships++
		}
	}
	assert.Equal(t, 1, memberships)
}

func TestRun_UnclassifiedCSV(t *testing.T) {
	dir := t.TempDir()
	src := writeFixture(t, dir, "measurements.csv", csvHeader+weatherRow)

	result, err := newTestPipeline(t, Options{}).Run(src)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, metadata.RoleUnclassified, doc.Role)
	assert.Equal(t, filepath.Join(dir, "measurements.ttl"), doc.Path)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, errors.ErrUnclassifiableRole, result.Warnings[0].Code)
	assert.True(t, result.Warnings[0].IsWarning())

	// Role-neutral documents use the generic file category.
	neutral := false
	for _, tr := range decodeDocument(t, doc.Path) {
		if tr.Pred.String() == vocab.RDFSSubClassOf && tr.Obj.String() == vocab.DataNamespace+"File" {
			neutral = true
		}
	}
	assert.True(t, neutral, "expected the generic File category")
}

func TestRun_YAMLBothRoles(t *testing.T) {
	dir := t.TempDir()
	src := writeFixture(t, dir, "odtp.yml", `data-input:
  - file_relative_path: in/a.csv
    file_description: Input data
    variables:
      - variable_name: alpha
        variable_alternative_labels: []
        variable_description: First variable
        variable_value_example: "1"
        variable_type: http://www.w3.org/2001/XMLSchema#integer
data-output:
  - file_relative_path: out/b.csv
    file_description: Output data
    variables:
      - variable_name: beta
        variable_alternative_labels: []
        variable_description: Second variable
        variable_value_example: "2"
        variable_type: http://www.w3.org/2001/XMLSchema#integer
`)

	result, err := newTestPipeline(t, Options{}).Run(src)
	require.NoError(t, err)

	require.Len(t, result.Documents, 2)
	assert.Equal(t, metadata.RoleInput, result.Documents[0].Role)
	assert.Equal(t, filepath.Join(dir, "input.ttl"), result.Documents[0].Path)
	assert.Equal(t, metadata.RoleOutput, result.Documents[1].Role)
	assert.Equal(t, filepath.Join(dir, "output.ttl"), result.Documents[1].Path)
}

func TestRun_OutputDirOverride(t *testing.T) {
	dir := t.TempDir()
	src := writeFixture(t, dir, "input.csv", csvHeader+weatherRow)
	outDir := filepath.Join(t.TempDir(), "out", "nested")

	result, err := newTestPipeline(t, Options{OutputDir: outDir}).Run(src)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, filepath.Join(outDir, "input.ttl"), result.Documents[0].Path)
	_, statErr := os.Stat(result.Documents[0].Path)
	assert.NoError(t, statErr)
}

func TestRun_KeepIntermediate(t *testing.T) {
	dir := t.TempDir()
	src := writeFixture(t, dir, "input.csv", csvHeader+weatherRow)

	result, err := newTestPipeline(t, Options{KeepIntermediate: true}).Run(src)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	_, statErr := os.Stat(result.Documents[0].Path + ".tmp")
	assert.NoError(t, statErr, "intermediate file should be retained")
}

func TestRun_MissingSource(t *testing.T) {
	_, err := newTestPipeline(t, Options{}).Run(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var ce errors.ConvertError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, errors.ErrUnreadableSource, ce.Code)
}

func TestRun_ReaderFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := writeFixture(t, dir, "input.csv", csvHeader+"data/x.csv,desc,,labels,vdesc,ex,http://www.w3.org/2001/XMLSchema#float\n")

	_, err := newTestPipeline(t, Options{}).Run(src)
	require.Error(t, err)

	var ce errors.ConvertError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, errors.ErrEmptyField, ce.Code)

	_, statErr := os.Stat(filepath.Join(dir, "input.ttl"))
	assert.True(t, os.IsNotExist(statErr), "failed runs must not write documents")
}

func TestRun_FreshStatePerRun(t *testing.T) {
	dir := t.TempDir()
	src := writeFixture(t, dir, "input.csv", csvHeader+weatherRow)
	p := newTestPipeline(t, Options{})

	first, err := p.Run(src)
	require.NoError(t, err)
	require.Len(t, first.Documents, 1)
	firstTriples := len(decodeDocument(t, first.Documents[0].Path))

	second, err := p.Run(src)
	require.NoError(t, err)
	require.Len(t, second.Documents, 1)
	assert.Equal(t, first.Documents[0].Files, second.Documents[0].Files)
	assert.Equal(t, first.Documents[0].Variables, second.Documents[0].Variables)
	assert.NotEqual(t, first.RunID, second.RunID)

	// The second run starts from empty graphs; identical input must
	// yield an identical document, not an accumulated one.
	assert.Equal(t, firstTriples, len(decodeDocument(t, second.Documents[0].Path)))
}

func TestNew_RejectsBadNamespace(t *testing.T) {
	_, err := New(Options{DataNamespace: "https://example.org/no-separator"}, nil)
	require.Error(t, err)

	var ce errors.ConvertError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, errors.ErrInvalidNamespace, ce.Code)
}
