// Package converter orchestrates conversion runs. A run routes metadata
// sources to the reader, streams the records through per-role shape
// emitters, and assembles one constraint document for every role that
// received records. All accumulation state lives inside the run; nothing
// is shared between runs.
package converter

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shaclmaker/shaclmaker/converter/errors"
	"github.com/shaclmaker/shaclmaker/internal/converter/assemble"
	"github.com/shaclmaker/shaclmaker/internal/converter/metadata"
	"github.com/shaclmaker/shaclmaker/internal/converter/shapes"
	"github.com/shaclmaker/shaclmaker/internal/converter/vocab"
)

// Options configure a pipeline. Zero values fall back to the default
// namespaces and to writing documents next to the metadata source.
type Options struct {
	// DataNamespace is the base IRI for file shapes, variable shapes
	// and variable paths. Must end in '/' or '#'.
	DataNamespace string

	// SchemaNamespace is the base IRI for the hasParameter predicate.
	// Must end in '/' or '#'.
	SchemaNamespace string

	// OutputDir overrides where documents are written. Empty means the
	// scanned directory, or the source file's directory in file mode.
	OutputDir string

	// KeepIntermediate retains the pass-one serialization next to each
	// final document.
	KeepIntermediate bool
}

// Document describes one written constraint document.
type Document struct {
	Role      metadata.Role
	Path      string
	Files     int
	Variables int
}

// Result describes a completed run.
type Result struct {
	RunID     string
	Documents []Document
	Skipped   []string
	Warnings  []errors.ConvertError
}

// Pipeline converts metadata sources into constraint documents.
type Pipeline struct {
	opts   Options
	logger *zap.Logger
}

// New returns a pipeline for the given options, validating both
// namespaces up front. A nil logger is replaced with a no-op logger.
func New(opts Options, logger *zap.Logger) (*Pipeline, error) {
	if opts.DataNamespace == "" {
		opts.DataNamespace = vocab.DataNamespace
	}
	if opts.SchemaNamespace == "" {
		opts.SchemaNamespace = vocab.SchemaNamespace
	}
	if err := shapes.ValidateNamespace(opts.DataNamespace); err != nil {
		return nil, err
	}
	if err := shapes.ValidateNamespace(opts.SchemaNamespace); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{opts: opts, logger: logger}, nil
}

// Run converts the metadata source or directory at path and writes the
// resulting documents. Reader and emitter failures abort the run before
// anything is written. Assembly failures are per-document: a failing role
// does not block the other role's document, and the first failure is
// returned with any further ones attached as related errors.
func (p *Pipeline) Run(path string) (Result, error) {
	result := Result{RunID: uuid.New().String()}
	log := p.logger.With(zap.String("run_id", result.RunID))
	log.Info("Starting conversion", zap.String("path", path))

	info, err := os.Stat(path)
	if err != nil {
		return result, errors.NewConvertError("reader", errors.ErrUnreadableSource,
			fmt.Sprintf("Cannot read metadata source: %v", err),
			errors.SourceRef{File: path}, errors.Error).WithCause(err)
	}

	run := newRunState(p.opts)
	var outDir string
	if info.IsDir() {
		outDir = path
		if err := p.scanDirectory(path, run, &result, log); err != nil {
			return result, err
		}
	} else {
		outDir = filepath.Dir(path)
		if err := p.consumeSource(path, run, &result, log); err != nil {
			return result, err
		}
	}

	if p.opts.OutputDir != "" {
		outDir = p.opts.OutputDir
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return result, errors.NewConvertError("assembler", errors.ErrWriteFailed,
				fmt.Sprintf("Cannot create output directory: %v", err),
				errors.SourceRef{File: outDir}, errors.Error).WithCause(err)
		}
	}

	return p.assembleAll(run, outDir, result, log)
}

// runState is the per-run accumulation: one emitter per role, created
// lazily when the first record for that role arrives.
type runState struct {
	opts     Options
	emitters map[metadata.Role]*shapes.Emitter
	docNames map[metadata.Role]string
}

func newRunState(opts Options) *runState {
	return &runState{
		opts:     opts,
		emitters: make(map[metadata.Role]*shapes.Emitter),
		docNames: map[metadata.Role]string{
			metadata.RoleInput:  "input.ttl",
			metadata.RoleOutput: "output.ttl",
		},
	}
}

func (r *runState) emitter(role metadata.Role) (*shapes.Emitter, error) {
	if e, ok := r.emitters[role]; ok {
		return e, nil
	}
	e, err := shapes.NewEmitter(r.opts.DataNamespace, role)
	if err != nil {
		return nil, err
	}
	r.emitters[role] = e
	return e, nil
}

// nameUnclassified derives the role-neutral document name from the first
// source that produced unclassified records.
func (r *runState) nameUnclassified(src string) {
	if _, ok := r.docNames[metadata.RoleUnclassified]; ok {
		return
	}
	base := filepath.Base(src)
	r.docNames[metadata.RoleUnclassified] = strings.TrimSuffix(base, filepath.Ext(base)) + ".ttl"
}

// scanDirectory consumes the recognized metadata sources in dir:
// input.csv, output.csv, and any hierarchical document. Everything else
// is skipped with a diagnostic.
func (p *Pipeline) scanDirectory(dir string, run *runState, result *Result, log *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.NewConvertError("reader", errors.ErrUnreadableSource,
			fmt.Sprintf("Cannot scan directory: %v", err),
			errors.SourceRef{File: dir}, errors.Error).WithCause(err)
	}

	for _, entry := range entries {
		name := entry.Name()
		recognized := !entry.IsDir() &&
			(name == "input.csv" || name == "output.csv" ||
				strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml"))
		if !recognized {
			result.Skipped = append(result.Skipped, name)
			log.Debug("Skipping unrecognized entry", zap.String("entry", name))
			continue
		}
		if err := p.consumeSource(filepath.Join(dir, name), run, result, log); err != nil {
			return err
		}
	}
	return nil
}

// consumeSource reads one metadata source and streams its records into
// the per-role emitters.
func (p *Pipeline) consumeSource(src string, run *runState, result *Result, log *zap.Logger) error {
	records, err := metadata.Read(src)
	if err != nil {
		return err
	}

	unclassified := 0
	for _, rec := range records {
		e, err := run.emitter(rec.Role)
		if err != nil {
			return err
		}
		if err := e.Emit(rec); err != nil {
			return err
		}
		if rec.Role == metadata.RoleUnclassified {
			unclassified++
		}
	}

	if unclassified > 0 {
		run.nameUnclassified(src)
		warning := errors.NewConvertError("reader", errors.ErrUnclassifiableRole,
			fmt.Sprintf("Cannot classify %q as input or output; writing a role-neutral document", filepath.Base(src)),
			errors.SourceRef{File: src}, errors.Warning)
		result.Warnings = append(result.Warnings, warning)
		log.Warn("Source role unclassified", zap.String("source", src), zap.Int("records", unclassified))
	}

	log.Debug("Source consumed", zap.String("source", src), zap.Int("records", len(records)))
	return nil
}

// assembleOrder fixes the document emission order for deterministic
// output and reporting.
var assembleOrder = []metadata.Role{metadata.RoleInput, metadata.RoleOutput, metadata.RoleUnclassified}

func (p *Pipeline) assembleAll(run *runState, outDir string, result Result, log *zap.Logger) (Result, error) {
	var failures []errors.ConvertError

	for _, role := range assembleOrder {
		e, ok := run.emitters[role]
		if !ok || e.Graph().Empty() {
			continue
		}

		docPath := filepath.Join(outDir, run.docNames[role])
		conjunctions := shapes.BuildConjunctions(e.Index(), p.opts.DataNamespace, p.opts.SchemaNamespace)
		opts := assemble.Options{KeepIntermediate: p.opts.KeepIntermediate}
		if err := assemble.Write(e.Graph(), conjunctions, docPath, opts); err != nil {
			var ce errors.ConvertError
			if !stderrors.As(err, &ce) {
				ce = errors.NewConvertError("assembler", errors.ErrWriteFailed, err.Error(),
					errors.SourceRef{File: docPath}, errors.Error).WithCause(err)
			}
			failures = append(failures, ce)
			log.Error("Document assembly failed", zap.String("document", docPath), zap.Error(err))
			continue
		}

		idx := e.Index()
		variables := 0
		for _, f := range idx.Files() {
			variables += len(idx.Variables(f))
		}
		result.Documents = append(result.Documents, Document{
			Role:      role,
			Path:      docPath,
			Files:     idx.Len(),
			Variables: variables,
		})
		log.Info("Document written",
			zap.String("document", docPath),
			zap.String("role", role.String()),
			zap.Int("files", idx.Len()),
			zap.Int("variables", variables))
	}

	if len(failures) > 0 {
		failure := failures[0]
		for _, extra := range failures[1:] {
			failure = failure.WithRelated(extra)
		}
		return result, failure
	}

	log.Info("Conversion finished", zap.Int("documents", len(result.Documents)))
	return result, nil
}
