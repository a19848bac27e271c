package commands

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shaclmaker/shaclmaker/converter/errors"
	"github.com/shaclmaker/shaclmaker/internal/cli/config"
	"github.com/shaclmaker/shaclmaker/internal/cli/ui"
	"github.com/shaclmaker/shaclmaker/internal/converter"
)

var (
	makeJSON bool
	makeOut  string
	makeKeep bool
)

// supportedExtensions lists the source extensions the reader accepts,
// used for suggestions when a source has an unsupported extension.
var supportedExtensions = []string{".csv", ".yml", ".yaml"}

// NewMakeCommand creates the make command
func NewMakeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make [source]",
		Short: "Convert variable metadata to SHACL shape documents",
		Long: `Convert a CSV or YAML metadata source into SHACL shape documents.

The conversion process:
  1. Read metadata - parse file and variable records from the source
  2. Emit shapes - a node shape per file, a property shape per variable
  3. Bind conjunctions - attach each file's variable membership list
  4. Write documents - serialize to Turtle, one document per role

Sources named after "input" produce input.ttl, sources named after
"output" produce output.ttl, and anything else produces a document named
after the source. A directory source is scanned for input.csv, output.csv
and *.yml/*.yaml entries; everything else in it is skipped.`,
		Example: `  # Convert a single metadata file
  shaclmaker make input.csv

  # Scan a directory for metadata sources
  shaclmaker make ./data

  # Write the documents somewhere else
  shaclmaker make input.csv --out shapes/

  # Output errors in JSON format (useful for tooling)
  shaclmaker make input.csv --json

  # Show each conversion step
  shaclmaker make ./data -v`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMake,
	}

	cmd.Flags().BoolVar(&makeJSON, "json", false, "Output errors in JSON format")
	cmd.Flags().StringVarP(&makeOut, "out", "o", "", "Directory to write documents to (default: alongside the source)")
	cmd.Flags().BoolVar(&makeKeep, "keep-intermediate", false, "Keep the intermediate serialization next to each document")

	return cmd
}

func runMake(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	infoColor := color.New(color.FgCyan)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.ConfigError(err.Error(), false))
		return fmt.Errorf("invalid configuration")
	}

	// Get source path from args or prompt
	var source string
	if len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		prompt := &survey.Input{
			Message: "Metadata source (file or directory):",
		}
		if err := survey.AskOne(prompt, &source, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	// Flags override config
	opts := converter.Options{
		DataNamespace:    cfg.Namespaces.Data,
		SchemaNamespace:  cfg.Namespaces.Schema,
		OutputDir:        cfg.Output.Dir,
		KeepIntermediate: cfg.Output.KeepIntermediate,
	}
	if makeOut != "" {
		opts.OutputDir = makeOut
	}
	if makeKeep {
		opts.KeepIntermediate = true
	}

	pipe, err := converter.New(opts, logger)
	if err != nil {
		var ce errors.ConvertError
		if stderrors.As(err, &ce) {
			fmt.Fprint(os.Stderr, ui.ConfigError(ce.Message, false))
			return fmt.Errorf("invalid configuration")
		}
		return err
	}

	if verbose {
		infoColor.Printf("Converting %s...\n", source)
	}

	var result converter.Result
	run := func() error {
		var runErr error
		result, runErr = pipe.Run(source)
		return runErr
	}

	if verbose || makeJSON {
		err = run()
	} else {
		spinner := ui.NewSpinner(os.Stdout, ui.SpinnerOptions{
			Message: fmt.Sprintf("Converting %s", source),
		})
		spinner.Start()
		err = run()
		if err != nil {
			spinner.Error("Conversion failed")
		} else {
			spinner.Stop()
		}
	}

	if err != nil {
		return reportFailure(source, err, result.Warnings)
	}

	reportWarnings(result.Warnings)

	if verbose {
		for _, name := range result.Skipped {
			infoColor.Printf("  Skipped %s\n", name)
		}
		for _, doc := range result.Documents {
			infoColor.Printf("  Generated %s\n", doc.Path)
		}
	}

	if len(result.Documents) == 0 {
		fmt.Fprint(os.Stdout, ui.Info("No metadata sources recognized; nothing was written", false))
		return nil
	}

	fmt.Println()
	table := ui.NewTable(os.Stdout, []string{"ROLE", "DOCUMENT", "FILES", "VARIABLES"}, nil)
	for _, doc := range result.Documents {
		table.AddRow(doc.Role.String(), doc.Path, strconv.Itoa(doc.Files), strconv.Itoa(doc.Variables))
	}
	table.Render()

	elapsed := time.Since(startTime)
	fmt.Println()
	ui.WriteSuccess(os.Stdout, fmt.Sprintf("Conversion successful in %.2fs", elapsed.Seconds()), false)
	infoColor.Printf("  Documents: %d\n", len(result.Documents))

	return nil
}

// reportFailure renders a failed run. Unsupported formats and missing
// sources get the guided rendering; everything else goes through the
// converter error formatter.
func reportFailure(source string, err error, warnings []errors.ConvertError) error {
	var ce errors.ConvertError
	if !stderrors.As(err, &ce) {
		return err
	}

	if makeJSON {
		outputErrorsJSON(append([]errors.ConvertError{ce}, warnings...))
		return fmt.Errorf("conversion failed")
	}

	switch {
	case ce.Code == errors.ErrUnsupportedFormat:
		ext := filepath.Ext(source)
		suggestions := ui.FindSimilar(ext, supportedExtensions, nil)
		fmt.Fprint(os.Stderr, ui.UnsupportedFormatError(ext, suggestions, false))
	case stderrors.Is(err, os.ErrNotExist):
		fmt.Fprint(os.Stderr, ui.SourceNotFoundError(source, false))
	default:
		outputErrorsTerminal(append([]errors.ConvertError{ce}, warnings...))
	}
	return fmt.Errorf("conversion failed")
}

func reportWarnings(warnings []errors.ConvertError) {
	if len(warnings) == 0 {
		return
	}
	if makeJSON {
		outputErrorsJSON(warnings)
		return
	}
	for _, w := range warnings {
		var suggestions []string
		if w.Hint != "" {
			suggestions = []string{w.Hint}
		}
		fmt.Fprint(os.Stderr, ui.Warning(w.Message, suggestions, false))
	}
}

func outputErrorsJSON(errs []errors.ConvertError) {
	out, err := errors.FormatErrorsAsJSON(errs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode errors: %v\n", err)
		return
	}
	fmt.Println(out)
}

func outputErrorsTerminal(errs []errors.ConvertError) {
	errorCount := 0
	warningCount := 0

	fmt.Fprintln(os.Stderr)
	for _, e := range errs {
		fmt.Fprint(os.Stderr, e.FormatForTerminal())
		fmt.Fprintln(os.Stderr)
		if e.IsWarning() {
			warningCount++
		} else {
			errorCount++
		}
	}
	fmt.Fprint(os.Stderr, errors.FormatSummary(errorCount, warningCount))
}
