package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/refhub/internal/audit"
	"github.com/mrlokans/refhub/internal/conversion"
	"github.com/mrlokans/refhub/internal/database"
	"github.com/mrlokans/refhub/internal/database/jobs"
	"github.com/mrlokans/refhub/internal/entities"
	"github.com/mrlokans/refhub/internal/exporters"
)

// ConvertCommand converts an EndNote XML or RIS export into a .bib file
type ConvertCommand struct {
	InputPath       string
	OutputPath      string
	CitationStyle   string
	IncludeAbstract bool
	IncludeKeywords bool
	IncludeNotes    bool
	EscapeLatex     bool
	DatabasePath    string
	Verbose         bool
	DryRun          bool

	// BibTeX goes to Stdout when no -output is given; progress goes to Stderr.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func NewConvertCommand() *ConvertCommand {
	return &ConvertCommand{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (cmd *ConvertCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	defaults := entities.DefaultOptions()

	fs.StringVar(&cmd.InputPath, "file", "", "Path to the EndNote XML or RIS export, or - for stdin (required)")
	fs.StringVar(&cmd.OutputPath, "output", "", "Write BibTeX to this file instead of stdout")
	fs.StringVar(&cmd.CitationStyle, "style", string(defaults.CitationStyle), "Citation style: bibtex, biblatex or acm")
	fs.BoolVar(&cmd.IncludeAbstract, "abstract", defaults.IncludeAbstract, "Include abstracts")
	fs.BoolVar(&cmd.IncludeKeywords, "keywords", defaults.IncludeKeywords, "Include keywords")
	fs.BoolVar(&cmd.IncludeNotes, "notes", defaults.IncludeNotes, "Include notes")
	fs.BoolVar(&cmd.EscapeLatex, "escape", defaults.EscapeLatex, "Escape LaTeX special characters")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Record the run in this job log database (disabled when empty)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Convert and report without writing any output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s convert -file <path|-> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert an EndNote XML, reference XML or RIS export to BibTeX.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Convert an EndNote export to a .bib file:\n")
		fmt.Fprintf(os.Stderr, "  %s convert -file library.xml -output library.bib\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # BibLaTeX with abstracts, reading RIS from stdin:\n")
		fmt.Fprintf(os.Stderr, "  cat export.ris | %s convert -file - -style biblatex -abstract\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.InputPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ConvertCommand) options() entities.ConversionOptions {
	opts := entities.DefaultOptions()
	opts.CitationStyle = entities.CitationStyle(cmd.CitationStyle)
	opts.IncludeAbstract = cmd.IncludeAbstract
	opts.IncludeKeywords = cmd.IncludeKeywords
	opts.IncludeNotes = cmd.IncludeNotes
	opts.EscapeLatex = cmd.EscapeLatex
	return opts
}

func (cmd *ConvertCommand) readInput() (string, error) {
	if cmd.InputPath == "-" {
		data, err := io.ReadAll(cmd.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	if _, err := os.Stat(cmd.InputPath); os.IsNotExist(err) {
		return "", fmt.Errorf("input file not found: %s", cmd.InputPath)
	}
	data, err := os.ReadFile(cmd.InputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

func (cmd *ConvertCommand) Run() error {
	opts := cmd.options()
	if err := opts.Validate(); err != nil {
		return err
	}

	content, err := cmd.readInput()
	if err != nil {
		return err
	}
	if err := conversion.ValidateContent(content, 0); err != nil {
		return fmt.Errorf("%s: %w", cmd.InputPath, err)
	}

	if cmd.Verbose {
		fmt.Fprintf(cmd.Stderr, "Input: %s (%d bytes, detected %s)\n", cmd.InputPath, len(content), conversion.DetectFormat(content))
	}

	start := time.Now()
	result, convErr := conversion.Convert(content, opts)
	if convErr != nil {
		result.Format = conversion.DetectFormat(content)
	}

	if cmd.DatabasePath != "" && !cmd.DryRun {
		if err := cmd.logJob(audit.ConversionRecord{
			SourceName: filepath.Base(cmd.InputPath),
			SourceSize: len(content),
			Options:    opts,
			Result:     result,
			Duration:   time.Since(start),
			Err:        convErr,
		}); err != nil {
			fmt.Fprintf(cmd.Stderr, "[WARN] Failed to record conversion job: %v\n", err)
		}
	}

	if convErr != nil {
		return fmt.Errorf("conversion failed: %w", convErr)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.Stderr, "[WARN] %s\n", warning)
	}
	fmt.Fprintf(cmd.Stderr, "Converted %d entries from %s in %dms\n", result.EntryCount, result.Format, result.ProcessingTime)

	if cmd.Verbose {
		for _, entry := range result.Entries {
			fmt.Fprintf(cmd.Stderr, "  -> @%s{%s} %s\n", entry.Type, entry.ID, entry.Title())
		}
	}

	if cmd.DryRun {
		fmt.Fprintln(cmd.Stderr, "Dry run complete. Use without -dry-run to write output.")
		return nil
	}

	if result.EntryCount == 0 {
		return fmt.Errorf("no references could be converted")
	}

	if cmd.OutputPath == "" {
		_, err := fmt.Fprintln(cmd.Stdout, result.BibTeX)
		return err
	}

	exporter := exporters.NewBibFileExporter(cmd.OutputPath)
	exportResult, err := exporter.Export(result.Entries, opts.Style())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Stderr, "Wrote %d entries (%d bytes) to %s\n",
		exportResult.EntriesProcessed, exportResult.BytesWritten, exportResult.OutputPath)
	return nil
}

func (cmd *ConvertCommand) logJob(record audit.ConversionRecord) error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	service := audit.NewService(jobs.NewRepository(db.DB))
	job := audit.NewConversionJob(record)
	if err := service.Log(job); err != nil {
		return err
	}
	if cmd.Verbose {
		fmt.Fprintf(cmd.Stderr, "Recorded job %s (%s)\n", job.JobID, job.Status)
	}
	return nil
}
