package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/refhub/internal/config"
	"github.com/mrlokans/refhub/internal/database"
	"github.com/mrlokans/refhub/internal/database/jobs"
	"github.com/mrlokans/refhub/internal/entities"
)

// JobsCommand lists recent conversion jobs from the job log
type JobsCommand struct {
	DatabasePath string
	Limit        int
	Format       string

	Stdout io.Writer
}

func NewJobsCommand() *JobsCommand {
	return &JobsCommand{Stdout: os.Stdout}
}

func (cmd *JobsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the job log database")
	fs.IntVar(&cmd.Limit, "limit", 20, "Maximum number of jobs to list")
	fs.StringVar(&cmd.Format, "format", "", "Only list jobs with this input format (xml, ris, endnote, unknown)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s jobs [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List recent reference conversion jobs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Limit < 1 {
		return fmt.Errorf("-limit must be positive")
	}

	return nil
}

func (cmd *JobsCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database not found: %s", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := jobs.NewRepository(db.DB)

	var list []entities.ConversionJob
	var total int64
	if cmd.Format != "" {
		list, total, err = repo.GetJobsByFormat(entities.SourceFormat(cmd.Format), cmd.Limit, 0)
	} else {
		list, total, err = repo.GetJobs(cmd.Limit, 0)
	}
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	out := cmd.Stdout
	fmt.Fprintf(out, "Conversion jobs (%d of %d)\n", len(list), total)
	fmt.Fprintln(out, "==========================")
	for _, job := range list {
		source := job.SourceName
		if source == "" {
			source = "(inline)"
		}
		fmt.Fprintf(out, "%-4d %-19s %-9s %-8s -> %-8s %4d entries %3d warnings %5dms  %s\n",
			job.ID,
			job.CreatedAt.Format("2006-01-02 15:04:05"),
			job.Status,
			job.InputFormat,
			job.OutputFormat,
			job.EntryCount,
			job.WarningCount,
			job.DurationMs,
			source)
		if job.ErrorMsg != "" {
			fmt.Fprintf(out, "     [ERROR] %s\n", job.ErrorMsg)
		}
	}

	stats, err := repo.GetStats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	fmt.Fprintln(out, "\n=== Summary ===")
	fmt.Fprintf(out, "Total: %d (completed %d, failed %d)\n", stats.Total, stats.Completed, stats.Failed)
	fmt.Fprintf(out, "Entries converted: %d\n", stats.TotalEntries)
	fmt.Fprintf(out, "Average duration: %.1fms\n", stats.AvgDurationMs)
	for format, count := range stats.ByFormat {
		fmt.Fprintf(out, "  %s: %d\n", format, count)
	}
	return nil
}
