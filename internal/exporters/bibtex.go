package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/refhub/internal/entities"
)

// biblatexRenames maps BibTeX field names to their BibLaTeX equivalents.
var biblatexRenames = []struct{ from, to string }{
	{entities.FieldJournal, "journaltitle"},
	{entities.FieldAddress, "location"},
}

// FormatEntry serializes one entry as a BibTeX block. Fields are written
// in insertion order; empty values are omitted.
func FormatEntry(entry *entities.ReferenceEntry, style entities.CitationStyle) string {
	if style == entities.CitationStyleBibLaTeX {
		entry = entry.Clone()
		for _, r := range biblatexRenames {
			entry.Rename(r.from, r.to)
		}
	}

	entryType := entry.Type
	if entryType == "" {
		entryType = entities.EntryTypeMisc
	}
	id := entry.ID
	if id == "" {
		id = "ref"
	}

	var lines []string
	for _, field := range entry.Fields() {
		if field.Value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s = {%s}", field.Name, field.Value))
	}

	return fmt.Sprintf("@%s{%s,\n%s\n}", entryType, id, strings.Join(lines, ",\n"))
}

// FormatEntries serializes entries separated by a blank line.
func FormatEntries(entries []*entities.ReferenceEntry, style entities.CitationStyle) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		blocks = append(blocks, FormatEntry(entry, style))
	}
	return strings.Join(blocks, "\n\n")
}

// BibFileExporter writes entries to a single .bib file.
type BibFileExporter struct {
	OutputPath string
}

func NewBibFileExporter(outputPath string) *BibFileExporter {
	return &BibFileExporter{OutputPath: outputPath}
}

func (exporter *BibFileExporter) Export(entries []*entities.ReferenceEntry, style entities.CitationStyle) (ExportResult, error) {
	if len(entries) == 0 {
		return ExportResult{}, fmt.Errorf("no entries to export")
	}

	if dir := filepath.Dir(exporter.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ExportResult{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	content := FormatEntries(entries, style) + "\n"
	if err := os.WriteFile(exporter.OutputPath, []byte(content), 0644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write %s: %w", exporter.OutputPath, err)
	}

	return ExportResult{
		EntriesProcessed: len(entries),
		BytesWritten:     len(content),
		OutputPath:       exporter.OutputPath,
	}, nil
}
