package exporters

import "github.com/mrlokans/refhub/internal/entities"

// EntryExporter writes converted reference entries somewhere.
type EntryExporter interface {
	Export(entries []*entities.ReferenceEntry, style entities.CitationStyle) (ExportResult, error)
}

type ExportResult struct {
	EntriesProcessed int    `json:"entries_processed"`
	BytesWritten     int    `json:"bytes_written"`
	OutputPath       string `json:"output_path,omitempty"`
}
