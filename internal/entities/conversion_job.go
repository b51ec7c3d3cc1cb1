package entities

import "time"

type ConversionJobStatus string

const (
	ConversionJobCompleted ConversionJobStatus = "COMPLETED"
	ConversionJobFailed    ConversionJobStatus = "FAILED"
)

// ReferenceConverterSlug identifies the reference converter among the hub's tools.
const ReferenceConverterSlug = "reference-converter"

// ConversionJob is one logged run of the reference converter.
type ConversionJob struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	JobID        string              `gorm:"uniqueIndex;size:36" json:"job_id"`
	ResourceSlug string              `gorm:"index;size:100" json:"resource_slug"`
	InputFormat  SourceFormat        `gorm:"index;size:20" json:"input_format"`
	OutputFormat CitationStyle       `gorm:"size:20" json:"output_format"`
	Status       ConversionJobStatus `gorm:"index;size:20" json:"status"`
	SourceName   string              `gorm:"size:255" json:"source_name,omitempty"`
	SourceSize   int                 `json:"source_size"`
	EntryCount   int                 `json:"entry_count"`
	WarningCount int                 `json:"warning_count"`
	ErrorCount   int                 `json:"error_count"`
	DurationMs   int64               `json:"duration_ms"`
	Metadata     string              `gorm:"type:text" json:"metadata,omitempty"` // JSON of the options used
	ErrorMsg     string              `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt    time.Time           `gorm:"index" json:"created_at"`
}

func (ConversionJob) TableName() string {
	return "conversion_jobs"
}

// ConversionJobStats summarises the job log.
type ConversionJobStats struct {
	Total         int64            `json:"total"`
	Completed     int64            `json:"completed"`
	Failed        int64            `json:"failed"`
	TotalEntries  int64            `json:"total_entries"`
	AvgDurationMs float64          `json:"avg_duration_ms"`
	ByFormat      map[string]int64 `json:"by_format"`
}
