package http

import (
	"github.com/mrlokans/refhub/internal/audit"
	"github.com/mrlokans/refhub/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Converter Converter
	JobLogger ConversionLogger
	JobReader JobReader
	Database  *database.Database

	// Raw request snapshots (optional)
	Auditor *audit.Auditor

	// Requests with more content bytes are rejected; 0 disables the check
	MaxContentBytes int64

	// Task queue client (optional)
	TaskRunner       TaskRunner
	JobRetentionDays int

	// Application info
	Version string
}
