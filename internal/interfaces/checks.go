package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/refhub/internal/audit"
	"github.com/mrlokans/refhub/internal/conversion"
	"github.com/mrlokans/refhub/internal/database/jobs"
	"github.com/mrlokans/refhub/internal/exporters"
	"github.com/mrlokans/refhub/internal/http"
	"github.com/mrlokans/refhub/internal/scheduler"
	"github.com/mrlokans/refhub/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// JobStore implementations
var _ audit.JobStore = (*jobs.Repository)(nil)

// JobReader / ConversionLogger implementations
var _ http.JobReader = (*audit.Service)(nil)
var _ http.ConversionLogger = (*audit.Service)(nil)

// =============================================================================
// Conversion Pipeline
// =============================================================================

var _ http.Converter = (*conversion.Engine)(nil)
var _ exporters.EntryExporter = (*exporters.BibFileExporter)(nil)

// =============================================================================
// Background Maintenance
// =============================================================================

var _ tasks.JobCleaner = (*audit.Service)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
var _ http.TaskRunner = (*tasks.Client)(nil)
