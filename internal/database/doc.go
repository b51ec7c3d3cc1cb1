// Package database provides the data access layer for the conversion job log.
//
// The connection and migrations live in database.go; each domain gets its
// own sub-package with a Repository over *gorm.DB:
//
//	database/
//	├── database.go   # Connection setup and migrations
//	└── jobs/         # Conversion job log queries and retention
//
// Usage:
//
//	db, err := database.NewDatabase("./data/refhub.db")
//	jobsRepo := jobs.NewRepository(db.DB)
//	page, total, err := jobsRepo.GetJobs(20, 0)
//
// Sub-packages add a compile-time check for the interfaces they satisfy,
// e.g. var _ audit.JobStore = (*jobs.Repository)(nil) in internal/interfaces.
package database
