package config

const (
	// DefaultDatabasePath is the default path for the conversion job log database
	DefaultDatabasePath = "./data/refhub.db"

	// DefaultMaxContentBytes caps a single conversion request (10 MiB)
	DefaultMaxContentBytes = 10 << 20

	// DefaultJobCleanupSchedule runs job log retention daily at 03:00
	DefaultJobCleanupSchedule = "0 3 * * *"
)
