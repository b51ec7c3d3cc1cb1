package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional collaborators left nil in RouterConfig disable their routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())
	if cfg.MaxContentBytes > 0 {
		router.Use(BodyLimitMiddleware(cfg.MaxContentBytes))
	}

	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Conversion endpoints
	if cfg.Converter != nil {
		convert := NewConvertController(cfg.Converter, cfg.JobLogger, cfg.Auditor, cfg.MaxContentBytes)
		router.POST("/api/tools/ref/convert", convert.Convert)
		router.POST("/api/tools/ref/convert/upload", convert.Upload)
		router.POST("/api/tools/ref/download", convert.Download)
	}

	// Job log endpoints
	if cfg.JobReader != nil {
		jobsController := NewJobsController(cfg.JobReader)
		router.GET("/api/tools/ref/jobs", jobsController.ListJobs)
		router.GET("/api/tools/ref/jobs/stats", jobsController.GetStats)
		router.GET("/api/tools/ref/jobs/:id", jobsController.GetJob)
	}

	// Task management endpoints
	if cfg.TaskRunner != nil {
		tasksController := NewTasksController(cfg.TaskRunner, cfg.JobRetentionDays)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
