package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/refhub/internal/audit"
	"github.com/mrlokans/refhub/internal/config"
	"github.com/mrlokans/refhub/internal/conversion"
	"github.com/mrlokans/refhub/internal/database"
	"github.com/mrlokans/refhub/internal/database/jobs"
	http_controllers "github.com/mrlokans/refhub/internal/http"
	"github.com/mrlokans/refhub/internal/scheduler"
	"github.com/mrlokans/refhub/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then shut down within the configured timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	// Stop background work after in-flight requests have finished
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting refhub v%s", version)

	// Initialize job log database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	jobRepo := jobs.NewRepository(db.DB)
	auditService := audit.NewService(jobRepo)

	// Create auditor for saving incoming conversion requests
	auditor := audit.NewAuditor(cfg.Audit.Dir)
	if auditor.Enabled() {
		log.Printf("Request snapshots enabled in %s", cfg.Audit.Dir)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFromSettings(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupConversionJobsQueue(auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Periodic job log retention; falls back to inline cleanup without a queue
	var enqueuer scheduler.CleanupEnqueuer
	var taskRunner http_controllers.TaskRunner
	if taskClient != nil {
		enqueuer = taskClient
		taskRunner = taskClient
	}
	cleanupScheduler := scheduler.NewJobCleanupScheduler(cfg.Jobs, enqueuer, auditService)
	if err := cleanupScheduler.Start(context.Background()); err != nil {
		log.Printf("WARNING: job cleanup scheduler not started: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Converter:        conversion.NewEngine(),
		JobLogger:        auditService,
		JobReader:        auditService,
		Database:         db,
		Auditor:          auditor,
		MaxContentBytes:  cfg.Conversion.MaxContentBytes,
		TaskRunner:       taskRunner,
		JobRetentionDays: cfg.Jobs.RetentionDays,
		Version:          version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		cleanupScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		auditService.Wait()
	}

	Serve(router, cfg, onShutdown)
}
