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

	"github.com/akarpov/bookcrud/internal/auth"
	"github.com/akarpov/bookcrud/internal/catalog"
	"github.com/akarpov/bookcrud/internal/config"
	"github.com/akarpov/bookcrud/internal/database"
	authorsdb "github.com/akarpov/bookcrud/internal/database/authors"
	booksdb "github.com/akarpov/bookcrud/internal/database/books"
	readersdb "github.com/akarpov/bookcrud/internal/database/readers"
	http_controllers "github.com/akarpov/bookcrud/internal/http"
	"github.com/akarpov/bookcrud/internal/readers"
	"github.com/akarpov/bookcrud/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Run wires the application together and serves until interrupted.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting bookcrud v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	authorsRepo := authorsdb.NewRepository(db.DB)
	booksRepo := booksdb.NewRepository(db.DB)
	readersRepo := readersdb.NewRepository(db.DB)

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewVerifier(readersRepo, hasher)
	readerService := readers.NewService(readersRepo, hasher)
	search := catalog.NewSearch(db.DB, cfg.Catalog.AgeLimit)

	var cleanup *scheduler.CleanupScheduler
	if cfg.Cleanup.Enabled {
		cleanup = scheduler.NewCleanupScheduler(authorsRepo, cfg.Cleanup.Schedule)
		if err := cleanup.Start(); err != nil {
			log.Fatalf("Failed to start cleanup scheduler: %v", err)
		}
	} else {
		log.Printf("Author cleanup scheduler: disabled")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database: db,
		Authors:  authorsRepo,
		Books:    booksRepo,
		Readers:  readerService,
		Search:   search,
		Verifier: verifier,
		Version:  version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if cleanup != nil {
			cleanup.Stop()
		}
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	})
}

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}
