// main is the entry point of the student registry application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open (and set up) the SQLite record store
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING:
//
//	go run ./cmd/student-registry --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-registry
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studentregistry/internal/config"
	"studentregistry/internal/http/handlers/student"
	"studentregistry/internal/registry"
	"studentregistry/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-registry",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// A storage open failure is fatal to the session: every operation
	// depends on the store, so report once and exit.
	store, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// The registry service owns the store handle; handlers and the
	// filter go through it rather than any ambient global.
	svc := registry.New(store)

	// Route table:
	//   POST   /api/students        → create a new student record
	//   GET    /api/students        → list records, ?q= filters them
	//   GET    /api/students/{id}   → fetch one record (edit mode)
	//   PUT    /api/students/{id}   → update a record in full
	//   DELETE /api/students/{id}   → delete a record
	//   GET    /api/meta            → form option sets (courses, years)
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.Create(svc))
	router.HandleFunc("GET /api/students", student.Search(svc))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(svc))
	router.HandleFunc("PUT /api/students/{id}", student.Update(svc))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(svc))
	router.HandleFunc("GET /api/meta", student.Meta())

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the environment:
// human-readable text at DEBUG in dev, JSON for staging and prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
