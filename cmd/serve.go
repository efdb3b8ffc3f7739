package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/database/postgres"
	"github.com/tablomester/tablomester/internal/web"
	"github.com/tablomester/tablomester/internal/web/handlers"
	"github.com/tablomester/tablomester/internal/web/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Tablómester web server.
The web server provides a browser-based interface for uploading photo
batches, running the filename matcher, and reviewing the photo-to-person
assignments before they are committed to the gallery.

Session and review state persistence is enabled when DATABASE_URL is set;
without it everything lives in memory and dies with the process.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Gallery.URL == "" {
		return errors.New("GALLERY_URL environment variable is required")
	}

	addr := mustGetString(cmd, "addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	var sessionRepo middleware.SessionRepository
	var reviewStore handlers.ReviewStore

	if cfg.Database.URL != "" {
		fmt.Println("Connecting to PostgreSQL database...")
		pool, err := postgres.Connect(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		defer pool.Close()

		sessionRepo = postgres.NewSessionRepository(pool)
		reviewStore = postgres.NewReviewRepository(pool)
		fmt.Println("Session and review persistence enabled (PostgreSQL)")
	} else {
		fmt.Println("DATABASE_URL not set, running with in-memory state only")
	}

	server := web.NewServer(cfg, addr, sessionRepo, reviewStore)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Tablómester on http://%s\n", addr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
