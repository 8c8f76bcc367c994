package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openfunnel/intentd/internal/config"
	"github.com/openfunnel/intentd/internal/engine"
	"github.com/openfunnel/intentd/internal/profile"
	"github.com/openfunnel/intentd/internal/server"
	"github.com/openfunnel/intentd/internal/store"
	"github.com/openfunnel/intentd/internal/workflow"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the capture API server and scoring scheduler",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Resolve database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var profiles profile.Source
	if cfg.Profile.URL != "" {
		profiles = profile.NewClient(cfg.Profile.URL)
		fmt.Fprintf(os.Stderr, "  profiles: %s\n", cfg.Profile.URL)
	} else {
		fmt.Fprintln(os.Stderr, "warning: no profile service configured, fit scores will be 0")
	}

	var workflows workflow.Trigger
	if cfg.Workflow.URL != "" {
		workflows = workflow.NewClient(cfg.Workflow.URL)
		fmt.Fprintf(os.Stderr, "  workflows: %s\n", cfg.Workflow.URL)
	} else {
		fmt.Fprintln(os.Stderr, "warning: no workflow service configured, triggers disabled")
	}

	eng := engine.New(db, profiles, workflows, nil)
	sched := engine.NewScheduler(eng, nil, cfg.Scheduler.ScoreInterval, cfg.Scheduler.BatchSize)

	// Catch up retention on startup, then let the daily tick own it.
	sched.Cleanup()

	schedCtx, stopSched := context.WithCancel(context.Background())
	defer stopSched()
	go sched.Run(schedCtx)

	srv := server.New(db, eng, sched, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "intentd serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", dbPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
