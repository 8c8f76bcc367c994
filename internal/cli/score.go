package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/openfunnel/intentd/internal/engine"
	"github.com/openfunnel/intentd/internal/intent"
	"github.com/openfunnel/intentd/internal/store"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [identity]",
	Short: "Recompute and print an identity's intent score",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

// openDB is a helper that opens the database for CLI commands.
func openDB() (*store.DB, error) {
	dbPath := os.Getenv("INTENTD_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}

func runScore(cmd *cobra.Command, args []string) error {
	identityID := args[0]

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	// Offline recompute: no profile service, no workflow triggers.
	eng := engine.New(db, nil, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	score, err := eng.Recompute(ctx, identityID)
	if err != nil {
		return fmt.Errorf("recompute: %w", err)
	}
	if score == nil {
		fmt.Printf("No signals for %s.\n", identityID)
		return nil
	}

	fmt.Printf("## %s\n\n", identityID)
	fmt.Printf("  overall:  %.1f\n", score.Overall)
	fmt.Printf("  stage:    %s\n", score.Stage)
	fmt.Printf("  urgency:  %.1f\n", score.Urgency)
	fmt.Printf("  fit:      %.1f\n", score.Fit)
	fmt.Printf("  trend:    %s\n", score.Trend)
	fmt.Println()
	for _, src := range intent.Sources {
		if score.Breakdown[src] == 0 {
			continue
		}
		fmt.Printf("  %-16s %.1f\n", src, score.Breakdown[src])
	}

	return nil
}
