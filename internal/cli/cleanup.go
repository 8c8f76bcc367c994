package cli

import (
	"fmt"

	"github.com/openfunnel/intentd/internal/engine"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Run the retention sweep once",
	Long:  "Discards signals older than the retention window and removes identities whose logs empty out, scores included.",
	RunE:  runCleanup,
}

func runCleanup(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	eng := engine.New(db, nil, nil, nil)
	if err := eng.RunCleanup(nil); err != nil {
		return err
	}

	fmt.Println("Retention sweep complete.")
	return nil
}
