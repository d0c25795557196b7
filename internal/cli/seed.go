package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/me/studyplan/internal/store"
	"github.com/spf13/cobra"
)

// newSeedCmd loads the demo dataset. It opens the database directly rather
// than going through the API, so it works before the server is first started.
func newSeedCmd() *cobra.Command {
	var flagDB string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample tasks, exams, and slots into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := flagDB
			if dbPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("cannot determine home directory: %w", err)
				}
				dir := filepath.Join(home, ".studyplan")
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("cannot create %s: %w", dir, err)
				}
				dbPath = filepath.Join(dir, "studyplan.db")
			}

			st, err := store.NewSQLiteStore(dbPath, logger)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			ctx := cmd.Context()
			if err := st.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			if err := store.Seed(ctx, st, time.Now().UTC()); err != nil {
				return fmt.Errorf("seed database: %w", err)
			}

			fmt.Printf("Seeded %s\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagDB, "db", "", "Database path (default ~/.studyplan/studyplan.db)")
	return cmd
}
