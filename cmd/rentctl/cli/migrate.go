package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rentbrasil/rentbrasil/db/migrations"
	"github.com/rentbrasil/rentbrasil/internal/platform/db"
)

// MigrateCmd applies pending schema migrations.
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, _ := cmd.Flags().GetString("dsn")
			if dsn == "" {
				return fmt.Errorf("migrate: --dsn or PG_DSN is required")
			}

			pool, err := db.New(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer pool.Close()

			if status, _ := cmd.Flags().GetBool("status"); status {
				states, err := db.MigrationStatus(cmd.Context(), pool, migrations.FS)
				if err != nil {
					return err
				}
				for _, st := range states {
					applied := "pending"
					if st.Applied {
						applied = "applied " + st.AppliedAt.Format(time.RFC3339)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", st.Name, applied)
				}
				return nil
			}

			applied, err := db.Migrate(cmd.Context(), pool, migrations.FS)
			for _, version := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", version)
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			}
			return nil
		},
	}

	cmd.Flags().Bool("status", false, "List migrations and their state without applying")
	cmd.Flags().String("dsn", os.Getenv("PG_DSN"), "PostgreSQL connection string")

	return cmd
}
