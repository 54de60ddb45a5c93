package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentbrasil/rentbrasil/internal/app"
	"github.com/rentbrasil/rentbrasil/internal/dashboard/export"
	"github.com/rentbrasil/rentbrasil/internal/platform/db"
)

// DashboardCmd computes the dashboard snapshot straight from the database.
func DashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the admin dashboard snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, _ := cmd.Flags().GetString("dsn")
			tz, _ := cmd.Flags().GetString("tz")
			asCSV, _ := cmd.Flags().GetBool("csv")
			if dsn == "" {
				return fmt.Errorf("dashboard: --dsn or PG_DSN is required")
			}

			ctx := cmd.Context()
			pool, err := db.New(ctx, dsn)
			if err != nil {
				return err
			}
			defer pool.Close()

			services, err := app.NewServices(&app.Config{AppTimezone: tz}, pool, nil, nil)
			if err != nil {
				return err
			}
			defer services.Close()

			stats, err := services.Dashboard.Compute(ctx)
			if err != nil {
				return err
			}

			if asCSV {
				return export.WriteStatsCSV(cmd.OutOrStdout(), stats)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}

	cmd.Flags().String("dsn", os.Getenv("PG_DSN"), "PostgreSQL connection string")
	cmd.Flags().String("tz", os.Getenv("APP_TIMEZONE"), "Reference timezone")
	cmd.Flags().Bool("csv", false, "Write CSV instead of JSON")

	return cmd
}
