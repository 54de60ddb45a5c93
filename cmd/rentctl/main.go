package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rentbrasil/rentbrasil/cmd/rentctl/cli"
)

func main() {
	_ = godotenv.Load()
	decimal.MarshalJSONWithoutQuotes = true

	rootCmd := &cobra.Command{
		Use:           "rentctl",
		Short:         "Rent Brasil operations tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		cli.QuoteCmd(),
		cli.DashboardCmd(),
		cli.WarmupCmd(),
		cli.MigrateCmd(),
		cli.HashPasswordCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
