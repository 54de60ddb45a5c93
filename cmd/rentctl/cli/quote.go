// Package cli holds the rentctl subcommands.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rentbrasil/rentbrasil/internal/pricing"
)

// QuoteCmd prints the rental cost of a date range at a daily rate, followed
// by the fixed-length tier previews.
func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quote",
		Short:   "Quote a rental for a date range",
		Example: "  rentctl quote --rate 25 --start 2024-01-15 --end 2024-01-17",
		RunE: func(cmd *cobra.Command, args []string) error {
			rateFlag, _ := cmd.Flags().GetString("rate")
			startFlag, _ := cmd.Flags().GetString("start")
			endFlag, _ := cmd.Flags().GetString("end")
			tz, _ := cmd.Flags().GetString("tz")

			rate, err := decimal.NewFromString(rateFlag)
			if err != nil {
				return fmt.Errorf("quote: invalid rate %q: %w", rateFlag, err)
			}
			loc, err := pricing.LoadLocation(tz)
			if err != nil {
				return err
			}
			start, err := pricing.ParseDate(startFlag, loc)
			if err != nil {
				return fmt.Errorf("quote: start: %w", err)
			}
			end := start
			if endFlag != "" {
				if end, err = pricing.ParseDate(endFlag, loc); err != nil {
					return fmt.Errorf("quote: end: %w", err)
				}
			}

			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(out, "Days:\t%d\n", pricing.DaysBetween(start, end))
			fmt.Fprintf(out, "Total:\t%s\n", pricing.TotalCost(rate, start, end).StringFixed(2))
			fmt.Fprintln(out, "Tiers:\t")
			for _, tier := range pricing.Tiers(rate) {
				fmt.Fprintf(out, "  %d day(s)\t%s\n", tier.Days, tier.Price.StringFixed(2))
			}
			return out.Flush()
		},
	}

	cmd.Flags().String("rate", "", "Daily rate")
	cmd.Flags().String("start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Last day (YYYY-MM-DD), defaults to start")
	cmd.Flags().String("tz", "", "Reference timezone")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
