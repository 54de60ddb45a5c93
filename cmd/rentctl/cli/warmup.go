package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/rentbrasil/rentbrasil/jobs"
)

// WarmupCmd enqueues a dashboard warmup on the worker queue.
func WarmupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warmup",
		Short: "Enqueue a dashboard cache warmup",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("redis")
			client := jobs.NewClient(asynq.RedisClientOpt{Addr: addr})
			defer client.Close()

			info, err := client.EnqueueDashboardWarmup(cmd.Context(), "cli")
			if errors.Is(err, asynq.ErrDuplicateTask) {
				fmt.Fprintln(cmd.OutOrStdout(), "warmup already queued")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued %s (%s)\n", info.ID, info.Queue)
			return nil
		},
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	cmd.Flags().String("redis", addr, "Redis address of the job queue")

	return cmd
}
