package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// HashPasswordCmd prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH. The
// password is read from the first line of stdin.
func HashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash the admin password read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, _ := cmd.Flags().GetInt("cost")

			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("hash-password: read stdin: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return errors.New("hash-password: empty password")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
			if err != nil {
				return fmt.Errorf("hash-password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}

	cmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost")

	return cmd
}
