// AngelaMos | 2026
// admin.go

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/user"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account, or promote an existing user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		if username == "" {
			return errors.New("--username is required")
		}
		if len(password) < 8 {
			return errors.New("--password must be at least 8 characters")
		}

		cfg, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // command is exiting

		hasher := core.NewPasswordHasher(core.Argon2Params{
			Memory:  cfg.Password.MemoryKiB,
			Time:    cfg.Password.Iterations,
			Threads: cfg.Password.Parallelism,
			KeyLen:  core.DefaultArgon2Params.KeyLen,
		})
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		svc := user.NewService(user.NewRepository(db.DB))
		account, created, err := svc.EnsureAdmin(cmd.Context(), username, hash)
		if err != nil {
			return err
		}

		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", account.Username, account.ID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "promoted %s (id %d) to admin\n", account.Username, account.ID)
		}
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringP("username", "u", "", "admin username")
	adminCreateCmd.Flags().StringP("password", "p", "", "password for a new account")
	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}
