// AngelaMos | 2026
// migrate.go

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/ittools/internal/core"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // command is exiting

		version, err := core.Migrate(db.DB.DB)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
