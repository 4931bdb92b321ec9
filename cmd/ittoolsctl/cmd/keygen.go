// AngelaMos | 2026
// keygen.go

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/ittools/internal/auth"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate the ES256 key pair used to sign access tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		privatePath, _ := cmd.Flags().GetString("private")
		publicPath, _ := cmd.Flags().GetString("public")
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			if _, err := os.Stat(privatePath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", privatePath)
			}
		}

		for _, p := range []string{privatePath, publicPath} {
			if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
				return fmt.Errorf("create key directory: %w", err)
			}
		}

		if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", privatePath, publicPath)
		return nil
	},
}

func init() {
	keygenCmd.Flags().String("private", "keys/private.pem", "private key output path")
	keygenCmd.Flags().String("public", "keys/public.pem", "public key output path")
	keygenCmd.Flags().BoolP("force", "f", false, "overwrite an existing private key")
	rootCmd.AddCommand(keygenCmd)
}
