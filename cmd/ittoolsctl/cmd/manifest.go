// AngelaMos | 2026
// manifest.go

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/routes"
	"github.com/carterperez-dev/ittools/internal/toolkit"
)

var errUnmappedTools = errors.New("active tools without widgets")

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the compiled widget manifest",
}

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every widget identifier compiled into this build",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, id := range toolkit.Default().Identifiers() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
	},
}

var manifestCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report active catalog tools that have no widget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // command is exiting

		manifest := toolkit.Default()
		svc := catalog.NewService(catalog.NewRepository(db.DB), manifest)
		composer := routes.NewComposer(svc, manifest, slog.Default())

		if err := composer.Refresh(cmd.Context()); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tIDENTIFIER\tPREMIUM\tWIDGET")
		for _, r := range composer.Table().Routes() {
			widget := "ok"
			if !r.Available {
				widget = "MISSING"
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", r.Path, r.Identifier, r.Premium, widget)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if missing := composer.Table().Unavailable(); len(missing) > 0 {
			return fmt.Errorf("%w: %d", errUnmappedTools, len(missing))
		}
		return nil
	},
}

func init() {
	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestCheckCmd)
	rootCmd.AddCommand(manifestCmd)
}
