// AngelaMos | 2026
// root.go

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/ittools/internal/config"
	"github.com/carterperez-dev/ittools/internal/core"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "ittoolsctl",
	Short:         "Operate an IT Tools deployment",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// openDatabase loads the config and connects to its database. The caller
// closes the returned database.
func openDatabase(ctx context.Context) (*config.Config, *core.Database, error) {
	cfg, err := config.LoadFresh(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	return cfg, db, nil
}
