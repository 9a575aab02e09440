package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tkingovr/pfilter/internal/config"
	"github.com/tkingovr/pfilter/internal/particle"
	"github.com/tkingovr/pfilter/internal/selection"
)

var (
	cfgFile  string
	verbose  bool
	logLevel = new(slog.LevelVar)
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pfilter",
	Short: "Composable particle filters for simulation output",
	Long: `pfilter selects simulated particles with a chain of filters.
Every chain starts with the active-slot filter, continues with the filters
listed in the config file in order, and stops at the first filter that
rejects a particle.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logLevel.Set(slog.LevelDebug)
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "filter chain config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig returns the config named by --config, or the default config.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if !verbose {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
			logLevel.Set(level)
		}
	}
	return cfg, nil
}

// buildChain loads the config and composes its chain.
func buildChain(ctx context.Context) (*config.Config, *particle.Chain, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	admission, err := selection.AdmissionFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	chain, err := selection.BuildChain(ctx, selection.ChainConfig{
		Filters:   cfg.File.Filters,
		Admission: admission,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("building filter chain: %w", err)
	}
	return cfg, chain, nil
}
