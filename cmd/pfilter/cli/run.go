package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tkingovr/pfilter/api"
	"github.com/tkingovr/pfilter/internal/audit"
	"github.com/tkingovr/pfilter/internal/selection"
	"github.com/tkingovr/pfilter/internal/stream"
)

var (
	runOutput  string
	runWorkers int
	runNoLog   bool
)

var runCmd = &cobra.Command{
	Use:   "run [particles.jsonl]",
	Short: "Filter a JSON Lines particle stream",
	Long: `Run reads particles (one JSON object per line) from a file or stdin,
evaluates the filter chain for each of them in parallel batches and writes the
kept particles in input order. A summary of every run is appended to the run
log in settings.log_dir.`,
	Example: `  pfilter run -c chain.yaml frames.jsonl -o kept.jsonl
  cat frames.jsonl | pfilter run -c chain.yaml > kept.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output file (default stdout)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "evaluation workers (overrides settings.workers)")
	runCmd.Flags().BoolVar(&runNoLog, "no-log", false, "do not record the run in the run log")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, chain, err := buildChain(ctx)
	if err != nil {
		return err
	}

	source := "-"
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		source = args[0]
		f, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	particles, err := stream.ReadAll(in)
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if runWorkers > 0 {
		workers = runWorkers
	}
	runner, err := selection.NewRunner(chain, workers, cfg.BatchSize, logger)
	if err != nil {
		return err
	}
	res, err := runner.Run(ctx, particles)
	if err != nil {
		return fmt.Errorf("selection pass: %w", err)
	}

	written, err := writeKept(res.Select(particles))
	if err != nil {
		return err
	}

	logger.Info("selection finished",
		slog.String("source", source),
		slog.Int("total", res.Total),
		slog.Int("kept", written),
		slog.Duration("duration", res.Duration),
	)

	if runNoLog {
		return nil
	}
	store, err := audit.NewJSONLStore(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer store.Close()

	return store.Write(ctx, &api.RunRecord{
		Source:   source,
		Config:   cfg.Path,
		Chain:    chain.String(),
		Total:    res.Total,
		Kept:     res.Kept,
		Rejected: res.Rejected,
		Workers:  workers,
		Duration: res.Duration,
	})
}

// writeKept writes kept to the output and returns how many particles were
// written.
func writeKept(kept []api.Particle) (n int, err error) {
	var out io.Writer = os.Stdout
	if runOutput != "" {
		f, cerr := os.Create(runOutput)
		if cerr != nil {
			return 0, fmt.Errorf("creating output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}

	w := stream.NewWriter(out)
	for i := range kept {
		if err := w.Write(&kept[i]); err != nil {
			return w.Count(), err
		}
	}
	return w.Count(), w.Flush()
}
