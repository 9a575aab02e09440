package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkingovr/pfilter/api"
	"github.com/tkingovr/pfilter/internal/audit"
)

var (
	historySince  time.Duration
	historySource string
	historyLimit  int
	historyStats  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded selection runs",
	Example: `  pfilter history -c chain.yaml --since 24h
  pfilter history --stats`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "only runs newer than this")
	historyCmd.Flags().StringVar(&historySource, "source", "", "only runs of this input")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "show at most this many of the most recent runs")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "print aggregate statistics instead")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := audit.NewJSONLStore(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer store.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if historyStats {
		stats, err := store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return enc.Encode(struct {
			*api.RunStats
			KeepRatio float64 `json:"keep_ratio"`
		}{stats, stats.KeepRatio()})
	}

	q := api.QueryFilter{Source: historySource}
	if historySince > 0 {
		q.Since = time.Now().Add(-historySince)
	}
	records, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	// most recent runs only
	if historyLimit > 0 && len(records) > historyLimit {
		records = records[len(records)-historyLimit:]
	}
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
