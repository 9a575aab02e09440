package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tkingovr/pfilter/api"
	"github.com/tkingovr/pfilter/internal/filter"
	"github.com/tkingovr/pfilter/internal/stream"
)

var checkParticle string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate the filter chain for a single particle",
	Long: `Check prints whether a particle would be kept and, if not, which filter
rejected it first. Useful for testing and debugging chain configs.`,
	Example: `  pfilter check -c chain.yaml --particle '{"momentum":[2,0,0],"species":"e","multi_mask":1}'`,
	RunE:    runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkParticle, "particle", "", "particle as a JSON object")
	_ = checkCmd.MarkFlagRequired("particle")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, chain, err := buildChain(cmd.Context())
	if err != nil {
		return err
	}

	p, err := stream.Parse([]byte(checkParticle))
	if err != nil {
		return err
	}

	idx, keep := chain.FirstReject(p)
	resp := api.CheckResponse{
		Decision: api.DecisionOf(keep),
		Index:    idx,
		Energy:   p.Energy(),
	}
	if !keep {
		resp.RejectedBy = filter.Describe(chain.Filters()[idx])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
