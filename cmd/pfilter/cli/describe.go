package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkingovr/pfilter/internal/filter"
)

var describeYAML bool

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the composed filter chain in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, chain, err := buildChain(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if describeYAML {
			data, err := cfg.MarshalYAML()
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = out.Write(data)
			return err
		}
		for i, f := range chain.Filters() {
			fmt.Fprintf(out, "%2d  %s\n", i, filter.Describe(f))
		}
		return nil
	},
}

func init() {
	describeCmd.Flags().BoolVar(&describeYAML, "yaml", false, "print the chain configuration as YAML instead")
	rootCmd.AddCommand(describeCmd)
}
