package main

import (
	"github.com/aretw0/protocompat/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the protocol graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the protocol.
With --against, states are annotated with their best score against the other protocol.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		against, _ := cmd.Flags().GetString("against")
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if cmd.Flags().Changed("rounds") {
			cfg.Rounds, _ = cmd.Flags().GetInt("rounds")
		}

		return cli.RenderGraph(cmd.Context(), cli.GraphOptions{
			File:      args[0],
			Against:   against,
			Threshold: threshold,
			Config:    cfg,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("against", "", "Second graph used to colour states by best score")
	graphCmd.Flags().Float64("threshold", 0.9, "Score at or above which a state is drawn as matched")
	graphCmd.Flags().Int("rounds", 1, "Rounds computed for the overlay")
}
