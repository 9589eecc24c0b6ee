package main

import (
	"github.com/aretw0/protocompat/internal/cli"
	"github.com/spf13/cobra"
)

var computeCmd = &cobra.Command{
	Use:   "compute --graph A --graph B",
	Short: "Compute the compatibility matrices of two protocol graphs",
	Long: `Loads both graph descriptions, prints the generation report, then computes rounds 0..N.
Every round is printed and written to the output file, which is replaced if it exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		graphs, _ := cmd.Flags().GetStringArray("graph")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunCompute(ctx, cli.ComputeOptions{
			Graphs: graphs,
			Config: cfg,
			Stdout: cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(computeCmd)

	computeCmd.Flags().StringArrayP("graph", "g", nil, "Graph description file (give exactly two)")
	computeCmd.Flags().IntP("iterate", "i", 1, "Number of rounds after the initial one")
	computeCmd.Flags().StringP("output", "o", "result.txt", "Output file (empty to skip)")
	computeCmd.Flags().String("format", "text", "Report format: text|markdown")
	computeCmd.Flags().Bool("no-banner", false, "Do not print the banner")
	_ = computeCmd.MarkFlagRequired("graph")
}
