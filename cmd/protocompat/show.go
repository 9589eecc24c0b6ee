package main

import (
	"github.com/aretw0/protocompat/internal/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Print a stored run",
	Long:  `Loads a run from the configured store and prints every round. Without RUN_ID, lists the stored runs.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return cli.ListRuns(cmd.Context(), cfg, cmd.OutOrStdout())
		}
		return cli.Show(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().String("format", "text", "Report format: text|markdown")
}
