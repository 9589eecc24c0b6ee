package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/protocompat"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of protocompat",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "protocompat version %s\n", strings.TrimSpace(protocompat.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
