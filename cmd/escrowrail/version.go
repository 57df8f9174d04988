package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of escrowrail",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "escrowrail version %s\n", strings.TrimSpace(escrowrail.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
