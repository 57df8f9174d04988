package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the bank directory and escrow agent roster",
}

var registryBanksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List known banks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cfg, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		banks := engine.Directory().Banks()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), banks)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SWIFT\tCOUNTRY\tTIER\tNAME")
		for _, b := range banks {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Code, b.Country, b.Tier, b.Name)
		}
		return tw.Flush()
	},
}

var registryAgentCmd = &cobra.Command{
	Use:   "agent <swift>",
	Short: "Show one escrow agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cfg, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		agent, ok := engine.Agents().Agent(args[0])
		if !ok {
			return fmt.Errorf("unknown escrow agent: %s", args[0])
		}
		return writeJSON(cmd.OutOrStdout(), agent)
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryBanksCmd, registryAgentCmd)

	registryBanksCmd.Flags().Bool("json", false, "Print the directory as JSON")
}
