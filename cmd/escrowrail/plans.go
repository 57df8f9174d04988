package main

import (
	"fmt"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/spf13/cobra"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Inspect saved plans",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved plan IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, closeStore := newManager(cfg, domain.LifecycleHooks{})
		defer closeStore()

		ids, err := mgr.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var plansShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Print a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, closeStore := newManager(cfg, domain.LifecycleHooks{})
		defer closeStore()

		plan, err := mgr.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		pretty, _ := cmd.Flags().GetBool("pretty")
		diagram, _ := cmd.Flags().GetBool("diagram")
		return writePlan(cmd.OutOrStdout(), plan, format, pretty, diagram)
	},
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, closeStore := newManager(cfg, domain.LifecycleHooks{})
		defer closeStore()
		return mgr.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(plansCmd)
	plansCmd.AddCommand(plansListCmd, plansShowCmd, plansDeleteCmd)

	addOutputFlags(plansShowCmd)
	plansShowCmd.Flags().Bool("diagram", false, "Append a Mermaid diagram of the rails")
}
