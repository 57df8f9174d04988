package main

import (
	"fmt"

	"github.com/aretw0/escrowrail/internal/presentation/report"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <plan-id>",
	Short: "Satisfy release conditions of a saved plan from the evidence data room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		engine, err := newEngine(cfg, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		paths, _ := cmd.Flags().GetStringArray("entity")
		profiles, _, err := loadProfiles(ctx, cmd, engine, paths)
		if err != nil {
			return err
		}
		evidence, err := loadEvidence(ctx, cmd)
		if err != nil {
			return err
		}

		mgr, closeStore := newManager(cfg, domain.LifecycleHooks{})
		defer closeStore()
		diff, err := mgr.AutoResolve(ctx, args[0], profiles, evidence)
		if err != nil {
			return fmt.Errorf("failed to resolve plan %s: %w", args[0], err)
		}
		return writeDiff(cmd, diff)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	addSourceFlags(resolveCmd)
	resolveCmd.Flags().String("evidence", "", "Evidence directory (default from config)")
	resolveCmd.Flags().Bool("json", false, "Print the condition changes as JSON")
}

func writeDiff(cmd *cobra.Command, diff *domain.TermsDiff) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), diff)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), report.DiffMarkdown(diff))
	return err
}
