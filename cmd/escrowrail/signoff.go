package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/spf13/cobra"
)

var signoffCmd = &cobra.Command{
	Use:   "signoff <plan-id> <condition-id>",
	Short: "Record a manual decision on a release condition",
	Long: `Moves a PENDING release condition of a saved plan to SATISFIED, WAIVED or FAILED.
A note justifying the decision is required. Decided conditions cannot change again.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		note, _ := cmd.Flags().GetString("note")

		mgr, closeStore := newManager(cfg, domain.LifecycleHooks{})
		defer closeStore()

		diff, err := mgr.Sign(cmd.Context(), args[0], args[1], domain.ConditionStatus(strings.ToUpper(status)), strings.TrimSpace(note))
		if err != nil {
			return fmt.Errorf("sign-off failed: %w", err)
		}
		return writeDiff(cmd, diff)
	},
}

func init() {
	rootCmd.AddCommand(signoffCmd)

	signoffCmd.Flags().StringP("status", "s", "", "New status: SATISFIED, WAIVED or FAILED")
	signoffCmd.Flags().StringP("note", "m", "", "Justification for the decision")
	signoffCmd.MarkFlagRequired("status")
	signoffCmd.MarkFlagRequired("note")
	signoffCmd.Flags().Bool("json", false, "Print the condition changes as JSON")
}
