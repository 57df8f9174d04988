package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/escrowrail/internal/presentation/graph"
	"github.com/aretw0/escrowrail/internal/presentation/report"
	"github.com/aretw0/escrowrail/internal/presentation/tui"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build the escrow and settlement rail plan for a deal group",
	Long: `Builds the escrow arrangement and one settlement leg per counterparty from the
entity profiles. With --auto-resolve the evidence data room is checked against the
release conditions. With --save the plan is written to the configured store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		name, _ := flags.GetString("name")
		paths, _ := flags.GetStringArray("entity")
		currency, _ := flags.GetString("currency")
		if currency == "" {
			currency = cfg.Currency
		}
		rawAmount, _ := flags.GetString("amount")
		amount, err := parseAmount(rawAmount)
		if err != nil {
			return err
		}

		engine, err := newEngine(cfg, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		profiles, failed, err := loadProfiles(ctx, cmd, engine, paths)
		if err != nil {
			return err
		}

		plan := engine.BuildPlan(ctx, name, profiles, currency, amount)
		for _, f := range failed {
			plan.OverallIssues = append(plan.OverallIssues, "Could not load entity: "+f.Path)
		}

		if resolve, _ := flags.GetBool("auto-resolve"); resolve {
			evidence, err := loadEvidence(ctx, cmd)
			if err != nil {
				return err
			}
			n := engine.AutoResolve(ctx, plan, profiles, evidence)
			logger.InfoContext(ctx, "conditions auto-resolved", "plan_id", plan.ID, "satisfied", n, "evidence_files", evidence.Len())
		}

		if save, _ := flags.GetBool("save"); save {
			mgr, closeStore := newManager(cfg, domain.LifecycleHooks{})
			defer closeStore()
			if err := mgr.Save(ctx, plan); err != nil {
				return fmt.Errorf("failed to save plan: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved plan %s\n", plan.ID)
		}

		format, _ := flags.GetString("format")
		pretty, _ := flags.GetBool("pretty")
		diagram, _ := flags.GetBool("diagram")
		return writePlan(cmd.OutOrStdout(), plan, format, pretty, diagram)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringP("name", "n", "", "Deal group name")
	planCmd.MarkFlagRequired("name")
	addSourceFlags(planCmd)
	planCmd.Flags().String("evidence", "", "Evidence directory (default from config)")
	planCmd.Flags().StringP("currency", "c", "", "Escrow currency (default from config)")
	planCmd.Flags().StringP("amount", "a", "0", "Escrow amount")
	planCmd.Flags().Bool("auto-resolve", false, "Resolve release conditions from the evidence directory")
	planCmd.Flags().Bool("save", false, "Save the plan to the configured store")
	addOutputFlags(planCmd)
	planCmd.Flags().Bool("diagram", false, "Append a Mermaid diagram of the rails")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, json or mermaid")
	cmd.Flags().Bool("pretty", false, "Render markdown with glamour even when not on a terminal")
}

func parseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid amount %q: must not be negative", s)
	}
	return d, nil
}

func writePlan(w io.Writer, plan *domain.EscrowPlan, format string, pretty, diagram bool) error {
	switch format {
	case "json":
		return writeJSON(w, plan)
	case "mermaid":
		_, err := io.WriteString(w, graph.GenerateMermaid(plan))
		return err
	case "markdown", "":
		if tui.IsTerminal(w) {
			tui.PrintBanner(w)
			fmt.Fprintf(w, "%s  %s\n", plan.DealName, tui.Status(w, plan.OverallValid))
		}
		return tui.Write(w, report.Markdown(plan, report.Options{Diagram: diagram}), pretty)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
