package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail/internal/presentation/report"
	"github.com/aretw0/escrowrail/internal/presentation/tui"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/schema"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Resolve the bank chain between two entities",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var profiles [2]domain.Profile
		for i, name := range []string{"originator", "beneficiary"} {
			p, _ := flags.GetString(name)
			res := schema.LoadFile(p)
			if !res.OK() {
				return fmt.Errorf("%s %s: %w", name, p, res.Err)
			}
			profiles[i] = res.Profile
		}
		currency, _ := flags.GetString("currency")
		if currency == "" {
			currency = cfg.Currency
		}

		engine, err := newEngine(cfg, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		path := engine.ResolvePath(profiles[0], profiles[1], strings.ToUpper(currency))

		format, _ := flags.GetString("format")
		pretty, _ := flags.GetBool("pretty")
		switch format {
		case "json":
			return writeJSON(cmd.OutOrStdout(), path)
		case "markdown", "":
			return tui.Write(cmd.OutOrStdout(), report.PathMarkdown(path), pretty)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)

	pathCmd.Flags().StringP("originator", "o", "", "Originator entity YAML")
	pathCmd.Flags().StringP("beneficiary", "b", "", "Beneficiary entity YAML")
	pathCmd.MarkFlagRequired("originator")
	pathCmd.MarkFlagRequired("beneficiary")
	pathCmd.Flags().StringP("currency", "c", "", "Currency (default from config)")
	addOutputFlags(pathCmd)
}
