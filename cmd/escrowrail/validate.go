package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/escrowrail/pkg/schema"
	"github.com/spf13/cobra"
)

// errInvalidProfiles signals that at least one entity record failed validation.
var errInvalidProfiles = errors.New("entity validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [entity.yaml...]",
	Short: "Check entity profiles for consistency",
	Long: `Validates every entity profile of the entities directory, or the files given as
arguments, and reports every failing field.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := runValidate(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, r := range results {
			if r.OK() {
				fmt.Fprintf(out, "ok    %s (%s)\n", r.Path, r.Profile.LegalName)
				continue
			}
			failed++
			fmt.Fprintf(out, "FAIL  %s\n", r.Path)
			details := schema.ValidationErrors(r.Err)
			if details == nil {
				details = []error{r.Err}
			}
			for _, d := range details {
				fmt.Fprintf(out, "      - %v\n", d)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%w: %d of %d record(s)", errInvalidProfiles, failed, len(results))
		}
		fmt.Fprintf(out, "All %d profile(s) are valid! ✅\n", len(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("entities", "", "Entities directory (default from config)")
	validateCmd.Flags().Bool("loam", false, "Read the entities directory as a loam document repository")
}

func runValidate(cmd *cobra.Command, args []string) ([]schema.LoadResult, error) {
	if len(args) > 0 {
		results := make([]schema.LoadResult, 0, len(args))
		for _, p := range args {
			results = append(results, schema.LoadFile(p))
		}
		return results, nil
	}

	src, err := profileSource(cmd)
	if err != nil {
		return nil, err
	}
	return src.LoadProfiles(cmd.Context())
}
