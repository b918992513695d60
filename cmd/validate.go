package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/datacite-store/exporter"
	"github.com/lehigh-university-libraries/datacite-store/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <id>",
	Short: "Validate a record against the DataCite schema",
	Long: `Validate a record's exported document against the structural DataCite
schema and list every violation.

Validation is advisory: an invalid record stays in the store. The exit
code is non-zero when violations are found.

Examples:
  datacite-store validate 1`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid record id %q", args[0])
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	record, err := s.GetResource(cmd.Context(), uint(id))
	if err != nil {
		return fmt.Errorf("loading record %d: %w", id, err)
	}

	violations, err := validate.Document(exporter.Export(record, cfg))
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "valid")
		return nil
	}
	for _, violation := range violations {
		fmt.Fprintln(cmd.OutOrStdout(), violation)
	}
	return fmt.Errorf("%d schema violations", len(violations))
}
