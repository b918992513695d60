package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records",
	Long: `List all records with their identifier and main title.

Examples:
  datacite-store list`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	records, err := s.ListResources(cmd.Context())
	if err != nil {
		return err
	}
	for _, record := range records {
		identifier := ""
		if record.Identifier != nil {
			identifier = record.Identifier.Identifier
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", record.ID, identifier, record.MainTitle())
	}
	return nil
}
