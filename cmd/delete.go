package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Long: `Delete a record and its owned children. Shared entities (names,
identifiers, subjects, geolocations) stay in the store.

Examples:
  datacite-store delete 1`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid record id %q", args[0])
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	if err := s.DeleteResource(cmd.Context(), uint(id)); err != nil {
		return fmt.Errorf("deleting record %d: %w", id, err)
	}
	return nil
}
