package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a record",
	Long: `Copy a record. Owned children (titles, descriptions, dates, creator
and contributor rows, rights, funding references, related items) are
duplicated; shared entities (names, identifiers, subjects, geolocations)
are linked to the same rows. The copy starts without an identifier.

Examples:
  datacite-store copy 1`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid record id %q", args[0])
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	dup, err := s.CopyResource(cmd.Context(), uint(id))
	if err != nil {
		return fmt.Errorf("copying record %d: %w", id, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatUint(uint64(dup.ID), 10))
	return nil
}
