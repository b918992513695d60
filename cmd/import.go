package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/datacite-store/document"
	"github.com/lehigh-university-libraries/datacite-store/entity"
	"github.com/lehigh-university-libraries/datacite-store/importer"
)

var (
	importInput    string
	importResource uint
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a DataCite JSON document",
	Long: `Import a DataCite JSON document into the store.

Without --resource a new record is created; with it, the document is
imported over the existing record. Invalid sub-records are skipped and
logged, geolocation shape errors are reported but do not abort the rest
of the document.

Input defaults to stdin.

Examples:
  datacite-store import -i record.json
  cat record.json | datacite-store import
  datacite-store import -i record.json --resource 3`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "Input file (default: stdin)")
	importCmd.Flags().UintVar(&importResource, "resource", 0, "Existing record id to import over")
}

func runImport(cmd *cobra.Command, args []string) (err error) {
	var input io.Reader
	if importInput != "" {
		f, err := os.Open(importInput)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
	} else {
		input = os.Stdin
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s.DOIBaseURL = cfg.DOIBaseURL

	var target *entity.Resource
	ctx := cmd.Context()
	if importResource != 0 {
		target, err = s.GetResource(ctx, importResource)
		if err != nil {
			return fmt.Errorf("loading record %d: %w", importResource, err)
		}
	}

	im := importer.New(s, cfg, slog.Default())
	record, importErr := im.ImportResource(ctx, target, doc)
	if record == nil {
		return importErr
	}
	if importErr != nil {
		fmt.Fprintf(os.Stderr, "imported with rejected shapes:\n%v\n", importErr)
	}

	fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatUint(uint64(record.ID), 10))
	return nil
}
