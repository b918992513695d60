package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/datacite-store/citation"
	"github.com/lehigh-university-libraries/datacite-store/exporter"
	"github.com/lehigh-university-libraries/datacite-store/render"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a record",
	Long: `Export a record as DataCite JSON, DataCite Kernel-4 XML, a BibTeX
entry or a citation string.

Output defaults to stdout.

Examples:
  datacite-store export 1
  datacite-store export 1 --format xml
  datacite-store export 1 --format bibtex -o record.bib
  datacite-store export 1 --format citation`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, xml, bibtex, citation)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
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

	var out []byte
	switch exportFormat {
	case "json":
		doc := exporter.Export(record, cfg)
		out, err = doc.JSON()
		if err != nil {
			return err
		}
		out = append(out, '\n')
	case "xml":
		out = render.XML(exporter.Export(record, cfg))
	case "bibtex":
		out = []byte(citation.BibTeX(record, cfg.DOIBaseURL))
	case "citation":
		out = []byte(citation.Citation(record, cfg.DOIBaseURL) + "\n")
	default:
		return fmt.Errorf("unknown format %q (json, xml, bibtex, citation)", exportFormat)
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
