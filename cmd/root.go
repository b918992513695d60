// Package cmd provides CLI commands for datacite-store.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/datacite-store/store"
	"github.com/lehigh-university-libraries/datacite-store/vocab"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var (
	dbDSN      string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "datacite-store",
	Short: "Manage DataCite metadata records",
	Long: `datacite-store manages bibliographic metadata records in a relational
store and converts them between DataCite JSON, DataCite Kernel-4 XML and
BibTeX/citation text.

Examples:
  datacite-store import -i record.json
  cat record.json | datacite-store import
  datacite-store export 1 --format xml
  datacite-store export 1 --format bibtex -o record.bib
  datacite-store validate 1
  datacite-store copy 1`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore connects to the database named by the --db flag.
func openStore() (*store.Store, error) {
	s, err := store.Open(dbDSN)
	if err != nil {
		return nil, fmt.Errorf("opening store %q: %w", dbDSN, err)
	}
	return s, nil
}

// loadConfig returns the vocabulary config, overlaid from --config when set.
func loadConfig() (*vocab.Config, error) {
	if configFile == "" {
		return vocab.Default(), nil
	}
	return vocab.Load(configFile)
}

func init() {
	setupLogger()
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "datacite.db", "Database DSN (SQLite path or postgres:// URL)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Vocabulary config YAML file")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
}
