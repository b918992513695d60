package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPredicates(t *testing.T) {
	cfg := Default()

	if !cfg.ValidIdentifierType("DOI") {
		t.Fatalf("expected DOI to be a valid identifier type")
	}
	if cfg.ValidIdentifierType("ISBN-13") {
		t.Fatalf("expected ISBN-13 to be invalid")
	}
	if !cfg.ValidTitleType("") {
		t.Fatalf("expected the empty title type to be valid")
	}
	if !cfg.ValidNameType("Organizational") {
		t.Fatalf("expected Organizational to be a valid name type")
	}
	if cfg.ValidNameType("Robot") {
		t.Fatalf("expected Robot to be invalid")
	}
	if !cfg.ValidDateType("Issued") {
		t.Fatalf("expected Issued to be a valid date type")
	}
	if !cfg.ValidRelationType("IsPartOf") {
		t.Fatalf("expected IsPartOf to be a valid relation type")
	}
}

func TestRightsDerivation(t *testing.T) {
	cfg := Default()

	if got := cfg.RightsLabel("CC0-1.0"); got != "CC0 1.0 Universal Public Domain Dedication" {
		t.Fatalf("RightsLabel = %q", got)
	}
	if got := cfg.RightsURI("CC-BY-4.0"); got != "https://creativecommons.org/licenses/by/4.0/" {
		t.Fatalf("RightsURI = %q", got)
	}
	if got := cfg.RightsScheme("CC0-1.0"); got != "SPDX" {
		t.Fatalf("RightsScheme = %q", got)
	}
	if got := cfg.RightsSchemeURI("CC0-1.0"); got != "https://spdx.org/licenses/" {
		t.Fatalf("RightsSchemeURI = %q", got)
	}
	if got := cfg.RightsIdentifierByURI("https://creativecommons.org/publicdomain/zero/1.0/"); got != "CC0-1.0" {
		t.Fatalf("RightsIdentifierByURI = %q", got)
	}
	if got := cfg.RightsIdentifierByURI("https://example.org/license"); got != "" {
		t.Fatalf("expected empty identifier for unknown URI, got %q", got)
	}
}

func TestSchemeURI(t *testing.T) {
	cfg := Default()
	if got := cfg.SchemeURI("ORCID"); got != "https://orcid.org" {
		t.Fatalf("SchemeURI(ORCID) = %q", got)
	}
	if got := cfg.SchemeURI("unknown"); got != "" {
		t.Fatalf("SchemeURI(unknown) = %q", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
doi_base_url: https://handle.test/
default_publisher: Example Press
include_citation: true
languages:
  - key: en
    label: English
  - key: de
    label: German
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DOIBaseURL != "https://handle.test/" {
		t.Fatalf("DOIBaseURL = %q", cfg.DOIBaseURL)
	}
	if cfg.DefaultPublisher != "Example Press" {
		t.Fatalf("DefaultPublisher = %q", cfg.DefaultPublisher)
	}
	if !cfg.IncludeCitation {
		t.Fatalf("expected IncludeCitation to be set")
	}
	if !cfg.ValidLanguage("de") {
		t.Fatalf("expected overlaid language table to apply")
	}
	// tables left unset keep their defaults
	if !cfg.ValidIdentifierType("DOI") {
		t.Fatalf("expected identifier types to keep defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
