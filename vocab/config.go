package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the controlled vocabulary tables and the handful of runtime
// settings the pipelines need. Passing it explicitly keeps imports and
// exports deterministic under alternate vocabularies.
type Config struct {
	DOIBaseURL       string `yaml:"doi_base_url"`
	DefaultPublisher string `yaml:"default_publisher"`

	// IncludeCitation adds the cached citation string to exported related
	// identifiers.
	IncludeCitation bool `yaml:"include_citation"`

	IdentifierTypes       []Entry `yaml:"identifier_types"`
	ResourceTypesGeneral  []Entry `yaml:"resource_types_general"`
	Languages             []Entry `yaml:"languages"`
	TitleTypes            []Entry `yaml:"title_types"`
	NameTypes             []Entry `yaml:"name_types"`
	DescriptionTypes      []Entry `yaml:"description_types"`
	NameIdentifierSchemes []Entry `yaml:"name_identifier_schemes"`
	ContributorTypes      []Entry `yaml:"contributor_types"`
	DateTypes             []Entry `yaml:"date_types"`
	RelationTypes         []Entry `yaml:"relation_types"`
	NumberTypes           []Entry `yaml:"number_types"`
	RightsIdentifiers     []Entry `yaml:"rights_identifiers"`

	IdentifierSchemeURIs    map[string]string `yaml:"identifier_scheme_uris"`
	RightsIdentifierURIs    map[string]string `yaml:"rights_identifier_uris"`
	RightsIdentifierSchemes map[string]string `yaml:"rights_identifier_schemes"`
	RightsSchemeURIs        map[string]string `yaml:"rights_scheme_uris"`
}

// Default returns a Config populated with the stock DataCite vocabularies.
func Default() *Config {
	return &Config{
		DOIBaseURL:              "https://doi.org/",
		IdentifierTypes:         identifierTypes,
		ResourceTypesGeneral:    resourceTypesGeneral,
		Languages:               languages,
		TitleTypes:              titleTypes,
		NameTypes:               nameTypes,
		DescriptionTypes:        descriptionTypes,
		NameIdentifierSchemes:   nameIdentifierSchemes,
		ContributorTypes:        contributorTypes,
		DateTypes:               dateTypes,
		RelationTypes:           relationTypes,
		NumberTypes:             numberTypes,
		RightsIdentifiers:       rightsIdentifiers,
		IdentifierSchemeURIs:    identifierSchemeURIs,
		RightsIdentifierURIs:    rightsIdentifierURIs,
		RightsIdentifierSchemes: rightsIdentifierSchemes,
		RightsSchemeURIs:        rightsSchemeURIs,
	}
}

// Load reads a YAML config file and overlays it onto the defaults. A table
// or scalar left unset in the file keeps its default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := Default()
	cfg.IncludeCitation = overlay.IncludeCitation
	if overlay.DOIBaseURL != "" {
		cfg.DOIBaseURL = overlay.DOIBaseURL
	}
	if overlay.DefaultPublisher != "" {
		cfg.DefaultPublisher = overlay.DefaultPublisher
	}
	if overlay.IdentifierTypes != nil {
		cfg.IdentifierTypes = overlay.IdentifierTypes
	}
	if overlay.ResourceTypesGeneral != nil {
		cfg.ResourceTypesGeneral = overlay.ResourceTypesGeneral
	}
	if overlay.Languages != nil {
		cfg.Languages = overlay.Languages
	}
	if overlay.TitleTypes != nil {
		cfg.TitleTypes = overlay.TitleTypes
	}
	if overlay.NameTypes != nil {
		cfg.NameTypes = overlay.NameTypes
	}
	if overlay.DescriptionTypes != nil {
		cfg.DescriptionTypes = overlay.DescriptionTypes
	}
	if overlay.NameIdentifierSchemes != nil {
		cfg.NameIdentifierSchemes = overlay.NameIdentifierSchemes
	}
	if overlay.ContributorTypes != nil {
		cfg.ContributorTypes = overlay.ContributorTypes
	}
	if overlay.DateTypes != nil {
		cfg.DateTypes = overlay.DateTypes
	}
	if overlay.RelationTypes != nil {
		cfg.RelationTypes = overlay.RelationTypes
	}
	if overlay.NumberTypes != nil {
		cfg.NumberTypes = overlay.NumberTypes
	}
	if overlay.RightsIdentifiers != nil {
		cfg.RightsIdentifiers = overlay.RightsIdentifiers
	}
	if overlay.IdentifierSchemeURIs != nil {
		cfg.IdentifierSchemeURIs = overlay.IdentifierSchemeURIs
	}
	if overlay.RightsIdentifierURIs != nil {
		cfg.RightsIdentifierURIs = overlay.RightsIdentifierURIs
	}
	if overlay.RightsIdentifierSchemes != nil {
		cfg.RightsIdentifierSchemes = overlay.RightsIdentifierSchemes
	}
	if overlay.RightsSchemeURIs != nil {
		cfg.RightsSchemeURIs = overlay.RightsSchemeURIs
	}
	return cfg, nil
}

// ValidIdentifierType reports whether the key is a known identifier type.
func (c *Config) ValidIdentifierType(key string) bool {
	return contains(c.IdentifierTypes, key)
}

// ValidResourceTypeGeneral reports whether the key is a known general
// resource type.
func (c *Config) ValidResourceTypeGeneral(key string) bool {
	return contains(c.ResourceTypesGeneral, key)
}

// ValidLanguage reports whether the key is a known language.
func (c *Config) ValidLanguage(key string) bool {
	return contains(c.Languages, key)
}

// ValidTitleType reports whether the key is a known title type. The empty
// key is the main title.
func (c *Config) ValidTitleType(key string) bool {
	return contains(c.TitleTypes, key)
}

// ValidNameType reports whether the key is a known name type.
func (c *Config) ValidNameType(key string) bool {
	return contains(c.NameTypes, key)
}

// ValidDescriptionType reports whether the key is a known description type.
func (c *Config) ValidDescriptionType(key string) bool {
	return contains(c.DescriptionTypes, key)
}

// ValidNameIdentifierScheme reports whether the key is a known name
// identifier scheme.
func (c *Config) ValidNameIdentifierScheme(key string) bool {
	return contains(c.NameIdentifierSchemes, key)
}

// ValidContributorType reports whether the key is a known contributor type.
func (c *Config) ValidContributorType(key string) bool {
	return contains(c.ContributorTypes, key)
}

// ValidDateType reports whether the key is a known date type.
func (c *Config) ValidDateType(key string) bool {
	return contains(c.DateTypes, key)
}

// ValidRelationType reports whether the key is a known relation type.
func (c *Config) ValidRelationType(key string) bool {
	return contains(c.RelationTypes, key)
}

// ValidNumberType reports whether the key is a known number type.
func (c *Config) ValidNumberType(key string) bool {
	return contains(c.NumberTypes, key)
}

// ValidRightsIdentifier reports whether the key is a known rights
// identifier.
func (c *Config) ValidRightsIdentifier(key string) bool {
	return contains(c.RightsIdentifiers, key)
}

// RightsLabel returns the display label of a rights identifier.
func (c *Config) RightsLabel(key string) string {
	return label(c.RightsIdentifiers, key)
}

// RightsURI returns the license URI of a rights identifier.
func (c *Config) RightsURI(key string) string {
	return c.RightsIdentifierURIs[key]
}

// RightsScheme returns the scheme (e.g. SPDX) of a rights identifier.
func (c *Config) RightsScheme(key string) string {
	return c.RightsIdentifierSchemes[key]
}

// RightsSchemeURI returns the scheme URI for a rights identifier's scheme.
func (c *Config) RightsSchemeURI(key string) string {
	return c.RightsSchemeURIs[c.RightsScheme(key)]
}

// RightsIdentifierByURI reverse-looks-up a rights identifier from its
// license URI. Returns "" when the URI is unknown.
func (c *Config) RightsIdentifierByURI(uri string) string {
	for key, u := range c.RightsIdentifierURIs {
		if u == uri {
			return key
		}
	}
	return ""
}

// SchemeURI returns the scheme URI for a name identifier scheme, or "".
func (c *Config) SchemeURI(scheme string) string {
	return c.IdentifierSchemeURIs[scheme]
}
