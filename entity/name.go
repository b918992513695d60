package entity

import "strings"

// Name represents a person or an organization. Names are shared across
// resources as creators, contributors and funders. The affiliation relation
// is a self-referential many-to-many; affiliations are in practice leaf
// Organizational names but nothing enforces that.
type Name struct {
	ID         uint `gorm:"primaryKey"`
	Name       string
	NameType   string
	GivenName  string
	FamilyName string

	NameIdentifiers []NameIdentifier `gorm:"constraint:OnDelete:CASCADE"`
	Affiliations    []*Name          `gorm:"many2many:name_affiliations;joinForeignKey:NameID;joinReferences:AffiliationID"`
}

// DisplayName returns the literal name, or "given family" when only the
// parts are set.
func (n *Name) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return strings.TrimSpace(n.GivenName + " " + n.FamilyName)
}

// NameIdentifier is a scheme-qualified identifier (ORCID, ROR, ...) owned by
// exactly one Name. The (identifier, scheme) pair is the natural key used
// for dedup-by-identity during import.
type NameIdentifier struct {
	ID         uint   `gorm:"primaryKey"`
	NameID     uint   `gorm:"index"`
	Identifier string `gorm:"uniqueIndex:idx_name_identifiers_value_scheme"`
	Scheme     string `gorm:"uniqueIndex:idx_name_identifiers_value_scheme"`
}

// Creator is the ordered join row between a Resource and a Name.
type Creator struct {
	ID         uint `gorm:"primaryKey"`
	ResourceID uint `gorm:"uniqueIndex:idx_creators_resource_name"`
	NameID     uint `gorm:"uniqueIndex:idx_creators_resource_name"`
	Name       Name
	Position   int
}

// Contributor is the ordered join row between a Resource and a Name,
// qualified by a contributor type.
type Contributor struct {
	ID         uint `gorm:"primaryKey"`
	ResourceID uint `gorm:"uniqueIndex:idx_contributors_resource_name"`
	NameID     uint `gorm:"uniqueIndex:idx_contributors_resource_name"`
	Name       Name
	Position   int

	ContributorType string
}
