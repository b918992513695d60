package entity

// Identifier is a persistent identifier (DOI, Handle, URL, ...). Identifiers
// are shared: one row can be a resource's own identifier and at the same
// time the target of alternate/related identifier links on other resources.
// The (identifier, identifier_type) pair is the natural key.
type Identifier struct {
	ID             uint   `gorm:"primaryKey"`
	Identifier     string `gorm:"uniqueIndex:idx_identifiers_value_type"`
	IdentifierType string `gorm:"uniqueIndex:idx_identifiers_value_type"`

	// Citation caches the rendered citation of the resource this identifier
	// belongs to, so related-identifier exports and search don't re-render.
	Citation string `gorm:"type:text"`
}

// AlternateIdentifier is an ordered join row between a Resource and an
// Identifier.
type AlternateIdentifier struct {
	ID           uint `gorm:"primaryKey"`
	ResourceID   uint `gorm:"uniqueIndex:idx_alternate_identifiers_resource_identifier"`
	IdentifierID uint `gorm:"uniqueIndex:idx_alternate_identifiers_resource_identifier"`
	Identifier   Identifier
	Position     int
}

// RelatedIdentifier is an ordered join row between a Resource and an
// Identifier carrying the relation metadata.
type RelatedIdentifier struct {
	ID           uint `gorm:"primaryKey"`
	ResourceID   uint `gorm:"uniqueIndex:idx_related_identifiers_resource_identifier"`
	IdentifierID uint `gorm:"uniqueIndex:idx_related_identifiers_resource_identifier"`
	Identifier   Identifier
	Position     int

	RelationType        string
	ResourceTypeGeneral string
}
