// Package entity defines the relational data model for DataCite metadata
// records: the Resource root, its owned children, and the shared entities
// (Identifier, Name, Subject, GeoLocation) referenced across records.
package entity

import (
	"time"
)

// Resource is the root metadata record. Owned children (titles,
// descriptions, dates, creator/contributor rows, rights, funding references,
// related items, alternate/related identifier rows) cascade-delete with the
// resource; shared entities never do.
type Resource struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	IdentifierID *uint
	Identifier   *Identifier `gorm:"constraint:OnDelete:SET NULL"`

	Publisher           string
	PublicationYear     *int
	ResourceType        string
	ResourceTypeGeneral string
	Language            string
	Size                string
	Format              string
	Version             string

	CitePublisher           bool
	CiteResourceTypeGeneral bool
	CiteVersion             bool
	Public                  bool

	Titles               []Title               `gorm:"constraint:OnDelete:CASCADE"`
	Descriptions         []Description         `gorm:"constraint:OnDelete:CASCADE"`
	Dates                []Date                `gorm:"constraint:OnDelete:CASCADE"`
	Creators             []Creator             `gorm:"constraint:OnDelete:CASCADE"`
	Contributors         []Contributor         `gorm:"constraint:OnDelete:CASCADE"`
	AlternateIdentifiers []AlternateIdentifier `gorm:"constraint:OnDelete:CASCADE"`
	RelatedIdentifiers   []RelatedIdentifier   `gorm:"constraint:OnDelete:CASCADE"`
	RightsList           []Rights              `gorm:"constraint:OnDelete:CASCADE"`
	FundingReferences    []FundingReference    `gorm:"constraint:OnDelete:CASCADE"`
	RelatedItems         []RelatedItem         `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE"`

	Subjects     []*Subject     `gorm:"many2many:resource_subjects"`
	GeoLocations []*GeoLocation `gorm:"many2many:resource_geo_locations"`
}

// NewResource returns an empty resource with the citation toggles enabled,
// matching the model defaults of the admin surface.
func NewResource() *Resource {
	return &Resource{
		CitePublisher:           true,
		CiteResourceTypeGeneral: true,
		CiteVersion:             true,
	}
}

// MainTitle returns the title row with the empty title type, of which a
// resource is expected to have at most one.
func (r *Resource) MainTitle() string {
	for _, t := range r.Titles {
		if t.TitleType == "" {
			return t.Title
		}
	}
	return ""
}

// RelatedItem links another Resource as a bibliographic item (the journal an
// article appeared in, the book a chapter belongs to) together with the
// numbering fields that belong to the link, not to either record.
type RelatedItem struct {
	ID         uint `gorm:"primaryKey"`
	ResourceID uint `gorm:"uniqueIndex:idx_related_items_resource_item"`
	ItemID     uint `gorm:"uniqueIndex:idx_related_items_resource_item"`
	Item       *Resource

	RelationType string
	Volume       string
	Issue        string
	Number       string
	NumberType   string
	FirstPage    string
	LastPage     string
	Edition      string
}

// AllModels lists every model in dependency order for migration.
func AllModels() []any {
	return []any{
		&Identifier{},
		&Name{},
		&NameIdentifier{},
		&Subject{},
		&GeoLocation{},
		&GeoLocationPoint{},
		&GeoLocationBox{},
		&GeoLocationPolygon{},
		&Resource{},
		&Title{},
		&Description{},
		&Date{},
		&Creator{},
		&Contributor{},
		&AlternateIdentifier{},
		&RelatedIdentifier{},
		&Rights{},
		&FundingReference{},
		&RelatedItem{},
	}
}
