// Package document defines the canonical DataCite JSON document: the typed
// intermediate form produced by export, consumed by the XML renderer, and
// accepted by import. Every field is optional on the wire; absent data is
// never emitted as null or an empty collection.
package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SchemaVersion is the schema URI stamped on every exported document.
const SchemaVersion = "http://datacite.org/schema/kernel-4"

// Resource is the root of a DataCite JSON document.
type Resource struct {
	SchemaVersion        string                `json:"schemaVersion,omitempty"`
	Identifiers          []Identifier          `json:"identifiers,omitempty"`
	Creators             []Name                `json:"creators,omitempty"`
	Titles               []Title               `json:"titles,omitempty"`
	Publisher            string                `json:"publisher,omitempty"`
	PublicationYear      *Year                 `json:"publicationYear,omitempty"`
	Types                *Types                `json:"types,omitempty"`
	Subjects             []Subject             `json:"subjects,omitempty"`
	Contributors         []Name                `json:"contributors,omitempty"`
	Dates                []Date                `json:"dates,omitempty"`
	Language             string                `json:"language,omitempty"`
	AlternateIdentifiers []AlternateIdentifier `json:"alternateIdentifiers,omitempty"`
	RelatedIdentifiers   []RelatedIdentifier   `json:"relatedIdentifiers,omitempty"`
	Size                 string                `json:"size,omitempty"`
	Format               string                `json:"format,omitempty"`
	Version              string                `json:"version,omitempty"`
	RightsList           []Rights              `json:"rightsList,omitempty"`
	Descriptions         []Description         `json:"descriptions,omitempty"`
	GeoLocations         []GeoLocation         `json:"geoLocations,omitempty"`
	FundingReferences    []FundingReference    `json:"fundingReferences,omitempty"`
	RelatedItems         []RelatedItem         `json:"relatedItems,omitempty"`
}

// Year is a publication year that tolerates both JSON numbers and strings on
// input and always serializes as a string, the form the schema expects.
type Year int

func (y Year) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(y)))
}

func (y *Year) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("publicationYear: %w", err)
	}
	*y = Year(n)
	return nil
}

// Identifier is one entry of the identifiers array. A document carries at
// most one that import will honor.
type Identifier struct {
	Identifier     string `json:"identifier,omitempty"`
	IdentifierType string `json:"identifierType,omitempty"`
}

// Types carries the free-text and general resource types.
type Types struct {
	ResourceType        string `json:"resourceType,omitempty"`
	ResourceTypeGeneral string `json:"resourceTypeGeneral,omitempty"`
}

// Title is a typed title. The main title carries no titleType.
type Title struct {
	Title     string `json:"title"`
	TitleType string `json:"titleType,omitempty"`
}

// Name is a creator or contributor block. ContributorType is only set in the
// contributors array.
type Name struct {
	Name            string           `json:"name,omitempty"`
	NameType        string           `json:"nameType,omitempty"`
	ContributorType string           `json:"contributorType,omitempty"`
	GivenName       string           `json:"givenName,omitempty"`
	FamilyName      string           `json:"familyName,omitempty"`
	NameIdentifiers []NameIdentifier `json:"nameIdentifiers,omitempty"`
	Affiliations    []Affiliation    `json:"affiliations,omitempty"`
}

// NameIdentifier is a scheme-qualified identifier inside a name block.
type NameIdentifier struct {
	NameIdentifier       string `json:"nameIdentifier,omitempty"`
	NameIdentifierScheme string `json:"nameIdentifierScheme,omitempty"`
	SchemeURI            string `json:"schemeURI,omitempty"`
}

// Affiliation is an affiliation inside a name block, carrying at most one
// identifier.
type Affiliation struct {
	Affiliation                 string `json:"affiliation,omitempty"`
	AffiliationIdentifier       string `json:"affiliationIdentifier,omitempty"`
	AffiliationIdentifierScheme string `json:"affiliationIdentifierScheme,omitempty"`
}

// Subject is a subject/keyword block.
type Subject struct {
	Subject            string `json:"subject"`
	SubjectScheme      string `json:"subjectScheme,omitempty"`
	SchemeURI          string `json:"schemeURI,omitempty"`
	ValueURI           string `json:"valueURI,omitempty"`
	ClassificationCode string `json:"classificationCode,omitempty"`
}

// Date is a typed date block.
type Date struct {
	Date            string `json:"date"`
	DateType        string `json:"dateType"`
	DateInformation string `json:"dateInformation,omitempty"`
}

// AlternateIdentifier is one entry of the alternateIdentifiers array.
type AlternateIdentifier struct {
	AlternateIdentifier     string `json:"alternateIdentifier,omitempty"`
	AlternateIdentifierType string `json:"alternateIdentifierType,omitempty"`
}

// RelatedIdentifier is one entry of the relatedIdentifiers array. Citation
// is only emitted when the citation feature flag is on.
type RelatedIdentifier struct {
	RelationType          string `json:"relationType,omitempty"`
	RelatedIdentifier     string `json:"relatedIdentifier,omitempty"`
	RelatedIdentifierType string `json:"relatedIdentifierType,omitempty"`
	ResourceTypeGeneral   string `json:"resourceTypeGeneral,omitempty"`
	Citation              string `json:"citation,omitempty"`
}

// Rights is one entry of the rightsList array. Everything but the rights
// identifier is derived from the vocabulary on export.
type Rights struct {
	Rights                 string `json:"rights,omitempty"`
	RightsURI              string `json:"rightsURI,omitempty"`
	RightsIdentifier       string `json:"rightsIdentifier,omitempty"`
	RightsIdentifierScheme string `json:"rightsIdentifierScheme,omitempty"`
	SchemeURI              string `json:"schemeURI,omitempty"`
}

// Description is a typed description block. The text uses the escaped wire
// form with <br> paragraph breaks.
type Description struct {
	Description     string `json:"description"`
	DescriptionType string `json:"descriptionType,omitempty"`
}

// GeoLocation is one entry of the geoLocations array.
type GeoLocation struct {
	GeoLocationPlace    string       `json:"geoLocationPlace,omitempty"`
	GeoLocationPoint    *GeoPoint    `json:"geoLocationPoint,omitempty"`
	GeoLocationBox      *GeoBox      `json:"geoLocationBox,omitempty"`
	GeoLocationPolygons []GeoPolygon `json:"geoLocationPolygons,omitempty"`
}

// GeoPoint is a coordinate pair.
type GeoPoint struct {
	PointLongitude float64 `json:"pointLongitude"`
	PointLatitude  float64 `json:"pointLatitude"`
}

// GeoBox is a bounding box.
type GeoBox struct {
	WestBoundLongitude float64 `json:"westBoundLongitude"`
	EastBoundLongitude float64 `json:"eastBoundLongitude"`
	SouthBoundLatitude float64 `json:"southBoundLatitude"`
	NorthBoundLatitude float64 `json:"northBoundLatitude"`
}

// GeoPolygon is a polygon ring with an optional interior point.
type GeoPolygon struct {
	PolygonPoints  []GeoPoint `json:"polygonPoints"`
	InPolygonPoint *GeoPoint  `json:"inPolygonPoint,omitempty"`
}

// FundingReference is one entry of the fundingReferences array.
type FundingReference struct {
	FunderName           string `json:"funderName,omitempty"`
	FunderIdentifier     string `json:"funderIdentifier,omitempty"`
	FunderIdentifierType string `json:"funderIdentifierType,omitempty"`
	SchemeURI            string `json:"schemeURI,omitempty"`
	AwardNumber          string `json:"awardNumber,omitempty"`
	AwardURI             string `json:"awardURI,omitempty"`
	AwardTitle           string `json:"awardTitle,omitempty"`
}

// RelatedItem is one entry of the relatedItems array: a reduced document for
// the linked record plus the numbering fields of the link itself.
type RelatedItem struct {
	RelatedItemType           string  `json:"relatedItemType,omitempty"`
	RelationType              string  `json:"relationType,omitempty"`
	RelatedItemIdentifier     string  `json:"relatedItemIdentifier,omitempty"`
	RelatedItemIdentifierType string  `json:"relatedItemIdentifierType,omitempty"`
	Creators                  []Name  `json:"creators,omitempty"`
	Titles                    []Title `json:"titles,omitempty"`
	PublicationYear           *Year   `json:"publicationYear,omitempty"`
	Volume                    string  `json:"volume,omitempty"`
	Issue                     string  `json:"issue,omitempty"`
	Number                    string  `json:"number,omitempty"`
	NumberType                string  `json:"numberType,omitempty"`
	FirstPage                 string  `json:"firstPage,omitempty"`
	LastPage                  string  `json:"lastPage,omitempty"`
	Publisher                 string  `json:"publisher,omitempty"`
	Edition                   string  `json:"edition,omitempty"`
	Contributors              []Name  `json:"contributors,omitempty"`
}

// Parse decodes a DataCite JSON document.
func Parse(data []byte) (*Resource, error) {
	var r Resource
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &r, nil
}

// JSON encodes the document with indentation, stable for diffing.
func (r *Resource) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "    ")
}
