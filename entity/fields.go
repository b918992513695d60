package entity

import (
	"fmt"
	"strings"
	"time"
)

// Title is an owned, typed title row. The empty title type marks the main
// title; each type is unique per resource.
type Title struct {
	ID         uint   `gorm:"primaryKey"`
	ResourceID uint   `gorm:"uniqueIndex:idx_titles_resource_type"`
	Title      string `gorm:"size:256"`
	TitleType  string `gorm:"uniqueIndex:idx_titles_resource_type"`
}

// Description is an owned, typed description row, unique per (resource,
// type). Text is stored with newline paragraph breaks; the wire form uses
// <br> tokens instead.
type Description struct {
	ID              uint   `gorm:"primaryKey"`
	ResourceID      uint   `gorm:"uniqueIndex:idx_descriptions_resource_type"`
	Description     string `gorm:"type:text"`
	DescriptionType string `gorm:"uniqueIndex:idx_descriptions_resource_type"`
}

// Escaped returns the wire form of the description text: normalized
// newlines, paragraph breaks as <br>, remaining line breaks as spaces.
func (d *Description) Escaped() string {
	s := strings.ReplaceAll(d.Description, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n\n", "<br>")
	return strings.ReplaceAll(s, "\n", " ")
}

// UnescapeDescription maps the wire form back to the stored paragraph-break
// form.
func UnescapeDescription(s string) string {
	return strings.ReplaceAll(s, "<br>", "\n\n")
}

// Date is an owned, typed date row, unique per (resource, type). The value
// is a civil date in ISO form.
type Date struct {
	ID              uint `gorm:"primaryKey"`
	ResourceID      uint `gorm:"uniqueIndex:idx_dates_resource_type"`
	Date            string
	DateType        string `gorm:"uniqueIndex:idx_dates_resource_type"`
	DateInformation string
}

// ParseDate validates a civil date string and returns it in canonical
// YYYY-MM-DD form.
func ParseDate(s string) (string, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("not a date: %q", s)
}

// Subject is a shared subject/keyword entity, many-to-many with resources.
// Dedup during import is by (scheme URI, value URI), falling back to the
// subject text.
type Subject struct {
	ID                 uint   `gorm:"primaryKey"`
	Subject            string `gorm:"size:256"`
	SubjectScheme      string
	SchemeURI          string
	ValueURI           string
	ClassificationCode string
}

// Rights is an owned rights row storing only the rights identifier key; the
// label, URI, scheme and scheme URI are derived from the vocabulary tables.
type Rights struct {
	ID               uint   `gorm:"primaryKey"`
	ResourceID       uint   `gorm:"uniqueIndex:idx_rights_resource_identifier"`
	RightsIdentifier string `gorm:"uniqueIndex:idx_rights_resource_identifier"`
}

// FundingReference is an owned row linking a funder Name with award fields.
type FundingReference struct {
	ID         uint `gorm:"primaryKey"`
	ResourceID uint `gorm:"uniqueIndex:idx_funding_references_resource_funder"`
	FunderID   uint `gorm:"uniqueIndex:idx_funding_references_resource_funder"`
	Funder     Name

	AwardNumber string
	AwardURI    string
	AwardTitle  string
}
