// Package exporter walks the entity graph of a record into the canonical
// DataCite JSON document. Export is a pure function of the loaded record:
// it never touches the database and never mutates its input.
package exporter

import (
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/datacite-store/document"
	"github.com/lehigh-university-libraries/datacite-store/entity"
	"github.com/lehigh-university-libraries/datacite-store/vocab"
)

// Export renders the record as a document. Join rows come out in stored
// sequence order, typed rows in type order, subjects and rights
// alphabetically. Absent data produces no key at all.
func Export(r *entity.Resource, cfg *vocab.Config) *document.Resource {
	doc := &document.Resource{SchemaVersion: document.SchemaVersion}

	if r.Identifier != nil {
		doc.Identifiers = []document.Identifier{{
			Identifier:     r.Identifier.Identifier,
			IdentifierType: r.Identifier.IdentifierType,
		}}
	}

	for _, c := range sortedCreators(r.Creators) {
		doc.Creators = append(doc.Creators, exportName(&c.Name, "", cfg))
	}

	for _, t := range sortedTitles(r.Titles) {
		doc.Titles = append(doc.Titles, exportTitle(t))
	}

	doc.Publisher = r.Publisher
	if r.PublicationYear != nil {
		year := document.Year(*r.PublicationYear)
		doc.PublicationYear = &year
	}
	if r.ResourceType != "" || r.ResourceTypeGeneral != "" {
		doc.Types = &document.Types{
			ResourceType:        r.ResourceType,
			ResourceTypeGeneral: r.ResourceTypeGeneral,
		}
	}

	for _, s := range sortedSubjects(r.Subjects) {
		doc.Subjects = append(doc.Subjects, document.Subject{
			Subject:            s.Subject,
			SubjectScheme:      s.SubjectScheme,
			SchemeURI:          s.SchemeURI,
			ValueURI:           s.ValueURI,
			ClassificationCode: s.ClassificationCode,
		})
	}

	for _, c := range sortedContributors(r.Contributors) {
		doc.Contributors = append(doc.Contributors, exportName(&c.Name, c.ContributorType, cfg))
	}

	for _, d := range sortedDates(r.Dates) {
		doc.Dates = append(doc.Dates, document.Date{
			Date:            d.Date,
			DateType:        d.DateType,
			DateInformation: d.DateInformation,
		})
	}

	doc.Language = r.Language

	for _, a := range sortedAlternateIdentifiers(r.AlternateIdentifiers) {
		doc.AlternateIdentifiers = append(doc.AlternateIdentifiers, document.AlternateIdentifier{
			AlternateIdentifier:     a.Identifier.Identifier,
			AlternateIdentifierType: a.Identifier.IdentifierType,
		})
	}

	for _, rel := range sortedRelatedIdentifiers(r.RelatedIdentifiers) {
		doc.RelatedIdentifiers = append(doc.RelatedIdentifiers, exportRelatedIdentifier(rel, cfg))
	}

	doc.Size = r.Size
	doc.Format = r.Format
	doc.Version = r.Version

	for _, rights := range sortedRights(r.RightsList) {
		doc.RightsList = append(doc.RightsList, document.Rights{
			Rights:                 cfg.RightsLabel(rights.RightsIdentifier),
			RightsURI:              cfg.RightsURI(rights.RightsIdentifier),
			RightsIdentifier:       rights.RightsIdentifier,
			RightsIdentifierScheme: cfg.RightsScheme(rights.RightsIdentifier),
			SchemeURI:              cfg.RightsSchemeURI(rights.RightsIdentifier),
		})
	}

	for _, d := range sortedDescriptions(r.Descriptions) {
		doc.Descriptions = append(doc.Descriptions, document.Description{
			Description:     d.Escaped(),
			DescriptionType: d.DescriptionType,
		})
	}

	for _, geo := range r.GeoLocations {
		doc.GeoLocations = append(doc.GeoLocations, exportGeoLocation(geo))
	}

	for _, f := range r.FundingReferences {
		doc.FundingReferences = append(doc.FundingReferences, exportFundingReference(f, cfg))
	}

	for _, ri := range r.RelatedItems {
		if ri.Item == nil {
			continue
		}
		doc.RelatedItems = append(doc.RelatedItems, exportRelatedItem(ri, cfg))
	}

	return doc
}

func exportTitle(t entity.Title) document.Title {
	return document.Title{Title: t.Title, TitleType: t.TitleType}
}

// exportName renders a name block. Only the first identifier of an
// affiliation is carried, as its affiliationIdentifier.
func exportName(n *entity.Name, contributorType string, cfg *vocab.Config) document.Name {
	out := document.Name{
		Name:            n.Name,
		NameType:        n.NameType,
		ContributorType: contributorType,
		GivenName:       n.GivenName,
		FamilyName:      n.FamilyName,
	}
	for _, nid := range n.NameIdentifiers {
		out.NameIdentifiers = append(out.NameIdentifiers, document.NameIdentifier{
			NameIdentifier:       nid.Identifier,
			NameIdentifierScheme: nid.Scheme,
			SchemeURI:            cfg.SchemeURI(nid.Scheme),
		})
	}
	for _, aff := range n.Affiliations {
		block := document.Affiliation{Affiliation: aff.Name}
		if len(aff.NameIdentifiers) > 0 {
			block.AffiliationIdentifier = aff.NameIdentifiers[0].Identifier
			block.AffiliationIdentifierScheme = aff.NameIdentifiers[0].Scheme
		}
		out.Affiliations = append(out.Affiliations, block)
	}
	return out
}

// exportRelatedIdentifier prefixes bare DOI values with the configured base
// URL and, when the feature flag is on, carries the cached citation.
func exportRelatedIdentifier(rel entity.RelatedIdentifier, cfg *vocab.Config) document.RelatedIdentifier {
	out := document.RelatedIdentifier{
		RelationType:          rel.RelationType,
		RelatedIdentifier:     rel.Identifier.Identifier,
		RelatedIdentifierType: rel.Identifier.IdentifierType,
		ResourceTypeGeneral:   rel.ResourceTypeGeneral,
	}
	if out.RelatedIdentifierType == "DOI" && !strings.HasPrefix(out.RelatedIdentifier, "http") {
		out.RelatedIdentifier = cfg.DOIBaseURL + out.RelatedIdentifier
	}
	if cfg.IncludeCitation {
		out.Citation = rel.Identifier.Citation
	}
	return out
}

func exportGeoLocation(geo *entity.GeoLocation) document.GeoLocation {
	out := document.GeoLocation{GeoLocationPlace: geo.Place}
	if geo.Point != nil {
		out.GeoLocationPoint = &document.GeoPoint{
			PointLongitude: geo.Point.Longitude,
			PointLatitude:  geo.Point.Latitude,
		}
	}
	if geo.Box != nil {
		out.GeoLocationBox = &document.GeoBox{
			WestBoundLongitude: geo.Box.WestLongitude,
			EastBoundLongitude: geo.Box.EastLongitude,
			SouthBoundLatitude: geo.Box.SouthLatitude,
			NorthBoundLatitude: geo.Box.NorthLatitude,
		}
	}
	for _, polygon := range geo.Polygons {
		block := document.GeoPolygon{}
		for _, pt := range polygon.Points {
			block.PolygonPoints = append(block.PolygonPoints, document.GeoPoint{
				PointLongitude: pt[0],
				PointLatitude:  pt[1],
			})
		}
		if polygon.InPointLongitude != nil && polygon.InPointLatitude != nil {
			block.InPolygonPoint = &document.GeoPoint{
				PointLongitude: *polygon.InPointLongitude,
				PointLatitude:  *polygon.InPointLatitude,
			}
		}
		out.GeoLocationPolygons = append(out.GeoLocationPolygons, block)
	}
	return out
}

// exportFundingReference carries the funder's first name identifier as the
// funder identifier.
func exportFundingReference(f entity.FundingReference, cfg *vocab.Config) document.FundingReference {
	out := document.FundingReference{
		FunderName:  f.Funder.Name,
		AwardNumber: f.AwardNumber,
		AwardURI:    f.AwardURI,
		AwardTitle:  f.AwardTitle,
	}
	if len(f.Funder.NameIdentifiers) > 0 {
		nid := f.Funder.NameIdentifiers[0]
		out.FunderIdentifier = nid.Identifier
		out.FunderIdentifierType = nid.Scheme
		out.SchemeURI = cfg.SchemeURI(nid.Scheme)
	}
	return out
}

// exportRelatedItem renders the linked record with a reduced field set plus
// the numbering fields of the link.
func exportRelatedItem(ri entity.RelatedItem, cfg *vocab.Config) document.RelatedItem {
	item := ri.Item
	out := document.RelatedItem{
		RelatedItemType: item.ResourceTypeGeneral,
		RelationType:    ri.RelationType,
		Volume:          ri.Volume,
		Issue:           ri.Issue,
		Number:          ri.Number,
		NumberType:      ri.NumberType,
		FirstPage:       ri.FirstPage,
		LastPage:        ri.LastPage,
		Publisher:       item.Publisher,
		Edition:         ri.Edition,
	}
	if item.Identifier != nil {
		out.RelatedItemIdentifier = item.Identifier.Identifier
		out.RelatedItemIdentifierType = item.Identifier.IdentifierType
	}
	for _, c := range sortedCreators(item.Creators) {
		out.Creators = append(out.Creators, exportName(&c.Name, "", cfg))
	}
	for _, t := range sortedTitles(item.Titles) {
		out.Titles = append(out.Titles, exportTitle(t))
	}
	if item.PublicationYear != nil {
		year := document.Year(*item.PublicationYear)
		out.PublicationYear = &year
	}
	for _, c := range sortedContributors(item.Contributors) {
		out.Contributors = append(out.Contributors, exportName(&c.Name, c.ContributorType, cfg))
	}
	return out
}

func sortedCreators(in []entity.Creator) []entity.Creator {
	out := make([]entity.Creator, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Name.Name < out[j].Name.Name
	})
	return out
}

func sortedContributors(in []entity.Contributor) []entity.Contributor {
	out := make([]entity.Contributor, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Name.Name < out[j].Name.Name
	})
	return out
}

func sortedAlternateIdentifiers(in []entity.AlternateIdentifier) []entity.AlternateIdentifier {
	out := make([]entity.AlternateIdentifier, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func sortedRelatedIdentifiers(in []entity.RelatedIdentifier) []entity.RelatedIdentifier {
	out := make([]entity.RelatedIdentifier, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func sortedTitles(in []entity.Title) []entity.Title {
	out := make([]entity.Title, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TitleType < out[j].TitleType })
	return out
}

func sortedDescriptions(in []entity.Description) []entity.Description {
	out := make([]entity.Description, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DescriptionType < out[j].DescriptionType })
	return out
}

func sortedDates(in []entity.Date) []entity.Date {
	out := make([]entity.Date, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateType < out[j].DateType })
	return out
}

func sortedSubjects(in []*entity.Subject) []*entity.Subject {
	out := make([]*entity.Subject, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}

func sortedRights(in []entity.Rights) []entity.Rights {
	out := make([]entity.Rights, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RightsIdentifier < out[j].RightsIdentifier })
	return out
}
