package exporter

import (
	"encoding/json"
	"testing"

	"github.com/lehigh-university-libraries/datacite-store/entity"
	"github.com/lehigh-university-libraries/datacite-store/vocab"
)

func intp(n int) *int { return &n }

func sampleResource() *entity.Resource {
	year := 2023
	return &entity.Resource{
		Identifier:      &entity.Identifier{Identifier: "10.12345/12345", IdentifierType: "DOI"},
		Publisher:       "Example Press",
		PublicationYear: &year,
		ResourceType:    "Survey",
		ResourceTypeGeneral: "Dataset",
		Language:        "en",
		Titles: []entity.Title{
			{Title: "Notes on Stuff", TitleType: "Subtitle"},
			{Title: "A Study of Things", TitleType: ""},
		},
		Creators: []entity.Creator{
			{Position: 1, Name: entity.Name{Name: "Mustermann, Erika", NameType: "Personal"}},
			{Position: 0, Name: entity.Name{
				Name:     "Doe, Jane",
				NameType: "Personal",
				NameIdentifiers: []entity.NameIdentifier{
					{Identifier: "0000-0001-2345-6789", Scheme: "ORCID"},
				},
				Affiliations: []*entity.Name{{
					Name:     "Example University",
					NameType: "Organizational",
					NameIdentifiers: []entity.NameIdentifier{
						{Identifier: "https://ror.org/012abcde", Scheme: "ROR"},
						{Identifier: "0000000123456789", Scheme: "ISNI"},
					},
				}},
			}},
		},
		RelatedIdentifiers: []entity.RelatedIdentifier{
			{Position: 0, RelationType: "References", ResourceTypeGeneral: "Dataset",
				Identifier: entity.Identifier{Identifier: "10.5555/67890", IdentifierType: "DOI", Citation: "cached citation"}},
		},
		RightsList: []entity.Rights{{RightsIdentifier: "CC0-1.0"}},
		Descriptions: []entity.Description{
			{Description: "First.\n\nSecond.", DescriptionType: "Abstract"},
		},
	}
}

func TestExport(t *testing.T) {
	doc := Export(sampleResource(), vocab.Default())

	if len(doc.Identifiers) != 1 || doc.Identifiers[0].Identifier != "10.12345/12345" {
		t.Fatalf("identifiers: %+v", doc.Identifiers)
	}
	if doc.PublicationYear == nil || int(*doc.PublicationYear) != 2023 {
		t.Fatalf("publicationYear: %v", doc.PublicationYear)
	}
	if doc.Types == nil || doc.Types.ResourceType != "Survey" {
		t.Fatalf("types: %+v", doc.Types)
	}
}

func TestExportCreatorOrder(t *testing.T) {
	doc := Export(sampleResource(), vocab.Default())
	if len(doc.Creators) != 2 {
		t.Fatalf("creators: %+v", doc.Creators)
	}
	if doc.Creators[0].Name != "Doe, Jane" || doc.Creators[1].Name != "Mustermann, Erika" {
		t.Fatalf("creator order wrong: %q, %q", doc.Creators[0].Name, doc.Creators[1].Name)
	}
}

func TestExportTitleOrder(t *testing.T) {
	doc := Export(sampleResource(), vocab.Default())
	if len(doc.Titles) != 2 {
		t.Fatalf("titles: %+v", doc.Titles)
	}
	// main title (empty type) sorts first
	if doc.Titles[0].Title != "A Study of Things" || doc.Titles[0].TitleType != "" {
		t.Fatalf("title order wrong: %+v", doc.Titles)
	}
}

func TestExportNameBlock(t *testing.T) {
	doc := Export(sampleResource(), vocab.Default())
	name := doc.Creators[0]
	if len(name.NameIdentifiers) != 1 {
		t.Fatalf("nameIdentifiers: %+v", name.NameIdentifiers)
	}
	nid := name.NameIdentifiers[0]
	if nid.NameIdentifierScheme != "ORCID" || nid.SchemeURI != "https://orcid.org" {
		t.Fatalf("scheme URI not derived: %+v", nid)
	}
	if len(name.Affiliations) != 1 {
		t.Fatalf("affiliations: %+v", name.Affiliations)
	}
	aff := name.Affiliations[0]
	// only the first identifier of an affiliation is carried
	if aff.AffiliationIdentifier != "https://ror.org/012abcde" || aff.AffiliationIdentifierScheme != "ROR" {
		t.Fatalf("affiliation identifier: %+v", aff)
	}
}

func TestExportRelatedIdentifierDOIPrefix(t *testing.T) {
	cfg := vocab.Default()
	doc := Export(sampleResource(), cfg)
	if len(doc.RelatedIdentifiers) != 1 {
		t.Fatalf("relatedIdentifiers: %+v", doc.RelatedIdentifiers)
	}
	rel := doc.RelatedIdentifiers[0]
	if rel.RelatedIdentifier != "https://doi.org/10.5555/67890" {
		t.Fatalf("DOI not prefixed: %q", rel.RelatedIdentifier)
	}
	if rel.Citation != "" {
		t.Fatalf("citation included without the flag: %q", rel.Citation)
	}

	cfg.IncludeCitation = true
	doc = Export(sampleResource(), cfg)
	if doc.RelatedIdentifiers[0].Citation != "cached citation" {
		t.Fatalf("citation missing with the flag: %+v", doc.RelatedIdentifiers[0])
	}
}

func TestExportRightsDerived(t *testing.T) {
	doc := Export(sampleResource(), vocab.Default())
	if len(doc.RightsList) != 1 {
		t.Fatalf("rightsList: %+v", doc.RightsList)
	}
	rights := doc.RightsList[0]
	if rights.RightsIdentifier != "CC0-1.0" {
		t.Fatalf("rightsIdentifier: %q", rights.RightsIdentifier)
	}
	if rights.RightsURI == "" || rights.RightsIdentifierScheme != "SPDX" {
		t.Fatalf("rights fields not derived: %+v", rights)
	}
}

func TestExportDescriptionEscaped(t *testing.T) {
	doc := Export(sampleResource(), vocab.Default())
	if len(doc.Descriptions) != 1 {
		t.Fatalf("descriptions: %+v", doc.Descriptions)
	}
	if doc.Descriptions[0].Description != "First.<br>Second." {
		t.Fatalf("description not escaped: %q", doc.Descriptions[0].Description)
	}
}

func TestExportOmitsEmpty(t *testing.T) {
	doc := Export(&entity.Resource{}, vocab.Default())
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"schemaVersion":"http://datacite.org/schema/kernel-4"}`
	if string(data) != want {
		t.Fatalf("empty record exports extra keys: %s", data)
	}
}

func TestExportGeoLocation(t *testing.T) {
	lon, lat := 0.5, 0.5
	r := &entity.Resource{
		GeoLocations: []*entity.GeoLocation{{
			Place: "Atlantic Ocean",
			Point: &entity.GeoLocationPoint{Longitude: -30, Latitude: 40},
			Polygons: []entity.GeoLocationPolygon{{
				Points:           entity.PolygonPoints{{0, 0}, {1, 0}, {1, 1}, {0, 0}},
				InPointLongitude: &lon,
				InPointLatitude:  &lat,
			}},
		}},
	}
	doc := Export(r, vocab.Default())
	if len(doc.GeoLocations) != 1 {
		t.Fatalf("geoLocations: %+v", doc.GeoLocations)
	}
	geo := doc.GeoLocations[0]
	if geo.GeoLocationPlace != "Atlantic Ocean" || geo.GeoLocationPoint == nil || geo.GeoLocationBox != nil {
		t.Fatalf("geo block: %+v", geo)
	}
	if len(geo.GeoLocationPolygons) != 1 || len(geo.GeoLocationPolygons[0].PolygonPoints) != 4 {
		t.Fatalf("polygons: %+v", geo.GeoLocationPolygons)
	}
	if geo.GeoLocationPolygons[0].InPolygonPoint == nil {
		t.Fatal("inPolygonPoint missing")
	}
}
