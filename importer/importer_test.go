package importer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/datacite-store/document"
	"github.com/lehigh-university-libraries/datacite-store/store"
	"github.com/lehigh-university-libraries/datacite-store/vocab"
)

func newTestImporter(t *testing.T) *Importer {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(s, vocab.Default(), logger)
}

func sampleDocument(t *testing.T) *document.Resource {
	t.Helper()
	doc, err := document.Parse([]byte(`{
        "identifiers": [{"identifier": "https://doi.org/10.12345/12345", "identifierType": "DOI"}],
        "creators": [
            {
                "name": "Doe, Jane",
                "nameType": "Personal",
                "givenName": "Jane",
                "familyName": "Doe",
                "nameIdentifiers": [{"nameIdentifier": "0000-0001-2345-6789", "nameIdentifierScheme": "ORCID"}],
                "affiliations": [{"affiliation": "Example University"}]
            },
            {"name": "Mustermann, Erika", "nameType": "Personal"}
        ],
        "titles": [
            {"title": "A Study of Things"},
            {"title": "Notes on Stuff", "titleType": "Subtitle"}
        ],
        "publisher": "Example Press",
        "publicationYear": "2023",
        "types": {"resourceType": "Survey", "resourceTypeGeneral": "Dataset"},
        "language": "en",
        "descriptions": [{"description": "First.<br>Second.", "descriptionType": "Abstract"}],
        "subjects": [{"subject": "climate"}],
        "dates": [{"date": "2023-04-05", "dateType": "Issued"}],
        "relatedIdentifiers": [{
            "relationType": "References",
            "relatedIdentifier": "10.5555/67890",
            "relatedIdentifierType": "DOI"
        }],
        "rightsList": [{"rightsURI": "https://creativecommons.org/publicdomain/zero/1.0/"}],
        "fundingReferences": [{"funderName": "Example Foundation", "awardNumber": "EF-123"}]
    }`))
	require.NoError(t, err)
	return doc
}

func TestImportResource(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	r, err := im.ImportResource(ctx, nil, sampleDocument(t))
	require.NoError(t, err)

	full, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)

	// DOI base URL is stripped before storage
	require.NotNil(t, full.Identifier)
	assert.Equal(t, "10.12345/12345", full.Identifier.Identifier)

	assert.Equal(t, "Example Press", full.Publisher)
	require.NotNil(t, full.PublicationYear)
	assert.Equal(t, 2023, *full.PublicationYear)
	assert.Equal(t, "Dataset", full.ResourceTypeGeneral)
	assert.Equal(t, "en", full.Language)

	assert.Equal(t, "A Study of Things", full.MainTitle())
	assert.Len(t, full.Titles, 2)

	require.Len(t, full.Creators, 2)
	byPos := map[int]string{}
	for _, c := range full.Creators {
		byPos[c.Position] = c.Name.Name
	}
	assert.Equal(t, "Doe, Jane", byPos[0])
	assert.Equal(t, "Mustermann, Erika", byPos[1])

	// the <br> token becomes a stored paragraph break
	require.Len(t, full.Descriptions, 1)
	assert.Equal(t, "First.\n\nSecond.", full.Descriptions[0].Description)

	require.Len(t, full.Dates, 1)
	assert.Equal(t, "2023-04-05", full.Dates[0].Date)

	require.Len(t, full.RelatedIdentifiers, 1)
	assert.Equal(t, "References", full.RelatedIdentifiers[0].RelationType)
	// invalid/absent resourceTypeGeneral falls back to the default
	assert.Equal(t, vocab.DefaultResourceTypeGeneral, full.RelatedIdentifiers[0].ResourceTypeGeneral)

	// rights resolved by reverse URI lookup
	require.Len(t, full.RightsList, 1)
	assert.Equal(t, "CC0-1.0", full.RightsList[0].RightsIdentifier)

	require.Len(t, full.FundingReferences, 1)
	assert.Equal(t, "Example Foundation", full.FundingReferences[0].Funder.Name)
	assert.Equal(t, "EF-123", full.FundingReferences[0].AwardNumber)

	assert.Len(t, full.Subjects, 1)
}

func TestImportIdempotent(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	r, err := im.ImportResource(ctx, nil, sampleDocument(t))
	require.NoError(t, err)
	_, err = im.ImportResource(ctx, r, sampleDocument(t))
	require.NoError(t, err)

	full, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, full.Titles, 2)
	assert.Len(t, full.Creators, 2)
	assert.Len(t, full.Descriptions, 1)
	assert.Len(t, full.Dates, 1)
	assert.Len(t, full.RelatedIdentifiers, 1)
	assert.Len(t, full.RightsList, 1)
	assert.Len(t, full.FundingReferences, 1)
	assert.Len(t, full.Subjects, 1)
}

func TestImportPermissive(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	doc, err := document.Parse([]byte(`{
        "creators": [
            {"name": "Broken, Bob", "nameType": "Robot"},
            {"name": "Doe, Jane", "nameType": "Personal"},
            {"name": "Mustermann, Erika"}
        ],
        "titles": [{"title": "Bad Type", "titleType": "NotAType"}],
        "dates": [{"date": "sometime", "dateType": "Issued"}]
    }`))
	require.NoError(t, err)

	r, err := im.ImportResource(ctx, nil, doc)
	require.NoError(t, err)

	full, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, full.Creators, 2, "invalid nameType is skipped, the rest import")
	assert.Empty(t, full.Titles)
	assert.Empty(t, full.Dates)
}

func TestImportNameDedupByIdentifier(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	first, err := document.Parse([]byte(`{
        "creators": [{
            "name": "Doe, Jane",
            "nameIdentifiers": [{"nameIdentifier": "0000-0001-2345-6789", "nameIdentifierScheme": "ORCID"}]
        }]
    }`))
	require.NoError(t, err)
	second, err := document.Parse([]byte(`{
        "creators": [{
            "name": "Doe, J.",
            "givenName": "Jane",
            "familyName": "Doe",
            "nameIdentifiers": [{"nameIdentifier": "0000-0001-2345-6789", "nameIdentifierScheme": "ORCID"}]
        }]
    }`))
	require.NoError(t, err)

	r1, err := im.ImportResource(ctx, nil, first)
	require.NoError(t, err)
	r2, err := im.ImportResource(ctx, nil, second)
	require.NoError(t, err)

	full1, err := im.Store.GetResource(ctx, r1.ID)
	require.NoError(t, err)
	full2, err := im.Store.GetResource(ctx, r2.ID)
	require.NoError(t, err)
	require.Len(t, full1.Creators, 1)
	require.Len(t, full2.Creators, 1)
	assert.Equal(t, full1.Creators[0].NameID, full2.Creators[0].NameID, "same ORCID resolves to the same name")
	// given/family overwrite on the found path too
	assert.Equal(t, "Jane", full2.Creators[0].Name.GivenName)
}

func TestImportGeoLocationShapeErrors(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	doc, err := document.Parse([]byte(`{
        "titles": [{"title": "Survives"}],
        "geoLocations": [
            {"geoLocationPlace": "Bad", "geoLocationPoint": {"pointLongitude": 300, "pointLatitude": 0}},
            {"geoLocationPlace": "Good", "geoLocationPoint": {"pointLongitude": 12.5, "pointLatitude": 50}}
        ]
    }`))
	require.NoError(t, err)

	r, err := im.ImportResource(ctx, nil, doc)
	require.Error(t, err, "shape rejection is reported")
	require.NotNil(t, r, "the rest of the document still imported")

	full, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Survives", full.MainTitle())
	require.Len(t, full.GeoLocations, 2, "both place buckets exist")
	for _, geo := range full.GeoLocations {
		if geo.Place == "Bad" {
			assert.Nil(t, geo.Point, "rejected point not stored")
		}
		if geo.Place == "Good" {
			assert.NotNil(t, geo.Point)
		}
	}
}

func TestImportPolygonMissingInteriorPoint(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	doc, err := document.Parse([]byte(`{
        "titles": [{"title": "Survives"}],
        "geoLocations": [{
            "geoLocationPlace": "Ringed",
            "geoLocationPolygons": [{
                "polygonPoints": [
                    {"pointLongitude": 0, "pointLatitude": 0},
                    {"pointLongitude": 1, "pointLatitude": 0},
                    {"pointLongitude": 1, "pointLatitude": 1},
                    {"pointLongitude": 0, "pointLatitude": 0}
                ]
            }]
        }]
    }`))
	require.NoError(t, err)

	r, err := im.ImportResource(ctx, nil, doc)
	require.Error(t, err, "a polygon without an interior point is rejected")
	require.NotNil(t, r, "the rest of the document still imported")

	full, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Survives", full.MainTitle())
	require.Len(t, full.GeoLocations, 1)
	assert.Empty(t, full.GeoLocations[0].Polygons, "rejected polygon not stored")
}

func TestImportGeoLocationAbortsAfterRejectedShape(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	doc, err := document.Parse([]byte(`{
        "geoLocations": [{
            "geoLocationPlace": "Mixed",
            "geoLocationPoint": {"pointLongitude": 300, "pointLatitude": 0},
            "geoLocationBox": {
                "westBoundLongitude": -10, "eastBoundLongitude": 10,
                "southBoundLatitude": -10, "northBoundLatitude": 10
            },
            "geoLocationPolygons": [{
                "polygonPoints": [
                    {"pointLongitude": 0, "pointLatitude": 0},
                    {"pointLongitude": 1, "pointLatitude": 0},
                    {"pointLongitude": 1, "pointLatitude": 1},
                    {"pointLongitude": 0, "pointLatitude": 0}
                ],
                "inPolygonPoint": {"pointLongitude": 0.5, "pointLatitude": 0.5}
            }]
        }]
    }`))
	require.NoError(t, err)

	r, err := im.ImportResource(ctx, nil, doc)
	require.Error(t, err)
	require.NotNil(t, r)

	full, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, full.GeoLocations, 1)
	geo := full.GeoLocations[0]
	assert.Nil(t, geo.Point, "rejected point not stored")
	assert.Nil(t, geo.Box, "box after the rejected point skipped")
	assert.Empty(t, geo.Polygons, "polygons after the rejected point skipped")
}

func TestImportRelatedItem(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	doc, err := document.Parse([]byte(`{
        "titles": [{"title": "The Chapter"}],
        "relatedItems": [{
            "relatedItemType": "Book",
            "relationType": "IsPublishedIn",
            "relatedItemIdentifier": "10.5555/book",
            "relatedItemIdentifierType": "DOI",
            "titles": [{"title": "The Book"}],
            "publicationYear": "2020",
            "publisher": "Example Press",
            "creators": [{"name": "Editor, Ed"}],
            "firstPage": "10",
            "lastPage": "42"
        }]
    }`))
	require.NoError(t, err)

	r, err := im.ImportResource(ctx, nil, doc)
	require.NoError(t, err)

	full, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, full.RelatedItems, 1)
	ri := full.RelatedItems[0]
	assert.Equal(t, "IsPublishedIn", ri.RelationType)
	assert.Equal(t, "10", ri.FirstPage)

	require.NotNil(t, ri.Item)
	assert.Equal(t, "The Book", ri.Item.MainTitle())
	assert.Equal(t, "Book", ri.Item.ResourceTypeGeneral)
	require.NotNil(t, ri.Item.Identifier)
	assert.Equal(t, "10.5555/book", ri.Item.Identifier.Identifier)

	// importing again reuses the item record found by its identifier
	_, err = im.ImportResource(ctx, r, doc)
	require.NoError(t, err)
	again, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, again.RelatedItems, 1)
	assert.Equal(t, ri.ItemID, again.RelatedItems[0].ItemID)
}

func TestImportCitationMirrored(t *testing.T) {
	im := newTestImporter(t)
	ctx := context.Background()

	r, err := im.ImportResource(ctx, nil, sampleDocument(t))
	require.NoError(t, err)

	full, err := im.Store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, full.Identifier)
	assert.Contains(t, full.Identifier.Citation, "A Study of Things")
	assert.Contains(t, full.Identifier.Citation, "Doe, Jane")
}
