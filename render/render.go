// Package render turns the canonical document into DataCite Kernel-4 XML.
// The renderer walks the document with a small element-stack writer; it
// never round-trips through an XML object model.
package render

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/lehigh-university-libraries/datacite-store/document"
)

const (
	xmlHeader      = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	xmlns          = "http://datacite.org/schema/kernel-4"
	xmlnsXSI       = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://datacite.org/schema/kernel-4 http://schema.datacite.org/meta/kernel-4.4/metadata.xsd"
)

type attr struct {
	name  string
	value string
}

// writer emits indented XML elements. Attributes with empty values and leaf
// elements with empty values are dropped, matching the omit-empty contract
// of the document.
type writer struct {
	buf   bytes.Buffer
	stack []string
}

func (w *writer) indent() {
	for range w.stack {
		w.buf.WriteString("    ")
	}
}

func (w *writer) openTag(tag string, attrs []attr) {
	w.buf.WriteByte('<')
	w.buf.WriteString(tag)
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.name)
		w.buf.WriteString(`="`)
		xml.EscapeText(&w.buf, []byte(a.value))
		w.buf.WriteByte('"')
	}
	w.buf.WriteByte('>')
}

func (w *writer) start(tag string, attrs ...attr) {
	w.indent()
	w.openTag(tag, attrs)
	w.buf.WriteByte('\n')
	w.stack = append(w.stack, tag)
}

func (w *writer) end() {
	tag := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	w.indent()
	w.buf.WriteString("</")
	w.buf.WriteString(tag)
	w.buf.WriteString(">\n")
}

func (w *writer) leaf(tag, value string, attrs ...attr) {
	if value == "" {
		return
	}
	w.indent()
	w.openTag(tag, attrs)
	xml.EscapeText(&w.buf, []byte(value))
	w.buf.WriteString("</")
	w.buf.WriteString(tag)
	w.buf.WriteString(">\n")
}

func float(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// XML renders the document as a Kernel-4 metadata record. Related items
// have no Kernel-4 element and are not rendered.
func XML(doc *document.Resource) []byte {
	w := &writer{}
	w.buf.WriteString(xmlHeader)
	w.start("resource",
		attr{"xmlns:xsi", xmlnsXSI},
		attr{"xmlns", xmlns},
		attr{"xsi:schemaLocation", schemaLocation},
	)

	if len(doc.Identifiers) > 0 {
		w.leaf("identifier", doc.Identifiers[0].Identifier,
			attr{"identifierType", doc.Identifiers[0].IdentifierType})
	}

	if len(doc.Creators) > 0 {
		w.start("creators")
		for _, creator := range doc.Creators {
			renderName(w, "creator", creator)
		}
		w.end()
	}

	if len(doc.Titles) > 0 {
		w.start("titles")
		for _, title := range doc.Titles {
			w.leaf("title", title.Title, attr{"titleType", title.TitleType})
		}
		w.end()
	}

	w.leaf("publisher", doc.Publisher)
	if doc.PublicationYear != nil {
		w.leaf("publicationYear", strconv.Itoa(int(*doc.PublicationYear)))
	}

	if doc.Types != nil {
		resourceTypeGeneral := doc.Types.ResourceTypeGeneral
		if resourceTypeGeneral == "" {
			resourceTypeGeneral = "Dataset"
		}
		w.leaf("resourceType", doc.Types.ResourceType,
			attr{"resourceTypeGeneral", resourceTypeGeneral})
	}

	if len(doc.Subjects) > 0 {
		w.start("subjects")
		for _, subject := range doc.Subjects {
			w.leaf("subject", subject.Subject,
				attr{"subjectScheme", subject.SubjectScheme},
				attr{"schemeURI", subject.SchemeURI},
				attr{"valueURI", subject.ValueURI},
				attr{"classificationCode", subject.ClassificationCode},
			)
		}
		w.end()
	}

	if len(doc.Contributors) > 0 {
		w.start("contributors")
		for _, contributor := range doc.Contributors {
			renderName(w, "contributor", contributor)
		}
		w.end()
	}

	if len(doc.Dates) > 0 {
		w.start("dates")
		for _, date := range doc.Dates {
			w.leaf("date", date.Date,
				attr{"dateType", date.DateType},
				attr{"dateInformation", date.DateInformation},
			)
		}
		w.end()
	}

	w.leaf("language", doc.Language)

	if len(doc.AlternateIdentifiers) > 0 {
		w.start("alternateIdentifiers")
		for _, alt := range doc.AlternateIdentifiers {
			w.leaf("alternateIdentifier", alt.AlternateIdentifier,
				attr{"alternateIdentifierType", alt.AlternateIdentifierType})
		}
		w.end()
	}

	if len(doc.RelatedIdentifiers) > 0 {
		w.start("relatedIdentifiers")
		for _, rel := range doc.RelatedIdentifiers {
			w.leaf("relatedIdentifier", rel.RelatedIdentifier,
				attr{"relatedIdentifierType", rel.RelatedIdentifierType},
				attr{"relationType", rel.RelationType},
				attr{"resourceTypeGeneral", rel.ResourceTypeGeneral},
			)
		}
		w.end()
	}

	w.leaf("size", doc.Size)
	w.leaf("format", doc.Format)
	w.leaf("version", doc.Version)

	if len(doc.RightsList) > 0 {
		w.start("rightsList")
		for _, rights := range doc.RightsList {
			w.leaf("rights", rights.Rights,
				attr{"rightsURI", rights.RightsURI},
				attr{"rightsIdentifier", rights.RightsIdentifier},
				attr{"rightsIdentifierScheme", rights.RightsIdentifierScheme},
				attr{"schemeURI", rights.SchemeURI},
			)
		}
		w.end()
	}

	if len(doc.Descriptions) > 0 {
		w.start("descriptions")
		for _, desc := range doc.Descriptions {
			descriptionType := desc.DescriptionType
			if descriptionType == "" {
				descriptionType = "Abstract"
			}
			w.leaf("description", desc.Description,
				attr{"descriptionType", descriptionType})
		}
		w.end()
	}

	if len(doc.GeoLocations) > 0 {
		w.start("geoLocations")
		for _, geo := range doc.GeoLocations {
			renderGeoLocation(w, geo)
		}
		w.end()
	}

	if len(doc.FundingReferences) > 0 {
		w.start("fundingReferences")
		for _, funding := range doc.FundingReferences {
			w.start("fundingReference")
			w.leaf("funderName", funding.FunderName)
			w.leaf("funderIdentifier", funding.FunderIdentifier,
				attr{"funderIdentifierType", funding.FunderIdentifierType},
				attr{"schemeURI", funding.SchemeURI},
			)
			w.leaf("awardNumber", funding.AwardNumber)
			w.leaf("awardURI", funding.AwardURI)
			w.leaf("awardTitle", funding.AwardTitle)
			w.end()
		}
		w.end()
	}

	w.end()
	return w.buf.Bytes()
}

// renderName renders a creator or contributor block. The child name element
// is tag-prefixed (creatorName, contributorName) and the contributor type
// sits as an attribute on the wrapper.
func renderName(w *writer, tag string, name document.Name) {
	w.start(tag, attr{"contributorType", name.ContributorType})
	w.leaf(tag+"Name", name.Name, attr{"nameType", name.NameType})
	w.leaf("givenName", name.GivenName)
	w.leaf("familyName", name.FamilyName)
	for _, nid := range name.NameIdentifiers {
		w.leaf("nameIdentifier", nid.NameIdentifier,
			attr{"nameIdentifierScheme", nid.NameIdentifierScheme},
			attr{"schemeURI", nid.SchemeURI},
		)
	}
	for _, aff := range name.Affiliations {
		w.leaf("affiliation", aff.Affiliation,
			attr{"affiliationIdentifier", aff.AffiliationIdentifier},
			attr{"affiliationIdentifierScheme", aff.AffiliationIdentifierScheme},
		)
	}
	w.end()
}

func renderGeoLocation(w *writer, geo document.GeoLocation) {
	w.start("geoLocation")
	w.leaf("geoLocationPlace", geo.GeoLocationPlace)
	if geo.GeoLocationPoint != nil {
		w.start("geoLocationPoint")
		w.leaf("pointLongitude", float(geo.GeoLocationPoint.PointLongitude))
		w.leaf("pointLatitude", float(geo.GeoLocationPoint.PointLatitude))
		w.end()
	}
	if geo.GeoLocationBox != nil {
		w.start("geoLocationBox")
		w.leaf("westBoundLongitude", float(geo.GeoLocationBox.WestBoundLongitude))
		w.leaf("eastBoundLongitude", float(geo.GeoLocationBox.EastBoundLongitude))
		w.leaf("southBoundLatitude", float(geo.GeoLocationBox.SouthBoundLatitude))
		w.leaf("northBoundLatitude", float(geo.GeoLocationBox.NorthBoundLatitude))
		w.end()
	}
	for _, polygon := range geo.GeoLocationPolygons {
		w.start("geoLocationPolygon")
		for _, pt := range polygon.PolygonPoints {
			w.start("polygonPoint")
			w.leaf("pointLongitude", float(pt.PointLongitude))
			w.leaf("pointLatitude", float(pt.PointLatitude))
			w.end()
		}
		if polygon.InPolygonPoint != nil {
			w.start("inPolygonPoint")
			w.leaf("pointLongitude", float(polygon.InPolygonPoint.PointLongitude))
			w.leaf("pointLatitude", float(polygon.InPolygonPoint.PointLatitude))
			w.end()
		}
		w.end()
	}
	w.end()
}
