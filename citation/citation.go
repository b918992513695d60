// Package citation renders records as citation strings and BibTeX entries.
// Both renderings are template expansions over the entity graph; the
// templates are formatted for readability and the render step normalizes
// the whitespace away.
package citation

import (
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/lehigh-university-libraries/datacite-store/entity"
)

// citationTmpl follows the DataCite recommended citation format:
// Creators (Year): Title. Version. Publisher. ResourceTypeGeneral. URL
var citationTmpl = template.Must(template.New("citation").Parse(`
{{- if .Creators}}{{.Creators}}{{end}}
{{- if .Year}} ({{.Year}}):{{end}}
{{- if .Title}} {{.Title}}.{{end}}
{{- if .Version}} Version {{.Version}}.{{end}}
{{- if .Publisher}} {{.Publisher}}.{{end}}
{{- if .ResourceTypeGeneral}} {{.ResourceTypeGeneral}}.{{end}}
{{- if .URL}} {{.URL}}{{end}}
`))

type citationData struct {
	Creators            string
	Year                string
	Title               string
	Version             string
	Publisher           string
	ResourceTypeGeneral string
	URL                 string
}

// Citation renders the citation string for a record. doiBaseURL prefixes
// bare DOI identifiers; all whitespace runs in the template output collapse
// to single spaces.
func Citation(r *entity.Resource, doiBaseURL string) string {
	data := citationData{
		Creators: joinCreators(r, "; "),
		Title:    r.MainTitle(),
	}
	if r.PublicationYear != nil {
		data.Year = strconv.Itoa(*r.PublicationYear)
	}
	if r.CiteVersion {
		data.Version = r.Version
	}
	if r.CitePublisher {
		data.Publisher = r.Publisher
	}
	if r.CiteResourceTypeGeneral {
		data.ResourceTypeGeneral = r.ResourceTypeGeneral
	}
	data.URL = identifierURL(r, doiBaseURL)

	var b strings.Builder
	if err := citationTmpl.Execute(&b, data); err != nil {
		return ""
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func identifierURL(r *entity.Resource, doiBaseURL string) string {
	if r.Identifier == nil {
		return ""
	}
	value := r.Identifier.Identifier
	if value == "" {
		return ""
	}
	if r.Identifier.IdentifierType == "DOI" && !strings.Contains(value, "://") {
		return doiBaseURL + value
	}
	return value
}

// joinCreators returns the creator display names in stored order, joined by
// sep.
func joinCreators(r *entity.Resource, sep string) string {
	creators := make([]entity.Creator, len(r.Creators))
	copy(creators, r.Creators)
	sort.SliceStable(creators, func(i, j int) bool {
		if creators[i].Position != creators[j].Position {
			return creators[i].Position < creators[j].Position
		}
		return creators[i].Name.DisplayName() < creators[j].Name.DisplayName()
	})
	names := make([]string, 0, len(creators))
	for _, c := range creators {
		if name := c.Name.DisplayName(); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, sep)
}
