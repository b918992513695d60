package citation

import (
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/lehigh-university-libraries/datacite-store/entity"
)

var bibtexTmpl = template.Must(template.New("bibtex").Parse(`@{{.EntryType}}{{"{"}}{{.Key}},
{{if .Author}}    author = {{"{"}}{{.Author}}{{"}"}},
{{end}}{{if .Title}}    title = {{"{"}}{{.Title}}{{"}"}},
{{end}}{{if .Publisher}}    publisher = {{"{"}}{{.Publisher}}{{"}"}},
{{end}}{{if .Year}}    year = {{"{"}}{{.Year}}{{"}"}},
{{end}}{{if .Version}}    version = {{"{"}}{{.Version}}{{"}"}},
{{end}}{{if .DOI}}    doi = {{"{"}}{{.DOI}}{{"}"}},
{{end}}{{if .URL}}    url = {{"{"}}{{.URL}}{{"}"}},
{{end}}{{"}"}}
`))

type bibtexData struct {
	EntryType string
	Key       string
	Author    string
	Title     string
	Publisher string
	Year      string
	Version   string
	DOI       string
	URL       string
}

// BibTeX renders the record as a single BibTeX entry. doiBaseURL prefixes
// the url field for bare DOI identifiers; lines left blank by the template
// are stripped from the output.
func BibTeX(r *entity.Resource, doiBaseURL string) string {
	data := bibtexData{
		EntryType: entryType(r.ResourceTypeGeneral),
		Key:       citationKey(r),
		Author:    joinAuthors(r),
		Title:     r.MainTitle(),
	}
	if r.PublicationYear != nil {
		data.Year = strconv.Itoa(*r.PublicationYear)
	}
	if r.CitePublisher {
		data.Publisher = r.Publisher
	}
	if r.CiteVersion {
		data.Version = r.Version
	}
	if r.Identifier != nil && r.Identifier.IdentifierType == "DOI" {
		data.DOI = r.Identifier.Identifier
	}
	data.URL = identifierURL(r, doiBaseURL)

	var b strings.Builder
	if err := bibtexTmpl.Execute(&b, data); err != nil {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// entryType maps a general resource type to the closest BibTeX entry type.
func entryType(resourceTypeGeneral string) string {
	switch resourceTypeGeneral {
	case "JournalArticle":
		return "article"
	case "Book":
		return "book"
	case "BookChapter":
		return "incollection"
	case "ConferencePaper":
		return "inproceedings"
	case "Dissertation":
		return "phdthesis"
	case "Report":
		return "techreport"
	case "Software":
		return "software"
	case "Dataset":
		return "dataset"
	default:
		return "misc"
	}
}

// citationKey builds the entry key from the first creator's family name and
// the publication year.
func citationKey(r *entity.Resource) string {
	key := "resource"
	if c := firstCreator(r); c != nil {
		if c.Name.FamilyName != "" {
			key = strings.ToLower(c.Name.FamilyName)
		} else if name := c.Name.DisplayName(); name != "" {
			key = strings.ToLower(strings.Fields(name)[0])
		}
	}
	key = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, key)
	if key == "" {
		key = "resource"
	}
	if r.PublicationYear != nil {
		key += strconv.Itoa(*r.PublicationYear)
	}
	return key
}

func firstCreator(r *entity.Resource) *entity.Creator {
	if len(r.Creators) == 0 {
		return nil
	}
	first := &r.Creators[0]
	for i := range r.Creators {
		if r.Creators[i].Position < first.Position {
			first = &r.Creators[i]
		}
	}
	return first
}

// joinAuthors renders creators as "Family, Given" where the parts are known,
// joined by " and " in stored order.
func joinAuthors(r *entity.Resource) string {
	creators := make([]entity.Creator, len(r.Creators))
	copy(creators, r.Creators)
	sort.SliceStable(creators, func(i, j int) bool {
		return creators[i].Position < creators[j].Position
	})
	var authors []string
	for _, c := range creators {
		switch {
		case c.Name.FamilyName != "" && c.Name.GivenName != "":
			authors = append(authors, c.Name.FamilyName+", "+c.Name.GivenName)
		case c.Name.DisplayName() != "":
			authors = append(authors, c.Name.DisplayName())
		}
	}
	return strings.Join(authors, " and ")
}
