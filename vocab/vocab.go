// Package vocab holds the DataCite controlled vocabularies, their defaults,
// and the runtime configuration passed to the import/export pipelines.
package vocab

// Entry is a vocabulary member: a stored key plus a display label.
type Entry struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Vocabulary defaults.
const (
	DefaultIdentifierType       = "DOI"
	DefaultResourceTypeGeneral  = "Dataset"
	DefaultLanguage             = "en"
	DefaultTitleType            = ""
	DefaultNameType             = "Personal"
	AffiliationNameType         = "Organizational"
	DefaultDescriptionType      = "Abstract"
	DefaultNameIdentifierScheme = "ORCID"
	DefaultContributorType      = "ContactPerson"
	DefaultDateType             = "Issued"
	DefaultRelationType         = "References"
	DefaultRightsIdentifier     = "CC0-1.0"
	DefaultNumberType           = "Article"
)

func entries(keys ...string) []Entry {
	list := make([]Entry, len(keys))
	for i, key := range keys {
		list[i] = Entry{Key: key, Label: key}
	}
	return list
}

var identifierTypes = entries(
	"ARK", "arXiv", "bibcode", "DOI", "EAN13", "EISSN", "Handle", "IGSN",
	"ISBN", "ISSN", "ISTC", "LISSN", "LSID", "PMID", "PURL", "UPC", "URL",
	"URN", "w3id",
)

var resourceTypesGeneral = entries(
	"Audiovisual", "Book", "BookChapter", "Collection",
	"ComputationalNotebook", "ConferencePaper", "ConferenceProceeding",
	"DataPaper", "Dataset", "Dissertation", "Event", "Image",
	"InteractiveResource", "Journal", "JournalArticle", "Model",
	"OutputManagementPlan", "PeerReview", "PhysicalObject", "Preprint",
	"Report", "Service", "Software", "Sound", "Standard", "Text", "Workflow",
	"Other",
)

var languages = []Entry{
	{Key: "en", Label: "English"},
}

var titleTypes = []Entry{
	{Key: "", Label: "Main title"},
	{Key: "AlternativeTitle", Label: "Alternative title"},
	{Key: "Subtitle", Label: "Subtitle"},
	{Key: "TranslatedTitle", Label: "Translated title"},
	{Key: "Other", Label: "Other"},
}

var nameTypes = entries("Personal", "Organizational")

var descriptionTypes = entries(
	"Abstract", "Methods", "SeriesInformation", "TableOfContents",
	"TechnicalInfo", "Other",
)

var nameIdentifierSchemes = entries("ORCID", "ISNI", "ROR", "GRID")

var contributorTypes = entries(
	"ContactPerson", "DataCollector", "DataCurator", "DataManager",
	"Distributor", "Editor", "HostingInstitution", "Producer",
	"ProjectLeader", "ProjectManager", "ProjectMember", "RegistrationAgency",
	"RegistrationAuthority", "RelatedPerson", "Researcher", "ResearchGroup",
	"RightsHolder", "Sponsor", "Supervisor", "WorkPackageLeader", "Other",
)

var dateTypes = entries(
	"Accepted", "Available", "Copyrighted", "Collected", "Created", "Issued",
	"Submitted", "Updated", "Valid", "Withdrawn", "Other",
)

var relationTypes = entries(
	"IsCitedBy", "Cites", "IsSupplementTo", "IsSupplementedBy",
	"IsContinuedBy", "Continues", "IsDescribedBy", "Describes", "HasMetadata",
	"IsMetadataFor", "HasVersion", "IsVersionOf", "IsNewVersionOf",
	"IsPreviousVersionOf", "IsPartOf", "HasPart", "IsPublishedIn",
	"IsReferencedBy", "References", "IsDocumentedBy", "Documents",
	"IsCompiledBy", "Compiles", "IsVariantFormOf", "IsOriginalFormOf",
	"IsIdenticalTo", "IsReviewedBy", "Reviews", "IsDerivedFrom", "IsSourceOf",
	"IsRequiredBy", "Requires", "IsObsoletedBy", "Obsoletes",
)

var numberTypes = entries("Article", "Chapter", "Report", "Other")

var rightsIdentifiers = []Entry{
	{Key: "CC0-1.0", Label: "CC0 1.0 Universal Public Domain Dedication"},
	{Key: "CC-BY-4.0", Label: "Creative Commons Attribution 4.0 International (CC BY 4.0)"},
	{Key: "CC-BY-SA-4.0", Label: "Creative Commons Attribution Share Alike 4.0 International (CC BY-SA 4.0)"},
	{Key: "CC-BY-NC-4.0", Label: "Creative Commons Attribution Non Commercial 4.0 International (CC BY-NC 4.0)"},
	{Key: "CC-BY-NC-SA-4.0", Label: "Creative Commons Attribution Non Commercial Share Alike 4.0 International (CC BY-NC-SA 4.0)"},
}

var identifierSchemeURIs = map[string]string{
	"ISNI":  "https://isni.org",
	"ORCID": "https://orcid.org",
	"ROR":   "https://ror.org",
	"GRID":  "https://www.grid.ac",
}

var rightsIdentifierURIs = map[string]string{
	"CC0-1.0":         "https://creativecommons.org/publicdomain/zero/1.0/",
	"CC-BY-4.0":       "https://creativecommons.org/licenses/by/4.0/",
	"CC-BY-SA-4.0":    "https://creativecommons.org/licenses/by-sa/4.0/",
	"CC-BY-NC-4.0":    "https://creativecommons.org/licenses/by-nc/4.0/",
	"CC-BY-NC-SA-4.0": "https://creativecommons.org/licenses/by-nc-sa/4.0/",
}

var rightsIdentifierSchemes = map[string]string{
	"CC0-1.0":         "SPDX",
	"CC-BY-4.0":       "SPDX",
	"CC-BY-SA-4.0":    "SPDX",
	"CC-BY-NC-4.0":    "SPDX",
	"CC-BY-NC-SA-4.0": "SPDX",
}

var rightsSchemeURIs = map[string]string{
	"SPDX": "https://spdx.org/licenses/",
}

func contains(list []Entry, key string) bool {
	for _, e := range list {
		if e.Key == key {
			return true
		}
	}
	return false
}

func label(list []Entry, key string) string {
	for _, e := range list {
		if e.Key == key {
			return e.Label
		}
	}
	return ""
}
