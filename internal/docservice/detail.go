package docservice

import (
	"net/url"
	"time"

	"github.com/starford/anyt/internal/nyt"
	"github.com/starford/anyt/pkg/optional"
)

// DocumentDetail is the JSON projection of a document view. Absent scalar
// fields encode as null; list fields are always arrays.
type DocumentDetail struct {
	GUID    int    `json:"guid"`
	Archive string `json:"archive"`
	Entry   string `json:"entry"`

	Headline            optional.Value[string] `json:"headline"`
	OnlineHeadline      optional.Value[string] `json:"online_headline"`
	Kicker              optional.Value[string] `json:"kicker"`
	Byline              optional.Value[string] `json:"byline"`
	NormalizedByline    optional.Value[string] `json:"normalized_byline"`
	Dateline            optional.Value[string] `json:"dateline"`
	ArticleAbstract     optional.Value[string] `json:"article_abstract"`
	LeadParagraph       optional.Value[string] `json:"lead_paragraph"`
	OnlineLeadParagraph optional.Value[string] `json:"online_lead_paragraph"`
	Body                optional.Value[string] `json:"body"`
	CorrectionText      optional.Value[string] `json:"correction_text"`
	AuthorBiography     optional.Value[string] `json:"author_biography"`
	Banner              optional.Value[string] `json:"banner"`
	ColumnName          optional.Value[string] `json:"column_name"`
	Credit              optional.Value[string] `json:"credit"`
	DayOfWeek           optional.Value[string] `json:"day_of_week"`
	FeaturePage         optional.Value[string] `json:"feature_page"`
	NewsDesk            optional.Value[string] `json:"news_desk"`
	OnlineSection       optional.Value[string] `json:"online_section"`
	Section             optional.Value[string] `json:"section"`
	SeriesName          optional.Value[string] `json:"series_name"`
	Slug                optional.Value[string] `json:"slug"`
	SourcePath          optional.Value[string] `json:"source_path"`

	ColumnNumber          optional.Value[int] `json:"column_number"`
	Page                  optional.Value[int] `json:"page"`
	PublicationDayOfMonth optional.Value[int] `json:"publication_day_of_month"`
	PublicationMonth      optional.Value[int] `json:"publication_month"`
	PublicationYear       optional.Value[int] `json:"publication_year"`
	WordCount             optional.Value[int] `json:"word_count"`

	CorrectionDate  optional.Value[time.Time] `json:"correction_date"`
	PublicationDate optional.Value[time.Time] `json:"publication_date"`

	AlternateURL optional.Value[string] `json:"alternate_url"`
	URL          optional.Value[string] `json:"url"`

	OnlineSections           []string `json:"online_sections"`
	LeadParagraphLines       []string `json:"lead_paragraph_lines"`
	OnlineLeadParagraphLines []string `json:"online_lead_paragraph_lines"`
	BodyLines                []string `json:"body_lines"`
	Descriptors              []string `json:"descriptors"`
	OnlineDescriptors        []string `json:"online_descriptors"`
	GeneralOnlineDescriptors []string `json:"general_online_descriptors"`
	TaxonomicClassifiers     []string `json:"taxonomic_classifiers"`
	TypesOfMaterial          []string `json:"types_of_material"`
	BiographicalCategories   []string `json:"biographical_categories"`
	Names                    []string `json:"names"`
	Locations                []string `json:"locations"`
	OnlineLocations          []string `json:"online_locations"`
	Organizations            []string `json:"organizations"`
	OnlineOrganizations      []string `json:"online_organizations"`
	People                   []string `json:"people"`
	OnlinePeople             []string `json:"online_people"`
	Titles                   []string `json:"titles"`
	OnlineTitles             []string `json:"online_titles"`

	Diagnostic string `json:"diagnostic"`
}

// NewDocumentDetail projects v.
func NewDocumentDetail(archive, entry string, v nyt.View) *DocumentDetail {
	return &DocumentDetail{
		GUID:    v.GUID(),
		Archive: archive,
		Entry:   entry,

		Headline:            v.Headline(),
		OnlineHeadline:      v.OnlineHeadline(),
		Kicker:              v.Kicker(),
		Byline:              v.Byline(),
		NormalizedByline:    v.NormalizedByline(),
		Dateline:            v.Dateline(),
		ArticleAbstract:     v.ArticleAbstract(),
		LeadParagraph:       v.LeadParagraph(),
		OnlineLeadParagraph: v.OnlineLeadParagraph(),
		Body:                v.Body(),
		CorrectionText:      v.CorrectionText(),
		AuthorBiography:     v.AuthorBiography(),
		Banner:              v.Banner(),
		ColumnName:          v.ColumnName(),
		Credit:              v.Credit(),
		DayOfWeek:           v.DayOfWeek(),
		FeaturePage:         v.FeaturePage(),
		NewsDesk:            v.NewsDesk(),
		OnlineSection:       v.OnlineSection(),
		Section:             v.Section(),
		SeriesName:          v.SeriesName(),
		Slug:                v.Slug(),
		SourcePath:          v.SourcePath(),

		ColumnNumber:          v.ColumnNumber(),
		Page:                  v.Page(),
		PublicationDayOfMonth: v.PublicationDayOfMonth(),
		PublicationMonth:      v.PublicationMonth(),
		PublicationYear:       v.PublicationYear(),
		WordCount:             v.WordCount(),

		CorrectionDate:  v.CorrectionDate(),
		PublicationDate: v.PublicationDate(),

		AlternateURL: optional.Map(v.AlternateURL(), (*url.URL).String),
		URL:          optional.Map(v.URL(), (*url.URL).String),

		OnlineSections:           v.OnlineSections(),
		LeadParagraphLines:       v.LeadParagraphLines(),
		OnlineLeadParagraphLines: v.OnlineLeadParagraphLines(),
		BodyLines:                v.BodyLines(),
		Descriptors:              v.Descriptors(),
		OnlineDescriptors:        v.OnlineDescriptors(),
		GeneralOnlineDescriptors: v.GeneralOnlineDescriptors(),
		TaxonomicClassifiers:     v.TaxonomicClassifiers(),
		TypesOfMaterial:          v.TypesOfMaterial(),
		BiographicalCategories:   v.BiographicalCategories(),
		Names:                    v.Names(),
		Locations:                v.Locations(),
		OnlineLocations:          v.OnlineLocations(),
		Organizations:            v.Organizations(),
		OnlineOrganizations:      v.OnlineOrganizations(),
		People:                   v.People(),
		OnlinePeople:             v.OnlinePeople(),
		Titles:                   v.Titles(),
		OnlineTitles:             v.OnlineTitles(),

		Diagnostic: v.String(),
	}
}
