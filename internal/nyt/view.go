package nyt

import (
	"net/url"
	"time"

	"github.com/starford/anyt/pkg/optional"
)

// View is a read-only projection of one RawRecord.
//
// Every accessor derives its result from the wrapped record on each call.
// Scalar fields come back as optional values that are absent exactly when
// the raw field holds its zero sentinel. List fields are never nil.
type View struct {
	rec *RawRecord
}

// NewView wraps rec. rec must not be nil and must not be modified while the
// view is in use.
func NewView(rec *RawRecord) View {
	return View{rec: rec}
}

// GUID returns the corpus document identifier.
func (v View) GUID() int {
	return v.rec.GUID
}

// Derived lists.

// OnlineSections returns the semicolon separated online sections, trimmed.
func (v View) OnlineSections() []string {
	return splitSections(v.rec.OnlineSection)
}

// LeadParagraphLines returns the lead paragraph split into lines.
func (v View) LeadParagraphLines() []string {
	return splitLines(v.rec.LeadParagraph)
}

// OnlineLeadParagraphLines returns the online lead paragraph split into lines.
func (v View) OnlineLeadParagraphLines() []string {
	return splitLines(v.rec.OnlineLeadParagraph)
}

// BodyLines returns the full text split into lines.
func (v View) BodyLines() []string {
	return splitLines(v.rec.Body)
}

// Text fields.

func (v View) Headline() optional.Value[string] {
	return optional.FromString(v.rec.Headline)
}

func (v View) OnlineHeadline() optional.Value[string] {
	return optional.FromString(v.rec.OnlineHeadline)
}

func (v View) Byline() optional.Value[string] {
	return optional.FromString(v.rec.Byline)
}

func (v View) Dateline() optional.Value[string] {
	return optional.FromString(v.rec.Dateline)
}

func (v View) ArticleAbstract() optional.Value[string] {
	return optional.FromString(v.rec.ArticleAbstract)
}

func (v View) LeadParagraph() optional.Value[string] {
	return optional.FromString(v.rec.LeadParagraph)
}

// OnlineLeadParagraph returns the cleaned online lead paragraph. A value made
// only of separator runes is absent.
func (v View) OnlineLeadParagraph() optional.Value[string] {
	s, ok := Clean(v.rec.OnlineLeadParagraph)
	if !ok {
		return optional.Empty[string]()
	}
	return optional.Of(s)
}

func (v View) Body() optional.Value[string] {
	return optional.FromString(v.rec.Body)
}

func (v View) CorrectionText() optional.Value[string] {
	return optional.FromString(v.rec.CorrectionText)
}

func (v View) Kicker() optional.Value[string] {
	return optional.FromString(v.rec.Kicker)
}

func (v View) AuthorBiography() optional.Value[string] {
	return optional.FromString(v.rec.AuthorBiography)
}

func (v View) Banner() optional.Value[string] {
	return optional.FromString(v.rec.Banner)
}

func (v View) ColumnName() optional.Value[string] {
	return optional.FromString(v.rec.ColumnName)
}

func (v View) Credit() optional.Value[string] {
	return optional.FromString(v.rec.Credit)
}

func (v View) DayOfWeek() optional.Value[string] {
	return optional.FromString(v.rec.DayOfWeek)
}

func (v View) FeaturePage() optional.Value[string] {
	return optional.FromString(v.rec.FeaturePage)
}

func (v View) NewsDesk() optional.Value[string] {
	return optional.FromString(v.rec.NewsDesk)
}

func (v View) NormalizedByline() optional.Value[string] {
	return optional.FromString(v.rec.NormalizedByline)
}

// OnlineSection returns the raw online section string. See OnlineSections
// for the split form.
func (v View) OnlineSection() optional.Value[string] {
	return optional.FromString(v.rec.OnlineSection)
}

func (v View) Section() optional.Value[string] {
	return optional.FromString(v.rec.Section)
}

func (v View) SeriesName() optional.Value[string] {
	return optional.FromString(v.rec.SeriesName)
}

func (v View) Slug() optional.Value[string] {
	return optional.FromString(v.rec.Slug)
}

// SourcePath returns where the parser read the document from.
func (v View) SourcePath() optional.Value[string] {
	return optional.FromString(v.rec.SourceFile)
}

// Integer fields.

func (v View) ColumnNumber() optional.Value[int] {
	return optional.FromPtr(v.rec.ColumnNumber)
}

func (v View) Page() optional.Value[int] {
	return optional.FromPtr(v.rec.Page)
}

func (v View) PublicationDayOfMonth() optional.Value[int] {
	return optional.FromPtr(v.rec.PublicationDayOfMonth)
}

func (v View) PublicationMonth() optional.Value[int] {
	return optional.FromPtr(v.rec.PublicationMonth)
}

func (v View) PublicationYear() optional.Value[int] {
	return optional.FromPtr(v.rec.PublicationYear)
}

func (v View) WordCount() optional.Value[int] {
	return optional.FromPtr(v.rec.WordCount)
}

// Date fields.

func (v View) CorrectionDate() optional.Value[time.Time] {
	return optional.FromPtr(v.rec.CorrectionDate)
}

func (v View) PublicationDate() optional.Value[time.Time] {
	return optional.FromPtr(v.rec.PublicationDate)
}

// URL fields. The returned URL is a copy.

func (v View) AlternateURL() optional.Value[*url.URL] {
	return urlValue(v.rec.AlternateURL)
}

func (v View) URL() optional.Value[*url.URL] {
	return urlValue(v.rec.URL)
}

func urlValue(u *url.URL) optional.Value[*url.URL] {
	if u == nil {
		return optional.Empty[*url.URL]()
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return optional.Of(&c)
}

// Natively multi-valued fields.

func (v View) Descriptors() []string {
	return orEmpty(v.rec.Descriptors)
}

func (v View) BiographicalCategories() []string {
	return orEmpty(v.rec.BiographicalCategories)
}

func (v View) GeneralOnlineDescriptors() []string {
	return orEmpty(v.rec.GeneralOnlineDescriptors)
}

func (v View) Locations() []string {
	return orEmpty(v.rec.Locations)
}

func (v View) Names() []string {
	return orEmpty(v.rec.Names)
}

func (v View) OnlineDescriptors() []string {
	return orEmpty(v.rec.OnlineDescriptors)
}

func (v View) OnlineLocations() []string {
	return orEmpty(v.rec.OnlineLocations)
}

func (v View) OnlineOrganizations() []string {
	return orEmpty(v.rec.OnlineOrganizations)
}

func (v View) OnlinePeople() []string {
	return orEmpty(v.rec.OnlinePeople)
}

func (v View) OnlineTitles() []string {
	return orEmpty(v.rec.OnlineTitles)
}

func (v View) Organizations() []string {
	return orEmpty(v.rec.Organizations)
}

func (v View) People() []string {
	return orEmpty(v.rec.People)
}

func (v View) TaxonomicClassifiers() []string {
	return orEmpty(v.rec.TaxonomicClassifiers)
}

func (v View) Titles() []string {
	return orEmpty(v.rec.Titles)
}

func (v View) TypesOfMaterial() []string {
	return orEmpty(v.rec.TypesOfMaterial)
}
