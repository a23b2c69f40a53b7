package nyt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/starford/anyt/pkg/optional"
)

// maxListItems caps how many elements of each list String renders.
const maxListItems = 3

// String renders every field for diagnostics. Lists show at most their first
// three elements. The layout is stable but not a stored format.
func (v View) String() string {
	w := &fieldWriter{}
	w.b.WriteString("View[")

	w.raw("guid", strconv.Itoa(v.GUID()))
	w.list("onlineSections", v.OnlineSections())
	w.list("leadParagraphLines", v.LeadParagraphLines())
	w.list("onlineLeadParagraphLines", v.OnlineLeadParagraphLines())
	w.list("bodyLines", v.BodyLines())
	w.text("headline", v.Headline())
	w.text("onlineHeadline", v.OnlineHeadline())
	w.text("byline", v.Byline())
	w.text("dateline", v.Dateline())
	w.text("articleAbstract", v.ArticleAbstract())
	w.text("leadParagraph", v.LeadParagraph())
	w.text("onlineLeadParagraph", v.OnlineLeadParagraph())
	w.text("correctionText", v.CorrectionText())
	w.text("kicker", v.Kicker())
	w.link("alternateURL", v.AlternateURL())
	w.list("descriptors", v.Descriptors())
	w.text("authorBiography", v.AuthorBiography())
	w.text("banner", v.Banner())
	w.list("biographicalCategories", v.BiographicalCategories())
	w.text("columnName", v.ColumnName())
	w.number("columnNumber", v.ColumnNumber())
	w.date("correctionDate", v.CorrectionDate())
	w.text("credit", v.Credit())
	w.text("dayOfWeek", v.DayOfWeek())
	w.text("featurePage", v.FeaturePage())
	w.list("generalOnlineDescriptors", v.GeneralOnlineDescriptors())
	w.list("locations", v.Locations())
	w.list("names", v.Names())
	w.text("newsDesk", v.NewsDesk())
	w.text("normalizedByline", v.NormalizedByline())
	w.list("onlineDescriptors", v.OnlineDescriptors())
	w.list("onlineLocations", v.OnlineLocations())
	w.list("onlineOrganizations", v.OnlineOrganizations())
	w.list("onlinePeople", v.OnlinePeople())
	w.text("onlineSection", v.OnlineSection())
	w.list("onlineTitles", v.OnlineTitles())
	w.list("organizations", v.Organizations())
	w.number("page", v.Page())
	w.list("people", v.People())
	w.date("publicationDate", v.PublicationDate())
	w.number("publicationDayOfMonth", v.PublicationDayOfMonth())
	w.number("publicationMonth", v.PublicationMonth())
	w.number("publicationYear", v.PublicationYear())
	w.text("section", v.Section())
	w.text("seriesName", v.SeriesName())
	w.text("slug", v.Slug())
	w.text("sourcePath", v.SourcePath())
	w.list("taxonomicClassifiers", v.TaxonomicClassifiers())
	w.list("titles", v.Titles())
	w.list("typesOfMaterial", v.TypesOfMaterial())
	w.link("url", v.URL())
	w.number("wordCount", v.WordCount())

	w.b.WriteString("]")
	return w.b.String()
}

type fieldWriter struct {
	b strings.Builder
	n int
}

func (w *fieldWriter) raw(name, value string) {
	if w.n > 0 {
		w.b.WriteString(", ")
	}
	w.n++
	w.b.WriteString(name)
	w.b.WriteByte('=')
	w.b.WriteString(value)
}

func (w *fieldWriter) text(name string, o optional.Value[string]) {
	w.raw(name, optional.Map(o, strconv.Quote).String())
}

func (w *fieldWriter) number(name string, o optional.Value[int]) {
	w.raw(name, o.String())
}

func (w *fieldWriter) date(name string, o optional.Value[time.Time]) {
	w.raw(name, optional.Map(o, func(t time.Time) string {
		return t.Format(time.RFC3339)
	}).String())
}

func (w *fieldWriter) link(name string, o optional.Value[*url.URL]) {
	w.raw(name, optional.Map(o, (*url.URL).String).String())
}

func (w *fieldWriter) list(name string, items []string) {
	shown := items
	if len(shown) > maxListItems {
		shown = shown[:maxListItems]
	}
	quoted := make([]string, len(shown))
	for i, s := range shown {
		quoted[i] = strconv.Quote(s)
	}
	value := "[" + strings.Join(quoted, ", ")
	if extra := len(items) - len(shown); extra > 0 {
		value += fmt.Sprintf(", …(+%d)", extra)
	}
	w.raw(name, value+"]")
}
