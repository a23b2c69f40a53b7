package nyt

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/anyt/pkg/optional"
)

func intPtr(n int) *int { return &n }

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func fullRecord(t *testing.T) *RawRecord {
	t.Helper()
	pub := time.Date(2004, 4, 10, 0, 0, 0, 0, time.UTC)
	corr := time.Date(2004, 4, 12, 0, 0, 0, 0, time.UTC)
	return &RawRecord{
		GUID:                     1566100,
		AlternateURL:             mustURL(t, "http://www.nytimes.com/2004/04/10/nyregion/10tran.html"),
		ArticleAbstract:          "Transit strike averted.",
		AuthorBiography:          "John Doe is a staff writer.",
		Banner:                   "Metro",
		BiographicalCategories:   []string{"Politicians"},
		Body:                     "first\nsecond\nthird",
		Byline:                   "By JOHN DOE",
		ColumnName:               "About New York",
		ColumnNumber:             intPtr(3),
		CorrectionDate:           &corr,
		CorrectionText:           "An earlier version misstated the date.",
		Credit:                   "Photo by Jane Roe",
		Dateline:                 "NEW YORK, April 9",
		DayOfWeek:                "Saturday",
		Descriptors:              []string{"Strikes", "Transit Systems", "Labor", "Strikes"},
		FeaturePage:              "Metro Section",
		GeneralOnlineDescriptors: []string{"Labor"},
		Headline:                 "Transit Deal Reached",
		Kicker:                   "The Strike",
		LeadParagraph:            "LEAD: Transit workers agreed.\nThe deal was signed.",
		Locations:                []string{"New York City"},
		Names:                    []string{"Doe, John"},
		NewsDesk:                 "Metropolitan Desk",
		NormalizedByline:         "Doe, John",
		OnlineDescriptors:        []string{"Transit"},
		OnlineHeadline:           "Transit Deal Reached, Strike Averted",
		OnlineLeadParagraph:      "Transit workers agreed\u00A0late Friday.",
		OnlineLocations:          []string{"New York City"},
		OnlineOrganizations:      []string{"Transport Workers Union"},
		OnlinePeople:             []string{"Doe, John"},
		OnlineSection:            "New York and Region; Business",
		OnlineTitles:             []string{"Mayor"},
		Organizations:            []string{"TWU"},
		Page:                     intPtr(1),
		People:                   []string{"DOE, JOHN"},
		PublicationDate:          &pub,
		PublicationDayOfMonth:    intPtr(10),
		PublicationMonth:         intPtr(4),
		PublicationYear:          intPtr(2004),
		Section:                  "B",
		SeriesName:               "City Under Strain",
		Slug:                     "10TRAN",
		SourceFile:               "data/2004/04.tgz/04/10/1566100.xml",
		TaxonomicClassifiers:     []string{"Top/News/New York and Region"},
		Titles:                   []string{"MAYOR"},
		TypesOfMaterial:          []string{"News"},
		URL:                      mustURL(t, "http://query.nytimes.com/gst/fullpage.html?res=1566100"),
		WordCount:                intPtr(1071),
	}
}

func TestView_GUID(t *testing.T) {
	v := NewView(&RawRecord{GUID: 42})
	assert.Equal(t, 42, v.GUID())
}

func TestView_AbsentRecord(t *testing.T) {
	v := NewView(&RawRecord{GUID: 1})

	texts := map[string]optional.Value[string]{
		"Headline":            v.Headline(),
		"OnlineHeadline":      v.OnlineHeadline(),
		"Byline":              v.Byline(),
		"Dateline":            v.Dateline(),
		"ArticleAbstract":     v.ArticleAbstract(),
		"LeadParagraph":       v.LeadParagraph(),
		"OnlineLeadParagraph": v.OnlineLeadParagraph(),
		"Body":                v.Body(),
		"CorrectionText":      v.CorrectionText(),
		"Kicker":              v.Kicker(),
		"AuthorBiography":     v.AuthorBiography(),
		"Banner":              v.Banner(),
		"ColumnName":          v.ColumnName(),
		"Credit":              v.Credit(),
		"DayOfWeek":           v.DayOfWeek(),
		"FeaturePage":         v.FeaturePage(),
		"NewsDesk":            v.NewsDesk(),
		"NormalizedByline":    v.NormalizedByline(),
		"OnlineSection":       v.OnlineSection(),
		"Section":             v.Section(),
		"SeriesName":          v.SeriesName(),
		"Slug":                v.Slug(),
		"SourcePath":          v.SourcePath(),
	}
	for name, o := range texts {
		assert.False(t, o.IsPresent(), name)
	}

	ints := map[string]optional.Value[int]{
		"ColumnNumber":          v.ColumnNumber(),
		"Page":                  v.Page(),
		"PublicationDayOfMonth": v.PublicationDayOfMonth(),
		"PublicationMonth":      v.PublicationMonth(),
		"PublicationYear":       v.PublicationYear(),
		"WordCount":             v.WordCount(),
	}
	for name, o := range ints {
		assert.False(t, o.IsPresent(), name)
	}

	assert.False(t, v.CorrectionDate().IsPresent())
	assert.False(t, v.PublicationDate().IsPresent())
	assert.False(t, v.AlternateURL().IsPresent())
	assert.False(t, v.URL().IsPresent())

	lists := map[string][]string{
		"OnlineSections":           v.OnlineSections(),
		"LeadParagraphLines":       v.LeadParagraphLines(),
		"OnlineLeadParagraphLines": v.OnlineLeadParagraphLines(),
		"BodyLines":                v.BodyLines(),
		"Descriptors":              v.Descriptors(),
		"BiographicalCategories":   v.BiographicalCategories(),
		"GeneralOnlineDescriptors": v.GeneralOnlineDescriptors(),
		"Locations":                v.Locations(),
		"Names":                    v.Names(),
		"OnlineDescriptors":        v.OnlineDescriptors(),
		"OnlineLocations":          v.OnlineLocations(),
		"OnlineOrganizations":      v.OnlineOrganizations(),
		"OnlinePeople":             v.OnlinePeople(),
		"OnlineTitles":             v.OnlineTitles(),
		"Organizations":            v.Organizations(),
		"People":                   v.People(),
		"TaxonomicClassifiers":     v.TaxonomicClassifiers(),
		"Titles":                   v.Titles(),
		"TypesOfMaterial":          v.TypesOfMaterial(),
	}
	for name, l := range lists {
		assert.NotNil(t, l, name)
		assert.Empty(t, l, name)
	}
}

func TestView_PresentScalars(t *testing.T) {
	v := NewView(fullRecord(t))

	assert.Equal(t, "Transit Deal Reached", v.Headline().OrElse(""))
	assert.Equal(t, "By JOHN DOE", v.Byline().OrElse(""))
	assert.Equal(t, "Metropolitan Desk", v.NewsDesk().OrElse(""))
	assert.Equal(t, "Photo by Jane Roe", v.Credit().OrElse(""))
	assert.Equal(t, "data/2004/04.tgz/04/10/1566100.xml", v.SourcePath().OrElse(""))
	assert.Equal(t, 1071, v.WordCount().OrElse(0))
	assert.Equal(t, 2004, v.PublicationYear().OrElse(0))
	assert.Equal(t, 3, v.ColumnNumber().OrElse(0))

	pub, ok := v.PublicationDate().Get()
	require.True(t, ok)
	assert.Equal(t, 10, pub.Day())

	u, ok := v.URL().Get()
	require.True(t, ok)
	assert.Equal(t, "query.nytimes.com", u.Host)
}

func TestView_ZeroIntegerIsPresent(t *testing.T) {
	v := NewView(&RawRecord{GUID: 1, Page: intPtr(0)})
	page, ok := v.Page().Get()
	require.True(t, ok)
	assert.Equal(t, 0, page)
}

func TestView_ListsPreserveOrderAndDuplicates(t *testing.T) {
	v := NewView(fullRecord(t))
	assert.Equal(t, []string{"Strikes", "Transit Systems", "Labor", "Strikes"}, v.Descriptors())
	assert.Equal(t, []string{"Transport Workers Union"}, v.OnlineOrganizations())
}

func TestView_ListResultsDoNotAliasRecord(t *testing.T) {
	rec := fullRecord(t)
	v := NewView(rec)

	got := v.Descriptors()
	got[0] = "changed"
	assert.Equal(t, "Strikes", rec.Descriptors[0])

	u, _ := v.URL().Get()
	u.Host = "example.com"
	assert.Equal(t, "query.nytimes.com", rec.URL.Host)
}

func TestView_BodyLines(t *testing.T) {
	v := NewView(&RawRecord{GUID: 1, Body: "first\nsecond\nthird"})
	assert.Equal(t, []string{"first", "second", "third"}, v.BodyLines())
}

func TestView_LeadParagraphLines(t *testing.T) {
	v := NewView(fullRecord(t))
	assert.Equal(t, []string{"LEAD: Transit workers agreed.", "The deal was signed."}, v.LeadParagraphLines())
}

func TestView_OnlineSections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"trimmed", "A; B ;C", []string{"A", "B", "C"}},
		{"single", "Business", []string{"Business"}},
		{"trailing separator", "A;B;", []string{"A", "B"}},
		{"interior empty kept", "A;;B", []string{"A", "", "B"}},
		{"separators only", " ; ; ", []string{}},
		{"absent", "", []string{}},
		{"nbsp padded", "\u00A0Arts\u00A0;\u00A0Books", []string{"Arts", "Books"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(&RawRecord{GUID: 1, OnlineSection: tt.raw})
			assert.Equal(t, tt.want, v.OnlineSections())
		})
	}
}

func TestView_OnlineLeadParagraphCleanup(t *testing.T) {
	t.Run("nbsp only is absent", func(t *testing.T) {
		v := NewView(&RawRecord{GUID: 1, OnlineLeadParagraph: "\u00A0\u00A0\u00A0"})
		assert.False(t, v.OnlineLeadParagraph().IsPresent())
		assert.Empty(t, v.OnlineLeadParagraphLines())
	})
	t.Run("nbsp replaced", func(t *testing.T) {
		v := NewView(&RawRecord{GUID: 1, OnlineLeadParagraph: "Hello\u00A0World"})
		got, ok := v.OnlineLeadParagraph().Get()
		require.True(t, ok)
		assert.Equal(t, "Hello World", got)
	})
}

func TestView_CleanupAppliesToEveryDerivedList(t *testing.T) {
	rec := &RawRecord{
		GUID:                1,
		LeadParagraph:       "\u2003lead\u00A0one\nlead two\n",
		OnlineLeadParagraph: "online\u202Fone\nonline two",
		Body:                "\u3000body one\nbody\u00A0two\u00A0",
	}
	v := NewView(rec)
	assert.Equal(t, []string{"lead one", "lead two"}, v.LeadParagraphLines())
	assert.Equal(t, []string{"online one", "online two"}, v.OnlineLeadParagraphLines())
	assert.Equal(t, []string{"body one", "body two"}, v.BodyLines())

	// The plain scalar accessors return the raw text untouched.
	assert.Equal(t, rec.LeadParagraph, v.LeadParagraph().OrElse(""))
	assert.Equal(t, rec.Body, v.Body().OrElse(""))
}

func TestView_WhitespaceOnlyBodyIsEmptyList(t *testing.T) {
	v := NewView(&RawRecord{GUID: 1, Body: " \n\u00A0\n "})
	assert.Empty(t, v.BodyLines())
	assert.True(t, v.Body().IsPresent(), "raw body is not the empty sentinel")
}

func TestView_InteriorBlankLinesKept(t *testing.T) {
	v := NewView(&RawRecord{GUID: 1, Body: "one\n\ntwo"})
	assert.Equal(t, []string{"one", "", "two"}, v.BodyLines())
}

func TestView_Idempotent(t *testing.T) {
	v := NewView(fullRecord(t))
	assert.Equal(t, v.BodyLines(), v.BodyLines())
	assert.Equal(t, v.OnlineSections(), v.OnlineSections())
	assert.Equal(t, v.OnlineLeadParagraph(), v.OnlineLeadParagraph())
	assert.Equal(t, v.Descriptors(), v.Descriptors())
	assert.Equal(t, v.String(), v.String())
}

func TestView_AccessorsDoNotMutateRecord(t *testing.T) {
	rec := fullRecord(t)
	before := *rec
	v := NewView(rec)
	_ = v.String()
	_ = v.OnlineSections()
	_ = v.BodyLines()
	assert.Equal(t, before, *rec)
}

func TestView_StringTruncatesLists(t *testing.T) {
	v := NewView(fullRecord(t))
	s := v.String()

	assert.True(t, strings.HasPrefix(s, "View[guid=1566100, "))
	assert.Contains(t, s, `descriptors=["Strikes", "Transit Systems", "Labor", …(+1)]`)
	assert.NotContains(t, s, `"Labor", "Strikes"`)
	assert.Contains(t, s, `bodyLines=["first", "second", "third"]`)
	assert.Contains(t, s, `headline="Transit Deal Reached"`)
	assert.Contains(t, s, "wordCount=1071")
	assert.Contains(t, s, "publicationDate=2004-04-10T00:00:00Z")
	assert.Contains(t, s, "url=http://query.nytimes.com/gst/fullpage.html?res=1566100")
}

func TestView_StringAbsentFields(t *testing.T) {
	s := NewView(&RawRecord{GUID: 7}).String()
	assert.Contains(t, s, "headline=<absent>")
	assert.Contains(t, s, "page=<absent>")
	assert.Contains(t, s, "people=[]")
	assert.True(t, strings.HasSuffix(s, "wordCount=<absent>]"))
}

func TestClean(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"\u00A0\u2007\u202F", "", false},
		{"Hello\u00A0World", "Hello World", true},
		{"  padded  ", "padded", true},
		{"line one\nline two", "line one\nline two", true},
		{"para\u2029sep", "para sep", true},
	}
	for _, tt := range tests {
		got, ok := Clean(tt.in)
		assert.Equal(t, tt.wantOK, ok, "Clean(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "Clean(%q)", tt.in)
	}
}

func TestOrEmpty(t *testing.T) {
	assert.Equal(t, []int{}, orEmpty[int](nil))
	assert.Equal(t, []int{3, 1, 3}, orEmpty([]int{3, 1, 3}))
}
