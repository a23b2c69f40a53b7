// Package nitf parses NYT Annotated Corpus documents (NITF 3.3 XML) into
// nyt.RawRecord values.
package nitf

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/starford/anyt/internal/nyt"
)

// ErrMissingGUID is returned when a document carries no usable doc-id.
var ErrMissingGUID = errors.New("nitf: missing document guid")

// Class attribute values that distinguish indexer output from online
// producer output.
const (
	classIndexing = "indexing_service"
	classOnline   = "online_producer"
)

const pubDateLayout = "20060102T150405"

// correctionLayouts lists the layouts seen in correction_date meta values.
var correctionLayouts = []string{
	pubDateLayout,
	"2006-01-02",
	"Monday, January 2, 2006",
	"January 2, 2006",
}

// Parse decodes one NITF document. source is recorded as the record's source
// file and is otherwise opaque.
//
// Values that fail to parse as integers, dates or URLs are left absent.
func Parse(data []byte, source string) (*nyt.RawRecord, error) {
	var doc document
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("nitf: decode %s: %w", source, err)
	}

	guid, err := strconv.Atoi(strings.TrimSpace(doc.Head.DocData.DocID.IDString))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingGUID, source)
	}

	meta := doc.Head.metaMap()
	rec := &nyt.RawRecord{
		GUID:       guid,
		SourceFile: source,

		PublicationDate: parseTime(doc.Head.PubData.DatePublication, pubDateLayout),
		URL:             parseURL(doc.Head.PubData.ExRef),
		WordCount:       parseInt(doc.Head.PubData.ItemLength),

		PublicationDayOfMonth: parseInt(meta["publication_day_of_month"]),
		PublicationMonth:      parseInt(meta["publication_month"]),
		PublicationYear:       parseInt(meta["publication_year"]),
		DayOfWeek:             meta["publication_day_of_week"],
		NewsDesk:              meta["dsk"],
		Page:                  parseInt(meta["print_page_number"]),
		Section:               meta["print_section"],
		ColumnNumber:          parseInt(meta["print_column"]),
		OnlineSection:         meta["online_sections"],
		AlternateURL:          parseURL(meta["alternate_url"]),
		Banner:                meta["banner"],
		ColumnName:            meta["column_name"],
		FeaturePage:           meta["feature_page"],
		Slug:                  meta["slug"],
		Credit:                meta["credit"],
		CorrectionDate:        parseTime(meta["correction_date"], correctionLayouts...),

		SeriesName: strings.TrimSpace(doc.Head.DocData.Series.Name),
	}

	doc.Head.DocData.Content.apply(rec)
	doc.Body.apply(rec)
	return rec, nil
}

type document struct {
	XMLName xml.Name `xml:"nitf"`
	Head    head     `xml:"head"`
	Body    body     `xml:"body"`
}

type head struct {
	Meta    []meta  `xml:"meta"`
	DocData docData `xml:"docdata"`
	PubData pubData `xml:"pubdata"`
}

type meta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

// metaMap indexes meta elements by name. The first occurrence wins.
func (h head) metaMap() map[string]string {
	m := make(map[string]string, len(h.Meta))
	for _, mt := range h.Meta {
		if _, ok := m[mt.Name]; ok {
			continue
		}
		m[mt.Name] = strings.TrimSpace(mt.Content)
	}
	return m
}

type docData struct {
	DocID struct {
		IDString string `xml:"id-string,attr"`
	} `xml:"doc-id"`
	Series struct {
		Name string `xml:"series.name,attr"`
	} `xml:"series"`
	Content identifiedContent `xml:"identified-content"`
}

type pubData struct {
	DatePublication string `xml:"date.publication,attr"`
	ExRef           string `xml:"ex-ref,attr"`
	ItemLength      string `xml:"item-length,attr"`
}

type classed struct {
	Class string `xml:"class,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

func (c classed) value() string {
	return strings.TrimSpace(c.Value)
}

type identifiedContent struct {
	Classifiers []classed `xml:"classifier"`
	Locations   []classed `xml:"location"`
	Orgs        []classed `xml:"org"`
	People      []classed `xml:"person"`
	Titles      []classed `xml:"object.title"`
}

func (ic identifiedContent) apply(rec *nyt.RawRecord) {
	for _, c := range ic.Classifiers {
		v := c.value()
		if v == "" {
			continue
		}
		switch c.Type {
		case "descriptor":
			byClass(c.Class, v, &rec.Descriptors, &rec.OnlineDescriptors)
		case "general_descriptor":
			rec.GeneralOnlineDescriptors = append(rec.GeneralOnlineDescriptors, v)
		case "taxonomic_classifier":
			rec.TaxonomicClassifiers = append(rec.TaxonomicClassifiers, v)
		case "types_of_material":
			rec.TypesOfMaterial = append(rec.TypesOfMaterial, v)
		case "biographical_categories":
			rec.BiographicalCategories = append(rec.BiographicalCategories, v)
		case "names":
			rec.Names = append(rec.Names, v)
		}
	}
	collect(ic.Locations, &rec.Locations, &rec.OnlineLocations)
	collect(ic.Orgs, &rec.Organizations, &rec.OnlineOrganizations)
	collect(ic.People, &rec.People, &rec.OnlinePeople)
	collect(ic.Titles, &rec.Titles, &rec.OnlineTitles)
}

func collect(items []classed, indexed, online *[]string) {
	for _, c := range items {
		if v := c.value(); v != "" {
			byClass(c.Class, v, indexed, online)
		}
	}
}

func byClass(class, v string, indexed, online *[]string) {
	switch class {
	case classIndexing:
		*indexed = append(*indexed, v)
	case classOnline:
		*online = append(*online, v)
	}
}

type body struct {
	Head    bodyHead    `xml:"body.head"`
	Content bodyContent `xml:"body.content"`
	End     bodyEnd     `xml:"body.end"`
}

type bodyHead struct {
	Hedline struct {
		HL1 []text        `xml:"hl1"`
		HL2 []classedText `xml:"hl2"`
	} `xml:"hedline"`
	Bylines  []classedText `xml:"byline"`
	Dateline text          `xml:"dateline"`
	Abstract struct {
		Paragraphs []text `xml:"p"`
	} `xml:"abstract"`
}

type bodyContent struct {
	Blocks []struct {
		Class      string `xml:"class,attr"`
		Paragraphs []text `xml:"p"`
	} `xml:"block"`
}

type bodyEnd struct {
	Taglines []classedText `xml:"tagline"`
}

type classedText struct {
	Class string
	Text  text
}

func (ct *classedText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "class" {
			ct.Class = a.Value
		}
	}
	return ct.Text.UnmarshalXML(d, start)
}

func (b body) apply(rec *nyt.RawRecord) {
	if len(b.Head.Hedline.HL1) > 0 {
		rec.Headline = b.Head.Hedline.HL1[0].String()
	}
	for _, hl := range b.Head.Hedline.HL2 {
		switch hl.Class {
		case "online_headline":
			setOnce(&rec.OnlineHeadline, hl.Text.String())
		case "kicker":
			setOnce(&rec.Kicker, hl.Text.String())
		}
	}
	for _, bl := range b.Head.Bylines {
		switch bl.Class {
		case "print_byline":
			setOnce(&rec.Byline, bl.Text.String())
		case "normalized_byline":
			setOnce(&rec.NormalizedByline, bl.Text.String())
		}
	}
	rec.Dateline = b.Head.Dateline.String()
	rec.ArticleAbstract = joinParagraphs(b.Head.Abstract.Paragraphs)

	for _, blk := range b.Content.Blocks {
		switch blk.Class {
		case "lead_paragraph":
			setOnce(&rec.LeadParagraph, joinParagraphs(blk.Paragraphs))
		case "full_text":
			setOnce(&rec.Body, joinParagraphs(blk.Paragraphs))
		case "online_lead_paragraph":
			setOnce(&rec.OnlineLeadParagraph, joinParagraphs(blk.Paragraphs))
		case "correction_text":
			setOnce(&rec.CorrectionText, joinParagraphs(blk.Paragraphs))
		}
	}
	for _, tl := range b.End.Taglines {
		if tl.Class == "author_info" {
			setOnce(&rec.AuthorBiography, tl.Text.String())
		}
	}
}

func setOnce(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func joinParagraphs(ps []text) string {
	lines := make([]string, 0, len(ps))
	for _, p := range ps {
		if s := p.String(); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

// text collects all character data beneath an element, including text in
// nested inline markup.
type text string

func (t *text) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := tok.(type) {
		case xml.CharData:
			b.Write(tt)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*t = text(b.String())
				return nil
			}
			depth--
		}
	}
}

func (t text) String() string {
	return strings.TrimSpace(string(t))
}

func parseInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func parseTime(s string, layouts ...string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseURL(s string) *url.URL {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}
