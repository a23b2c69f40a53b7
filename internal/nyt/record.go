// Package nyt wraps parsed New York Times Annotated Corpus records in a
// read-only view with null-safe and list-safe accessors.
package nyt

import (
	"net/url"
	"time"
)

// RawRecord is one parsed corpus document as produced by the NITF parser.
//
// Absent values use the zero sentinel of their Go type: "" for text, nil for
// integers, dates, URLs and lists. GUID is always set.
type RawRecord struct {
	GUID int

	AlternateURL             *url.URL
	ArticleAbstract          string
	AuthorBiography          string
	Banner                   string
	BiographicalCategories   []string
	Body                     string
	Byline                   string
	ColumnName               string
	ColumnNumber             *int
	CorrectionDate           *time.Time
	CorrectionText           string
	Credit                   string
	Dateline                 string
	DayOfWeek                string
	Descriptors              []string
	FeaturePage              string
	GeneralOnlineDescriptors []string
	Headline                 string
	Kicker                   string
	LeadParagraph            string
	Locations                []string
	Names                    []string
	NewsDesk                 string
	NormalizedByline         string
	OnlineDescriptors        []string
	OnlineHeadline           string
	OnlineLeadParagraph      string
	OnlineLocations          []string
	OnlineOrganizations      []string
	OnlinePeople             []string
	OnlineSection            string
	OnlineTitles             []string
	Organizations            []string
	Page                     *int
	People                   []string
	PublicationDate          *time.Time
	PublicationDayOfMonth    *int
	PublicationMonth         *int
	PublicationYear          *int
	Section                  string
	SeriesName               string
	Slug                     string
	SourceFile               string
	TaxonomicClassifiers     []string
	Titles                   []string
	TypesOfMaterial          []string
	URL                      *url.URL
	WordCount                *int
}
